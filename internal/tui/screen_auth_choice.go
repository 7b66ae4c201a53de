package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateAuthChoiceScreen обрабатывает выбор между входом и регистрацией.
func (m *model) updateAuthChoiceScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "l", "L":
			m.state = loginScreen
			m.errText = ""
			m.authFocusedField = 0
			return m, focusFormField([]*textinput.Model{&m.loginEmailInput, &m.loginPasswordInput}, 0)
		case "r", "R":
			m.state = registerScreen
			m.errText = ""
			m.authFocusedField = 0
			return m, focusFormField(
				[]*textinput.Model{&m.registerEmailInput, &m.registerUsernameInput, &m.registerPasswordInput}, 0)
		case keyQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

// viewAuthChoiceScreen отображает стартовый экран.
func (m *model) viewAuthChoiceScreen() string {
	return titleStyle.Render("PassMan — менеджер паролей") + "\n\n" +
		"Войдите в учетную запись или зарегистрируйтесь.\n"
}
