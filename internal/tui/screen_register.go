package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateRegisterScreen обрабатывает ввод данных для регистрации.
func (m *model) updateRegisterScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	registerAction := func() (tea.Model, tea.Cmd) {
		email := m.registerEmailInput.Value()
		username := m.registerUsernameInput.Value()
		password := m.registerPasswordInput.Value()
		cmd := m.makeRegisterCmd(email, username, password)
		model, statusCmd := m.setStatusMessage("Выполняется регистрация...")
		return model, tea.Batch(cmd, statusCmd)
	}

	return m.handleFormInput(
		msg,
		[]*textinput.Model{&m.registerEmailInput, &m.registerUsernameInput, &m.registerPasswordInput},
		&m.authFocusedField,
		registerAction,
		authChoiceScreen,
	)
}

// viewRegisterScreen отображает экран регистрации.
func (m *model) viewRegisterScreen() string {
	return m.viewFormScreen(
		"Регистрация",
		[]textinput.Model{m.registerEmailInput, m.registerUsernameInput, m.registerPasswordInput},
		"",
	)
}
