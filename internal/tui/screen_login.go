package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateLoginScreen обрабатывает ввод данных для входа.
func (m *model) updateLoginScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	loginAction := func() (tea.Model, tea.Cmd) {
		email := m.loginEmailInput.Value()
		password := m.loginPasswordInput.Value()
		cmd := m.makeLoginCmd(email, password)
		model, statusCmd := m.setStatusMessage("Выполняется вход...")
		return model, tea.Batch(cmd, statusCmd)
	}

	return m.handleFormInput(
		msg,
		[]*textinput.Model{&m.loginEmailInput, &m.loginPasswordInput},
		&m.authFocusedField,
		loginAction,
		authChoiceScreen,
	)
}

// viewLoginScreen отображает экран входа.
func (m *model) viewLoginScreen() string {
	return m.viewFormScreen(
		"Вход в учетную запись",
		[]textinput.Model{m.loginEmailInput, m.loginPasswordInput},
		"",
	)
}
