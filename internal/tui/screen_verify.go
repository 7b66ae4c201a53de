package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateNoteVerifyScreen обрабатывает проверку пароля заметки: введенный
// пароль сверяется на сервере, сам пароль заметки не показывается.
func (m *model) updateNoteVerifyScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	verifyAction := func() (tea.Model, tea.Cmd) {
		password := m.verifyInput.Value()
		if password == "" {
			m.errText = "Введите пароль для проверки"
			return m, nil
		}
		cmd := m.verifyNotePasswordCmd(m.verifyTargetID, password)
		model, statusCmd := m.setStatusMessage("Проверка пароля...")
		return model, tea.Batch(cmd, statusCmd)
	}

	focused := 0
	return m.handleFormInput(
		msg,
		[]*textinput.Model{&m.verifyInput},
		&focused,
		verifyAction,
		notesListScreen,
	)
}

// viewNoteVerifyScreen отображает экран проверки пароля.
func (m *model) viewNoteVerifyScreen() string {
	return m.viewFormScreen("Проверка пароля заметки", []textinput.Model{m.verifyInput}, "")
}
