package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateUserEditScreen обрабатывает форму редактирования пользователя.
func (m *model) updateUserEditScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	submitAction := func() (tea.Model, tea.Cmd) {
		user := *m.editingUser
		user.Username = m.userInputs[userFieldUsername].Value()
		user.Email = m.userInputs[userFieldEmail].Value()
		if user.Username == "" {
			m.errText = "Имя пользователя не может быть пустым"
			return m, nil
		}
		isSelf := m.self != nil && user.ID == m.self.ID
		cmd := m.submitUserCmd(user, isSelf)
		model, statusCmd := m.setStatusMessage("Сохранение...")
		return model, tea.Batch(cmd, statusCmd)
	}

	inputs := make([]*textinput.Model, numUserFields)
	for i := range m.userInputs {
		inputs[i] = &m.userInputs[i]
	}
	return m.handleFormInput(msg, inputs, &m.userFocusedField, submitAction, m.userEditReturnTo)
}

// viewUserEditScreen отображает форму пользователя.
func (m *model) viewUserEditScreen() string {
	title := "Редактирование пользователя"
	if m.editingUser != nil && m.self != nil && m.editingUser.ID == m.self.ID {
		title = "Редактирование профиля"
	}
	return m.viewFormScreen(title, m.userInputs, "")
}
