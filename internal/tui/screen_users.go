package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/passman/internal/models"
)

// updateUsersListScreen обрабатывает экран списка пользователей.
// Экран доступен только администратору; до прихода свежего профиля
// содержимое не отображается (см. viewUsersListScreen).
func (m *model) updateUsersListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.confirmationPrompt != "" && isKey {
		return m.handleUserDeleteConfirmation(keyMsg)
	}

	if isKey {
		switch keyMsg.String() {
		case keyQuit:
			return m, tea.Quit
		case keyEsc, keyBack:
			m.state = notesListScreen
			m.errText = ""
			return m, tea.ClearScreen
		case keyRefresh:
			model, statusCmd := m.setStatusMessage("Обновление...")
			return model, tea.Batch(m.refreshUsersCmd(), m.fetchSelfCmd(), statusCmd)
		case keyEdit:
			if item, ok := m.selectedUser(); ok {
				m.prepareUserEdit(item, usersListScreen)
				return m, tea.ClearScreen
			}
			return m, nil
		case keyNotesOf:
			if item, ok := m.selectedUser(); ok {
				m.userNotes = nil
				m.userNotesOwner = item.Username
				m.userNotesBusy = true
				m.errText = ""
				m.state = userNotesScreen
				return m, tea.Batch(m.fetchUserNotesCmd(item.ID), tea.ClearScreen)
			}
			return m, nil
		case keyDelete:
			if item, ok := m.selectedUser(); ok {
				if m.self != nil && item.ID == m.self.ID {
					m.errText = "Нельзя удалить собственную учетную запись из списка"
					return m, nil
				}
				m.userConfirm.RequestDelete(item.ID)
				m.confirmationPrompt = fmt.Sprintf("Удалить пользователя '%s'? (y/n)", item.Username)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.userList, cmd = m.userList.Update(msg)
	return m, cmd
}

// handleUserDeleteConfirmation обрабатывает ответ на запрос подтверждения.
func (m *model) handleUserDeleteConfirmation(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "y", "Y":
		m.confirmationPrompt = ""
		slog.Info("Удаление пользователя подтверждено")
		return m, m.deleteUserCmd()
	case "n", "N", keyEsc:
		m.confirmationPrompt = ""
		m.userConfirm.Cancel()
		return m, nil
	default:
		return m, nil
	}
}

// selectedUser возвращает выбранного в списке пользователя.
func (m *model) selectedUser() (models.User, bool) {
	selectedItem := m.userList.SelectedItem()
	if selectedItem == nil {
		return models.User{}, false
	}
	item, ok := selectedItem.(userItem)
	if !ok {
		return models.User{}, false
	}
	return item.user, true
}

// prepareUserEdit заполняет форму пользователя и открывает экран
// редактирования. returnTo задает экран возврата после сохранения.
func (m *model) prepareUserEdit(user models.User, returnTo screenState) {
	userCopy := user
	m.editingUser = &userCopy
	m.userEditReturnTo = returnTo
	m.userInputs[userFieldUsername].SetValue(user.Username)
	m.userInputs[userFieldEmail].SetValue(user.Email)
	m.userFocusedField = userFieldUsername
	m.errText = ""
	m.state = userEditScreen
	for i := range m.userInputs {
		if i == userFieldUsername {
			m.userInputs[i].Focus()
		} else {
			m.userInputs[i].Blur()
		}
	}
}

// viewUsersListScreen отображает список пользователей. Пока свежий профиль
// не подтвердил права администратора, список скрыт.
func (m *model) viewUsersListScreen() string {
	if m.self == nil {
		return subtleStyle.Render("Проверка прав доступа...")
	}
	if !m.self.Admin {
		return errorStyle.Render("Недостаточно прав для просмотра пользователей")
	}
	view := m.userList.View()
	if m.confirmationPrompt != "" {
		view += "\n" + errorStyle.Render(m.confirmationPrompt)
	}
	return view
}
