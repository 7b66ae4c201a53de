package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// updateUserNotesScreen обрабатывает экран просмотра заметок выбранного
// пользователя. Экран только для чтения, редактирование чужих заметок
// сервер не разрешает.
func (m *model) updateUserNotesScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit:
			return m, tea.Quit
		case keyEsc, keyBack:
			m.state = usersListScreen
			m.userNotes = nil
			m.userNotesOwner = ""
			m.errText = ""
			return m, tea.ClearScreen
		case keyRefresh:
			if item, ok := m.selectedUser(); ok {
				m.userNotesBusy = true
				model, statusCmd := m.setStatusMessage("Обновление...")
				return model, tea.Batch(m.fetchUserNotesCmd(item.ID), statusCmd)
			}
			return m, nil
		}
	}
	return m, nil
}

// viewUserNotesScreen отображает заметки выбранного пользователя.
func (m *model) viewUserNotesScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Заметки пользователя %s", m.userNotesOwner)) + "\n\n")
	if m.userNotesBusy {
		b.WriteString(subtleStyle.Render("Загрузка заметок..."))
		return b.String()
	}
	if len(m.userNotes) == 0 {
		b.WriteString(subtleStyle.Render("Заметок нет"))
		return b.String()
	}
	for _, note := range m.userNotes {
		b.WriteString(fmt.Sprintf("• %s\n", noteItem{note: note}.Title()))
		b.WriteString("  " + subtleStyle.Render(noteItem{note: note}.Description()) + "\n")
	}
	return b.String()
}
