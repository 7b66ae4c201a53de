package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// updateProfileScreen обрабатывает экран профиля текущего пользователя.
func (m *model) updateProfileScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit:
			return m, tea.Quit
		case keyEsc, keyBack:
			m.state = notesListScreen
			m.errText = ""
			return m, tea.ClearScreen
		case keyRefresh:
			model, statusCmd := m.setStatusMessage("Обновление профиля...")
			return model, tea.Batch(m.fetchSelfCmd(), statusCmd)
		case keyEdit:
			if m.self != nil {
				m.prepareUserEdit(*m.self, profileScreen)
				return m, tea.ClearScreen
			}
			return m, nil
		case keyLogout:
			model, cmd, _ := m.logoutNow()
			return model, cmd
		}
	}
	return m, nil
}

// viewProfileScreen отображает профиль текущего пользователя.
func (m *model) viewProfileScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Профиль") + "\n\n")
	if m.self == nil {
		b.WriteString(subtleStyle.Render("Загрузка профиля..."))
		return b.String()
	}
	role := "пользователь"
	if m.self.Admin {
		role = "администратор"
	}
	b.WriteString(fmt.Sprintf("Имя:   %s\n", m.self.Username))
	b.WriteString(fmt.Sprintf("Email: %s\n", m.self.Email))
	b.WriteString(fmt.Sprintf("Роль:  %s\n", role))
	return b.String()
}
