package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// updateDocsScreen обрабатывает экран документации с постраничной навигацией.
func (m *model) updateDocsScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit:
			return m, tea.Quit
		case keyEsc, keyBack:
			m.state = notesListScreen
			m.errText = ""
			return m, tea.ClearScreen
		case "left", "h":
			if m.docPage > 0 {
				m.docPage--
			}
			return m, nil
		case "right", "l":
			if m.docPage < len(m.docPages)-1 {
				m.docPage++
			}
			return m, nil
		case keyRefresh:
			return m, renderDocsCmd(m.width)
		}
	}
	return m, nil
}

// viewDocsScreen отображает текущую страницу документации.
func (m *model) viewDocsScreen() string {
	if len(m.docPages) == 0 {
		return subtleStyle.Render("Загрузка документации...")
	}
	page := m.docPage
	if page >= len(m.docPages) {
		page = len(m.docPages) - 1
	}
	pager := subtleStyle.Render(fmt.Sprintf("Страница %d из %d (←/→)", page+1, len(m.docPages)))
	return m.docPages[page] + "\n" + pager
}
