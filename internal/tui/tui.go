// Package tui реализует терминальный интерфейс клиента PassMan поверх
// bubbletea: экраны входа и регистрации, список заметок с поиском и
// сортировкой, администрирование пользователей, профиль и документацию.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/passman/internal/api"
	"github.com/maynagashev/passman/internal/auth"
	"github.com/maynagashev/passman/internal/session"
)

const (
	statusMessageTimeout = 2 * time.Second // Время отображения статусных сообщений
)

// Стили подвала.
var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
)

// Config — параметры запуска TUI.
type Config struct {
	ServerURL string // Базовый URL сервера
	CredsPath string // Путь к файлу учетных данных
	DebugMode bool   // Отображать отладочную панель
}

// Init - команда, выполняемая при запуске приложения.
func (m *model) Init() tea.Cmd {
	// При восстановленной сессии данные загружаются сразу
	if m.state == notesListScreen {
		return tea.Batch(textinput.Blink, m.fetchSelfCmd(), m.refreshNotesCmd())
	}
	return textinput.Blink
}

// setStatusMessage устанавливает статусное сообщение и запускает таймер
// для его очистки.
func (m *model) setStatusMessage(status string) (tea.Model, tea.Cmd) {
	m.statusMsg = status
	return m, clearStatusCmd(statusMessageTimeout)
}

// applyNotesToList переносит заметки из контроллера в компонент списка,
// применяя фильтр строки поиска.
func (m *model) applyNotesToList() {
	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
	notes := m.notes.Items()
	items := make([]list.Item, 0, len(notes))
	for _, n := range notes {
		if query != "" &&
			!strings.Contains(strings.ToLower(n.NoteText), query) &&
			!strings.Contains(strings.ToLower(n.Username), query) {
			continue
		}
		items = append(items, noteItem{note: n})
	}
	_ = m.noteList.SetItems(items)
	m.noteList.Title = fmt.Sprintf("Заметки (%d)", len(items))
}

// applyUsersToList переносит пользователей из контроллера в компонент списка.
func (m *model) applyUsersToList() {
	users := m.users.Items()
	items := make([]list.Item, 0, len(users))
	for _, u := range users {
		items = append(items, userItem{user: u})
	}
	_ = m.userList.SetItems(items)
	m.userList.Title = fmt.Sprintf("Пользователи (%d)", len(items))
}

// getMainContentView возвращает основное содержимое для текущего состояния.
func (m *model) getMainContentView() string {
	switch m.state {
	case authChoiceScreen:
		return m.viewAuthChoiceScreen()
	case loginScreen:
		return m.viewLoginScreen()
	case registerScreen:
		return m.viewRegisterScreen()
	case notesListScreen:
		return m.viewNotesListScreen()
	case noteEditScreen:
		return m.viewNoteEditScreen()
	case noteVerifyScreen:
		return m.viewNoteVerifyScreen()
	case usersListScreen:
		return m.viewUsersListScreen()
	case userNotesScreen:
		return m.viewUserNotesScreen()
	case userEditScreen:
		return m.viewUserEditScreen()
	case profileScreen:
		return m.viewProfileScreen()
	case docsScreen:
		return m.viewDocsScreen()
	default:
		return "Неизвестное состояние!"
	}
}

// getDebugInfoString генерирует отладочную панель.
func (m *model) getDebugInfoString() string {
	var debugInfo strings.Builder
	debugInfo.WriteString(fmt.Sprintf(" [State: %s]\n", m.state.String()))
	debugInfo.WriteString(fmt.Sprintf(" [Session: %s]\n", m.gate.State().String()))
	if m.self != nil {
		debugInfo.WriteString(fmt.Sprintf(" [Self: %s admin=%t]\n", m.self.Username, m.self.Admin))
	} else {
		debugInfo.WriteString(" [Self: not loaded]\n")
	}
	debugInfo.WriteString(fmt.Sprintf(" [Notes: %d, Users: %d]\n", len(m.notes.Items()), len(m.users.Items())))
	debugInfo.WriteString(fmt.Sprintf(" [Sort: %s]\n", m.notes.SortOrder()))
	return debugInfo.String()
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	mainContent := m.getMainContentView()
	help, ok := m.helpTextMap[m.state]
	if !ok {
		help = fmt.Sprintf("State: %s", m.state.String())
	}

	// --- Формируем подвал (ошибка + статус + отладка) --- //
	var footer strings.Builder
	if m.errText != "" {
		footer.WriteString("\n")
		footer.WriteString(errorStyle.Render("Ошибка: " + m.errText))
	}
	if m.statusMsg != "" {
		footer.WriteString("\n")
		footer.WriteString(m.statusMsg)
	}
	if m.debugMode {
		footer.WriteString("\n\n---\nОтладка:\n")
		footer.WriteString(m.getDebugInfoString())
	}

	styledContent := m.docStyle.Render(mainContent)
	return fmt.Sprintf("%s\n%s%s", styledContent, subtleStyle.Render(help), footer.String())
}

// Start запускает TUI приложение.
func Start(cfg Config) error {
	creds := auth.NewStore(cfg.CredsPath)
	gate := session.NewGate(creds)
	apiClient := api.NewHTTPClient(cfg.ServerURL, creds)
	slog.Info("API клиент инициализирован", "baseURL", cfg.ServerURL)

	m := initModel(gate, apiClient, cfg.DebugMode)

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ошибка при запуске TUI: %w", err)
	}
	return nil
}
