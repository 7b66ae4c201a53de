package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/passman/internal/models"
	"github.com/maynagashev/passman/internal/passgen"
	"github.com/maynagashev/passman/internal/session"
)

// updateNotesListScreen обрабатывает сообщения для главного экрана заметок.
func (m *model) updateNotesListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	// Ожидается подтверждение удаления
	if m.confirmationPrompt != "" && isKey {
		return m.handleNoteDeleteConfirmation(keyMsg)
	}

	// Активна строка поиска
	if m.searchActive {
		return m.handleSearchInput(msg)
	}

	if isKey {
		if model, cmd, handled := m.handleNotesListKeys(keyMsg); handled {
			return model, cmd
		}
	}

	var cmd tea.Cmd
	m.noteList, cmd = m.noteList.Update(msg)
	return m, cmd
}

// handleNotesListKeys обрабатывает горячие клавиши списка заметок.
func (m *model) handleNotesListKeys(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch keyMsg.String() {
	case keyQuit:
		return m, tea.Quit, true
	case keySearch:
		m.searchActive = true
		m.searchInput.Focus()
		return m, nil, true
	case keyAdd:
		m.prepareNoteEdit(models.Note{})
		return m, tea.ClearScreen, true
	case keyEdit:
		if item, ok := m.selectedNote(); ok {
			m.prepareNoteEdit(item)
			return m, tea.ClearScreen, true
		}
		return m, nil, true
	case keyDelete:
		if item, ok := m.selectedNote(); ok {
			m.noteConfirm.RequestDelete(item.ID)
			m.confirmationPrompt = fmt.Sprintf("Удалить заметку '%s'? (y/n)", noteItem{note: item}.Title())
		}
		return m, nil, true
	case keyVerify:
		if item, ok := m.selectedNote(); ok {
			m.verifyTargetID = item.ID
			m.verifyInput.Reset()
			m.verifyInput.Focus()
			m.errText = ""
			m.state = noteVerifyScreen
			return m, tea.ClearScreen, true
		}
		return m, nil, true
	case keySort:
		model, statusCmd := m.setStatusMessage("Сортировка...")
		return model, tea.Batch(m.toggleNotesSortCmd(), statusCmd), true
	case keyRefresh:
		model, statusCmd := m.setStatusMessage("Обновление...")
		return model, tea.Batch(m.refreshNotesCmd(), statusCmd), true
	case keyUsers:
		return m.openUsersScreen()
	case keyProfile:
		m.state = screenForRoute(m.gate.Resolve(session.RouteProfile))
		m.errText = ""
		return m, tea.Batch(m.fetchSelfCmd(), tea.ClearScreen), true
	case keyDocs:
		m.state = screenForRoute(m.gate.Resolve(session.RouteDocs))
		m.errText = ""
		if m.docPages == nil {
			return m, tea.Batch(renderDocsCmd(m.width), tea.ClearScreen), true
		}
		return m, tea.ClearScreen, true
	case keyLogout:
		return m.logoutNow()
	default:
		return m, nil, false
	}
}

// handleNoteDeleteConfirmation обрабатывает ответ на запрос подтверждения.
func (m *model) handleNoteDeleteConfirmation(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "y", "Y":
		m.confirmationPrompt = ""
		slog.Info("Удаление заметки подтверждено")
		return m, m.deleteNoteCmd()
	case "n", "N", keyEsc:
		m.confirmationPrompt = ""
		m.noteConfirm.Cancel()
		return m, nil
	default:
		return m, nil
	}
}

// handleSearchInput обрабатывает ввод в строке поиска. Каждое изменение
// запроса взводит новое поколение дебаунса; загрузка уйдет на сервер
// только после паузы ввода.
func (m *model) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.searchActive = false
			m.searchInput.Blur()
			m.searchInput.Reset()
			m.applyNotesToList()
			return m, nil
		case keyEnter:
			m.searchActive = false
			m.searchInput.Blur()
			return m, nil
		}
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}

	// Локальный фильтр применяется сразу, серверная загрузка — после паузы
	m.applyNotesToList()
	gen := m.searchDebounce.Arm()
	return m, tea.Batch(cmd, m.searchDebounceCmd(gen))
}

// selectedNote возвращает выбранную в списке заметку.
func (m *model) selectedNote() (models.Note, bool) {
	selectedItem := m.noteList.SelectedItem()
	if selectedItem == nil {
		return models.Note{}, false
	}
	item, ok := selectedItem.(noteItem)
	if !ok {
		return models.Note{}, false
	}
	return item.note, true
}

// prepareNoteEdit заполняет форму заметки и открывает экран редактирования.
// Пустая заметка (ID 0) означает создание новой.
func (m *model) prepareNoteEdit(note models.Note) {
	noteCopy := note
	m.editingNote = &noteCopy
	m.noteInputs[noteFieldText].SetValue(note.NoteText)
	m.noteInputs[noteFieldUsername].SetValue(note.Username)
	m.noteInputs[noteFieldPassword].SetValue(note.Password)
	m.noteFocusedField = noteFieldText
	m.passwordStrength = passgen.Rate(note.Password)
	m.errText = ""
	m.state = noteEditScreen
	for i := range m.noteInputs {
		if i == noteFieldText {
			m.noteInputs[i].Focus()
		} else {
			m.noteInputs[i].Blur()
		}
	}
}

// openUsersScreen открывает экран пользователей с повторной проверкой прав.
func (m *model) openUsersScreen() (tea.Model, tea.Cmd, bool) {
	if m.self != nil && !m.self.Admin {
		m.errText = "Недостаточно прав для просмотра пользователей"
		return m, nil, true
	}
	m.state = screenForRoute(m.gate.Resolve(session.RouteAdmin))
	m.errText = ""
	// Профиль перечитывается: права подтверждает свежий ответ сервера,
	// а не скрытие вкладки.
	return m, tea.Batch(m.refreshUsersCmd(), m.fetchSelfCmd(), tea.ClearScreen), true
}

// logoutNow закрывает сессию по явной команде пользователя и пересоздает
// модель, чтобы состояние авторизованных экранов не пережило выход.
func (m *model) logoutNow() (tea.Model, tea.Cmd, bool) {
	if err := m.gate.OnLogout(); err != nil {
		slog.Warn("Ошибка при выходе", "error", err)
	}
	fresh := initModel(m.gate, m.apiClient, m.debugMode)
	fresh.width, fresh.height = m.width, m.height
	return &fresh, tea.ClearScreen, true
}

// viewNotesListScreen отображает список заметок со строкой поиска.
func (m *model) viewNotesListScreen() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View() + "\n")
	b.WriteString(m.noteList.View())
	if m.confirmationPrompt != "" {
		b.WriteString("\n" + errorStyle.Render(m.confirmationPrompt))
	}
	return b.String()
}
