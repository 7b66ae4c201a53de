package tui

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/passman/internal/api"
	"github.com/maynagashev/passman/internal/auth"
)

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// == Глобальные сообщения (не зависят от экрана) ==
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case loginSuccessMsg:
		return m.handleLoginSuccess(msg)
	case registerSuccessMsg:
		return m.handleRegisterSuccess(msg)
	case authErrMsg:
		return m.handleAuthErr(msg)
	case selfLoadedMsg:
		return m.handleSelfLoaded(msg)
	case notesRefreshedMsg:
		return m.handleNotesRefreshed(msg)
	case noteSubmittedMsg:
		return m.handleNoteSubmitted(msg)
	case noteDeletedMsg:
		return m.handleNoteDeleted(msg)
	case usersRefreshedMsg:
		return m.handleUsersRefreshed(msg)
	case userSubmittedMsg:
		return m.handleUserSubmitted(msg)
	case userDeletedMsg:
		return m.handleUserDeleted(msg)
	case userNotesLoadedMsg:
		return m.handleUserNotesLoaded(msg)
	case verifyResultMsg:
		return m.handleVerifyResult(msg)
	case searchDebounceMsg:
		return m.handleSearchDebounce(msg)
	case docsRenderedMsg:
		return m.handleDocsRendered(msg)
	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// == Обновление в зависимости от текущего экрана ==
	switch m.state {
	case authChoiceScreen:
		return m.updateAuthChoiceScreen(msg)
	case loginScreen:
		return m.updateLoginScreen(msg)
	case registerScreen:
		return m.updateRegisterScreen(msg)
	case notesListScreen:
		return m.updateNotesListScreen(msg)
	case noteEditScreen:
		return m.updateNoteEditScreen(msg)
	case noteVerifyScreen:
		return m.updateNoteVerifyScreen(msg)
	case usersListScreen:
		return m.updateUsersListScreen(msg)
	case userNotesScreen:
		return m.updateUserNotesScreen(msg)
	case userEditScreen:
		return m.updateUserEditScreen(msg)
	case profileScreen:
		return m.updateProfileScreen(msg)
	case docsScreen:
		return m.updateDocsScreen(msg)
	default:
		return m, nil
	}
}

// handleWindowSize подгоняет размеры компонентов под терминал.
func (m *model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	h, v := m.docStyle.GetFrameSize()
	listWidth := msg.Width - h
	listHeight := msg.Height - v - 4 // Место под поиск, справку и статус

	m.noteList.SetSize(listWidth, listHeight)
	m.userList.SetSize(listWidth, listHeight)
	m.searchInput.Width = listWidth - inputWidthOffset
	return m, nil
}

// sessionExpired сообщает, что ошибка требует принудительного выхода:
// токен отсутствует или сервер признал его невалидным (401).
func sessionExpired(err error) bool {
	return errors.Is(err, api.ErrUnauthenticated) || api.IsUnauthorized(err)
}

// forceLogout закрывает сессию и пересоздает модель с нуля, чтобы в памяти
// не осталось состояния авторизованных экранов.
func (m *model) forceLogout(notice string) (tea.Model, tea.Cmd) {
	if err := m.gate.OnLogout(); err != nil {
		slog.Warn("Ошибка при выходе", "error", err)
	}
	fresh := initModel(m.gate, m.apiClient, m.debugMode)
	fresh.width, fresh.height = m.width, m.height
	fresh.state = loginScreen
	fresh.errText = notice
	fresh.loginEmailInput.Focus()
	return &fresh, tea.ClearScreen
}

// handleLoginSuccess сохраняет токен, открывает сессию и загружает данные.
func (m *model) handleLoginSuccess(msg loginSuccessMsg) (tea.Model, tea.Cmd) {
	if err := m.gate.OnLoginSuccess(msg.resp.Token, auth.DefaultTTLDays); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.errText = ""
	m.state = notesListScreen
	m.loginEmailInput.Reset()
	m.loginPasswordInput.Reset()
	m.loginEmailInput.Blur()
	m.loginPasswordInput.Blur()
	m.statusMsg = "Вход выполнен"
	return m, tea.Batch(m.fetchSelfCmd(), m.refreshNotesCmd(), clearStatusCmd(statusMessageTimeout), tea.ClearScreen)
}

// handleRegisterSuccess переводит на экран входа с заполненным email.
func (m *model) handleRegisterSuccess(msg registerSuccessMsg) (tea.Model, tea.Cmd) {
	slog.Info("Регистрация выполнена", "user_id", msg.user.ID)
	m.errText = ""
	m.state = loginScreen
	m.loginEmailInput.SetValue(msg.user.Email)
	m.registerEmailInput.Reset()
	m.registerUsernameInput.Reset()
	m.registerPasswordInput.Reset()
	m.authFocusedField = 1 // Email уже заполнен, фокус на пароль
	m.loginEmailInput.Blur()
	m.loginPasswordInput.Focus()
	m.statusMsg = "Регистрация успешна, войдите"
	return m, tea.Batch(clearStatusCmd(statusMessageTimeout), tea.ClearScreen)
}

// handleAuthErr показывает ошибку входа/регистрации/загрузки профиля.
// Форма остается открытой с введенными значениями. 401 на экране входа —
// это просто неверные данные, а не истекшая сессия.
func (m *model) handleAuthErr(msg authErrMsg) (tea.Model, tea.Cmd) {
	onAuthScreen := m.state == authChoiceScreen || m.state == loginScreen || m.state == registerScreen
	if !onAuthScreen && sessionExpired(msg.err) {
		return m.forceLogout("Сессия истекла, войдите снова")
	}
	m.errText = msg.err.Error()
	return m, nil
}

// handleSelfLoaded сохраняет профиль и кеширует его рядом с токеном.
func (m *model) handleSelfLoaded(msg selfLoadedMsg) (tea.Model, tea.Cmd) {
	m.self = msg.user
	if err := m.gate.CacheProfile(msg.user); err != nil {
		slog.Warn("Не удалось закешировать профиль", "error", err)
	}
	// Экран пользователей доверяет только свежему профилю: без прав
	// администратора он закрывается.
	if m.state == usersListScreen && !msg.user.Admin {
		m.state = notesListScreen
		m.errText = "Недостаточно прав для просмотра пользователей"
	}
	return m, nil
}

// handleNotesRefreshed применяет результат перезагрузки списка заметок.
// При ошибке прежние элементы остаются видимыми.
func (m *model) handleNotesRefreshed(msg notesRefreshedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m.forceLogout("Сессия истекла, войдите снова")
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.errText = ""
	m.applyNotesToList()
	return m, nil
}

// handleNoteSubmitted завершает сохранение заметки.
// При ошибке форма остается открытой с введенными значениями.
func (m *model) handleNoteSubmitted(msg noteSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m.forceLogout("Сессия истекла, войдите снова")
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.errText = ""
	m.editingNote = nil
	m.state = notesListScreen
	m.applyNotesToList()
	if msg.created {
		m.statusMsg = "Заметка создана"
	} else {
		m.statusMsg = "Заметка обновлена"
	}
	return m, tea.Batch(clearStatusCmd(statusMessageTimeout), tea.ClearScreen)
}

// handleNoteDeleted завершает удаление заметки.
func (m *model) handleNoteDeleted(msg noteDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m.forceLogout("Сессия истекла, войдите снова")
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.errText = ""
	m.applyNotesToList()
	m.statusMsg = "Заметка удалена"
	return m, clearStatusCmd(statusMessageTimeout)
}

// handleUsersRefreshed применяет результат перезагрузки списка пользователей.
func (m *model) handleUsersRefreshed(msg usersRefreshedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m.forceLogout("Сессия истекла, войдите снова")
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.errText = ""
	m.applyUsersToList()
	return m, nil
}

// handleUserSubmitted завершает сохранение пользователя.
func (m *model) handleUserSubmitted(msg userSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m.forceLogout("Сессия истекла, войдите снова")
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.errText = ""
	m.editingUser = nil
	m.state = m.userEditReturnTo
	m.applyUsersToList()
	m.statusMsg = "Пользователь обновлен"
	cmds := []tea.Cmd{clearStatusCmd(statusMessageTimeout), tea.ClearScreen}
	if msg.self {
		// Собственный профиль перечитывается, чтобы экран показывал
		// серверное состояние.
		cmds = append(cmds, m.fetchSelfCmd())
	}
	return m, tea.Batch(cmds...)
}

// handleUserDeleted завершает удаление пользователя.
func (m *model) handleUserDeleted(msg userDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m.forceLogout("Сессия истекла, войдите снова")
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.errText = ""
	m.applyUsersToList()
	m.statusMsg = "Пользователь удален"
	return m, clearStatusCmd(statusMessageTimeout)
}

// handleUserNotesLoaded применяет результат загрузки чужих заметок.
// При ошибке админ возвращается к списку пользователей.
func (m *model) handleUserNotesLoaded(msg userNotesLoadedMsg) (tea.Model, tea.Cmd) {
	m.userNotesBusy = false
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m.forceLogout("Сессия истекла, войдите снова")
		}
		if m.state == userNotesScreen {
			m.state = usersListScreen
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.errText = ""
	m.userNotes = msg.notes
	return m, nil
}

// handleVerifyResult показывает результат серверной проверки пароля.
func (m *model) handleVerifyResult(msg verifyResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if sessionExpired(msg.err) {
			return m.forceLogout("Сессия истекла, войдите снова")
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	if msg.ok {
		m.errText = ""
		m.verifyInput.Reset()
		m.verifyInput.Blur()
		m.state = notesListScreen
		m.statusMsg = "Пароль совпадает"
		return m, tea.Batch(clearStatusCmd(statusMessageTimeout), tea.ClearScreen)
	}
	m.errText = "Пароль не совпадает"
	return m, nil
}

// handleSearchDebounce запускает загрузку, только если таймер принадлежит
// последнему поколению поиска: устаревшие срабатывания отбрасываются.
func (m *model) handleSearchDebounce(msg searchDebounceMsg) (tea.Model, tea.Cmd) {
	if !m.searchDebounce.Ready(msg.gen) {
		return m, nil
	}
	slog.Debug("Дебаунс поиска: запуск загрузки", "query", m.searchInput.Value())
	return m, m.refreshNotesCmd()
}

// handleDocsRendered сохраняет отрендеренные страницы документации.
func (m *model) handleDocsRendered(msg docsRenderedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errText = msg.err.Error()
		return m, nil
	}
	m.docPages = msg.pages
	m.docPage = 0
	return m, nil
}
