package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/passman/internal/models"
)

// --- Сообщения --- //

// loginSuccessMsg — сервер выдал токен при входе.
type loginSuccessMsg struct {
	resp *models.LoginResponse
}

// registerSuccessMsg — регистрация прошла, возвращен профиль.
type registerSuccessMsg struct {
	user *models.User
}

// authErrMsg — ошибка входа или регистрации.
type authErrMsg struct {
	err error
}

// selfLoadedMsg — загружен профиль текущего пользователя.
type selfLoadedMsg struct {
	user *models.User
}

// notesRefreshedMsg — завершилась перезагрузка списка заметок.
type notesRefreshedMsg struct {
	err error
}

// noteSubmittedMsg — завершилось сохранение заметки.
type noteSubmittedMsg struct {
	err     error
	created bool
}

// noteDeletedMsg — завершилось удаление заметки.
type noteDeletedMsg struct {
	err error
}

// usersRefreshedMsg — завершилась перезагрузка списка пользователей.
type usersRefreshedMsg struct {
	err error
}

// userSubmittedMsg — завершилось сохранение пользователя.
type userSubmittedMsg struct {
	err  error
	self bool // Редактировался собственный профиль
}

// userDeletedMsg — завершилось удаление пользователя.
type userDeletedMsg struct {
	err error
}

// userNotesLoadedMsg — загружены заметки выбранного пользователя.
type userNotesLoadedMsg struct {
	notes []models.Note
	err   error
}

// verifyResultMsg — результат серверной проверки пароля заметки.
type verifyResultMsg struct {
	ok  bool
	err error
}

// searchDebounceMsg — сработал таймер дебаунса поиска.
// Поле gen сверяется с текущим поколением дебаунсера.
type searchDebounceMsg struct {
	gen uint64
}

// docsRenderedMsg — страницы документации отрендерены.
type docsRenderedMsg struct {
	pages []string
	err   error
}

// clearStatusMsg — пора убрать статусное сообщение.
type clearStatusMsg struct{}

// --- Команды --- //

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
func clearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// makeLoginCmd выполняет вход через API.
func (m *model) makeLoginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.apiClient.Login(context.Background(), email, password)
		if err != nil {
			return authErrMsg{err: err}
		}
		return loginSuccessMsg{resp: resp}
	}
}

// makeRegisterCmd выполняет регистрацию через API.
func (m *model) makeRegisterCmd(email, username, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.apiClient.Register(context.Background(), email, username, password)
		if err != nil {
			return authErrMsg{err: err}
		}
		return registerSuccessMsg{user: user}
	}
}

// fetchSelfCmd загружает профиль текущего пользователя.
func (m *model) fetchSelfCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.apiClient.GetSelf(context.Background())
		if err != nil {
			slog.Warn("Не удалось загрузить профиль", "error", err)
			return authErrMsg{err: err}
		}
		return selfLoadedMsg{user: user}
	}
}

// refreshNotesCmd перечитывает список заметок.
func (m *model) refreshNotesCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.notes.Refresh(context.Background())
		return notesRefreshedMsg{err: err}
	}
}

// submitNoteCmd сохраняет заметку: новая уходит в create, существующая в update.
func (m *model) submitNoteCmd(note models.Note) tea.Cmd {
	return func() tea.Msg {
		err := m.notes.Submit(context.Background(), note)
		return noteSubmittedMsg{err: err, created: note.IsNew()}
	}
}

// deleteNoteCmd удаляет подтвержденную заметку через шлюз подтверждения.
func (m *model) deleteNoteCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.noteConfirm.Confirm(context.Background(), m.notes.Delete)
		return noteDeletedMsg{err: err}
	}
}

// toggleNotesSortCmd переключает серверную сортировку по паролю.
func (m *model) toggleNotesSortCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.notes.ToggleSort(context.Background())
		return notesRefreshedMsg{err: err}
	}
}

// refreshUsersCmd перечитывает список пользователей.
func (m *model) refreshUsersCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.users.Refresh(context.Background())
		return usersRefreshedMsg{err: err}
	}
}

// submitUserCmd сохраняет изменения пользователя.
func (m *model) submitUserCmd(user models.User, isSelf bool) tea.Cmd {
	return func() tea.Msg {
		err := m.users.Submit(context.Background(), user)
		return userSubmittedMsg{err: err, self: isSelf}
	}
}

// deleteUserCmd удаляет подтвержденного пользователя.
func (m *model) deleteUserCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.userConfirm.Confirm(context.Background(), m.users.Delete)
		return userDeletedMsg{err: err}
	}
}

// fetchUserNotesCmd загружает заметки указанного пользователя.
func (m *model) fetchUserNotesCmd(userID int64) tea.Cmd {
	return func() tea.Msg {
		notes, err := m.apiClient.ListUserNotes(context.Background(), userID)
		return userNotesLoadedMsg{notes: notes, err: err}
	}
}

// verifyNotePasswordCmd проверяет пароль заметки на сервере.
func (m *model) verifyNotePasswordCmd(noteID int64, password string) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.apiClient.VerifyNotePassword(context.Background(), noteID, password)
		return verifyResultMsg{ok: ok, err: err}
	}
}

// searchDebounceCmd взводит таймер дебаунса для поколения gen.
func (m *model) searchDebounceCmd(gen uint64) tea.Cmd {
	return tea.Tick(m.searchDebounce.Window(), func(_ time.Time) tea.Msg {
		return searchDebounceMsg{gen: gen}
	})
}

// renderDocsCmd рендерит встроенную документацию в страницы.
func renderDocsCmd(width int) tea.Cmd {
	return func() tea.Msg {
		pages, err := renderDocPages(width)
		return docsRenderedMsg{pages: pages, err: err}
	}
}
