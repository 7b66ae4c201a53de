package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/passman/internal/api"
	listctl "github.com/maynagashev/passman/internal/list"
	"github.com/maynagashev/passman/internal/models"
	"github.com/maynagashev/passman/internal/session"
)

// Константы, используемые при инициализации.
const (
	initEmailCharLimit    = 256
	initUserCharLimit     = 128
	initPasswordCharLimit = 156
	initNoteCharLimit     = 1024
	initInputWidth        = 30
)

// initNoteList инициализирует компонент списка заметок.
func initNoteList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("212")).
		BorderLeftForeground(lipgloss.Color("212"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("240")).
		BorderLeftForeground(lipgloss.Color("212"))

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Заметки"
	l.SetShowHelp(false) // Мы переопределяем справку
	l.SetShowStatusBar(true)
	// Фильтрацией управляет собственная строка поиска с дебаунсом
	l.SetFilteringEnabled(false)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initUserList инициализирует компонент списка пользователей.
func initUserList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Пользователи"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initSearchInput инициализирует строку живого поиска по заметкам.
func initSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Поиск..."
	ti.CharLimit = initNoteCharLimit
	ti.Width = initInputWidth
	return ti
}

// initLoginInputs инициализирует поля для экрана входа.
func initLoginInputs() (textinput.Model, textinput.Model) {
	emailInput := textinput.New()
	emailInput.Placeholder = "Email"
	emailInput.CharLimit = initEmailCharLimit
	emailInput.Width = initInputWidth

	passInput := textinput.New()
	passInput.Placeholder = "Пароль"
	passInput.CharLimit = initPasswordCharLimit
	passInput.Width = initInputWidth
	passInput.EchoMode = textinput.EchoPassword
	return emailInput, passInput
}

// initRegisterInputs инициализирует поля для экрана регистрации.
func initRegisterInputs() (textinput.Model, textinput.Model, textinput.Model) {
	emailInput := textinput.New()
	emailInput.Placeholder = "Email"
	emailInput.CharLimit = initEmailCharLimit
	emailInput.Width = initInputWidth

	userInput := textinput.New()
	userInput.Placeholder = "Имя пользователя"
	userInput.CharLimit = initUserCharLimit
	userInput.Width = initInputWidth

	passInput := textinput.New()
	passInput.Placeholder = "Пароль"
	passInput.CharLimit = initPasswordCharLimit
	passInput.Width = initInputWidth
	passInput.EchoMode = textinput.EchoPassword
	return emailInput, userInput, passInput
}

// initNoteInputs инициализирует поля формы заметки.
func initNoteInputs() []textinput.Model {
	textInput := textinput.New()
	textInput.Placeholder = "Заголовок"
	textInput.CharLimit = initNoteCharLimit
	textInput.Width = initInputWidth

	userInput := textinput.New()
	userInput.Placeholder = "Логин"
	userInput.CharLimit = initUserCharLimit
	userInput.Width = initInputWidth

	passInput := textinput.New()
	passInput.Placeholder = "Пароль (Ctrl+G — сгенерировать)"
	passInput.CharLimit = initPasswordCharLimit
	passInput.Width = initInputWidth
	return []textinput.Model{textInput, userInput, passInput}
}

// initUserInputs инициализирует поля формы пользователя.
func initUserInputs() []textinput.Model {
	userInput := textinput.New()
	userInput.Placeholder = "Имя пользователя"
	userInput.CharLimit = initUserCharLimit
	userInput.Width = initInputWidth

	emailInput := textinput.New()
	emailInput.Placeholder = "Email"
	emailInput.CharLimit = initEmailCharLimit
	emailInput.Width = initInputWidth
	return []textinput.Model{userInput, emailInput}
}

// initVerifyInput инициализирует поле проверки пароля заметки.
func initVerifyInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Пароль заметки"
	ti.CharLimit = initPasswordCharLimit
	ti.Width = initInputWidth
	ti.EchoMode = textinput.EchoPassword
	return ti
}

// initHelpTextMap задает строки справки для каждого экрана.
func initHelpTextMap() map[screenState]string {
	return map[screenState]string{
		authChoiceScreen: "l - вход, r - регистрация, q - выход",
		loginScreen:      "Enter - войти, Tab - следующее поле, Esc - назад",
		registerScreen:   "Enter - зарегистрироваться, Tab - следующее поле, Esc - назад",
		notesListScreen: "a - добавить, e - изменить, d - удалить, v - проверить пароль, " +
			"s - сортировка, / - поиск, r - обновить, u - пользователи, p - профиль, o - документация, x - выйти, q - закрыть",
		noteEditScreen:   "Enter - сохранить, Tab - следующее поле, Ctrl+G - сгенерировать пароль, Esc - отмена",
		noteVerifyScreen: "Enter - проверить, Esc - назад",
		usersListScreen:  "e - изменить, d - удалить, n - заметки пользователя, r - обновить, Esc - к заметкам",
		userNotesScreen:  "r - обновить, Esc - к пользователям",
		userEditScreen:   "Enter - сохранить, Tab - следующее поле, Esc - отмена",
		profileScreen:    "e - изменить профиль, Esc - к заметкам",
		docsScreen:       "←/→ - страницы, Esc - к заметкам",
	}
}

// initNotesController привязывает контроллер списка к операциям API заметок.
func initNotesController(client api.Client) *listctl.Controller[models.Note] {
	return listctl.NewController(listctl.Ops[models.Note]{
		Fetch:       client.ListMyNotes,
		FetchSorted: client.ListMyNotesSorted,
		Create: func(ctx context.Context, n models.Note) error {
			_, err := client.CreateNote(ctx, noteRequest(n))
			return err
		},
		Update: func(ctx context.Context, n models.Note) error {
			_, err := client.UpdateNote(ctx, n.ID, noteRequest(n))
			return err
		},
		Delete: client.DeleteNote,
		Merge: func(current, patch models.Note) models.Note {
			current.NoteText = patch.NoteText
			current.Username = patch.Username
			current.Password = patch.Password
			return current
		},
	})
}

// initUsersController привязывает контроллер списка к операциям API
// пользователей. Create отсутствует: пользователи создаются только
// регистрацией.
func initUsersController(client api.Client) *listctl.Controller[models.User] {
	return listctl.NewController(listctl.Ops[models.User]{
		Fetch: client.ListUsers,
		Update: func(ctx context.Context, u models.User) error {
			_, err := client.UpdateUser(ctx, u.ID, models.UpdateUserRequest{
				Username: u.Username,
				Email:    u.Email,
			})
			return err
		},
		Delete: client.DeleteUser,
		Merge: func(current, patch models.User) models.User {
			current.Username = patch.Username
			current.Email = patch.Email
			return current
		},
	})
}

// noteRequest собирает тело запроса из заметки.
func noteRequest(n models.Note) models.NoteRequest {
	return models.NoteRequest{
		NoteText: n.NoteText,
		Username: n.Username,
		Password: n.Password,
	}
}

// initModel создает начальное состояние модели.
func initModel(gate *session.Gate, client api.Client, debugMode bool) model {
	loginEmail, loginPass := initLoginInputs()
	regEmail, regUser, regPass := initRegisterInputs()

	m := model{
		state:          authChoiceScreen,
		gate:           gate,
		apiClient:      client,
		notes:          initNotesController(client),
		users:          initUsersController(client),
		searchDebounce: listctl.NewDebouncer(listctl.DefaultDebounceWindow),

		noteList:    initNoteList(),
		userList:    initUserList(),
		searchInput: initSearchInput(),

		loginEmailInput:       loginEmail,
		loginPasswordInput:    loginPass,
		registerEmailInput:    regEmail,
		registerUsernameInput: regUser,
		registerPasswordInput: regPass,

		noteInputs:  initNoteInputs(),
		userInputs:  initUserInputs(),
		verifyInput: initVerifyInput(),

		debugMode:   debugMode,
		width:       defaultListWidth,
		height:      defaultListHeight,
		docStyle:    lipgloss.NewStyle().Margin(1, 2),
		helpTextMap: initHelpTextMap(),
	}

	// Начальный экран определяет шлюз сессии: при валидном токене сразу
	// открывается список заметок.
	if gate.Check() == session.Authenticated {
		m.state = screenForRoute(gate.Resolve(session.RouteNotes))
		m.self = nil // Профиль догружается первым авторизованным запросом
	}
	return m
}

// screenForRoute отображает логический маршрут шлюза на экран TUI.
func screenForRoute(route session.Route) screenState {
	switch route {
	case session.RouteLogin:
		return loginScreen
	case session.RouteRegister:
		return registerScreen
	case session.RouteNotes:
		return notesListScreen
	case session.RouteProfile:
		return profileScreen
	case session.RouteAdmin:
		return usersListScreen
	case session.RouteDocs:
		return docsScreen
	default:
		return loginScreen
	}
}
