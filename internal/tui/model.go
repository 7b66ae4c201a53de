package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/passman/internal/api"
	listctl "github.com/maynagashev/passman/internal/list"
	"github.com/maynagashev/passman/internal/models"
	"github.com/maynagashev/passman/internal/passgen"
	"github.com/maynagashev/passman/internal/session"
)

// Состояния (экраны) приложения.
type screenState int

const (
	authChoiceScreen screenState = iota // Экран выбора "Войти или Зарегистрироваться?"
	loginScreen                         // Экран входа
	registerScreen                      // Экран регистрации
	notesListScreen                     // Экран списка заметок
	noteEditScreen                      // Экран добавления/редактирования заметки
	noteVerifyScreen                    // Экран проверки пароля заметки
	usersListScreen                     // Экран списка пользователей (админ)
	userNotesScreen                     // Экран заметок выбранного пользователя (админ)
	userEditScreen                      // Экран редактирования пользователя
	profileScreen                       // Экран профиля текущего пользователя
	docsScreen                          // Экран документации
)

// String возвращает имя состояния для отладочной панели.
func (s screenState) String() string {
	switch s {
	case authChoiceScreen:
		return "authChoice"
	case loginScreen:
		return "login"
	case registerScreen:
		return "register"
	case notesListScreen:
		return "notesList"
	case noteEditScreen:
		return "noteEdit"
	case noteVerifyScreen:
		return "noteVerify"
	case usersListScreen:
		return "usersList"
	case userNotesScreen:
		return "userNotes"
	case userEditScreen:
		return "userEdit"
	case profileScreen:
		return "profile"
	case docsScreen:
		return "docs"
	default:
		return fmt.Sprintf("screenState(%d)", int(s))
	}
}

// Индексы полей формы заметки.
const (
	noteFieldText = iota
	noteFieldUsername
	noteFieldPassword
	numNoteFields
)

// Индексы полей формы пользователя.
const (
	userFieldUsername = iota
	userFieldEmail
	numUserFields
)

// Индексы полей формы регистрации.
const (
	registerFieldEmail = iota
	registerFieldUsername
	registerFieldPassword
	numRegisterFields
)

// Константы для TUI.
const (
	defaultListWidth  = 80 // Стандартная ширина терминала для списка
	defaultListHeight = 24 // Стандартная высота терминала для списка
	inputWidthOffset  = 4  // Отступ для полей ввода

	keyEnter    = "enter"
	keyQuit     = "q"
	keyBack     = "b"
	keyEsc      = "esc"
	keyEdit     = "e"
	keyAdd      = "a"
	keyDelete   = "d"
	keyRefresh  = "r"
	keySort     = "s"
	keyVerify   = "v"
	keyUsers    = "u"
	keyProfile  = "p"
	keyDocs     = "o"
	keyLogout   = "x"
	keyNotesOf  = "n"
	keySearch   = "/"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyGenerate = "ctrl+g"
)

// noteItem представляет заметку в списке. Реализует интерфейс list.Item.
type noteItem struct {
	note models.Note
}

func (i noteItem) Title() string {
	if i.note.NoteText == "" {
		return fmt.Sprintf("Заметка #%d", i.note.ID)
	}
	return i.note.NoteText
}

func (i noteItem) Description() string {
	username := i.note.Username
	if username == "" {
		username = "--"
	}
	return fmt.Sprintf("Логин: %s | Создана: %s", username, i.note.CreatedAt.Format("02.01.2006 15:04"))
}

func (i noteItem) FilterValue() string { return i.note.NoteText + " " + i.note.Username }

// userItem представляет пользователя в списке админа.
type userItem struct {
	user models.User
}

func (i userItem) Title() string {
	if i.user.Admin {
		return i.user.Username + " [админ]"
	}
	return i.user.Username
}

func (i userItem) Description() string { return i.user.Email }

func (i userItem) FilterValue() string { return i.user.Username + " " + i.user.Email }

// model представляет состояние TUI приложения.
type model struct {
	state screenState

	// Зависимости
	gate      *session.Gate
	apiClient api.Client
	notes     *listctl.Controller[models.Note]
	users     *listctl.Controller[models.User]

	noteConfirm    listctl.ConfirmGate // Подтверждение удаления заметки
	userConfirm    listctl.ConfirmGate // Подтверждение удаления пользователя
	searchDebounce *listctl.Debouncer  // Дебаунс живого поиска

	self *models.User // Профиль текущего пользователя (загружается после входа)

	// Списки и поиск
	noteList     list.Model
	userList     list.Model
	searchInput  textinput.Model
	searchActive bool // Фокус в строке поиска

	confirmationPrompt string // Текст запроса подтверждения удаления (y/n)

	// Вход/регистрация
	loginEmailInput       textinput.Model
	loginPasswordInput    textinput.Model
	registerEmailInput    textinput.Model
	registerUsernameInput textinput.Model
	registerPasswordInput textinput.Model
	authFocusedField      int

	// Редактирование заметки
	editingNote      *models.Note // Копия заметки; ID 0 означает новую
	noteInputs       []textinput.Model
	noteFocusedField int
	passwordStrength passgen.Strength // Оценка пароля в форме заметки

	// Просмотр заметок выбранного пользователя (админ)
	userNotes      []models.Note
	userNotesOwner string // Имя пользователя, чьи заметки показаны
	userNotesBusy  bool   // Загрузка еще не завершилась

	// Редактирование пользователя (из списка админа или своего профиля)
	editingUser       *models.User
	userInputs        []textinput.Model
	userFocusedField  int
	userEditReturnTo  screenState // Куда вернуться после сохранения
	verifyTargetID    int64       // Заметка, чей пароль проверяется
	verifyInput       textinput.Model

	// Документация
	docPages []string // Отрендеренные страницы markdown
	docPage  int      // Текущая страница (с нуля)

	errText   string // Последняя ошибка текущего экрана (inline alert)
	statusMsg string // Статусное сообщение внизу экрана
	debugMode bool
	width     int
	height    int

	docStyle    lipgloss.Style
	helpTextMap map[screenState]string
}
