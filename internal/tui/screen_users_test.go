//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/passman/internal/models"
)

// setUsers наполняет контроллер и список пользователей тестовыми данными.
func setUsers(t *testing.T, m *model, users []models.User) {
	t.Helper()
	client, ok := m.apiClient.(*fakeAPIClient)
	require.True(t, ok)
	client.users = users
	require.NoError(t, m.users.Refresh(context.Background()))
	m.applyUsersToList()
}

func TestUsersListScreen(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	adminSelf := &models.User{ID: 1, Username: "admin", Admin: true}

	t.Run("УдалениеТребуетПодтверждения", func(_ *testing.T) {
		client := &fakeAPIClient{}
		m := newAuthenticatedTestModel(t, client)
		m.state = usersListScreen
		m.self = adminSelf
		setUsers(t, m, []models.User{{ID: 2, Username: "user"}})

		_, _ = m.updateUsersListScreen(keyRunes('d'))
		assert.NotEmpty(m.confirmationPrompt)

		_, cmd := m.updateUsersListScreen(keyRunes('y'))
		require.NotNil(cmd)
		msg := cmd()
		deletedMsg, ok := msg.(userDeletedMsg)
		require.True(ok)
		require.NoError(deletedMsg.err)
		assert.Equal([]int64{2}, client.deletedUserIDs)
	})

	t.Run("СебяУдалитьНельзя", func(_ *testing.T) {
		client := &fakeAPIClient{}
		m := newAuthenticatedTestModel(t, client)
		m.state = usersListScreen
		m.self = adminSelf
		setUsers(t, m, []models.User{{ID: 1, Username: "admin", Admin: true}})

		_, _ = m.updateUsersListScreen(keyRunes('d'))
		assert.Empty(m.confirmationPrompt)
		assert.NotEmpty(m.errText)
		assert.Empty(client.deletedUserIDs)
	})

	t.Run("КлавишаNОткрываетЗаметкиПользователя", func(_ *testing.T) {
		client := &fakeAPIClient{userNotes: map[int64][]models.Note{
			2: {{ID: 10, UserID: 2, NoteText: "чужая заметка"}},
		}}
		m := newAuthenticatedTestModel(t, client)
		m.state = usersListScreen
		m.self = adminSelf
		setUsers(t, m, []models.User{{ID: 2, Username: "user"}})

		newModel, cmd := m.updateUsersListScreen(keyRunes('n'))
		require.NotNil(cmd)
		same, ok := newModel.(*model)
		require.True(ok)
		assert.Equal(userNotesScreen, same.state)
		assert.Equal("user", same.userNotesOwner)
		assert.True(same.userNotesBusy)

		// Загрузка завершается и заметки отображаются
		found := findMessage(cmd(), func(msg tea.Msg) bool {
			loaded, isLoaded := msg.(userNotesLoadedMsg)
			if !isLoaded {
				return false
			}
			_, _ = same.handleUserNotesLoaded(loaded)
			return true
		})
		require.True(found)
		assert.False(same.userNotesBusy)
		require.Len(same.userNotes, 1)
		assert.Contains(same.viewUserNotesScreen(), "чужая заметка")
	})

	t.Run("ОшибкаЗагрузкиВозвращаетКСписку", func(_ *testing.T) {
		client := &fakeAPIClient{userNotesErr: errors.New("запрещено")}
		m := newAuthenticatedTestModel(t, client)
		m.state = usersListScreen
		m.self = adminSelf
		setUsers(t, m, []models.User{{ID: 2, Username: "user"}})

		_, cmd := m.updateUsersListScreen(keyRunes('n'))
		require.NotNil(cmd)
		found := findMessage(cmd(), func(msg tea.Msg) bool {
			loaded, isLoaded := msg.(userNotesLoadedMsg)
			if !isLoaded {
				return false
			}
			_, _ = m.handleUserNotesLoaded(loaded)
			return true
		})
		require.True(found)
		assert.Equal(usersListScreen, m.state)
		assert.NotEmpty(m.errText)
	})

	t.Run("EscВозвращаетКСпискуПользователей", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = userNotesScreen
		m.userNotesOwner = "user"

		_, _ = m.updateUserNotesScreen(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(usersListScreen, m.state)
		assert.Empty(m.userNotesOwner)
	})

	t.Run("РедактированиеЗаполняетФорму", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = usersListScreen
		m.self = adminSelf
		setUsers(t, m, []models.User{{ID: 2, Username: "user", Email: "u@example.com"}})

		_, _ = m.updateUsersListScreen(keyRunes('e'))

		assert.Equal(userEditScreen, m.state)
		assert.Equal(usersListScreen, m.userEditReturnTo)
		assert.Equal("user", m.userInputs[userFieldUsername].Value())
		assert.Equal("u@example.com", m.userInputs[userFieldEmail].Value())
	})

	t.Run("СодержимоеСкрытоДоПроверкиПрав", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = usersListScreen
		m.self = nil

		assert.Contains(m.viewUsersListScreen(), "Проверка прав")
	})

	t.Run("БезПравСодержимоеНеОтображается", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = usersListScreen
		m.self = &models.User{ID: 2, Admin: false}
		setUsers(t, m, []models.User{{ID: 1, Username: "admin"}})

		view := m.viewUsersListScreen()
		assert.Contains(view, "Недостаточно прав")
		assert.NotContains(view, "admin")
	})
}

func TestProfileScreen(t *testing.T) {
	assert := assert.New(t)

	t.Run("РедактированиеВозвращаетВПрофиль", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = profileScreen
		m.self = &models.User{ID: 1, Username: "tester", Email: "t@example.com"}

		_, _ = m.updateProfileScreen(keyRunes('e'))

		assert.Equal(userEditScreen, m.state)
		assert.Equal(profileScreen, m.userEditReturnTo)
		assert.Equal("tester", m.userInputs[userFieldUsername].Value())
	})

	t.Run("БезПрофиляРедактированиеНедоступно", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = profileScreen
		m.self = nil

		_, _ = m.updateProfileScreen(keyRunes('e'))
		assert.Equal(profileScreen, m.state)
	})

	t.Run("ОтображаетсяРоль", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.self = &models.User{ID: 1, Username: "tester", Admin: true}
		assert.Contains(m.viewProfileScreen(), "администратор")
	})
}
