//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/passman/internal/api"
	"github.com/maynagashev/passman/internal/models"
	"github.com/maynagashev/passman/internal/session"
)

func TestHandleLoginSuccess(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := newTestModel(t, &fakeAPIClient{})
	m.state = loginScreen
	m.loginEmailInput.SetValue("user@example.com")
	m.loginPasswordInput.SetValue("secret")

	_, cmd := m.handleLoginSuccess(loginSuccessMsg{resp: &models.LoginResponse{Token: "jwt-token"}})

	assert.Equal(notesListScreen, m.state)
	require.NotNil(cmd)
	// Сессия открыта и пережила бы перезапуск
	assert.Equal(session.Authenticated, m.gate.Check())
	// Поля формы очищены
	assert.Empty(m.loginEmailInput.Value())
	assert.Empty(m.loginPasswordInput.Value())
}

func TestHandleRegisterSuccess(t *testing.T) {
	assert := assert.New(t)

	m := newTestModel(t, &fakeAPIClient{})
	m.state = registerScreen

	_, _ = m.handleRegisterSuccess(registerSuccessMsg{user: &models.User{ID: 1, Email: "new@example.com"}})

	assert.Equal(loginScreen, m.state)
	// Email заполнен, осталось ввести пароль
	assert.Equal("new@example.com", m.loginEmailInput.Value())
	assert.Equal(1, m.authFocusedField)
}

func TestHandleAuthErr(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	t.Run("401НаЭкранеВходаЭтоНеверныеДанные", func(_ *testing.T) {
		m := newTestModel(t, &fakeAPIClient{})
		m.state = loginScreen

		newModel, _ := m.handleAuthErr(authErrMsg{err: &api.APIError{Status: 401, Message: "неверный пароль"}})

		same, ok := newModel.(*model)
		require.True(ok)
		assert.Equal(loginScreen, same.state)
		assert.Contains(same.errText, "неверный пароль")
	})

	t.Run("401НаАвторизованномЭкранеЗакрываетСессию", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = notesListScreen

		newModel, _ := m.handleAuthErr(authErrMsg{err: &api.APIError{Status: 401, Message: "токен истек"}})

		fresh, ok := newModel.(*model)
		require.True(ok)
		assert.Equal(loginScreen, fresh.state)
		assert.Contains(fresh.errText, "Сессия истекла")
		assert.Equal(session.Unauthenticated, fresh.gate.State())
	})

	t.Run("ПрочиеОшибкиНеЗакрываютСессию", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = notesListScreen

		newModel, _ := m.handleAuthErr(authErrMsg{err: errors.New("сервер недоступен")})

		same, ok := newModel.(*model)
		require.True(ok)
		assert.Equal(notesListScreen, same.state)
	})
}

func TestHandleSelfLoaded(t *testing.T) {
	assert := assert.New(t)

	t.Run("ПрофильСохраняетсяИКешируется", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		_, _ = m.handleSelfLoaded(selfLoadedMsg{user: &models.User{ID: 1, Username: "tester", Admin: true}})
		assert.Equal("tester", m.self.Username)
	})

	t.Run("БезПравАдминаЭкранПользователейЗакрывается", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = usersListScreen

		_, _ = m.handleSelfLoaded(selfLoadedMsg{user: &models.User{ID: 1, Admin: false}})

		assert.Equal(notesListScreen, m.state)
		assert.NotEmpty(m.errText)
	})

	t.Run("АдминОстаетсяНаЭкранеПользователей", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = usersListScreen

		_, _ = m.handleSelfLoaded(selfLoadedMsg{user: &models.User{ID: 1, Admin: true}})
		assert.Equal(usersListScreen, m.state)
	})
}

func TestHandleNoteSubmitted(t *testing.T) {
	assert := assert.New(t)

	t.Run("УспехВозвращаетКСписку", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = noteEditScreen
		m.editingNote = &models.Note{}

		_, _ = m.handleNoteSubmitted(noteSubmittedMsg{created: true})

		assert.Equal(notesListScreen, m.state)
		assert.Nil(m.editingNote)
		assert.Contains(m.statusMsg, "создана")
	})

	t.Run("ОшибкаОставляетФормуОткрытой", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = noteEditScreen
		m.editingNote = &models.Note{ID: 5}

		_, _ = m.handleNoteSubmitted(noteSubmittedMsg{err: errors.New("отказ сервера")})

		assert.Equal(noteEditScreen, m.state)
		assert.NotNil(m.editingNote)
		assert.Contains(m.errText, "отказ сервера")
	})
}

func TestHandleVerifyResult(t *testing.T) {
	assert := assert.New(t)

	t.Run("СовпадениеВозвращаетКСписку", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = noteVerifyScreen

		_, _ = m.handleVerifyResult(verifyResultMsg{ok: true})

		assert.Equal(notesListScreen, m.state)
		assert.Contains(m.statusMsg, "совпадает")
	})

	t.Run("НесовпадениеОставляетЭкранОткрытым", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = noteVerifyScreen

		_, _ = m.handleVerifyResult(verifyResultMsg{ok: false})

		assert.Equal(noteVerifyScreen, m.state)
		assert.Contains(m.errText, "не совпадает")
	})
}

func TestHandleUserSubmitted(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	t.Run("ВозвратНаЭкранСписка", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = userEditScreen
		m.userEditReturnTo = usersListScreen
		m.editingUser = &models.User{ID: 2}

		_, _ = m.handleUserSubmitted(userSubmittedMsg{})
		assert.Equal(usersListScreen, m.state)
	})

	t.Run("СвойПрофильПерезагружается", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		m.state = userEditScreen
		m.userEditReturnTo = profileScreen
		m.editingUser = &models.User{ID: 1}

		_, cmd := m.handleUserSubmitted(userSubmittedMsg{self: true})
		assert.Equal(profileScreen, m.state)
		require.NotNil(cmd)
	})
}

func TestScreenForRoute(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(loginScreen, screenForRoute(session.RouteLogin))
	assert.Equal(registerScreen, screenForRoute(session.RouteRegister))
	assert.Equal(notesListScreen, screenForRoute(session.RouteNotes))
	assert.Equal(profileScreen, screenForRoute(session.RouteProfile))
	assert.Equal(usersListScreen, screenForRoute(session.RouteAdmin))
	assert.Equal(docsScreen, screenForRoute(session.RouteDocs))
	assert.Equal(loginScreen, screenForRoute(session.Route("nonexistent")))
}

func TestInitModelRestoresSession(t *testing.T) {
	assert := assert.New(t)

	t.Run("БезТокенаСтартовыйЭкран", func(_ *testing.T) {
		m := newTestModel(t, &fakeAPIClient{})
		assert.Equal(authChoiceScreen, m.state)
	})

	t.Run("СТокеномСразуСписокЗаметок", func(_ *testing.T) {
		m := newAuthenticatedTestModel(t, &fakeAPIClient{})
		assert.Equal(notesListScreen, m.state)
		assert.Nil(m.self)
	})
}
