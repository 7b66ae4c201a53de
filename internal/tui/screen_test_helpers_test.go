//nolint:testpackage // Вспомогательные заглушки для тестов пакета tui
package tui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/maynagashev/passman/internal/auth"
	"github.com/maynagashev/passman/internal/models"
	"github.com/maynagashev/passman/internal/session"
)

// fakeAPIClient — управляемая заглушка API для тестов экранов.
type fakeAPIClient struct {
	self  *models.User
	notes []models.Note
	users []models.User

	loginErr       error
	notesErr       error
	userNotes      map[int64][]models.Note
	userNotesErr   error
	deletedNoteIDs []int64
	deletedUserIDs []int64
	verifyResult   bool
	verifyErr      error
	sortedOrder    models.SortOrder
}

func (f *fakeAPIClient) Login(_ context.Context, _, _ string) (*models.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.LoginResponse{Token: "test-token", UserID: 1}, nil
}

func (f *fakeAPIClient) Register(_ context.Context, email, username, _ string) (*models.User, error) {
	return &models.User{ID: 1, Email: email, Username: username}, nil
}

func (f *fakeAPIClient) GetSelf(_ context.Context) (*models.User, error) {
	if f.self == nil {
		return &models.User{ID: 1, Username: "tester"}, nil
	}
	return f.self, nil
}

func (f *fakeAPIClient) ListUsers(_ context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeAPIClient) UpdateUser(_ context.Context, _ int64, _ models.UpdateUserRequest) (*models.MessageResponse, error) {
	return &models.MessageResponse{Message: "обновлено"}, nil
}

func (f *fakeAPIClient) DeleteUser(_ context.Context, id int64) error {
	f.deletedUserIDs = append(f.deletedUserIDs, id)
	return nil
}

func (f *fakeAPIClient) ListMyNotes(_ context.Context) ([]models.Note, error) {
	if f.notesErr != nil {
		return nil, f.notesErr
	}
	return f.notes, nil
}

func (f *fakeAPIClient) ListUserNotes(_ context.Context, userID int64) ([]models.Note, error) {
	if f.userNotesErr != nil {
		return nil, f.userNotesErr
	}
	return f.userNotes[userID], nil
}

func (f *fakeAPIClient) GetNote(_ context.Context, id int64) (*models.Note, error) {
	for _, n := range f.notes {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, f.notesErr
}

func (f *fakeAPIClient) CreateNote(_ context.Context, req models.NoteRequest) (*models.Note, error) {
	note := models.Note{ID: int64(len(f.notes) + 1), NoteText: req.NoteText, Username: req.Username, Password: req.Password}
	f.notes = append(f.notes, note)
	return &note, nil
}

func (f *fakeAPIClient) UpdateNote(_ context.Context, id int64, req models.NoteRequest) (*models.Note, error) {
	return &models.Note{ID: id, NoteText: req.NoteText, Username: req.Username, Password: req.Password}, nil
}

func (f *fakeAPIClient) DeleteNote(_ context.Context, id int64) error {
	f.deletedNoteIDs = append(f.deletedNoteIDs, id)
	return nil
}

func (f *fakeAPIClient) VerifyNotePassword(_ context.Context, _ int64, _ string) (bool, error) {
	return f.verifyResult, f.verifyErr
}

func (f *fakeAPIClient) ListMyNotesSorted(_ context.Context, order models.SortOrder) ([]models.Note, error) {
	f.sortedOrder = order
	return f.notes, nil
}

// newTestModel создает модель с заглушкой API и пустым хранилищем во
// временной директории.
func newTestModel(t *testing.T, client *fakeAPIClient) *model {
	t.Helper()
	store := auth.NewStore(filepath.Join(t.TempDir(), "creds.json"))
	gate := session.NewGate(store)
	m := initModel(gate, client, false)
	return &m
}

// newAuthenticatedTestModel создает модель с открытой сессией на экране заметок.
func newAuthenticatedTestModel(t *testing.T, client *fakeAPIClient) *model {
	t.Helper()
	store := auth.NewStore(filepath.Join(t.TempDir(), "creds.json"))
	gate := session.NewGate(store)
	if err := gate.OnLoginSuccess("test-token", auth.DefaultTTLDays); err != nil {
		t.Fatalf("не удалось открыть сессию: %v", err)
	}
	m := initModel(gate, client, false)
	return &m
}
