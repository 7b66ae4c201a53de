// Package api реализует типизированный HTTP-клиент для REST API сервера
// PassMan. Все ошибки нормализуются в единую таксономию (errors.go),
// повторных попыток клиент не делает.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/maynagashev/passman/internal/models"
)

// basePath — префикс всех эндпоинтов API.
const basePath = "/api/v1"

// TokenProvider выдает текущий токен аутентификации.
// Клиент запрашивает токен перед каждым авторизованным вызовом и
// никогда не кеширует его у себя.
type TokenProvider interface {
	Token() (string, bool)
}

// Client определяет интерфейс для взаимодействия с API сервера PassMan.
type Client interface {
	// Login аутентифицирует пользователя и возвращает токен.
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	// Register регистрирует нового пользователя.
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	// GetSelf возвращает профиль текущего пользователя.
	GetSelf(ctx context.Context) (*models.User, error)
	// ListUsers возвращает список всех пользователей (админ).
	ListUsers(ctx context.Context) ([]models.User, error)
	// UpdateUser частично обновляет пользователя.
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.MessageResponse, error)
	// DeleteUser удаляет пользователя (админ).
	DeleteUser(ctx context.Context, id int64) error
	// ListMyNotes возвращает заметки текущего пользователя.
	ListMyNotes(ctx context.Context) ([]models.Note, error)
	// ListUserNotes возвращает заметки указанного пользователя (админ).
	ListUserNotes(ctx context.Context, userID int64) ([]models.Note, error)
	// GetNote возвращает заметку по ID.
	GetNote(ctx context.Context, id int64) (*models.Note, error)
	// CreateNote создает новую заметку.
	CreateNote(ctx context.Context, req models.NoteRequest) (*models.Note, error)
	// UpdateNote обновляет существующую заметку.
	UpdateNote(ctx context.Context, id int64, req models.NoteRequest) (*models.Note, error)
	// DeleteNote удаляет заметку.
	DeleteNote(ctx context.Context, id int64) error
	// VerifyNotePassword проверяет пароль заметки на сервере.
	VerifyNotePassword(ctx context.Context, noteID int64, password string) (bool, error)
	// ListMyNotesSorted возвращает заметки, отсортированные сервером по паролю.
	ListMyNotesSorted(ctx context.Context, order models.SortOrder) ([]models.Note, error)
}

// httpClient реализует интерфейс Client поверх net/http.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewHTTPClient создает новый экземпляр API клиента.
// tokens поставляет токен для авторизованных запросов.
func NewHTTPClient(baseURL string, tokens TokenProvider) Client {
	return &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		tokens:     tokens,
	}
}

// fallbackErrMsg используется, когда тело ошибки сервера нечитаемо.
const fallbackErrMsg = "неизвестная ошибка сервера"

// do выполняет один HTTP запрос и нормализует результат.
// Тело запроса body и тело ответа out могут быть nil.
// При authorized=true без валидного токена запрос не выполняется вовсе.
func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body, out any, authorized bool) error {
	reqURL, err := url.JoinPath(c.baseURL, basePath, path)
	if err != nil {
		return fmt.Errorf("ошибка формирования URL запроса: %w", err)
	}
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	reqBody := &bytes.Buffer{}
	if body != nil {
		jsonData, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			return fmt.Errorf("ошибка кодирования тела запроса: %w", errMarshal)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authorized {
		token, ok := c.tokens.Token()
		if !ok {
			return ErrUnauthenticated
		}
		// Сервер ожидает токен в заголовке Authorization как есть, без префикса.
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &DecodeError{Err: err}
		}
	}
	return nil
}

// decodeAPIError извлекает сообщение из тела ошибки {"error": ...}.
// Нестандартное тело заменяется запасным сообщением.
func decodeAPIError(resp *http.Response) error {
	var errBody models.ErrorResponse
	msg := fallbackErrMsg
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
		msg = errBody.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// Login выполняет вход и возвращает выданный сервером токен.
func (c *httpClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	req := models.LoginRequest{Email: email, Password: password}
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/users/auth/login", nil, req, &resp, false); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &DecodeError{Err: errors.New("сервер вернул пустой токен")}
	}
	return &resp, nil
}

// Register создает нового пользователя и возвращает его профиль.
func (c *httpClient) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	req := models.RegisterRequest{Email: email, Username: username, Password: password}
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/auth/register", nil, req, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetSelf возвращает профиль текущего пользователя.
func (c *httpClient) GetSelf(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers возвращает список всех пользователей.
func (c *httpClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser частично обновляет пользователя по ID.
func (c *httpClient) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	path := fmt.Sprintf("/users/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteUser удаляет пользователя по ID.
func (c *httpClient) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/users/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// ListMyNotes возвращает заметки текущего пользователя.
func (c *httpClient) ListMyNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, "/notes/my", nil, nil, &notes, true); err != nil {
		return nil, err
	}
	return notes, nil
}

// ListUserNotes возвращает заметки указанного пользователя.
// Сервер отдает чужие заметки только администратору.
func (c *httpClient) ListUserNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	var notes []models.Note
	path := fmt.Sprintf("/notes/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &notes, true); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote возвращает заметку по ID.
func (c *httpClient) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	var note models.Note
	path := fmt.Sprintf("/notes/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote создает новую заметку и возвращает ее серверное представление.
func (c *httpClient) CreateNote(ctx context.Context, req models.NoteRequest) (*models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodPost, "/notes/", nil, req, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote обновляет существующую заметку.
func (c *httpClient) UpdateNote(ctx context.Context, id int64, req models.NoteRequest) (*models.Note, error) {
	var note models.Note
	path := fmt.Sprintf("/notes/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote удаляет заметку по ID.
func (c *httpClient) DeleteNote(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/notes/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// VerifyNotePassword проверяет пароль заметки на сервере.
// Успешный ответ означает совпадение, 401 здесь означает несовпадение
// пароля (а не проблему с токеном), остальные ошибки возвращаются как есть.
func (c *httpClient) VerifyNotePassword(ctx context.Context, noteID int64, password string) (bool, error) {
	req := models.VerifyPasswordRequest{NoteID: noteID, Password: password}
	err := c.do(ctx, http.MethodPost, "/notes/verify-password", nil, req, nil, true)
	if err == nil {
		return true, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return false, nil
	}
	return false, err
}

// ListMyNotesSorted возвращает заметки, отсортированные сервером по полю
// пароля. Клиент локальную пересортировку не выполняет.
func (c *httpClient) ListMyNotesSorted(ctx context.Context, order models.SortOrder) ([]models.Note, error) {
	query := url.Values{}
	query.Set("order", string(order))
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, "/notes/sorted-password", query, nil, &notes, true); err != nil {
		return nil, err
	}
	return notes, nil
}
