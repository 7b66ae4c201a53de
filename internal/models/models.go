// Package models содержит общие структуры данных, которыми обмениваются
// клиент и сервер PassMan.
package models

import "time"

// NewEntityID — зарезервированный ID для еще не сохраненной сущности.
// Сервер никогда не выдает ID 0, поэтому коллизии исключены.
const NewEntityID int64 = 0

// User представляет пользователя сервиса.
// Поля admin и password доступны клиенту только для чтения.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Admin    bool   `json:"admin"`
}

// EntityID возвращает идентификатор пользователя.
func (u User) EntityID() int64 { return u.ID }

// Note представляет сохраненную заметку с учетными данными.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	NoteText  string    `json:"note_text"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID возвращает идентификатор заметки.
func (n Note) EntityID() int64 { return n.ID }

// IsNew сообщает, что заметка еще не сохранена на сервере.
func (n Note) IsNew() bool { return n.ID == NewEntityID }

// LoginRequest — тело запроса на вход.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ сервера на успешный вход.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId,omitempty"`
}

// RegisterRequest — тело запроса на регистрацию.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest — частичное обновление пользователя.
// Клиент может менять только имя и email.
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// NoteRequest — тело запроса на создание или обновление заметки.
type NoteRequest struct {
	NoteText string `json:"note_text"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// VerifyPasswordRequest — тело запроса на проверку пароля заметки.
type VerifyPasswordRequest struct {
	NoteID   int64  `json:"note_id"`
	Password string `json:"password"`
}

// MessageResponse — ответ сервера с информационным сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse — стандартное тело ошибки сервера.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SortOrder задает направление сортировки на сервере.
type SortOrder string

// Допустимые значения параметра order.
const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Toggle возвращает противоположное направление сортировки.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}
