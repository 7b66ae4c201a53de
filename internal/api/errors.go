package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated сигнализирует об отсутствии сохраненного токена.
// Запрос к серверу в этом случае не выполняется вовсе.
var ErrUnauthenticated = errors.New("требуется вход: токен аутентификации отсутствует")

// APIError — сервер ответил статусом вне диапазона 2xx.
type APIError struct {
	Status  int    // HTTP статус ответа
	Message string // Сообщение из тела {"error": ...} либо запасной текст
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ошибка сервера (статус %d): %s", e.Status, e.Message)
}

// NetworkError — ответ от сервера не получен (таймаут, обрыв соединения).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("сетевая ошибка: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError — тело ответа не соответствует ожидаемой структуре.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ошибка декодирования ответа: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnauthorized сообщает, ответил ли сервер статусом 401.
// Используется TUI для принудительного выхода при невалидном токене.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
