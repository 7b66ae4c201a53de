// Package session реализует шлюз сессии: решает, аутентифицирован ли
// пользователь, и куда его маршрутизировать.
package session

import (
	"fmt"
	"log/slog"

	"github.com/maynagashev/passman/internal/auth"
	"github.com/maynagashev/passman/internal/models"
)

// State — состояние сессии.
type State int

// Возможные состояния шлюза. Unknown существует только до первой проверки.
const (
	Unknown State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Authenticated:
		return "Authenticated"
	case Unauthenticated:
		return "Unauthenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Route — логический маршрут приложения (экран TUI).
type Route string

// Маршруты приложения.
const (
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
	RouteNotes    Route = "notes"
	RouteProfile  Route = "profile"
	RouteAdmin    Route = "admin"
	RouteDocs     Route = "docs"
)

// Gate решает по наличию непросроченного токена, какой набор маршрутов
// доступен. Проверка локальная и синхронная: валидность токена на сервере
// выясняется лениво, первым же авторизованным запросом.
type Gate struct {
	creds *auth.Store
	state State
}

// NewGate создает шлюз в состоянии Unknown.
func NewGate(creds *auth.Store) *Gate {
	return &Gate{creds: creds, state: Unknown}
}

// State возвращает текущее состояние шлюза.
func (g *Gate) State() State {
	return g.state
}

// Check перечитывает хранилище учетных данных и переводит шлюз в одно из
// двух терминальных состояний. Просроченный токен равносилен отсутствующему.
func (g *Gate) Check() State {
	if _, ok := g.creds.Token(); ok {
		g.state = Authenticated
	} else {
		g.state = Unauthenticated
	}
	slog.Debug("Проверка состояния сессии", "state", g.state.String())
	return g.state
}

// OnLoginSuccess сохраняет токен и переводит шлюз в Authenticated.
func (g *Gate) OnLoginSuccess(token string, ttlDays int) error {
	if err := g.creds.Save(token, ttlDays); err != nil {
		return fmt.Errorf("не удалось сохранить токен: %w", err)
	}
	g.state = Authenticated
	slog.Info("Вход выполнен, сессия открыта")
	return nil
}

// CacheProfile сохраняет профиль пользователя рядом с токеном.
func (g *Gate) CacheProfile(user *models.User) error {
	return g.creds.SaveUser(user)
}

// OnLogout очищает учетные данные и переводит шлюз в Unauthenticated.
// Вызывающая сторона обязана сбросить все состояние авторизованных экранов.
func (g *Gate) OnLogout() error {
	err := g.creds.Clear()
	g.state = Unauthenticated
	if err != nil {
		return fmt.Errorf("не удалось очистить учетные данные: %w", err)
	}
	slog.Info("Выход выполнен, сессия закрыта")
	return nil
}

// Resolve применяет политику маршрутизации к запрошенному маршруту.
// Аутентифицированному доступны notes/profile/admin/docs, остальное
// перенаправляется на notes. Неаутентифицированному доступны только
// login/register, остальное перенаправляется на login.
// Маршрут admin шлюз дополнительно не проверяет: право на него
// подтверждает сам экран по свежему профилю пользователя.
func (g *Gate) Resolve(requested Route) Route {
	if g.state == Unknown {
		g.Check()
	}

	if g.state == Authenticated {
		switch requested {
		case RouteNotes, RouteProfile, RouteAdmin, RouteDocs:
			return requested
		default:
			return RouteNotes
		}
	}

	switch requested {
	case RouteLogin, RouteRegister:
		return requested
	default:
		return RouteLogin
	}
}
