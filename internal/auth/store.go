// Package auth реализует локальное хранилище учетных данных клиента:
// токен с временем жизни и кешированный профиль пользователя.
// Данные хранятся в JSON-файле, доступ из нескольких процессов
// защищен файловой блокировкой.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/maynagashev/passman/internal/models"
)

const (
	// DefaultTTLDays — время жизни токена по умолчанию (1 день, как у cookie).
	DefaultTTLDays = 1

	credFilePerm = 0600
	credDirPerm  = 0700

	hoursPerDay = 24
)

// credentialFile — формат файла с учетными данными.
type credentialFile struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user,omitempty"`
}

// Store хранит токен аутентификации и кешированный профиль в файле.
// Срок действия токена проверяется при чтении, фоновой очистки нет.
type Store struct {
	path     string
	fileLock *flock.Flock
	now      func() time.Time // Подменяется в тестах
}

// NewStore создает хранилище учетных данных по указанному пути.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		fileLock: flock.New(path + ".lock"),
		now:      time.Now,
	}
}

// Save сохраняет токен со сроком действия ttlDays от текущего момента.
// Кешированный профиль при этом сбрасывается.
func (s *Store) Save(token string, ttlDays int) error {
	if ttlDays <= 0 {
		ttlDays = DefaultTTLDays
	}
	cred := credentialFile{
		Token:     token,
		ExpiresAt: s.now().Add(time.Duration(ttlDays) * hoursPerDay * time.Hour),
	}
	return s.write(&cred)
}

// SaveUser кеширует профиль пользователя рядом с токеном.
// Без сохраненного токена профиль не записывается.
func (s *Store) SaveUser(user *models.User) error {
	cred, err := s.read()
	if err != nil {
		return err
	}
	if cred == nil || cred.Token == "" {
		return errors.New("нет сохраненного токена для привязки профиля")
	}
	cred.User = user
	return s.write(cred)
}

// Token возвращает сохраненный токен, если он есть и срок его действия
// не истек. Просроченный токен считается отсутствующим.
func (s *Store) Token() (string, bool) {
	cred, err := s.read()
	if err != nil {
		slog.Warn("Не удалось прочитать файл учетных данных", "path", s.path, "error", err)
		return "", false
	}
	if cred == nil || cred.Token == "" {
		return "", false
	}
	if !cred.ExpiresAt.IsZero() && !s.now().Before(cred.ExpiresAt) {
		slog.Info("Срок действия сохраненного токена истек", "expired_at", cred.ExpiresAt)
		return "", false
	}
	return cred.Token, true
}

// User возвращает кешированный профиль пользователя, если токен еще валиден.
func (s *Store) User() *models.User {
	if _, ok := s.Token(); !ok {
		return nil
	}
	cred, err := s.read()
	if err != nil || cred == nil {
		return nil
	}
	return cred.User
}

// Clear удаляет сохраненные учетные данные. Идемпотентна: отсутствие
// файла не считается ошибкой.
func (s *Store) Clear() error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("не удалось удалить файл учетных данных: %w", err)
	}
	return nil
}

// read читает и декодирует файл учетных данных.
// Отсутствие файла возвращается как (nil, nil).
func (s *Store) read() (*credentialFile, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("не удалось прочитать файл учетных данных: %w", err)
	}

	var cred credentialFile
	if err = json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("не удалось декодировать файл учетных данных: %w", err)
	}
	return &cred, nil
}

// write сериализует и записывает файл учетных данных.
func (s *Store) write(cred *credentialFile) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, credDirPerm); err != nil {
			return fmt.Errorf("не удалось создать директорию для учетных данных: %w", err)
		}
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("не удалось закодировать учетные данные: %w", err)
	}
	if err = os.WriteFile(s.path, data, credFilePerm); err != nil {
		return fmt.Errorf("не удалось записать файл учетных данных: %w", err)
	}
	return nil
}

// lock захватывает файловую блокировку для операций с файлом.
func (s *Store) lock() error {
	if err := s.fileLock.Lock(); err != nil {
		return fmt.Errorf("не удалось получить блокировку файла учетных данных: %w", err)
	}
	return nil
}

// unlock снимает файловую блокировку, ошибки только логируются.
func (s *Store) unlock() {
	if err := s.fileLock.Unlock(); err != nil {
		slog.Warn("Не удалось снять блокировку файла учетных данных", "error", err)
	}
}
