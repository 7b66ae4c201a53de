// Package passgen генерирует пароли и оценивает их стойкость.
package passgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// charset — алфавит генерируемых паролей.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+"

// DefaultLength — длина предлагаемого пароля.
const DefaultLength = 12

// Strength — оценка стойкости пароля.
type Strength int

// Градации стойкости.
const (
	StrengthEmpty Strength = iota
	StrengthWeak
	StrengthMedium
	StrengthStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "слабый"
	case StrengthMedium:
		return "средний"
	case StrengthStrong:
		return "сильный"
	default:
		return ""
	}
}

// Границы длины для оценки стойкости.
const (
	weakMaxLen   = 6
	strongMinLen = 10
)

// Generate возвращает случайный пароль длины length из алфавита charset.
// Неположительная длина заменяется значением по умолчанию.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	var b strings.Builder
	b.Grow(length)
	maxIdx := big.NewInt(int64(len(charset)))
	for i := 0; i < length; i++ {
		idx, err := rand.Int(rand.Reader, maxIdx)
		if err != nil {
			return "", fmt.Errorf("не удалось получить случайное число: %w", err)
		}
		b.WriteByte(charset[idx.Int64()])
	}
	return b.String(), nil
}

// Rate оценивает стойкость пароля: короткий — слабый, длинный со смесью
// букв, цифр и символов — сильный, остальные — средние.
func Rate(password string) Strength {
	if password == "" {
		return StrengthEmpty
	}
	if len(password) < weakMaxLen {
		return StrengthWeak
	}
	if len(password) < strongMinLen {
		return StrengthMedium
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("!@#$%^&*()_+", r):
			hasSymbol = true
		}
	}
	if hasLetter && hasDigit && hasSymbol {
		return StrengthStrong
	}
	return StrengthMedium
}
