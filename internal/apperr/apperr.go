// Package apperr содержит общую таксономию ошибок доменного слоя.
// Сервисы оборачивают базовые ошибки через %w, а HTTP-слой сопоставляет
// их со статус-кодами через errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — сущность с указанным id не существует.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — входные данные не прошли доменную валидацию.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict — дублирующий факт (лайк, дружба, реакция).
	// Сервисы трактуют его как no-op, наружу он не выходит.
	ErrConflict = errors.New("conflict")
)

// NotFound возвращает ошибку ErrNotFound с пояснением, какой id не найден.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// InvalidArgument возвращает ошибку валидации с указанием поля.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// Conflict возвращает ошибку дублирующего факта.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
func IsConflict(err error) bool        { return errors.Is(err, ErrConflict) }
