package domain

import (
	"time"
)

// User представляет модель пользователя.
// Friends — исходящие рёбра направленного графа дружбы.
type User struct {
	ID       int       `json:"id" db:"id"`
	Email    string    `json:"email" db:"email"`
	Login    string    `json:"login" db:"login"`
	Name     string    `json:"name" db:"name"`
	Birthday time.Time `json:"birthday" db:"birthday"`
	Friends  []int     `json:"friends,omitempty"`
}

// CreateUserRequest определяет тело запроса на создание пользователя.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,contains=@"`
	Login    string `json:"login" validate:"required,excludes= "`
	Name     string `json:"name,omitempty"`
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02"`
}

// UpdateUserRequest определяет тело запроса на обновление пользователя.
type UpdateUserRequest struct {
	ID int `json:"id" validate:"required,gt=0"`
	CreateUserRequest
}
