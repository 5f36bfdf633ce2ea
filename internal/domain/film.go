package domain

import (
	"time"
)

// CinemaBirthday — самая ранняя допустимая дата релиза фильма.
var CinemaBirthday = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// MaxFilmDescriptionLen — максимальная длина описания фильма.
const MaxFilmDescriptionLen = 200

// Film представляет доменную модель фильма.
// Genres, Directors и Likes загружаются хранилищем вместе с фильмом.
type Film struct {
	ID          int        `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	ReleaseDate time.Time  `json:"releaseDate" db:"release_date"`
	Duration    int        `json:"duration" db:"duration"`
	Mpa         Mpa        `json:"mpa"`
	Genres      []Genre    `json:"genres"`
	Directors   []Director `json:"directors"`
	Likes       []int      `json:"likes,omitempty"` // id пользователей, поставивших лайк
}

// LikeCount возвращает количество лайков фильма.
func (f *Film) LikeCount() int { return len(f.Likes) }

// Like — минимальный реляционный факт "пользователь лайкнул фильм".
type Like struct {
	UserID int `json:"userId" db:"user_id"`
	FilmID int `json:"filmId" db:"film_id"`
}

// CreateFilmRequest определяет тело запроса на создание фильма.
type CreateFilmRequest struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description" validate:"max=200"`
	ReleaseDate string        `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Duration    int           `json:"duration" validate:"required,gt=0"`
	Mpa         MpaRef        `json:"mpa" validate:"required"`
	Genres      []GenreRef    `json:"genres,omitempty" validate:"omitempty,dive"`
	Directors   []DirectorRef `json:"directors,omitempty" validate:"omitempty,dive"`
}

// UpdateFilmRequest определяет тело запроса на обновление фильма.
type UpdateFilmRequest struct {
	ID int `json:"id" validate:"required,gt=0"`
	CreateFilmRequest
}

// MpaRef, GenreRef и DirectorRef — ссылки по id в телах запросов
// (формат {"id": N}, как его присылают клиенты).
type MpaRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}

type GenreRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}

type DirectorRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}
