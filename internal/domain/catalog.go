package domain

// Genre — жанр фильма из справочника.
type Genre struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Mpa — возрастной рейтинг фильма (фиксированный справочник).
type Mpa struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Director — режиссёр фильма.
type Director struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CreateDirectorRequest определяет тело запроса на создание режиссёра.
type CreateDirectorRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateDirectorRequest определяет тело запроса на обновление режиссёра.
type UpdateDirectorRequest struct {
	ID   int    `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`
}
