package domain

// Review представляет отзыв на фильм.
// Useful — производная оценка полезности: сумма реакций (+1 лайк, -1 дизлайк).
type Review struct {
	ReviewID   int    `json:"reviewId" db:"id"`
	Content    string `json:"content" db:"content"`
	IsPositive bool   `json:"isPositive" db:"positive"`
	UserID     int    `json:"userId" db:"user_id"`
	FilmID     int    `json:"filmId" db:"film_id"`
	Useful     int    `json:"useful" db:"useful"`
}

// ReactionLike и ReactionDislike — вклад реакции в оценку полезности.
const (
	ReactionLike    = 1
	ReactionDislike = -1
)

// CreateReviewRequest определяет тело запроса на создание отзыва.
// IsPositive — указатель, чтобы отличать "false" от отсутствующего поля.
type CreateReviewRequest struct {
	Content    string `json:"content" validate:"required"`
	IsPositive *bool  `json:"isPositive" validate:"required"`
	UserID     *int   `json:"userId" validate:"required"`
	FilmID     *int   `json:"filmId" validate:"required"`
}

// UpdateReviewRequest определяет тело запроса на обновление отзыва.
// Меняются только содержимое и тональность, привязка к фильму и автору
// остаётся прежней.
type UpdateReviewRequest struct {
	ReviewID   int    `json:"reviewId" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required"`
	IsPositive *bool  `json:"isPositive" validate:"required"`
}
