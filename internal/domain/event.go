package domain

// EventType — тип действия, попадающего в ленту событий.
type EventType string

const (
	EventLike   EventType = "LIKE"
	EventFriend EventType = "FRIEND"
	EventReview EventType = "REVIEW"
)

// EventOperation — операция над сущностью события.
type EventOperation string

const (
	OperationAdd    EventOperation = "ADD"
	OperationRemove EventOperation = "REMOVE"
	OperationUpdate EventOperation = "UPDATE"
)

// HistoryEvent — неизменяемая запись ленты активности пользователя.
// EventID и Timestamp назначаются хранилищем при добавлении.
type HistoryEvent struct {
	EventID   int            `json:"eventId" db:"id"`
	UserID    int            `json:"userId" db:"user_id"`
	EventType EventType      `json:"eventType" db:"event_type"`
	Operation EventOperation `json:"operation" db:"operation"`
	EntityID  int            `json:"entityId" db:"entity_id"`
	Timestamp int64          `json:"timestamp" db:"timestamp"` // unix millis
}
