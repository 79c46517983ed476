package model

import "time"

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldTitle     = "title"
	FieldMessage   = "message"
	FieldType      = "type"
	FieldLink      = "link"
	FieldRead      = "read"
	FieldCreatedAt = "created_at"
)

type Notification struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	Link      *string   `db:"link"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}
