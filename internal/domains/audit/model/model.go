package model

import "time"

const (
	TableName  = "audit_logs"
	EntityName = "audit_log"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldAction     = "action"
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldOldValues  = "old_values"
	FieldNewValues  = "new_values"
	FieldCreatedAt  = "created_at"
)

// AuditLog rows are append-only: they are inserted on successful mutations
// and never updated or deleted.
type AuditLog struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	OldValues  *string   `db:"old_values"`
	NewValues  *string   `db:"new_values"`
	IPAddress  *string   `db:"ip_address"`
	UserAgent  *string   `db:"user_agent"`
	CreatedAt  time.Time `db:"created_at"`
}
