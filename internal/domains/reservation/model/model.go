package model

import (
	"resa/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldUserID      = "user_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldStatus      = "status"
	FieldAttendees   = "attendees"
)

type Reservation struct {
	ID          string    `db:"id"`
	RoomID      string    `db:"room_id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	Status      string    `db:"status"`
	Attendees   int       `db:"attendees"`
	RoomName    string    `db:"room_name"  table:"rooms" column:"name"`
	UserEmail   string    `db:"user_email" table:"users" column:"email"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = reservations.room_id JOIN users ON users.id = reservations.user_id"
}
