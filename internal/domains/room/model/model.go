package model

import (
	"github.com/lib/pq"

	"resa/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldName      = "name"
	FieldLocation  = "location"
	FieldBuilding  = "building"
	FieldFloor     = "floor"
	FieldCapacity  = "capacity"
	FieldEquipment = "equipment"
	FieldImage     = "image"
	FieldActive    = "active"
)

type Room struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Location  string         `db:"location"`
	Building  string         `db:"building"`
	Floor     int            `db:"floor"`
	Capacity  int            `db:"capacity"`
	Equipment pq.StringArray `db:"equipment"`
	Image     string         `db:"image"`
	Active    bool           `db:"active"`
	model.Metadata
}
