package model

import "resa/shared/model"

const (
	TableName  = "departments"
	EntityName = "department"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
)

type Department struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	model.Metadata
}
