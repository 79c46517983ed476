package dto

import (
	"github.com/google/uuid"

	"resa/internal/domains/department/model"
	"resa/shared"
	gDto "resa/shared/dto"
	gModel "resa/shared/model"
	"resa/shared/timezone"
)

type CreateDepartmentRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (c *CreateDepartmentRequest) ToModel(user string) model.Department {
	return model.Department{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateDepartmentRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	gDto.Metadata
}

func (r *DepartmentResponse) FromModel(model model.Department) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetDepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetDepartmentsResponse) FromModels(models []model.Department, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Departments = make([]DepartmentResponse, len(models))
	for i, mod := range models {
		r.Departments[i].FromModel(mod)
	}
}
