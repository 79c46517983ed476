package dto

import (
	"github.com/google/uuid"

	"resa/internal/domains/user/model"
	"resa/shared"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	gModel "resa/shared/model"
	"resa/shared/timezone"
)

type CreateUserRequest struct {
	Email        string  `json:"email"                   validate:"required,email"`
	Password     string  `json:"password"                validate:"required,min=8"`
	Role         string  `json:"role"                    validate:"omitempty,oneof=admin employee"`
	FullName     *string `json:"full_name,omitempty"     validate:"omitempty,max=100"`
	ProfileImage *string `json:"profile_image,omitempty"`
	DepartmentID *string `json:"department_id,omitempty" validate:"omitempty,uuid"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleEmployee
	}

	return model.User{
		ID:           uuid.NewString(),
		Email:        r.Email,
		Password:     hashedPassword,
		Role:         role,
		FullName:     r.FullName,
		ProfileImage: r.ProfileImage,
		DepartmentID: r.DepartmentID,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	FullName       *string `json:"full_name,omitempty"`
	ProfileImage   *string `json:"profile_image,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	LastLogin      *string `json:"last_login,omitempty"`
	Active         bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.ProfileImage = model.ProfileImage
	r.DepartmentID = model.DepartmentID
	r.DepartmentName = model.DepartmentName
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	Role         *string `db:"role"          json:"role,omitempty"          validate:"omitempty,oneof=admin employee"`
	FullName     *string `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,max=100"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
	DepartmentID *string `db:"department_id" json:"department_id,omitempty" validate:"omitempty,uuid"`
	Active       *bool   `db:"active"        json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	FullName     *string `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,max=100"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
