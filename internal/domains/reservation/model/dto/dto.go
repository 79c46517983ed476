package dto

import (
	"time"

	"github.com/google/uuid"

	"resa/internal/domains/reservation/model"
	"resa/shared"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	gModel "resa/shared/model"
	"resa/shared/timezone"
)

type CreateReservationRequest struct {
	RoomID      string `json:"room_id"     validate:"required"`
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	StartTime   string `json:"start_time"  validate:"required"`
	EndTime     string `json:"end_time"    validate:"required"`
	Attendees   int    `json:"attendees"   validate:"omitempty,gte=1"`
}

func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	startTime, err := time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Reservation{}, err
	}

	endTime, err := time.Parse(constant.DateFormat, c.EndTime)
	if err != nil {
		return model.Reservation{}, err
	}

	return model.Reservation{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		UserID:      user,
		Title:       c.Title,
		Description: c.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Status:      constant.ReservationStatusActive,
		Attendees:   c.Attendees,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateReservationRequest struct {
	Title       string `db:"title"       json:"title"       validate:"omitempty,max=200"`
	Description string `db:"description" json:"description" validate:"omitempty,max=1000"`
	StartTime   string `json:"start_time" validate:"omitempty"`
	EndTime     string `json:"end_time"   validate:"omitempty"`
	Attendees   int    `db:"attendees"   json:"attendees"   validate:"omitempty,gte=1"`
}

// MovesInterval reports whether the update changes the reserved time slot and
// therefore needs a fresh conflict check.
func (u *UpdateReservationRequest) MovesInterval() bool {
	return u.StartTime != "" || u.EndTime != ""
}

// Interval resolves the requested slot against the reservation being updated,
// falling back to the current bounds for any side the request leaves empty.
func (u *UpdateReservationRequest) Interval(current model.Reservation) (start, end time.Time, err error) {
	start = current.StartTime
	end = current.EndTime

	if u.StartTime != "" {
		start, err = time.Parse(constant.DateFormat, u.StartTime)
		if err != nil {
			return start, end, err
		}
	}

	if u.EndTime != "" {
		end, err = time.Parse(constant.DateFormat, u.EndTime)
		if err != nil {
			return start, end, err
		}
	}

	return start, end, nil
}

type ReservationResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	RoomName    string `json:"room_name,omitempty"`
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	Attendees   int    `json:"attendees,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.UserID = model.UserID
	r.UserEmail = model.UserEmail
	r.Title = model.Title
	r.Description = model.Description
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.Status = model.Status
	r.Attendees = model.Attendees
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
