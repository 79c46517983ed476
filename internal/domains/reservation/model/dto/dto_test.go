package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"resa/internal/domains/reservation/model"
	"resa/internal/domains/reservation/model/dto"
	"resa/shared/constant"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateReservationRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: dto.CreateReservationRequest{
				RoomID:    "room-1",
				Title:     "Sprint planning",
				StartTime: "2026-01-10T10:00:00Z",
				EndTime:   "2026-01-10T11:00:00Z",
				Attendees: 5,
			},
			wantErr: false,
		},
		{
			name: "invalid start time",
			req: dto.CreateReservationRequest{
				RoomID:    "room-1",
				Title:     "Sprint planning",
				StartTime: "10 Jan 2026 10am",
				EndTime:   "2026-01-10T11:00:00Z",
			},
			wantErr: true,
		},
		{
			name: "invalid end time",
			req: dto.CreateReservationRequest{
				RoomID:    "room-1",
				Title:     "Sprint planning",
				StartTime: "2026-01-10T10:00:00Z",
				EndTime:   "eleven",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservation, err := tt.req.ToModel("user-1")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, reservation.ID)
			assert.Equal(t, tt.req.RoomID, reservation.RoomID)
			assert.Equal(t, "user-1", reservation.UserID)
			assert.Equal(t, tt.req.Title, reservation.Title)
			assert.Equal(t, constant.ReservationStatusActive, reservation.Status)
			assert.Equal(t, tt.req.Attendees, reservation.Attendees)
			assert.True(t, reservation.StartTime.Before(reservation.EndTime))
			assert.Equal(t, "user-1", reservation.CreatedBy)
		})
	}
}

func TestUpdateReservationRequest_MovesInterval(t *testing.T) {
	assert.False(t, (&dto.UpdateReservationRequest{Title: "New title"}).MovesInterval())
	assert.True(t, (&dto.UpdateReservationRequest{StartTime: "2026-01-10T10:00:00Z"}).MovesInterval())
	assert.True(t, (&dto.UpdateReservationRequest{EndTime: "2026-01-10T11:00:00Z"}).MovesInterval())
}

func TestUpdateReservationRequest_Interval(t *testing.T) {
	currentStart := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	currentEnd := time.Date(2026, 1, 10, 11, 0, 0, 0, time.UTC)

	current := model.Reservation{
		StartTime: currentStart,
		EndTime:   currentEnd,
	}

	t.Run("start only keeps current end", func(t *testing.T) {
		req := dto.UpdateReservationRequest{StartTime: "2026-01-10T10:30:00Z"}

		start, end, err := req.Interval(current)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 10, 10, 30, 0, 0, time.UTC), start)
		assert.Equal(t, currentEnd, end)
	})

	t.Run("end only keeps current start", func(t *testing.T) {
		req := dto.UpdateReservationRequest{EndTime: "2026-01-10T12:00:00Z"}

		start, end, err := req.Interval(current)

		assert.NoError(t, err)
		assert.Equal(t, currentStart, start)
		assert.Equal(t, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC), end)
	})

	t.Run("invalid value fails", func(t *testing.T) {
		req := dto.UpdateReservationRequest{StartTime: "soon"}

		_, _, err := req.Interval(current)

		assert.Error(t, err)
	})
}

func TestReservationResponse_FromModel(t *testing.T) {
	reservation := model.Reservation{
		ID:        "res-1",
		RoomID:    "room-1",
		RoomName:  "Blue Room",
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Title:     "Standup",
		StartTime: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 1, 10, 10, 15, 0, 0, time.UTC),
		Status:    constant.ReservationStatusActive,
		Attendees: 8,
	}

	var res dto.ReservationResponse
	res.FromModel(reservation)

	assert.Equal(t, reservation.ID, res.ID)
	assert.Equal(t, reservation.RoomName, res.RoomName)
	assert.Equal(t, reservation.UserEmail, res.UserEmail)
	assert.Equal(t, "2026-01-10T10:00:00Z", res.StartTime)
	assert.Equal(t, "2026-01-10T10:15:00Z", res.EndTime)
	assert.Equal(t, reservation.Status, res.Status)
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	models := []model.Reservation{
		{ID: "res-1", Status: constant.ReservationStatusActive},
		{ID: "res-2", Status: constant.ReservationStatusCancelled},
	}

	var res dto.GetReservationsResponse
	res.FromModels(models, 12, 5)

	assert.Len(t, res.Reservations, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, "res-1", res.Reservations[0].ID)
}
