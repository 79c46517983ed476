package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resa/config"
	"resa/infras/kafka"
	"resa/infras/otel/mocks"
	auditDto "resa/internal/domains/audit/model/dto"
	notificationDto "resa/internal/domains/notification/model/dto"
	reservationMocks "resa/internal/domains/reservation/mocks"
	"resa/internal/domains/reservation/model"
	"resa/internal/domains/reservation/model/dto"
	"resa/internal/domains/reservation/repository"
	"resa/internal/domains/reservation/service"
	roomMocks "resa/internal/domains/room/mocks"
	roomModel "resa/internal/domains/room/model"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/failure"
)

// The side-effect collaborators run on goroutines after the commit, so the
// tests use hand-written thread-safe fakes for them instead of gomock: a
// mocked call landing after ctrl.Finish would fail the test spuriously.

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _, action, _, _ string, _, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAudit) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup) (auditDto.GetAuditLogsResponse, error) {
	return auditDto.GetAuditLogsResponse{}, nil
}

func (f *fakeAudit) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	return 0, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (f *fakeNotifier) Notify(_ context.Context, _, title, _, _ string, _ *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeNotifier) GetMine(_ context.Context, _ string, _ gDto.QueryParams) (notificationDto.GetNotificationsResponse, error) {
	return notificationDto.GetNotificationsResponse{}, nil
}

func (f *fakeNotifier) UnreadCount(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (f *fakeNotifier) MarkRead(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeNotifier) MarkAllRead(_ context.Context, _ string) error {
	return nil
}

func (f *fakeNotifier) Delete(_ context.Context, _, _ string) error {
	return nil
}

type fakeKafka struct{}

func (fakeKafka) SendMessages(_ context.Context, _ string, _ ...kafka.Message) error {
	return nil
}

func (fakeKafka) Consume(_ context.Context, _, _ string, _ func(kafkaGo.Message)) {}

func (fakeKafka) Reader(_, _ string) *kafkaGo.Reader {
	return nil
}

type fakeCache struct{}

func (fakeCache) Save(_ context.Context, _ string, _ any, _ int) error {
	return nil
}

func (fakeCache) Get(_ context.Context, _ string, _ any) error {
	return errors.New("cache miss")
}

func (fakeCache) Delete(_ context.Context, _ string) error {
	return nil
}

func (fakeCache) Clear(_ context.Context, _ string) error {
	return nil
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func newService(repo repository.Reservation, roomRepo *roomMocks.MockRoom) service.Reservation {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, roomRepo, &fakeAudit{}, &fakeNotifier{}, fakeKafka{}, cfg, fakeCache{}, mocks.NewOtel())
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	svc := newService(mockRepo, mockRoomRepo)

	ctx := userContext("user-1", constant.RoleEmployee)

	activeRoom := roomModel.Room{ID: "room-1", Name: "Blue Room", Active: true}

	validReq := dto.CreateReservationRequest{
		RoomID:    "room-1",
		Title:     "Sprint planning",
		StartTime: "2026-01-10T10:00:00Z",
		EndTime:   "2026-01-10T11:00:00Z",
	}

	t.Run("successful creation", func(t *testing.T) {
		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeRoom, nil)

		mockRepo.EXPECT().
			WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, fn func(*sqlx.Tx) error) error {
				return fn(nil)
			})

		mockRepo.EXPECT().
			FindOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), constant.Empty).
			Return(nil, nil)

		mockRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Create(ctx, validReq)

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "room-1", res.RoomID)
		assert.Equal(t, "Blue Room", res.RoomName)
		assert.Equal(t, "user-1", res.UserID)
		assert.Equal(t, constant.ReservationStatusActive, res.Status)
	})

	t.Run("invalid time format fails before any repository call", func(t *testing.T) {
		req := validReq
		req.StartTime = "tomorrow morning"

		_, err := svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("start must be strictly before end", func(t *testing.T) {
		req := validReq
		req.StartTime = "2026-01-10T11:00:00Z"
		req.EndTime = "2026-01-10T11:00:00Z"

		_, err := svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown or inactive room", func(t *testing.T) {
		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := svc.Create(ctx, validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("overlapping reservation is rejected with conflict", func(t *testing.T) {
		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeRoom, nil)

		mockRepo.EXPECT().
			WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, fn func(*sqlx.Tx) error) error {
				return fn(nil)
			})

		mockRepo.EXPECT().
			FindOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), constant.Empty).
			Return([]model.Reservation{{ID: "res-existing"}}, nil)

		_, err := svc.Create(ctx, validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestReservationService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	svc := newService(mockRepo, mockRoomRepo)

	existing := model.Reservation{
		ID:        "res-1",
		RoomID:    "room-1",
		UserID:    "user-1",
		Title:     "Sprint planning",
		StartTime: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 1, 10, 11, 0, 0, 0, time.UTC),
		Status:    constant.ReservationStatusActive,
	}

	t.Run("empty request", func(t *testing.T) {
		err := svc.Update(userContext("user-1", constant.RoleEmployee), dto.UpdateReservationRequest{}, "res-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("reservation not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Reservation{}, nil)

		err := svc.Update(userContext("user-1", constant.RoleEmployee), dto.UpdateReservationRequest{Title: "New"}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("non-owner without admin role is forbidden", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		err := svc.Update(userContext("someone-else", constant.RoleEmployee), dto.UpdateReservationRequest{Title: "Hijack"}, "res-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("admin may edit another user's reservation", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Update(userContext("admin-1", constant.RoleAdmin), dto.UpdateReservationRequest{Title: "Renamed"}, "res-1")

		assert.NoError(t, err)
	})

	t.Run("cancelled reservation cannot be modified", func(t *testing.T) {
		cancelled := existing
		cancelled.Status = constant.ReservationStatusCancelled

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(cancelled, nil)

		err := svc.Update(userContext("user-1", constant.RoleEmployee), dto.UpdateReservationRequest{Title: "New"}, "res-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("moving the slot re-checks conflicts excluding itself", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockRepo.EXPECT().
			WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, fn func(*sqlx.Tx) error) error {
				return fn(nil)
			})

		mockRepo.EXPECT().
			FindOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "res-1").
			Return(nil, nil)

		mockRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, model.FieldStartTime)
				assert.Contains(t, fields, model.FieldEndTime)
				return nil
			})

		req := dto.UpdateReservationRequest{
			StartTime: "2026-01-10T10:30:00Z",
			EndTime:   "2026-01-10T11:30:00Z",
		}

		err := svc.Update(userContext("user-1", constant.RoleEmployee), req, "res-1")

		assert.NoError(t, err)
	})

	t.Run("moving onto another reservation conflicts", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockRepo.EXPECT().
			WithRoomLock(gomock.Any(), "room-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, fn func(*sqlx.Tx) error) error {
				return fn(nil)
			})

		mockRepo.EXPECT().
			FindOverlapping(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "res-1").
			Return([]model.Reservation{{ID: "res-other"}}, nil)

		req := dto.UpdateReservationRequest{EndTime: "2026-01-10T13:00:00Z"}

		err := svc.Update(userContext("user-1", constant.RoleEmployee), req, "res-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("inverted interval is rejected before locking", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		req := dto.UpdateReservationRequest{StartTime: "2026-01-10T12:00:00Z"}

		err := svc.Update(userContext("user-1", constant.RoleEmployee), req, "res-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	svc := newService(mockRepo, mockRoomRepo)

	existing := model.Reservation{
		ID:     "res-1",
		RoomID: "room-1",
		UserID: "user-1",
		Title:  "Sprint planning",
		Status: constant.ReservationStatusActive,
	}

	t.Run("owner cancels own reservation", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.ReservationStatusCancelled, fields[model.FieldStatus])
				return nil
			})

		err := svc.Cancel(userContext("user-1", constant.RoleEmployee), "res-1")

		assert.NoError(t, err)
	})

	t.Run("admin cancels another user's reservation", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Cancel(userContext("admin-1", constant.RoleAdmin), "res-1")

		assert.NoError(t, err)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		err := svc.Cancel(userContext("someone-else", constant.RoleEmployee), "res-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("reservation not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Reservation{}, nil)

		err := svc.Cancel(userContext("user-1", constant.RoleEmployee), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		cancelled := existing
		cancelled.Status = constant.ReservationStatusCancelled

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(cancelled, nil)

		err := svc.Cancel(userContext("user-1", constant.RoleEmployee), "res-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

// fakeReservationRepo is an in-memory repository whose lock and overlap
// predicate mirror the real implementation, so concurrent admission can be
// exercised end to end without a database.
type fakeReservationRepo struct {
	mu     sync.Mutex
	stored []model.Reservation
}

func (f *fakeReservationRepo) WithRoomLock(_ context.Context, _ string, fn func(tx *sqlx.Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(nil)
}

func (f *fakeReservationRepo) FindOverlapping(_ context.Context, _ *sqlx.Tx, roomID string, start, end time.Time, excludeID string) ([]model.Reservation, error) {
	var overlapping []model.Reservation

	for _, r := range f.stored {
		if r.RoomID != roomID || r.Status != constant.ReservationStatusActive || r.ID == excludeID {
			continue
		}

		if r.OverlapsInterval(start, end) {
			overlapping = append(overlapping, r)
		}
	}

	return overlapping, nil
}

func (f *fakeReservationRepo) InsertTx(_ context.Context, _ *sqlx.Tx, reservation model.Reservation) error {
	f.stored = append(f.stored, reservation)
	return nil
}

func (f *fakeReservationRepo) UpdateTx(_ context.Context, _ *sqlx.Tx, _ map[string]any, _ gDto.FilterGroup) error {
	return nil
}

func (f *fakeReservationRepo) Get(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.Reservation, error) {
	return model.Reservation{}, nil
}

func (f *fakeReservationRepo) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationRepo) Exist(_ context.Context, _ gDto.FilterGroup) (bool, error) {
	return false, nil
}

func (f *fakeReservationRepo) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	return 0, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, _ map[string]any, _ gDto.FilterGroup) error {
	return nil
}

func TestReservationService_ConcurrentCreate_OneWinner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := &fakeReservationRepo{}
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	svc := newService(repo, mockRoomRepo)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(roomModel.Room{ID: "room-1", Name: "Blue Room", Active: true}, nil).
		AnyTimes()

	req := dto.CreateReservationRequest{
		RoomID:    "room-1",
		Title:     "Contested slot",
		StartTime: "2026-01-10T10:00:00Z",
		EndTime:   "2026-01-10T11:00:00Z",
	}

	const attempts = 8

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ctx := userContext("user-1", constant.RoleEmployee)
			_, err := svc.Create(ctx, req)
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var wins, conflicts int

	for err := range results {
		switch {
		case err == nil:
			wins++
		case failure.GetCode(err) == http.StatusConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)

	t.Run("adjacent slot is not a conflict", func(t *testing.T) {
		adjacent := req
		adjacent.StartTime = "2026-01-10T11:00:00Z"
		adjacent.EndTime = "2026-01-10T12:00:00Z"

		_, err := svc.Create(userContext("user-2", constant.RoleEmployee), adjacent)

		assert.NoError(t, err)
	})

	t.Run("contained slot conflicts", func(t *testing.T) {
		contained := req
		contained.StartTime = "2026-01-10T10:15:00Z"
		contained.EndTime = "2026-01-10T10:45:00Z"

		_, err := svc.Create(userContext("user-2", constant.RoleEmployee), contained)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}
