package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resa/config"
	"resa/infras/otel/mocks"
	s3Mocks "resa/infras/s3/mocks"
	roomMocks "resa/internal/domains/room/mocks"
	"resa/internal/domains/room/model"
	"resa/internal/domains/room/service"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/failure"
)

type stubCache struct{}

func (stubCache) Save(_ context.Context, _ string, _ any, _ int) error {
	return nil
}

func (stubCache) Get(_ context.Context, _ string, _ any) error {
	return errors.New("cache miss")
}

func (stubCache) Delete(_ context.Context, _ string) error {
	return nil
}

func (stubCache) Clear(_ context.Context, _ string) error {
	return nil
}

func newService(t *testing.T, ctrl *gomock.Controller, repo *roomMocks.MockRoom) service.Room {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, cfg, stubCache{}, mocks.NewOtel(), s3Mocks.NewMockS3(ctrl))
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	svc := newService(t, ctrl, mockRepo)

	t.Run("found", func(t *testing.T) {
		room := model.Room{
			ID:        "room-1",
			Name:      "Blue Room",
			Capacity:  8,
			Building:  "HQ",
			Floor:     3,
			Equipment: pq.StringArray{"projector", "whiteboard"},
			Active:    true,
		}

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		res, err := svc.Get(context.Background(), "room-1")

		assert.NoError(t, err)
		assert.Equal(t, "Blue Room", res.Name)
		assert.Equal(t, "HQ", res.Building)
		assert.Equal(t, 3, res.Floor)
		assert.Equal(t, []string{"projector", "whiteboard"}, res.Equipment)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	svc := newService(t, ctrl, mockRepo)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	t.Run("deactivates instead of deleting", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldActive])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
				return nil
			})

		err := svc.Delete(ctx, "room-1")

		assert.NoError(t, err)
	})

	t.Run("room not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(ctx, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	svc := newService(t, ctrl, mockRepo)

	hasActiveFilter := func(filter gDto.FilterGroup) bool {
		for _, raw := range filter.Filters {
			if f, ok := raw.(gDto.Filter); ok && f.Field == model.FieldActive && f.Value == true {
				return true
			}
		}

		return false
	}

	rooms := []model.Room{{ID: "room-1", Name: "Blue Room", Active: true}}

	t.Run("employees only see active rooms", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleEmployee)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.True(t, hasActiveFilter(filter))
				return len(rooms), nil
			})

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
				assert.True(t, hasActiveFilter(filter))
				return rooms, nil
			})

		res, err := svc.GetAll(ctx, gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 1)
	})

	t.Run("unauthenticated context is treated as non-admin", func(t *testing.T) {
		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.True(t, hasActiveFilter(filter))
				return 0, nil
			})

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
				assert.True(t, hasActiveFilter(filter))
				return nil, nil
			})

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
	})

	t.Run("admins see deactivated rooms", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.False(t, hasActiveFilter(filter))
				return 2, nil
			})

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
				assert.False(t, hasActiveFilter(filter))
				return append(rooms, model.Room{ID: "room-2", Name: "Old Room", Active: false}), nil
			})

		res, err := svc.GetAll(ctx, gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
	})
}
