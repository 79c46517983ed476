package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resa/infras/otel/mocks"
	notificationMocks "resa/internal/domains/notification/mocks"
	"resa/internal/domains/notification/model"
	"resa/internal/domains/notification/service"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/failure"
	"resa/shared/timezone"
)

func TestNotificationService_Notify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	t.Run("persists the notification", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry model.Notification) error {
				assert.NotEmpty(t, entry.ID)
				assert.Equal(t, "user-1", entry.UserID)
				assert.Equal(t, "Reservation confirmed", entry.Title)
				assert.Equal(t, constant.NotificationTypeSuccess, entry.Type)
				assert.False(t, entry.Read)
				return nil
			})

		err := svc.Notify(context.Background(), "user-1", "Reservation confirmed", "Room booked.", constant.NotificationTypeSuccess, nil)

		assert.NoError(t, err)
	})

	t.Run("defaults the type to info", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry model.Notification) error {
				assert.Equal(t, constant.NotificationTypeInfo, entry.Type)
				return nil
			})

		err := svc.Notify(context.Background(), "user-1", "Heads up", "Something happened.", "", nil)

		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		err := svc.Notify(context.Background(), "user-1", "Heads up", "Something happened.", "", nil)

		assert.Error(t, err)
	})
}

func TestNotificationService_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	notifications := []model.Notification{
		{ID: "n-1", UserID: "user-1", Title: "First", CreatedAt: timezone.Now()},
		{ID: "n-2", UserID: "user-1", Title: "Second", Read: true, CreatedAt: timezone.Now()},
	}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(notifications, nil)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	res, err := svc.GetMine(context.Background(), "user-1", gDto.QueryParams{Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Notifications, 2)
	assert.Equal(t, 1, res.UnreadCount)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	t.Run("marks an owned notification", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Notification{ID: "n-1", UserID: "user-1"}, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), map[string]any{model.FieldRead: true}, gomock.Any()).
			Return(nil)

		err := svc.MarkRead(context.Background(), "n-1", "user-1")

		assert.NoError(t, err)
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Notification{}, nil)

		err := svc.MarkRead(context.Background(), "n-1", "user-2")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().
		Update(gomock.Any(), map[string]any{model.FieldRead: true}, gomock.Any()).
		Return(nil)

	err := svc.MarkAllRead(context.Background(), "user-1")

	assert.NoError(t, err)
}

func TestNotificationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	t.Run("deletes an owned notification", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Notification{ID: "n-1", UserID: "user-1"}, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), "n-1", "user-1")

		assert.NoError(t, err)
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Notification{}, nil)

		err := svc.Delete(context.Background(), "n-1", "user-2")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Notification{ID: "n-1", UserID: "user-1"}, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(errors.New("connection refused"))

		err := svc.Delete(context.Background(), "n-1", "user-1")

		assert.Error(t, err)
	})
}
