package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resa/infras/otel/mocks"
	auditMocks "resa/internal/domains/audit/mocks"
	"resa/internal/domains/audit/model"
	"resa/internal/domains/audit/service"
	"resa/shared/constant"
	gDto "resa/shared/dto"
)

func TestAuditService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := auditMocks.NewMockAudit(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	t.Run("snapshots are stored as JSON", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry model.AuditLog) error {
				assert.NotEmpty(t, entry.ID)
				assert.Equal(t, "user-1", entry.UserID)
				assert.Equal(t, constant.AuditActionUpdate, entry.Action)
				assert.Equal(t, "reservation", entry.EntityType)
				assert.Equal(t, "res-1", entry.EntityID)
				assert.NotNil(t, entry.OldValues)
				assert.JSONEq(t, `{"status":"active"}`, *entry.OldValues)
				assert.NotNil(t, entry.NewValues)
				assert.JSONEq(t, `{"status":"cancelled"}`, *entry.NewValues)
				return nil
			})

		err := svc.Record(context.Background(), "user-1", constant.AuditActionUpdate, "reservation", "res-1",
			map[string]string{"status": "active"},
			map[string]string{"status": "cancelled"},
		)

		assert.NoError(t, err)
	})

	t.Run("nil snapshot becomes NULL", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry model.AuditLog) error {
				assert.Nil(t, entry.OldValues)
				assert.NotNil(t, entry.NewValues)
				return nil
			})

		err := svc.Record(context.Background(), "user-1", constant.AuditActionCreate, "reservation", "res-1",
			nil, map[string]string{"status": "active"})

		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		err := svc.Record(context.Background(), "user-1", constant.AuditActionCreate, "reservation", "res-1", nil, nil)

		assert.Error(t, err)
	})
}

func TestAuditService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := auditMocks.NewMockAudit(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.AuditLog{{ID: "log-1"}, {ID: "log-2"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Logs, 2)
	assert.Equal(t, 2, res.TotalData)
}
