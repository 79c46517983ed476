package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Notification=MockNotificationService

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"resa/infras/otel"
	"resa/internal/domains/notification/model"
	"resa/internal/domains/notification/model/dto"
	"resa/internal/domains/notification/repository"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/failure"
	"resa/shared/timezone"
)

type Notification interface {
	Notify(ctx context.Context, userID, title, message, notificationType string, link *string) error
	GetMine(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetNotificationsResponse, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

type serviceImpl struct {
	repo repository.Notification
	otel otel.Otel
}

func New(repo repository.Notification, otel otel.Otel) Notification {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Notify(ctx context.Context, userID, title, message, notificationType string, link *string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Notify")
	defer scope.End()
	defer scope.TraceIfError(err)

	if notificationType == "" {
		notificationType = constant.NotificationTypeInfo
	}

	entry := model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		Link:      link,
		CreatedAt: timezone.Now(),
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to insert notification")

		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetMine(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := byUser(userID)

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return res, err
	}

	res.FromModels(models, unread)

	return res, nil
}

func (s *serviceImpl) UnreadCount(ctx context.Context, userID string) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.UnreadCount")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := byUser(userID)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldRead,
		Operator: gDto.FilterOperatorEq,
		Value:    false,
		Table:    model.TableName,
	})

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count unread notifications")

		return res, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return res, nil
}

// MarkRead flags one notification as read. The user filter keeps a caller
// from acknowledging somebody else's notification.
func (s *serviceImpl) MarkRead(ctx context.Context, id, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := byUser(userID)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldID,
		Operator: gDto.FilterOperatorEq,
		Value:    id,
		Table:    model.TableName,
	})

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notification")

		return fmt.Errorf("failed to get notification: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("notification not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, map[string]any{model.FieldRead: true}, filter); err != nil {
		log.Error().Err(err).Msg("failed to mark notification as read")

		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return nil
}

func (s *serviceImpl) MarkAllRead(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.MarkAllRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Update(ctx, map[string]any{model.FieldRead: true}, byUser(userID)); err != nil {
		log.Error().Err(err).Msg("failed to mark notifications as read")

		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

// Delete removes one notification. The user filter keeps a caller from
// deleting somebody else's notification.
func (s *serviceImpl) Delete(ctx context.Context, id, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := byUser(userID)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldID,
		Operator: gDto.FilterOperatorEq,
		Value:    id,
		Table:    model.TableName,
	})

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notification")

		return fmt.Errorf("failed to get notification: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("notification not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete notification")

		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}

func byUser(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}
}
