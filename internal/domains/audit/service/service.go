package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Audit=MockAuditService

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"resa/infras/otel"
	"resa/internal/domains/audit/model"
	"resa/internal/domains/audit/model/dto"
	"resa/internal/domains/audit/repository"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/timezone"
)

type Audit interface {
	Record(ctx context.Context, actor, action, entityType, entityID string, oldValues, newValues any) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAuditLogsResponse, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo repository.Audit
	otel otel.Otel
}

func New(repo repository.Audit, otel otel.Otel) Audit {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Record writes one audit row with JSON snapshots of the entity before and
// after the mutation. A nil snapshot is stored as SQL NULL.
func (s *serviceImpl) Record(ctx context.Context, actor, action, entityType, entityID string, oldValues, newValues any) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.Record")
	defer scope.End()
	defer scope.TraceIfError(err)

	oldJSON, err := marshalSnapshot(oldValues)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal old values for audit log")

		return fmt.Errorf("failed to marshal old values: %w", err)
	}

	newJSON, err := marshalSnapshot(newValues)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal new values for audit log")

		return fmt.Errorf("failed to marshal new values: %w", err)
	}

	entry := model.AuditLog{
		ID:         uuid.NewString(),
		UserID:     actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  oldJSON,
		NewValues:  newJSON,
		CreatedAt:  timezone.Now(),
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to insert audit log")

		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAuditLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count audit logs")

		return res, fmt.Errorf("failed to count audit logs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get audit logs")

		return res, fmt.Errorf("failed to get audit logs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count audit logs")

		return res, fmt.Errorf("failed to count audit logs: %w", err)
	}

	return res, nil
}

func marshalSnapshot(value any) (*string, error) {
	if value == nil {
		return nil, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	str := string(raw)

	return &str, nil
}
