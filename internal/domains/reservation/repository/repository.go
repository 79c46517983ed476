package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"resa/infras/otel"
	"resa/infras/postgres"
	"resa/internal/domains/reservation/model"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/logger"
	gRepo "resa/shared/repository"
)

type Reservation interface {
	WithRoomLock(ctx context.Context, roomID string, fn func(tx *sqlx.Tx) error) error
	FindOverlapping(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time, excludeID string) ([]model.Reservation, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Reservation) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// WithRoomLock runs fn inside a write transaction that holds a per-room
// advisory lock, so conflict checks and inserts for the same room are
// serialized while different rooms proceed independently. The lock is
// released automatically when the transaction commits or rolls back.
func (repo *repositoryImpl) WithRoomLock(ctx context.Context, roomID string, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.WithRoomLock")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", roomID); err != nil {
		logger.ErrorWithStack(err)

		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return fmt.Errorf("failed to acquire room lock (%s): %w", model.EntityName, err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

// FindOverlapping returns the active reservations for the room whose half-open
// interval intersects [start, end). Both comparisons are strict, so a
// reservation ending exactly at start (or starting exactly at end) is not a
// conflict. When tx is non-nil the query runs inside it and observes rows
// written under the room lock.
func (repo *repositoryImpl) FindOverlapping(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time, excludeID string) (reservations []model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT id, room_id, user_id, title, description, start_time, end_time, status, attendees,
		created_at, created_by, modified_at, modified_by
		FROM reservations
		WHERE room_id = $1 AND status = $2 AND start_time < $3 AND end_time > $4`
	args := []any{roomID, constant.ReservationStatusActive, end, start}

	if excludeID != "" {
		query += " AND id != $5"
		args = append(args, excludeID)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if tx != nil {
		err = tx.SelectContext(ctx, &reservations, query, args...)
	} else {
		err = repo.db.Read.SelectContext(ctx, &reservations, query, args...)
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to find overlapping reservations: %w", err)
	}

	return reservations, nil
}
