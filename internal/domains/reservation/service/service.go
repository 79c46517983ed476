package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"resa/config"
	"resa/infras/kafka"
	"resa/infras/otel"
	auditService "resa/internal/domains/audit/service"
	notificationService "resa/internal/domains/notification/service"
	"resa/internal/domains/reservation/model"
	"resa/internal/domains/reservation/model/dto"
	"resa/internal/domains/reservation/repository"
	roomModel "resa/internal/domains/room/model"
	roomRepo "resa/internal/domains/room/repository"
	"resa/shared"
	"resa/shared/cache"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/failure"
	"resa/shared/timezone"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

const (
	eventReservationCreated   = "reservation.created"
	eventReservationUpdated   = "reservation.updated"
	eventReservationCancelled = "reservation.cancelled"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Reservation
	roomRepo roomRepo.Room
	audit    auditService.Audit
	notifier notificationService.Notification
	kafka    kafka.Client
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Reservation, roomRepo roomRepo.Room, audit auditService.Audit, notifier notificationService.Notification, kafkaClient kafka.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		audit:    audit,
		notifier: notifier,
		kafka:    kafkaClient,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Create admits a reservation only if no active reservation for the same room
// overlaps the requested slot. The conflict check and the insert run inside
// one write transaction holding a per-room lock, so among concurrent requests
// for overlapping slots at most one can succeed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !reservation.StartTime.Before(reservation.EndTime) {
		return res, failure.BadRequestFromString("start_time must be strictly before end_time") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, activeRoomFilter(req.RoomID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found or inactive") // nolint:wrapcheck
	}

	err = s.repo.WithRoomLock(ctx, reservation.RoomID, func(tx *sqlx.Tx) error {
		overlapping, lockErr := s.repo.FindOverlapping(ctx, tx, reservation.RoomID, reservation.StartTime, reservation.EndTime, constant.Empty)
		if lockErr != nil {
			return lockErr
		}

		if len(overlapping) > 0 {
			return failure.Conflict(fmt.Sprintf(
				"room %s is already reserved between %s and %s",
				room.Name,
				timezone.Format(reservation.StartTime, constant.DateFormat),
				timezone.Format(reservation.EndTime, constant.DateFormat),
			)) // nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, tx, reservation)
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", reservation.RoomID).Msg("failed to create reservation")

		return res, err
	}

	reservation.RoomName = room.Name
	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		s.recordAudit(c, user, constant.AuditActionCreate, reservation.ID, nil, reservation)
		s.notifyOwner(c, reservation.UserID, "Reservation confirmed",
			fmt.Sprintf("Your reservation %q for room %s is confirmed.", reservation.Title, room.Name))
		s.publishEvent(c, eventReservationCreated, res)
		s.invalidateListCaches(c)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// Update edits an active reservation. When the request moves the time slot,
// the new interval is re-validated under the room lock with the reservation's
// own row excluded from the conflict set, so a reservation can always shrink
// or shift within its current slot.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateReservationRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if existing.UserID != user && role != constant.RoleAdmin {
		return failure.Forbidden("you cannot modify this reservation") // nolint:wrapcheck
	}

	if existing.Status != constant.ReservationStatusActive {
		return failure.BadRequestFromString("cannot modify a cancelled reservation") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if !req.MovesInterval() {
		if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update reservation")

			return fmt.Errorf("failed to update reservation: %w", err)
		}

		s.afterUpdate(ctx, user, existing, updatedFields)

		return nil
	}

	start, end, err := req.Interval(existing)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation interval")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !start.Before(end) {
		return failure.BadRequestFromString("start_time must be strictly before end_time") // nolint:wrapcheck
	}

	updatedFields[model.FieldStartTime] = start
	updatedFields[model.FieldEndTime] = end

	err = s.repo.WithRoomLock(ctx, existing.RoomID, func(tx *sqlx.Tx) error {
		overlapping, lockErr := s.repo.FindOverlapping(ctx, tx, existing.RoomID, start, end, existing.ID)
		if lockErr != nil {
			return lockErr
		}

		if len(overlapping) > 0 {
			return failure.Conflict(fmt.Sprintf(
				"room is already reserved between %s and %s",
				timezone.Format(start, constant.DateFormat),
				timezone.Format(end, constant.DateFormat),
			)) // nolint:wrapcheck
		}

		return s.repo.UpdateTx(ctx, tx, updatedFields, filter)
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", existing.RoomID).Msg("failed to move reservation")

		return err
	}

	s.afterUpdate(ctx, user, existing, updatedFields)

	return nil
}

// Cancel soft-deletes a reservation: the row stays for the audit trail but no
// longer participates in conflict checks, so the slot frees up immediately.
// A cancelled reservation never becomes active again.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if existing.UserID != user && role != constant.RoleAdmin {
		return failure.Forbidden("you cannot cancel this reservation") // nolint:wrapcheck
	}

	if existing.Status != constant.ReservationStatusActive {
		return failure.BadRequestFromString("reservation is already cancelled") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        constant.ReservationStatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	cancelled := existing
	cancelled.Status = constant.ReservationStatusCancelled

	go func() {
		c := context.WithoutCancel(ctx)

		s.recordAudit(c, user, constant.AuditActionDelete, existing.ID, existing, cancelled)
		s.notifyOwner(c, existing.UserID, "Reservation cancelled",
			fmt.Sprintf("Your reservation %q has been cancelled.", existing.Title))

		var res dto.ReservationResponse
		res.FromModel(cancelled)
		s.publishEvent(c, eventReservationCancelled, res)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		s.invalidateListCaches(c)
	}()

	return nil
}

func (s *serviceImpl) afterUpdate(ctx context.Context, user string, before model.Reservation, updatedFields map[string]any) {
	go func() {
		c := context.WithoutCancel(ctx)

		s.recordAudit(c, user, constant.AuditActionUpdate, before.ID, before, updatedFields)

		var res dto.ReservationResponse
		res.FromModel(before)
		s.publishEvent(c, eventReservationUpdated, res)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, before.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		s.invalidateListCaches(c)
	}()
}

func (s *serviceImpl) recordAudit(ctx context.Context, actor, action, entityID string, oldValues, newValues any) {
	if err := s.audit.Record(ctx, actor, action, model.EntityName, entityID, oldValues, newValues); err != nil {
		log.Error().Err(err).Str("entity_id", entityID).Msg("failed to record audit entry")
	}
}

func (s *serviceImpl) notifyOwner(ctx context.Context, userID, title, message string) {
	if err := s.notifier.Notify(ctx, userID, title, message, constant.NotificationTypeInfo, nil); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to create notification")
	}
}

type reservationEvent struct {
	Type        string                  `json:"type"`
	Reservation dto.ReservationResponse `json:"reservation"`
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, res dto.ReservationResponse) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := kafka.Message{
		Key:   res.ID,
		Value: reservationEvent{Type: eventType, Reservation: res},
	}

	if err := s.kafka.SendMessages(ctx, constant.KafkaTopicReservationEvents, event); err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to publish reservation event")
	}
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(ctx, s.cache, cacheCountReservation)
}

func activeRoomFilter(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				Field:    roomModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    roomModel.TableName,
			},
		},
	}
}
