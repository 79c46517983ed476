package notification

import (
	"net/http"
	"resa/infras/otel"
	"resa/internal/domains/notification/service"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/failure"
	"resa/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMyNotifications)
		routerGroup.Get("/unread-count", handler.GetUnreadCount)
		routerGroup.Patch("/{id}/read", handler.MarkNotificationRead)
		routerGroup.Patch("/read-all", handler.MarkAllNotificationsRead)
		routerGroup.Delete("/{id}", handler.DeleteNotification)
	})
}

// GetMyNotifications retrieves the notifications of the authenticated user.
// @Summary Get my notifications
// @Description Retrieve notifications for the currently authenticated user, newest first.
// @Tags Notification
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse] "List of notifications"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyNotifications")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		scope.TraceError(nil)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	notifications, err := handler.service.GetMine(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notifications retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, notifications)
}

// GetUnreadCount returns the number of unread notifications.
// @Summary Get unread notification count
// @Description Count the unread notifications of the currently authenticated user.
// @Tags Notification
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[int] "Unread notification count"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/unread-count [get]
// @Security BearerAuth
func (handler *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnreadCount")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		scope.TraceError(nil)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	count, err := handler.service.UnreadCount(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count unread notifications")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, count)
}

// MarkNotificationRead marks one notification as read.
// @Summary Mark a notification as read
// @Description Mark a single notification of the authenticated user as read.
// @Tags Notification
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification marked as read"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkNotificationRead")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		scope.TraceError(nil)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, id, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark notification as read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notification marked as read by user " + userID)

	response.WithMessage(w, http.StatusOK, "Notification marked as read")
}

// MarkAllNotificationsRead marks every notification of the user as read.
// @Summary Mark all notifications as read
// @Description Mark all notifications of the authenticated user as read.
// @Tags Notification
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "All notifications marked as read"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/read-all [patch]
// @Security BearerAuth
func (handler *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkAllNotificationsRead")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		scope.TraceError(nil)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	if err := handler.service.MarkAllRead(ctx, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark all notifications as read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("All notifications marked as read by user " + userID)

	response.WithMessage(w, http.StatusOK, "All notifications marked as read")
}

// DeleteNotification deletes one notification of the authenticated user.
// @Summary Delete a notification
// @Description Delete a single notification of the authenticated user.
// @Tags Notification
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification deleted"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteNotification")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		scope.TraceError(nil)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete notification")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notification deleted by user " + userID)

	response.WithMessage(w, http.StatusOK, "Notification deleted")
}
