package dto

import (
	"resa/internal/domains/notification/model"
	"resa/shared/constant"
	"resa/shared/timezone"
)

type NotificationResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	Link      *string `json:"link,omitempty"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"created_at"`
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Title = model.Title
	r.Message = model.Message
	r.Type = model.Type
	r.Link = model.Link
	r.Read = model.Read
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, unread int) {
	r.UnreadCount = unread

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}
