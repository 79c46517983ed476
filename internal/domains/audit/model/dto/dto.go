package dto

import (
	"resa/internal/domains/audit/model"
	"resa/shared"
	"resa/shared/constant"
	"resa/shared/timezone"
)

type AuditLogResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	OldValues  *string `json:"old_values,omitempty"`
	NewValues  *string `json:"new_values,omitempty"`
	IPAddress  *string `json:"ip_address,omitempty"`
	UserAgent  *string `json:"user_agent,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func (r *AuditLogResponse) FromModel(model model.AuditLog) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Action = model.Action
	r.EntityType = model.EntityType
	r.EntityID = model.EntityID
	r.OldValues = model.OldValues
	r.NewValues = model.NewValues
	r.IPAddress = model.IPAddress
	r.UserAgent = model.UserAgent
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetAuditLogsResponse struct {
	Logs      []AuditLogResponse `json:"logs"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetAuditLogsResponse) FromModels(models []model.AuditLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]AuditLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}
