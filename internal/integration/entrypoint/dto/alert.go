package dto

import (
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ListAlertsQuery filters GET /alerts.
type ListAlertsQuery struct {
	IsRead *bool `form:"is_read"`
}

// AlertResponse represents an alert in API responses.
type AlertResponse struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	CorrelationKey string         `json:"correlation_key"`
	Payload        map[string]any `json:"payload"`
	IsRead         bool           `json:"is_read"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ToAlertResponse converts a domain Alert entity.
func ToAlertResponse(a *entity.Alert) AlertResponse {
	payload := a.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	return AlertResponse{
		ID:             a.ID.String(),
		Type:           string(a.Type),
		CorrelationKey: a.CorrelationKey,
		Payload:        payload,
		IsRead:         a.IsRead,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ToAlertListResponse converts a list of alerts.
func ToAlertListResponse(alerts []*entity.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, ToAlertResponse(a))
	}
	return out
}
