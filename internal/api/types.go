package api

import (
	"github.com/atlascmdb/atlas/internal/database"
)

// ========== Configuration Item Types ==========

// CreateItemRequest is the request body for POST /api/items.
type CreateItemRequest struct {
	Name        string         `json:"name" validate:"required,min=1,max=255"`
	Type        string         `json:"type" validate:"required,oneof=server workstation network_device software license service"`
	Status      string         `json:"status" validate:"omitempty,oneof=active inactive maintenance retired"`
	Environment string         `json:"environment" validate:"omitempty,oneof=production staging development testing"`
	OwnerID     *uint          `json:"owner_id"`
	Description string         `json:"description" validate:"omitempty,max=4096"`
	Attributes  database.JSONB `json:"attributes"`
}

// UpdateItemRequest is the request body for PUT /api/items/:id.
// Pointer fields distinguish "not provided" from zero values.
type UpdateItemRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Type        *string         `json:"type" validate:"omitempty,oneof=server workstation network_device software license service"`
	Status      *string         `json:"status" validate:"omitempty,oneof=active inactive maintenance retired"`
	Environment *string         `json:"environment" validate:"omitempty,oneof=production staging development testing"`
	OwnerID     *uint           `json:"owner_id"`
	Description *string         `json:"description" validate:"omitempty,max=4096"`
	Attributes  *database.JSONB `json:"attributes"`
}

// ========== Incident Types ==========

// CreateIncidentRequest is the request body for POST /api/incidents.
type CreateIncidentRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=255"`
	Description  string `json:"description" validate:"omitempty,max=4096"`
	Severity     string `json:"severity" validate:"omitempty,oneof=critical high medium low"`
	ConfigItemID uint   `json:"config_item_id" validate:"required"`
	ReportedByID *uint  `json:"reported_by_id"`
}

// UpdateIncidentRequest is the request body for PUT /api/incidents/:id.
type UpdateIncidentRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=4096"`
	Severity    *string `json:"severity" validate:"omitempty,oneof=critical high medium low"`
	Status      *string `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
}

// ========== User Types ==========

// CreateUserRequest is the request body for POST /api/users.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=128"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin operator viewer"`
}

// UpdateUserRequest is the request body for PUT /api/users/:id.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=128"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=admin operator viewer"`
}

// ========== Settings Types ==========

// UpdateWebhookSettingsRequest is the request body for PUT /api/settings/webhooks.
type UpdateWebhookSettingsRequest struct {
	ReportWebhookURL   *string `json:"report_webhook_url" validate:"omitempty,url"`
	RegisterWebhookURL *string `json:"register_webhook_url" validate:"omitempty,url"`
}

// WebhookSettingsResponse is the response body for GET /api/settings/webhooks.
type WebhookSettingsResponse struct {
	ReportWebhookURL   string `json:"report_webhook_url"`
	RegisterWebhookURL string `json:"register_webhook_url"`
}

// UpdateNotificationSettingsRequest is the request body for PUT /api/settings/notifications.
type UpdateNotificationSettingsRequest struct {
	BotToken *string `json:"bot_token"`
	Channel  *string `json:"channel"`
	Enabled  *bool   `json:"enabled"`
}

// ========== Report Types ==========

// TriggerReportRequest is the request body for POST /api/reports.
type TriggerReportRequest struct {
	ReportType string         `json:"report_type" validate:"required,oneof=inventory incidents full"`
	Recipient  string         `json:"recipient" validate:"omitempty,email"`
	Filters    database.JSONB `json:"filters"`
}

// ========== Pagination Types ==========

// PaginationMeta contains pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResponse wraps a list response with pagination metadata.
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}
