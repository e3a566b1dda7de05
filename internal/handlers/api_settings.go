package handlers

import (
	"net/http"

	"github.com/atlascmdb/atlas/internal/api"
	"github.com/atlascmdb/atlas/internal/database"
	"github.com/atlascmdb/atlas/internal/middleware"
)

// handleWebhookSettings handles GET and PUT /api/settings/webhooks
func (h *APIHandler) handleWebhookSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		api.RespondJSON(w, http.StatusOK, api.WebhookSettingsResponse{
			ReportWebhookURL:   database.GetWebhookURL(database.SettingKeyReportWebhookURL),
			RegisterWebhookURL: database.GetWebhookURL(database.SettingKeyRegisterWebhookURL),
		})

	case http.MethodPut:
		var req api.UpdateWebhookSettingsRequest
		if !api.Bind(w, r, &req) {
			return
		}

		actor := middleware.GetUserFromContext(r.Context())

		if req.ReportWebhookURL != nil {
			err := database.SetSetting(database.SettingKeyReportWebhookURL, *req.ReportWebhookURL)
			h.recorder.Record(database.AuditActionUpdate, "setting", database.SettingKeyReportWebhookURL, actor, err, nil)
			if err != nil {
				api.RespondError(w, http.StatusInternalServerError, "Failed to update report webhook URL")
				return
			}
		}
		if req.RegisterWebhookURL != nil {
			err := database.SetSetting(database.SettingKeyRegisterWebhookURL, *req.RegisterWebhookURL)
			h.recorder.Record(database.AuditActionUpdate, "setting", database.SettingKeyRegisterWebhookURL, actor, err, nil)
			if err != nil {
				api.RespondError(w, http.StatusInternalServerError, "Failed to update register webhook URL")
				return
			}
		}

		api.RespondJSON(w, http.StatusOK, api.WebhookSettingsResponse{
			ReportWebhookURL:   database.GetWebhookURL(database.SettingKeyReportWebhookURL),
			RegisterWebhookURL: database.GetWebhookURL(database.SettingKeyRegisterWebhookURL),
		})

	default:
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleNotificationSettings handles GET and PUT /api/settings/notifications
func (h *APIHandler) handleNotificationSettings(w http.ResponseWriter, r *http.Request) {
	db := database.GetDB()

	switch r.Method {
	case http.MethodGet:
		settings, err := database.GetNotificationSettings()
		if err != nil {
			api.RespondError(w, http.StatusNotFound, "Settings not found")
			return
		}
		api.RespondJSON(w, http.StatusOK, notificationSettingsResponse(settings))

	case http.MethodPut:
		var req api.UpdateNotificationSettingsRequest
		if !api.Bind(w, r, &req) {
			return
		}

		settings, err := database.GetNotificationSettings()
		if err != nil {
			api.RespondError(w, http.StatusNotFound, "Settings not found")
			return
		}

		updates := make(map[string]interface{})
		if req.BotToken != nil {
			updates["bot_token"] = *req.BotToken
		}
		if req.Channel != nil {
			updates["channel"] = *req.Channel
		}
		if req.Enabled != nil {
			updates["enabled"] = *req.Enabled
		}

		actor := middleware.GetUserFromContext(r.Context())
		err = db.Model(settings).Updates(updates).Error
		h.recorder.Record(database.AuditActionUpdate, "setting", "notifications", actor, err, nil)
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to update settings")
			return
		}

		settings, _ = database.GetNotificationSettings()
		api.RespondJSON(w, http.StatusOK, notificationSettingsResponse(settings))

	default:
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// notificationSettingsResponse masks the bot token for display.
func notificationSettingsResponse(settings *database.NotificationSettings) map[string]interface{} {
	return map[string]interface{}{
		"id":            settings.ID,
		"bot_token":     maskToken(settings.BotToken),
		"channel":       settings.Channel,
		"enabled":       settings.Enabled,
		"is_configured": settings.IsConfigured(),
		"created_at":    settings.CreatedAt,
		"updated_at":    settings.UpdatedAt,
	}
}

// maskToken masks a token for display, showing only last 4 characters
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
