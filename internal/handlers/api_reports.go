package handlers

import (
	"net/http"
	"time"

	"github.com/atlascmdb/atlas/internal/api"
	"github.com/atlascmdb/atlas/internal/database"
	"github.com/atlascmdb/atlas/internal/middleware"
)

// reportRequestPayload is the JSON body posted to the report webhook.
type reportRequestPayload struct {
	Event       string         `json:"event"`
	ReportType  string         `json:"report_type"`
	Recipient   string         `json:"recipient,omitempty"`
	Filters     database.JSONB `json:"filters,omitempty"`
	RequestedBy string         `json:"requested_by"`
	RequestedAt time.Time      `json:"requested_at"`
}

// handleReports handles POST /api/reports: a single unretried POST of
// a report request to the configured workflow webhook.
func (h *APIHandler) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req api.TriggerReportRequest
	if !api.Bind(w, r, &req) {
		return
	}

	webhookURL := database.GetWebhookURL(database.SettingKeyReportWebhookURL)
	if webhookURL == "" {
		api.RespondErrorWithCode(w, http.StatusServiceUnavailable, "webhook_unconfigured",
			"Report webhook URL is not configured in settings")
		return
	}

	actor := middleware.GetUserFromContext(r.Context())
	payload := reportRequestPayload{
		Event:       "report_requested",
		ReportType:  req.ReportType,
		Recipient:   req.Recipient,
		Filters:     req.Filters,
		RequestedBy: actor,
		RequestedAt: time.Now().UTC(),
	}

	_, err := h.webhookClient.Post(r.Context(), webhookURL, payload)
	h.recorder.Record(database.AuditActionTrigger, "report", req.ReportType, actor, err, database.JSONB{
		"recipient": req.Recipient,
	})
	if err != nil {
		api.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	api.RespondJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":      "sent",
		"report_type": req.ReportType,
	})
}
