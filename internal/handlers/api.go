package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/atlascmdb/atlas/internal/audit"
	"github.com/atlascmdb/atlas/internal/notify"
	"github.com/atlascmdb/atlas/internal/webhook"
)

// APIHandler handles the dashboard API endpoints.
type APIHandler struct {
	recorder      *audit.Recorder
	webhookClient *webhook.Client
	notifier      *notify.SlackNotifier
	events        *EventHub
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(recorder *audit.Recorder, webhookClient *webhook.Client, notifier *notify.SlackNotifier, events *EventHub) *APIHandler {
	return &APIHandler{
		recorder:      recorder,
		webhookClient: webhookClient,
		notifier:      notifier,
		events:        events,
	}
}

// SetupRoutes sets up all API routes.
func (h *APIHandler) SetupRoutes(mux *http.ServeMux) {
	// Configuration items
	mux.HandleFunc("/api/items", h.handleItems)
	mux.HandleFunc("/api/items/", h.handleItemByID)

	// Incidents
	mux.HandleFunc("/api/incidents", h.handleIncidents)
	mux.HandleFunc("/api/incidents/", h.handleIncidentByID)

	// Users
	mux.HandleFunc("/api/users", h.handleUsers)
	mux.HandleFunc("/api/users/", h.handleUserByID)

	// Settings
	mux.HandleFunc("/api/settings/webhooks", h.handleWebhookSettings)
	mux.HandleFunc("/api/settings/notifications", h.handleNotificationSettings)

	// Audit trail
	mux.HandleFunc("/api/logs", h.handleLogs)

	// Relationship graph
	mux.HandleFunc("/api/graph", h.handleGraph)

	// Report trigger
	mux.HandleFunc("/api/reports", h.handleReports)

	// Realtime event feed
	if h.events != nil {
		mux.HandleFunc("/api/events", h.events.HandleWebSocket)
	}
}

// pathID extracts a numeric ID from a path like /api/items/42.
func pathID(path, prefix string) (uint, bool) {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
