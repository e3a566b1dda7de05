package handlers

import (
	"net/http"

	"github.com/atlascmdb/atlas/internal/api"
	"github.com/atlascmdb/atlas/internal/database"
	"github.com/atlascmdb/atlas/internal/graph"
)

// handleGraph handles GET /api/graph. The relationship view is built
// in one pass over data fetched in full: items joined to owning users
// plus open incidents.
func (h *APIHandler) handleGraph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	db := database.GetDB()

	var items []database.ConfigItem
	if err := db.Order("id asc").Find(&items).Error; err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to load items")
		return
	}

	var users []database.User
	if err := db.Order("id asc").Find(&users).Error; err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}

	var incidents []database.Incident
	if err := db.Where("status IN ?", []database.IncidentStatus{
		database.IncidentStatusOpen,
		database.IncidentStatusInProgress,
	}).Order("id asc").Find(&incidents).Error; err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to load incidents")
		return
	}

	api.RespondJSON(w, http.StatusOK, graph.Build(items, users, incidents))
}
