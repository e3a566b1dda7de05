package handlers

import (
	"net/http"

	"github.com/atlascmdb/atlas/internal/api"
	"github.com/atlascmdb/atlas/internal/database"
	"gorm.io/gorm"
)

// handleLogs handles GET /api/logs. The audit trail is read-only over
// the API; rows are written by the recorder only.
func (h *APIHandler) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	db := database.GetDB()
	query := applyLogFilters(db.Model(&database.AuditLog{}), r).Order("created_at desc")

	var total int64
	applyLogFilters(db.Model(&database.AuditLog{}), r).Count(&total)

	params := api.ParsePagination(r)
	var logs []database.AuditLog
	if err := query.Offset(params.Offset()).Limit(params.PerPage).Find(&logs).Error; err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to get logs")
		return
	}

	api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
		Data: logs,
		Pagination: api.PaginationMeta{
			Page:       params.Page,
			PerPage:    params.PerPage,
			Total:      total,
			TotalPages: params.TotalPages(total),
		},
	})
}

func applyLogFilters(query *gorm.DB, r *http.Request) *gorm.DB {
	q := r.URL.Query()
	if v := q.Get("entity"); v != "" {
		query = query.Where("entity = ?", v)
	}
	if v := q.Get("action"); v != "" {
		query = query.Where("action = ?", v)
	}
	if v := q.Get("success"); v != "" {
		query = query.Where("success = ?", v == "true")
	}
	return query
}
