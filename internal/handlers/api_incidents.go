package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/atlascmdb/atlas/internal/api"
	"github.com/atlascmdb/atlas/internal/database"
	"github.com/atlascmdb/atlas/internal/middleware"
	"gorm.io/gorm"
)

var incidentOrderColumns = []string{"title", "severity", "status", "created_at", "updated_at"}

// handleIncidents handles GET /api/incidents and POST /api/incidents
func (h *APIHandler) handleIncidents(w http.ResponseWriter, r *http.Request) {
	db := database.GetDB()

	switch r.Method {
	case http.MethodGet:
		query := db.Model(&database.Incident{}).Preload("ConfigItem").Preload("ReportedBy")
		query = applyIncidentFilters(query, r)
		query = query.Order(api.ParseOrder(r, incidentOrderColumns, "created_at desc"))

		var total int64
		applyIncidentFilters(db.Model(&database.Incident{}), r).Count(&total)

		params := api.ParsePagination(r)
		var incidents []database.Incident
		if err := query.Offset(params.Offset()).Limit(params.PerPage).Find(&incidents).Error; err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to get incidents")
			return
		}

		api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
			Data: incidents,
			Pagination: api.PaginationMeta{
				Page:       params.Page,
				PerPage:    params.PerPage,
				Total:      total,
				TotalPages: params.TotalPages(total),
			},
		})

	case http.MethodPost:
		var req api.CreateIncidentRequest
		if !api.Bind(w, r, &req) {
			return
		}

		// The incident must reference an existing item.
		var item database.ConfigItem
		if err := db.First(&item, req.ConfigItemID).Error; err != nil {
			api.RespondError(w, http.StatusUnprocessableEntity, "Referenced config item does not exist")
			return
		}

		incident := database.Incident{
			Title:        req.Title,
			Description:  req.Description,
			Severity:     database.IncidentSeverityMedium,
			Status:       database.IncidentStatusOpen,
			ConfigItemID: req.ConfigItemID,
			ReportedByID: req.ReportedByID,
		}
		if req.Severity != "" {
			incident.Severity = database.IncidentSeverity(req.Severity)
		}

		actor := middleware.GetUserFromContext(r.Context())
		err := db.Create(&incident).Error
		h.recorder.Record(database.AuditActionCreate, "incident", fmt.Sprintf("%d", incident.ID), actor, err, database.JSONB{
			"title":     req.Title,
			"item_uuid": item.UUID,
		})
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to create incident")
			return
		}

		// Best-effort Slack notification; failure is logged, not retried.
		if h.notifier != nil {
			if settings, serr := database.GetNotificationSettings(); serr == nil {
				if nerr := h.notifier.IncidentCreated(settings, &incident, item.Name); nerr != nil {
					log.Printf("Incident notification failed: %v", nerr)
				}
			}
		}

		api.RespondJSON(w, http.StatusCreated, incident)

	default:
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func applyIncidentFilters(query *gorm.DB, r *http.Request) *gorm.DB {
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		query = query.Where("status = ?", v)
	}
	if v := q.Get("severity"); v != "" {
		query = query.Where("severity = ?", v)
	}
	if v := q.Get("config_item_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			query = query.Where("config_item_id = ?", uint(id))
		}
	}
	return query
}

// handleIncidentByID handles GET, PUT and DELETE /api/incidents/:id
func (h *APIHandler) handleIncidentByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/incidents/")
	if !ok {
		api.RespondError(w, http.StatusBadRequest, "Invalid incident ID")
		return
	}

	db := database.GetDB()
	actor := middleware.GetUserFromContext(r.Context())

	var incident database.Incident
	if err := db.Preload("ConfigItem").Preload("ReportedBy").First(&incident, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			api.RespondError(w, http.StatusNotFound, "Incident not found")
		} else {
			api.RespondError(w, http.StatusInternalServerError, "Failed to get incident")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		api.RespondJSON(w, http.StatusOK, incident)

	case http.MethodPut:
		var req api.UpdateIncidentRequest
		if !api.Bind(w, r, &req) {
			return
		}

		updates := make(map[string]interface{})
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Severity != nil {
			updates["severity"] = *req.Severity
		}
		if req.Status != nil {
			updates["status"] = *req.Status
			// Stamp resolution time on transition into resolved.
			if database.IncidentStatus(*req.Status) == database.IncidentStatusResolved && incident.ResolvedAt == nil {
				now := time.Now()
				updates["resolved_at"] = &now
			}
		}

		err := db.Model(&incident).Updates(updates).Error
		h.recorder.Record(database.AuditActionUpdate, "incident", fmt.Sprintf("%d", incident.ID), actor, err, nil)
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to update incident")
			return
		}

		db.Preload("ConfigItem").Preload("ReportedBy").First(&incident, id)
		api.RespondJSON(w, http.StatusOK, incident)

	case http.MethodDelete:
		err := db.Delete(&incident).Error
		h.recorder.Record(database.AuditActionDelete, "incident", fmt.Sprintf("%d", incident.ID), actor, err, database.JSONB{
			"title": incident.Title,
		})
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to delete incident")
			return
		}
		api.RespondNoContent(w)

	default:
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
