package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/atlascmdb/atlas/internal/api"
	"github.com/atlascmdb/atlas/internal/database"
	"github.com/atlascmdb/atlas/internal/middleware"
	"gorm.io/gorm"
)

// itemOrderColumns are the columns list requests may order by.
var itemOrderColumns = []string{"name", "type", "status", "environment", "created_at", "updated_at"}

// handleItems handles GET /api/items and POST /api/items
func (h *APIHandler) handleItems(w http.ResponseWriter, r *http.Request) {
	db := database.GetDB()

	switch r.Method {
	case http.MethodGet:
		query := db.Model(&database.ConfigItem{}).Preload("Owner")
		query = applyItemFilters(query, r)
		query = query.Order(api.ParseOrder(r, itemOrderColumns, "created_at desc"))

		var total int64
		countQuery := applyItemFilters(db.Model(&database.ConfigItem{}), r)
		countQuery.Count(&total)

		params := api.ParsePagination(r)
		var items []database.ConfigItem
		if err := query.Offset(params.Offset()).Limit(params.PerPage).Find(&items).Error; err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to get items")
			return
		}

		api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
			Data: items,
			Pagination: api.PaginationMeta{
				Page:       params.Page,
				PerPage:    params.PerPage,
				Total:      total,
				TotalPages: params.TotalPages(total),
			},
		})

	case http.MethodPost:
		var req api.CreateItemRequest
		if !api.Bind(w, r, &req) {
			return
		}

		item := database.ConfigItem{
			Name:        req.Name,
			Type:        database.ItemType(req.Type),
			Status:      database.ItemStatusActive,
			Environment: database.EnvironmentProduction,
			OwnerID:     req.OwnerID,
			Description: req.Description,
			Attributes:  req.Attributes,
		}
		if req.Status != "" {
			item.Status = database.ItemStatus(req.Status)
		}
		if req.Environment != "" {
			item.Environment = database.ItemEnvironment(req.Environment)
		}

		actor := middleware.GetUserFromContext(r.Context())
		err := db.Create(&item).Error
		h.recorder.Record(database.AuditActionCreate, "config_item", item.UUID, actor, err, database.JSONB{
			"name": req.Name,
			"type": req.Type,
		})
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to create item")
			return
		}

		api.RespondJSON(w, http.StatusCreated, item)

	default:
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// applyItemFilters narrows an item query by the supported query
// parameters: type, status, environment, owner_id and q (substring
// match on name).
func applyItemFilters(query *gorm.DB, r *http.Request) *gorm.DB {
	q := r.URL.Query()
	if v := q.Get("type"); v != "" {
		query = query.Where("type = ?", v)
	}
	if v := q.Get("status"); v != "" {
		query = query.Where("status = ?", v)
	}
	if v := q.Get("environment"); v != "" {
		query = query.Where("environment = ?", v)
	}
	if v := q.Get("owner_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			query = query.Where("owner_id = ?", uint(id))
		}
	}
	if v := q.Get("q"); v != "" {
		query = query.Where("name LIKE ?", "%"+v+"%")
	}
	return query
}

// handleItemByID handles GET, PUT and DELETE /api/items/:id
func (h *APIHandler) handleItemByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/items/")
	if !ok {
		api.RespondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	db := database.GetDB()
	actor := middleware.GetUserFromContext(r.Context())

	var item database.ConfigItem
	if err := db.Preload("Owner").Preload("Incidents").First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			api.RespondError(w, http.StatusNotFound, "Item not found")
		} else {
			api.RespondError(w, http.StatusInternalServerError, "Failed to get item")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		api.RespondJSON(w, http.StatusOK, item)

	case http.MethodPut:
		var req api.UpdateItemRequest
		if !api.Bind(w, r, &req) {
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Type != nil {
			updates["type"] = *req.Type
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if req.Environment != nil {
			updates["environment"] = *req.Environment
		}
		if req.OwnerID != nil {
			if *req.OwnerID == 0 {
				// Owner ID 0 detaches the item from its owner; row IDs
				// start at 1, so 0 is never a real user.
				updates["owner_id"] = nil
			} else {
				updates["owner_id"] = *req.OwnerID
			}
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Attributes != nil {
			updates["attributes"] = *req.Attributes
		}

		err := db.Model(&item).Updates(updates).Error
		h.recorder.Record(database.AuditActionUpdate, "config_item", item.UUID, actor, err, database.JSONB{
			"id": fmt.Sprintf("%d", item.ID),
		})
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to update item")
			return
		}

		db.Preload("Owner").First(&item, id)
		api.RespondJSON(w, http.StatusOK, item)

	case http.MethodDelete:
		err := db.Delete(&item).Error
		h.recorder.Record(database.AuditActionDelete, "config_item", item.UUID, actor, err, database.JSONB{
			"name": item.Name,
		})
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to delete item")
			return
		}
		api.RespondNoContent(w)

	default:
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
