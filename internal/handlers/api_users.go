package handlers

import (
	"fmt"
	"net/http"

	"github.com/atlascmdb/atlas/internal/api"
	"github.com/atlascmdb/atlas/internal/database"
	"github.com/atlascmdb/atlas/internal/middleware"
	"gorm.io/gorm"
)

var userOrderColumns = []string{"name", "email", "role", "created_at"}

// handleUsers handles GET /api/users and POST /api/users
func (h *APIHandler) handleUsers(w http.ResponseWriter, r *http.Request) {
	db := database.GetDB()

	switch r.Method {
	case http.MethodGet:
		query := db.Model(&database.User{}).Order(api.ParseOrder(r, userOrderColumns, "name asc"))
		if v := r.URL.Query().Get("role"); v != "" {
			query = query.Where("role = ?", v)
		}

		var total int64
		query.Count(&total)

		params := api.ParsePagination(r)
		var users []database.User
		if err := query.Offset(params.Offset()).Limit(params.PerPage).Find(&users).Error; err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to get users")
			return
		}

		api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
			Data: users,
			Pagination: api.PaginationMeta{
				Page:       params.Page,
				PerPage:    params.PerPage,
				Total:      total,
				TotalPages: params.TotalPages(total),
			},
		})

	case http.MethodPost:
		var req api.CreateUserRequest
		if !api.Bind(w, r, &req) {
			return
		}

		user := database.User{
			Name:  req.Name,
			Email: req.Email,
			Role:  database.UserRoleViewer,
		}
		if req.Role != "" {
			user.Role = database.UserRole(req.Role)
		}

		actor := middleware.GetUserFromContext(r.Context())
		err := db.Create(&user).Error
		h.recorder.Record(database.AuditActionCreate, "user", fmt.Sprintf("%d", user.ID), actor, err, database.JSONB{
			"name": req.Name,
		})
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		api.RespondJSON(w, http.StatusCreated, user)

	default:
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleUserByID handles GET, PUT and DELETE /api/users/:id
func (h *APIHandler) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/users/")
	if !ok {
		api.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	db := database.GetDB()
	actor := middleware.GetUserFromContext(r.Context())

	var user database.User
	if err := db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			api.RespondError(w, http.StatusNotFound, "User not found")
		} else {
			api.RespondError(w, http.StatusInternalServerError, "Failed to get user")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		api.RespondJSON(w, http.StatusOK, user)

	case http.MethodPut:
		var req api.UpdateUserRequest
		if !api.Bind(w, r, &req) {
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.Role != nil {
			updates["role"] = *req.Role
		}

		err := db.Model(&user).Updates(updates).Error
		h.recorder.Record(database.AuditActionUpdate, "user", fmt.Sprintf("%d", user.ID), actor, err, nil)
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to update user")
			return
		}

		db.First(&user, id)
		api.RespondJSON(w, http.StatusOK, user)

	case http.MethodDelete:
		// Detach owned items before removing the user so items are
		// not orphaned behind a dangling owner_id.
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&database.ConfigItem{}).Where("owner_id = ?", user.ID).Update("owner_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&user).Error
		})
		h.recorder.Record(database.AuditActionDelete, "user", fmt.Sprintf("%d", user.ID), actor, err, database.JSONB{
			"name": user.Name,
		})
		if err != nil {
			api.RespondError(w, http.StatusInternalServerError, "Failed to delete user")
			return
		}
		api.RespondNoContent(w)

	default:
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
