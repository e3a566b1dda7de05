package handlers

import (
	"net/http"
	"testing"

	"github.com/atlascmdb/atlas/internal/database"
)

type logListResponse struct {
	Data       []database.AuditLog `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

func seedLogs(t *testing.T) {
	t.Helper()
	fixtures := []database.AuditLog{
		{Action: database.AuditActionCreate, Entity: "config_item", EntityID: "u-1", Actor: "admin", Success: true},
		{Action: database.AuditActionDelete, Entity: "config_item", EntityID: "u-2", Actor: "admin", Success: false, Message: "item not found"},
		{Action: database.AuditActionTrigger, Entity: "report", EntityID: "inventory", Actor: "admin", Success: true},
	}
	for i := range fixtures {
		if err := database.DB.Create(&fixtures[i]).Error; err != nil {
			t.Fatalf("failed to seed audit log: %v", err)
		}
	}
}

func TestLogs_List(t *testing.T) {
	mux := setupTestAPI(t)
	seedLogs(t)

	rec := do(t, mux, "GET", "/api/logs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp logListResponse
	decodeBody(t, rec, &resp)
	if len(resp.Data) != 3 {
		t.Errorf("expected 3 logs, got %d", len(resp.Data))
	}
}

func TestLogs_Filters(t *testing.T) {
	mux := setupTestAPI(t)
	seedLogs(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"by entity", "?entity=config_item", 2},
		{"by action", "?action=trigger", 1},
		{"by success", "?success=false", 1},
		{"combined", "?entity=config_item&success=true", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, "GET", "/api/logs"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var resp logListResponse
			decodeBody(t, rec, &resp)
			if len(resp.Data) != tt.want {
				t.Errorf("expected %d logs, got %d", tt.want, len(resp.Data))
			}
		})
	}
}

func TestLogs_ReadOnly(t *testing.T) {
	mux := setupTestAPI(t)

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		rec := do(t, mux, method, "/api/logs", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for %s, got %d", method, rec.Code)
		}
	}
}
