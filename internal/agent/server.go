// Package agent implements the local inventory helper: one POST
// endpoint that collects host facts and forwards the registration
// report to the workflow webhook, proxying the outcome as a JSON
// success/failure response.
package agent

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/atlascmdb/atlas/internal/inventory"
	"github.com/atlascmdb/atlas/internal/webhook"
)

// registerResponse is the JSON body returned by POST /register.
type registerResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Report  *inventory.Report `json:"report,omitempty"`
}

// Server is the local helper HTTP server. It handles one registration
// at a time: concurrent requests wait on the mutex.
type Server struct {
	cfg       Config
	collector *inventory.Collector
	client    *webhook.Client

	mu sync.Mutex
}

// NewServer creates an agent server from the given config.
func NewServer(cfg Config) *Server {
	runner := &inventory.ExecRunner{Timeout: cfg.CommandTimeout}
	collector := inventory.NewCollector(runner)
	collector.LicenseScript = cfg.LicenseScript

	return &Server{
		cfg:       cfg,
		collector: collector,
		client:    webhook.NewClientWithTimeout(cfg.WebhookTimeout),
	}
}

// SetupRoutes configures the helper routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/health", s.handleHealth)
}

// handleRegister handles POST /register: collect inventory, POST the
// report to the register webhook, return the outcome. No retry.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond(w, http.StatusMethodNotAllowed, registerResponse{Success: false, Error: "Method not allowed"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.WebhookURL == "" {
		respond(w, http.StatusServiceUnavailable, registerResponse{
			Success: false,
			Error:   "register webhook URL is not configured",
		})
		return
	}

	log.Printf("Registration requested from %s, collecting inventory...", r.RemoteAddr)
	started := time.Now()
	report := s.collector.Collect(r.Context())
	log.Printf("Inventory collected for %s in %s", report.Hostname, time.Since(started).Round(time.Millisecond))

	payload := map[string]interface{}{
		"event":  "machine_registered",
		"report": report,
	}
	if _, err := s.client.Post(r.Context(), s.cfg.WebhookURL, payload); err != nil {
		log.Printf("Registration webhook failed: %v", err)
		respond(w, http.StatusBadGateway, registerResponse{
			Success: false,
			Error:   err.Error(),
			Report:  report,
		})
		return
	}

	respond(w, http.StatusOK, registerResponse{Success: true, Report: report})
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
