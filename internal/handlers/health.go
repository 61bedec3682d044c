package handlers

import (
	"context"
	"net/http"
	"time"
)

// Check pings one backing service.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	checks  []Check
	timeout time.Duration
}

func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (h *HealthHandler) inspect(ctx context.Context) healthResponse {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	response := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]string, len(h.checks)),
	}
	for _, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			response.Services[c.Name] = "unhealthy"
			response.Status = "degraded"
			continue
		}
		response.Services[c.Name] = "healthy"
	}
	return response
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := h.inspect(r.Context())
	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.inspect(r.Context()).Status != "healthy" {
		http.Error(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
