package handlers

import (
	"net/http"
	"time"
)

// Checker é qualquer dependência que sabe dizer se está configurada.
type Checker interface {
	Configured() bool
}

type HealthHandler struct {
	Dependencies map[string]Checker
	StartTime    time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(deps map[string]Checker) *HealthHandler {
	return &HealthHandler{
		Dependencies: deps,
		StartTime:    time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	for name, checker := range h.Dependencies {
		if checker != nil && checker.Configured() {
			deps[name] = "configured"
		} else {
			deps[name] = "not configured"
		}
	}

	// O Attio é obrigatório; sem ele o serviço está degradado.
	status := "healthy"
	if deps["attio"] != "configured" {
		status = "degraded"
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	if status == "degraded" {
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
