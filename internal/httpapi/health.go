package httpapi

import (
	"net/http"
	"time"
)

type healthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthReport struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]healthCheck `json:"checks"`
}

// handleHealth reports overall service health. The database check pings the
// storage substrate; a failed ping makes the whole report unhealthy and the
// response a 503 so load balancers can act on it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := healthReport{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Checks: map[string]healthCheck{
			"server": {Status: "healthy"},
		},
	}

	if err := s.db.PingContext(r.Context()); err != nil {
		report.Status = "unhealthy"
		report.Checks["database"] = healthCheck{Status: "unhealthy", Message: err.Error()}
		respondJSON(w, http.StatusServiceUnavailable, report)
		return
	}
	report.Checks["database"] = healthCheck{Status: "healthy"}

	respondJSON(w, http.StatusOK, report)
}
