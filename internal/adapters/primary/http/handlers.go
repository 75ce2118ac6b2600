package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fredcamaral/simreport/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// HealthResponse is the body of /api/health
type HealthResponse struct {
	Status  string             `json:"status"`
	Clients int                `json:"clients"`
	Metrics monitoring.Metrics `json:"metrics"`
	StoreStatus
}

// handleReportPage serves the live reloading HTML report
func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	s.renderReport(w, r, entities.FormatHTML)
}

// handleReport serves the report in ?format= (json by default)
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := entities.OutputFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entities.FormatJSON
	}
	if err := (entities.ReportConfig{Format: string(format)}).Validate(); err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}
	s.renderReport(w, r, format)
}

// handleReportText serves the fixed width text report
func (s *Server) handleReportText(w http.ResponseWriter, r *http.Request) {
	s.renderReport(w, r, entities.FormatText)
}

func (s *Server) renderReport(w http.ResponseWriter, r *http.Request, format entities.OutputFormat) {
	renderer, err := s.renderers(format)
	if err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := s.store.Render(r.Context(), &buf, renderer); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNoReport) {
			status = http.StatusServiceUnavailable
		}
		s.handleError(w, err, status)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("Failed to write report response", slog.String("error", err.Error()))
	}
}

// handleHealth reports whether a report is available and the last build error
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.store.Status()

	health := HealthResponse{
		Status:      "ok",
		Clients:     s.connMgr.Count(),
		Metrics:     s.monitor.Snapshot(),
		StoreStatus: status,
	}
	if status.LastError != "" {
		health.Status = "degraded"
	}

	s.writeJSON(w, health)
}

// handleError handles error responses with sanitized messages
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	var message string
	switch status {
	case http.StatusBadRequest:
		message = "Invalid request"
	case http.StatusServiceUnavailable:
		message = "Report not available yet"
	case http.StatusInternalServerError:
		message = "Internal server error"
	default:
		message = "An error occurred"
	}

	s.logger.Error("HTTP error", slog.Int("status", status), slog.String("error", err.Error()))

	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		s.logger.Error("Failed to encode error response", slog.String("error", encodeErr.Error()))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response", slog.String("error", err.Error()))
	}
}
