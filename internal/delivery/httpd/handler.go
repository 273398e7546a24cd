package httpd

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/schooldesk/neis-dashboard/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Handler struct {
	dashboardService  service.DashboardService
	assessmentService service.AssessmentService
	templates         *template.Template
	logger            zerolog.Logger
}

func NewHandler(
	dashboardService service.DashboardService,
	assessmentService service.AssessmentService,
	logger zerolog.Logger,
) (*Handler, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handler{
		dashboardService:  dashboardService,
		assessmentService: assessmentService,
		templates:         templates,
		logger:            logger,
	}, nil
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Get("/", h.Dashboard)
	router.Get("/assess", h.ListAssessments)
	router.Post("/assess", h.CreateAssessment)
	router.Get("/api/assess", h.ListAssessmentsJSON)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "school-dashboard",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// render buffers template output so a mid-render failure still produces a
// clean error response instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("Failed to render template")
		writeError(w, http.StatusInternalServerError, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}
