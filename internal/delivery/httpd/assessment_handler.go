package httpd

import (
	"net/http"

	"github.com/schooldesk/neis-dashboard/internal/models"
)

func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.assessmentService.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list assessments")
		writeError(w, http.StatusInternalServerError, "Failed to list assessments")
		return
	}

	h.render(w, "assess.html", map[string]interface{}{
		"Assessments": assessments,
	})
}

func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	// Fields are stored exactly as submitted; absent ones come back empty.
	req := &models.CreateAssessmentRequest{
		Subject: r.PostFormValue("subject"),
		Title:   r.PostFormValue("title"),
		DueDate: r.PostFormValue("due_date"),
		Detail:  r.PostFormValue("detail"),
	}

	if _, err := h.assessmentService.Create(r.Context(), req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to create assessment")
		writeError(w, http.StatusInternalServerError, "Failed to create assessment")
		return
	}

	http.Redirect(w, r, "/assess", http.StatusSeeOther)
}

func (h *Handler) ListAssessmentsJSON(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.assessmentService.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list assessments")
		writeError(w, http.StatusInternalServerError, "Failed to list assessments")
		return
	}

	writeJSON(w, http.StatusOK, assessments)
}
