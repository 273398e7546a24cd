package httpd

import (
	"net/http"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := map[string]interface{}{
		"Today": h.dashboardService.TodayView(ctx),
		"Week":  h.dashboardService.WeekView(ctx),
	}

	h.render(w, "index.html", data)
}
