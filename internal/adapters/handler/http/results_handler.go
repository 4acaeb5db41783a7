package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type ResultsHandler struct {
	service ports.ResultsService
}

func NewResultsHandler(service ports.ResultsService) *ResultsHandler {
	return &ResultsHandler{
		service: service,
	}
}

// GetResults godoc
// @Summary      Survey results
// @Description  Per-question answer counts. With summarized=true the counts materialised by the summary job are returned instead of live ones.
// @Tags         results
// @Produce      json
// @Param        summarized  query  bool  false  "read materialised counts"
// @Success      200
// @Failure      404
// @Router       /api/surveys/{id}/results [get]
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	summarized, _ := strconv.ParseBool(r.URL.Query().Get("summarized"))

	get := h.service.GetResults
	if summarized {
		get = h.service.GetSummarizedResults
	}

	results, err := get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, results)
}
