package httpapi

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"jobsbot/internal/bot"
	"jobsbot/internal/domain"
	"jobsbot/internal/scrape"
	"jobsbot/internal/scrape/types"
)

// SearchHandler runs one search outside the chat flow and returns the
// raw postings alongside the rendered chat reply.
type SearchHandler struct {
	Searcher  types.Searcher
	Formatter bot.Formatter
	Log       *zap.SugaredLogger
}

type searchResponse struct {
	Query types.SearchQuery   `json:"query"`
	Jobs  []domain.JobPosting `json:"jobs"`
	Reply string              `json:"reply"`
}

// Search handles GET /search?campus=...&keyword=...
func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	campus := r.URL.Query().Get("campus")
	keyword := r.URL.Query().Get("keyword")

	q, err := scrape.BuildQuery(campus, keyword)
	if errors.Is(err, domain.ErrUnknownCampus) {
		WriteError(w, r, http.StatusBadRequest, CodeUnknownCampus, err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, CodeBadQuery, err.Error())
		return
	}

	jobs, err := h.Searcher.Fetch(r.Context(), q)
	if err != nil {
		h.Log.Warnw("search fetch failed", "request_id", RequestIDFrom(r.Context()), "err", err)
		if errors.Is(err, types.ErrFetchFailed) {
			WriteError(w, r, http.StatusBadGateway, CodeFetchFailed, "job board unavailable")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	if jobs == nil {
		jobs = []domain.JobPosting{}
	}
	WriteJSON(w, http.StatusOK, searchResponse{
		Query: q,
		Jobs:  jobs,
		Reply: h.Formatter.Format(jobs, nil, campus, keyword),
	})
}
