package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobsbot/internal/bot"
	"jobsbot/internal/config"
	"jobsbot/internal/scrape/rutgers"
)

func boardHTML(n int) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="search_results">`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `
<div class="job-item job-item-posting">
  <div class="job-title col-md-4"><h3><a href="/postings/%d">Job %d</a></h3></div>
  <div class="col-md-8">
    <div class="tbody-cell col-6">Dept %d</div>
    <div class="tbody-cell col-6">24AB%04d</div>
    <div class="tbody-cell col-6">New Brunswick</div>
  </div>
</div>`, i, i, i, i)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

type fixture struct {
	board   *httptest.Server
	hits    *atomic.Int32
	handler http.Handler
}

func newFixture(t *testing.T, listings int, status int) fixture {
	t.Helper()
	hits := &atomic.Int32{}
	board := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte(boardHTML(listings)))
	}))
	t.Cleanup(board.Close)

	cfg := config.Defaults()
	cfg.Board.BaseURL = board.URL
	scraper := rutgers.New(cfg.Board.Scraper(), nil)

	h := NewHandler(Deps{
		Cfg:      cfg,
		Router:   bot.NewRouter(cfg, scraper, nil),
		Searcher: scraper,
	})
	return fixture{board: board, hits: hits, handler: h}
}

func lexEvent(campus string) string {
	slot := "null"
	if campus != "" {
		slot = fmt.Sprintf(`{"value":{"originalValue":%q,"interpretedValue":%q}}`, campus, campus)
	}
	return fmt.Sprintf(`{"sessionId":"abc","sessionState":{"intent":{"name":"SearchJobs","state":"InProgress","slots":{"campus":%s,"keyword":null}}}}`, slot)
}

func postWebhook(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, bot.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp bot.Response
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestWebhook_NewBrunswickThreeListings(t *testing.T) {
	f := newFixture(t, 3, http.StatusOK)

	rec, resp := postWebhook(t, f.handler, lexEvent("New Brunswick"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	require.Len(t, resp.Messages, 1)
	msg := resp.Messages[0].Content
	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, fmt.Sprintf("* Job 1 (Dept 1, New Brunswick) - %s/postings/1", f.board.URL), lines[1])
	assert.Equal(t, fmt.Sprintf("* Job 3 (Dept 3, New Brunswick) - %s/postings/3", f.board.URL), lines[3])
	assert.Equal(t, fmt.Sprintf("You can visit %s/ for more details.", f.board.URL), lines[4])
	assert.Equal(t, bot.StateFulfilled, resp.SessionState.Intent.State)
	assert.Equal(t, int32(1), f.hits.Load())
}

func TestWebhook_UnknownCampusNoRequest(t *testing.T) {
	f := newFixture(t, 3, http.StatusOK)

	rec, resp := postWebhook(t, f.handler, lexEvent("Atlantis"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.Messages[0].Content, "I don't recognize 'Atlantis'")
	assert.Equal(t, int32(0), f.hits.Load())
}

func TestWebhook_NoCampusReprompts(t *testing.T) {
	f := newFixture(t, 3, http.StatusOK)

	rec, resp := postWebhook(t, f.handler, lexEvent(""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bot.StateInProgress, resp.SessionState.Intent.State)
	assert.Equal(t, bot.DialogElicitSlot, resp.SessionState.DialogAction.Type)
	assert.Equal(t, int32(0), f.hits.Load())
}

func TestWebhook_BoardDown(t *testing.T) {
	f := newFixture(t, 0, http.StatusServiceUnavailable)

	_, resp := postWebhook(t, f.handler, lexEvent("Newark"))
	assert.Contains(t, resp.Messages[0].Content, "trouble connecting to the job site")
	assert.Equal(t, int32(1), f.hits.Load())
}

func TestWebhook_BadRequests(t *testing.T) {
	f := newFixture(t, 0, http.StatusOK)

	rec, _ := postWebhook(t, f.handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, CodeInvalidJSON, apiErr.Error.Code)
	assert.NotEmpty(t, apiErr.Error.RequestID)

	rec, _ = postWebhook(t, f.handler, `{"sessionState":{"intent":{}}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestSearch_Endpoint(t *testing.T) {
	f := newFixture(t, 7, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/search?campus=camden&keyword=dept", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Jobs, 7)
	assert.Equal(t, "2", got.Query.CampusID)
	assert.Equal(t, 5, strings.Count(got.Reply, "\n* "))
	for _, j := range got.Jobs {
		assert.NotContains(t, j.DepartmentCampus, "24AB")
	}
}

func TestSearch_Errors(t *testing.T) {
	f := newFixture(t, 0, http.StatusBadGateway)

	req := httptest.NewRequest(http.MethodGet, "/search?campus=Atlantis", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), CodeUnknownCampus)

	req = httptest.NewRequest(http.MethodGet, "/search?campus=Newark", nil)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), CodeFetchFailed)
}

func TestHealthAndConfig(t *testing.T) {
	f := newFixture(t, 0, http.StatusOK)

	for _, path := range []string{"/health", "/config", "/config/validate"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/config/validate", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	var vr config.Validation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vr))
	assert.True(t, vr.OK())
}

func TestRecoverMiddleware(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}), RequestID, Recover(nopLog()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), CodeInternal)
}

func TestRequestID_Propagates(t *testing.T) {
	var seen string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}), RequestID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func nopLog() *zap.SugaredLogger { return zap.NewNop().Sugar() }
