package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsbot/internal/bot"
)

const oneListing = `<div id="search_results">
<div class="job-item job-item-posting">
  <div class="job-title col-md-4"><h3><a href="/postings/77">Lab Manager</a></h3></div>
  <div class="col-md-8"><div class="tbody-cell col-6">Chemistry</div><div class="tbody-cell col-6">25LM0077</div></div>
</div></div>`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	var hits atomic.Int32
	board := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(oneListing))
	}))
	defer board.Close()
	t.Setenv("JOBSBOT_BOARD_BASE_URL", board.URL)

	out, err := run(t, "search", "--campus", "Newark", "--keyword", "lab")
	require.NoError(t, err)
	assert.Contains(t, out, "* Lab Manager (Chemistry) - "+board.URL+"/postings/77")
	assert.Equal(t, int32(1), hits.Load())

	out, err = run(t, "search", "--campus", "Atlantis")
	require.NoError(t, err)
	assert.Contains(t, out, "I don't recognize 'Atlantis'")
	assert.Equal(t, int32(1), hits.Load())
}

func TestSearchCommand_BoardDown(t *testing.T) {
	board := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer board.Close()
	t.Setenv("JOBSBOT_BOARD_BASE_URL", board.URL)

	out, err := run(t, "search", "--campus", "Camden")
	require.Error(t, err)
	assert.Contains(t, out, "trouble connecting to the job site")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")
	_, err = os.Stat(path)
	require.NoError(t, err)

	out, err = run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	// the written file loads cleanly
	a, err := newApp(path, false)
	require.NoError(t, err)
	assert.Equal(t, 8080, a.cfg.App.Port)
}

func TestLambdaHandler_NeverErrors(t *testing.T) {
	a, err := newApp("", false)
	require.NoError(t, err)
	h := lambdaHandler(a.router)

	resp, err := h(context.Background(), bot.Event{SessionState: bot.SessionState{Intent: bot.Intent{Name: "SearchJobs"}}})
	require.NoError(t, err)
	assert.Equal(t, bot.StateInProgress, resp.SessionState.Intent.State)
	assert.True(t, strings.HasPrefix(resp.Messages[0].Content, "Which campus"))
}
