package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	h := NewHandler(newTestManager(t, store), store, log.New(io.Discard))
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createSession(t *testing.T, srv *httptest.Server, body string) sessionResponse {
	t.Helper()
	var created sessionResponse
	status := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", body, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.ID)
	return created
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	var body map[string]string
	assert.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/health", "", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCreateAndGetSession(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, `{"format":"wide"}`)
	assert.Equal(t, "wide", created.Snapshot.Format)
	assert.True(t, created.Snapshot.GameOver)

	var got sessionResponse
	status := doJSON(t, http.MethodGet, srv.URL+"/api/sessions/"+created.ID, "", &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 40, got.Snapshot.Height)

	standard := createSession(t, srv, "")
	assert.Equal(t, "standard", standard.Snapshot.Format)
}

func TestCreateSessionBadBody(t *testing.T) {
	srv := newTestServer(t, nil)

	var body map[string]string
	status := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", "{", &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestCommandEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	created := createSession(t, srv, "")
	base := srv.URL + "/api/sessions/" + created.ID

	var resp commandResponse
	status := doJSON(t, http.MethodPost, base+"/commands/start", "", &resp)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Applied)
	assert.False(t, resp.Snapshot.GameOver)
	require.NotNil(t, resp.Snapshot.Current)

	var errBody map[string]string
	status = doJSON(t, http.MethodPost, base+"/commands/teleport", "", &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "unknown command", errBody["error"])

	status = doJSON(t, http.MethodPost, srv.URL+"/api/sessions/nope/commands/start", "", &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "session not found", errBody["error"])
}

func TestFormatEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	created := createSession(t, srv, "")
	base := srv.URL + "/api/sessions/" + created.ID

	var resp commandResponse
	status := doJSON(t, http.MethodPost, base+"/format", `{"format":"wide"}`, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Applied)
	assert.Equal(t, 20, resp.Snapshot.Width)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/commands/start", "", nil))
	status = doJSON(t, http.MethodPost, base+"/format", `{"format":"standard"}`, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, resp.Applied)
	assert.Equal(t, "wide", resp.Snapshot.Format)
}

func TestEventsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	created := createSession(t, srv, "")
	base := srv.URL + "/api/sessions/" + created.ID

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/commands/start", "", nil))
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/commands/down", "", nil))

	var body map[string][]EventView
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, base+"/events", "", &body))
	require.Len(t, body["events"], 1)
	assert.Equal(t, "drop", body["events"][0].Kind)
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t, nil)
	created := createSession(t, srv, "")
	url := srv.URL + "/api/sessions/" + created.ID

	assert.Equal(t, http.StatusNoContent, doJSON(t, http.MethodDelete, url, "", nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, url, "", &map[string]string{}))
}

func seedStore(t *testing.T) *storage.Store {
	t.Helper()
	store := openTestStore(t)
	for _, run := range []storage.RunRecord{
		{GameID: "tetris", Score: 300, Lines: 10, Format: "standard"},
		{GameID: "tetris", Score: 900, Lines: 30, Format: "standard"},
		{GameID: "tetris_wide", Score: 500, Lines: 12, Format: "wide"},
	} {
		_, err := store.SaveRun(run)
		require.NoError(t, err)
	}
	return store
}

func TestScoresEndpoint(t *testing.T) {
	srv := newTestServer(t, seedStore(t))

	var body map[string][]storage.RunRecord
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/scores", "", &body))
	require.Len(t, body["scores"], 3)
	assert.Equal(t, 900, body["scores"][0].Score)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/scores?format=wide", "", &body))
	require.Len(t, body["scores"], 1)
	assert.Equal(t, "tetris_wide", body["scores"][0].GameID)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/scores?format=standard&limit=1", "", &body))
	require.Len(t, body["scores"], 1)
	assert.Equal(t, 900, body["scores"][0].Score)

	var errBody map[string]string
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodGet, srv.URL+"/api/scores?limit=x", "", &errBody))
}

func TestScoresWithoutStore(t *testing.T) {
	srv := newTestServer(t, nil)

	var errBody map[string]string
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, http.MethodGet, srv.URL+"/api/scores", "", &errBody))
}

func TestRecentRunsEndpoint(t *testing.T) {
	srv := newTestServer(t, seedStore(t))

	var body map[string][]storage.RunRecord
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/runs/recent?limit=2", "", &body))
	require.Len(t, body["runs"], 2)
	assert.Equal(t, "tetris_wide", body["runs"][0].GameID)
	assert.Equal(t, 900, body["runs"][1].Score)

	var errBody map[string]string
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodGet, srv.URL+"/api/runs/recent?limit=0", "", &errBody))
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t, seedStore(t))

	var one storage.FormatStats
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/stats?format=standard", "", &one))
	assert.Equal(t, "standard", one.Format)
	assert.Equal(t, 2, one.Runs)
	assert.Equal(t, 900, one.BestScore)
	assert.Equal(t, 40, one.TotalLines)

	var all map[string]map[string]storage.FormatStats
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/stats", "", &all))
	require.Len(t, all["stats"], 2)
	assert.Equal(t, 1, all["stats"]["wide"].Runs)
	assert.Equal(t, 500, all["stats"]["wide"].BestScore)
}

func TestStatsWithoutStore(t *testing.T) {
	srv := newTestServer(t, nil)

	var errBody map[string]string
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, http.MethodGet, srv.URL+"/api/stats", "", &errBody))
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, http.MethodGet, srv.URL+"/api/runs/recent", "", &errBody))
}
