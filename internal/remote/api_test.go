// ABOUTME: Tests for the REST control API
// ABOUTME: Handlers are called through echo contexts backed by httptest recorders
package remote

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/neurosonic/neurosonic-go/pkg/audio/output"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/neurosonic"
	"github.com/neurosonic/neurosonic-go/pkg/speech"
)

func newTestAPI(t *testing.T) (*APIServer, *output.Null) {
	t.Helper()
	out := output.NewNull(false)
	engine := neurosonic.NewAudioEngine(neurosonic.EngineConfig{
		Output: out,
		Speech: speech.NewPaced(),
		Rand:   rand.New(rand.NewSource(1)),
	})
	hub := NewHub()
	ctrl := neurosonic.NewController(engine, neurosonic.ControllerConfig{
		OnStateChange: func(st neurosonic.ControllerState) { hub.Broadcast(StateEvent(st)) },
		OnLineChange:  func(text string) { hub.Broadcast(LineEvent(text)) },
	})
	t.Cleanup(func() { _ = ctrl.Close() })
	return NewAPIServer(ctrl, hub), out
}

func call(t *testing.T, api *APIServer, method, target, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := api.echo.NewContext(req, rec)

	if err := h(c); err != nil {
		api.echo.HTTPErrorHandler(err, c)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarshal: %v (body %s)", err, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := call(t, api, http.MethodGet, "/health", "", api.handleHealth)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp HealthResponse
	decode(t, rec, &resp)
	if resp.Status != "ok" {
		t.Errorf("status field: got %q, want ok", resp.Status)
	}
	if resp.Listeners != 0 {
		t.Errorf("listeners: got %d, want 0", resp.Listeners)
	}
}

func TestTracksEndpoint(t *testing.T) {
	api, _ := newTestAPI(t)

	tests := []struct {
		name   string
		target string
		status int
		count  int
	}{
		{"all", "/api/tracks", http.StatusOK, 19},
		{"solfeggio", "/api/tracks?category=solfeggio", http.StatusOK, 9},
		{"noise", "/api/tracks?category=NOISE", http.StatusOK, 4},
		{"unknown", "/api/tracks?category=jazz", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, api, http.MethodGet, tt.target, "", api.handleTracks)
			if rec.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			var tracks []map[string]any
			decode(t, rec, &tracks)
			if len(tracks) != tt.count {
				t.Errorf("tracks: got %d, want %d", len(tracks), tt.count)
			}
		})
	}
}

func TestPlayAndStop(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := call(t, api, http.MethodPost, "/api/play", `{"id":"theta"}`, api.handlePlay)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var st neurosonic.ControllerState
	decode(t, rec, &st)
	if st.TrackID != "theta" || !st.Playing {
		t.Errorf("expected theta playing, got %+v", st)
	}

	rec = call(t, api, http.MethodGet, "/api/state", "", api.handleState)
	var state StateResponse
	decode(t, rec, &state)
	if len(state.Nodes) != 2 {
		t.Errorf("expected 2 binaural nodes, got %d", len(state.Nodes))
	}
	if !state.Capabilities.HasAudioOutput {
		t.Error("expected audio output capability")
	}

	rec = call(t, api, http.MethodPost, "/api/stop", "", api.handleStop)
	decode(t, rec, &st)
	if st.Playing {
		t.Error("expected stopped after /api/stop")
	}

	rec = call(t, api, http.MethodGet, "/api/state", "", api.handleState)
	decode(t, rec, &state)
	if state.Nodes == nil || len(state.Nodes) != 0 {
		t.Errorf("expected empty node list, got %v", state.Nodes)
	}
}

func TestPlayErrors(t *testing.T) {
	api, _ := newTestAPI(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"unknown track", `{"id":"999hz"}`, http.StatusNotFound},
		{"empty id", `{"id":"  "}`, http.StatusBadRequest},
		{"bad json", `{"id":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, api, http.MethodPost, "/api/play", tt.body, api.handlePlay)
			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
		})
	}

	if api.ctrl.State().Playing {
		t.Error("failed requests must not start playback")
	}
}

func TestVolumeEndpoint(t *testing.T) {
	api, _ := newTestAPI(t)

	tests := []struct {
		body   string
		status int
		want   float64
	}{
		{`{"volume":0.8}`, http.StatusOK, 0.8},
		{`{"volume":1.7}`, http.StatusOK, 1},
		{`{"volume":-2}`, http.StatusOK, 0},
		{`{}`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		rec := call(t, api, http.MethodPut, "/api/volume", tt.body, api.handleVolume)
		if rec.Code != tt.status {
			t.Errorf("%s: status got %d, want %d", tt.body, rec.Code, tt.status)
			continue
		}
		if tt.status != http.StatusOK {
			continue
		}
		var st neurosonic.ControllerState
		decode(t, rec, &st)
		if st.Volume != tt.want {
			t.Errorf("%s: volume got %v, want %v", tt.body, st.Volume, tt.want)
		}
	}
}

func TestSessionEndpoint(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := call(t, api, http.MethodPost, "/api/session", `{"locale":"pt-BR"}`, api.handleSession)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var st neurosonic.ControllerState
	decode(t, rec, &st)
	if st.Kind != catalog.KindGuided || st.Locale != catalog.Portuguese {
		t.Errorf("expected Portuguese guided session, got %+v", st)
	}

	rec = call(t, api, http.MethodGet, "/api/state", "", api.handleState)
	var state StateResponse
	decode(t, rec, &state)
	if state.Session.StateName != neurosonic.SessionRunning.String() {
		t.Errorf("expected running session, got %q", state.Session.StateName)
	}
	if state.Session.LineCount == 0 {
		t.Error("expected script lines")
	}

	rec = call(t, api, http.MethodPost, "/api/session", `{"locale":"fr"}`, api.handleSession)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLocaleEndpoint(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := call(t, api, http.MethodPut, "/api/locale", `{"locale":"pt"}`, api.handleLocale)
	var st neurosonic.ControllerState
	decode(t, rec, &st)
	if st.Locale != catalog.Portuguese {
		t.Errorf("expected pt, got %s", st.Locale)
	}

	rec = call(t, api, http.MethodGet, "/api/tracks?category=noise", "", api.handleTracks)
	var tracks []map[string]any
	decode(t, rec, &tracks)
	found := false
	for _, tr := range tracks {
		if tr["title"] == "Ruído Rosa" {
			found = true
		}
	}
	if !found {
		t.Error("expected Portuguese track titles after locale switch")
	}
}

func TestMuteEndpoint(t *testing.T) {
	api, out := newTestAPI(t)

	call(t, api, http.MethodPost, "/api/play", `{"id":"alpha"}`, api.handlePlay)
	rec := call(t, api, http.MethodPut, "/api/mute", `{"muted":true}`, api.handleMute)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
	if !out.IsMuted() {
		t.Fatal("expected output to be muted")
	}

	frames := out.Pump(256)
	for i, s := range frames {
		if s != 0 {
			t.Fatalf("expected silence while muted, got %v at %d", s, i)
		}
	}
}

func TestErrorHandlerIsHTTPError(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/play", strings.NewReader(`{"id":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := api.echo.NewContext(req, httptest.NewRecorder())

	err := api.handlePlay(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 HTTPError, got %v", err)
	}
}
