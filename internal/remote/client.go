// ABOUTME: Client for the remote control API
// ABOUTME: REST calls plus a websocket follower for state and narration events
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/neurosonic"
)

// Client talks to a running engine
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for addr (host:port or a full http URL)
func NewClient(addr string) *Client {
	base := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Health checks that the engine answers
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &resp)
	return resp, err
}

// TrackInfo is a catalog entry as returned by the API
type TrackInfo struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    catalog.Category `json:"category"`
	Kind        catalog.Kind     `json:"kind"`
}

// Tracks lists the catalog, optionally filtered by category
func (c *Client) Tracks(ctx context.Context, category string) ([]TrackInfo, error) {
	path := "/api/tracks"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var tracks []TrackInfo
	err := c.do(ctx, http.MethodGet, path, nil, &tracks)
	return tracks, err
}

// State returns the engine state
func (c *Client) State(ctx context.Context) (StateResponse, error) {
	var st StateResponse
	err := c.do(ctx, http.MethodGet, "/api/state", nil, &st)
	return st, err
}

// Play toggles the track with the given id
func (c *Client) Play(ctx context.Context, id string) (neurosonic.ControllerState, error) {
	var st neurosonic.ControllerState
	err := c.do(ctx, http.MethodPost, "/api/play", PlayRequest{ID: id}, &st)
	return st, err
}

// Stop silences playback
func (c *Client) Stop(ctx context.Context) (neurosonic.ControllerState, error) {
	var st neurosonic.ControllerState
	err := c.do(ctx, http.MethodPost, "/api/stop", nil, &st)
	return st, err
}

// SetVolume sets the master volume; the engine clamps it to [0, 1]
func (c *Client) SetVolume(ctx context.Context, v float64) (neurosonic.ControllerState, error) {
	var st neurosonic.ControllerState
	err := c.do(ctx, http.MethodPut, "/api/volume", VolumeRequest{Volume: &v}, &st)
	return st, err
}

// Mute mutes or unmutes the output
func (c *Client) Mute(ctx context.Context, muted bool) error {
	return c.do(ctx, http.MethodPut, "/api/mute", MuteRequest{Muted: muted}, nil)
}

// StartSession starts the guided session in locale ("" keeps the current one)
func (c *Client) StartSession(ctx context.Context, locale string) (neurosonic.ControllerState, error) {
	var st neurosonic.ControllerState
	err := c.do(ctx, http.MethodPost, "/api/session", LocaleRequest{Locale: locale}, &st)
	return st, err
}

// Follow streams events to fn until ctx is cancelled or the connection drops
func (c *Client) Follow(ctx context.Context, fn func(Event)) error {
	u, err := url.Parse(c.base)
	if err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}
	u.Scheme = "ws"
	if strings.HasPrefix(c.base, "https://") {
		u.Scheme = "wss"
	}
	u.Path = "/ws"

	log.Printf("Connecting to %s", u.String())
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
			return
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		conn.Close()
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		fn(ev)
	}
}

// apiError is the body echo writes for an HTTPError
type apiError struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, apiErr.Message)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
