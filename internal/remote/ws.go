// ABOUTME: Websocket event stream for remote listeners
// ABOUTME: Sends a hello snapshot, then state and line events until disconnect
package remote

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

func (s *APIServer) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("upgrade websocket: %w", err)
	}
	s.serveListener(conn)
	return nil
}

func (s *APIServer) serveListener(conn *websocket.Conn) {
	defer conn.Close()
	conn.SetReadLimit(1 << 10)

	st := s.ctrl.State()
	l := s.hub.add(func(id string) Event { return helloEvent(id, st) })
	log.Printf("Listener connected: %s (%s)", l.id, conn.RemoteAddr())
	defer func() {
		s.hub.remove(l.id)
		log.Printf("Listener disconnected: %s", l.id)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		writeEvents(conn, l.send)
		conn.Close()
	}()

	// Listeners only receive; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Listener %s read error: %v", l.id, err)
			}
			break
		}
	}
	s.hub.remove(l.id)
	<-done
}

func writeEvents(conn *websocket.Conn, events <-chan Event) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
