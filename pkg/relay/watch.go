package relay

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/channel"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWatch pushes the current value of the key and every later put as
// a text message until the client disconnects.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", log.ErrorField(err))
		return
	}
	defer conn.Close()
	s.count(r.Context(), "WATCH", http.StatusSwitchingProtocols)

	sub := s.watchers.Subscribe()
	defer s.watchers.CancelSubscription(sub)

	// reader loop, needed to process control frames and detect a close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(value []byte) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.TextMessage, value)
	}

	if value, err := s.get(r.Context(), key); err == nil {
		if err := write(value); err != nil {
			return
		}
	} else if !errors.Is(err, channel.ErrNotFound) {
		s.log.Warn("backend get failed", log.String("key", key), log.ErrorField(err))
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case u, ok := <-sub:
			if !ok {
				return
			}
			if u.Key != key {
				continue
			}
			if err := write(u.Value); err != nil {
				return
			}
		}
	}
}
