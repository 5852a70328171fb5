package scores

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/idilsaglam/bootcamp/internal/logging"
)

const feedWriteTimeout = 2 * time.Second

// Snapshot is the message pushed to feed clients.
type Snapshot struct {
	Scores TeamScores `json:"scores"`
	At     time.Time  `json:"at"`
}

// Feed is an observer that broadcasts every update to websocket clients.
// New clients receive the latest snapshot right after connecting.
type Feed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    []byte
	log     *slog.Logger
	now     func() time.Time
}

func NewFeed(log *slog.Logger) *Feed {
	if log == nil {
		log = logging.Discard()
	}
	return &Feed{
		clients: make(map[*websocket.Conn]struct{}),
		log:     log,
		now:     time.Now,
	}
}

func (f *Feed) Update(scores TeamScores) {
	msg, err := json.Marshal(Snapshot{Scores: scores, At: f.now().UTC()})
	if err != nil {
		f.log.Error("encode snapshot", "err", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = msg
	for conn := range f.clients {
		if err := write(conn, msg); err != nil {
			f.log.Warn("feed client dropped", "err", err)
			delete(f.clients, conn)
			_ = conn.Close(websocket.StatusGoingAway, "write failed")
		}
	}
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		f.log.Warn("websocket accept", "err", err)
		return
	}

	f.mu.Lock()
	f.clients[conn] = struct{}{}
	if f.last != nil {
		if err := write(conn, f.last); err != nil {
			delete(f.clients, conn)
			f.mu.Unlock()
			_ = conn.Close(websocket.StatusGoingAway, "write failed")
			return
		}
	}
	count := len(f.clients)
	f.mu.Unlock()
	f.log.Info("feed client connected", "clients", count)

	// Clients only listen; CloseRead handles control frames until they go away.
	ctx := conn.CloseRead(r.Context())
	<-ctx.Done()

	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.clients {
		_ = conn.Close(websocket.StatusNormalClosure, "match ended")
		delete(f.clients, conn)
	}
}

func write(conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), feedWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg)
}
