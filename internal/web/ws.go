package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/KhemPoudel/tictactoe/internal/app"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	wsPingInterval = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// statePayload is the JSON shape pushed to websocket clients.
type statePayload struct {
	ID         string `json:"id"`
	Cells      [9]int `json:"cells"`
	Turn       string `json:"turn"`
	Status     string `json:"status"`
	Winner     string `json:"winner"`
	Human      string `json:"human"`
	Difficulty string `json:"difficulty"`
	MoveCount  int    `json:"move_count"`
	LastMove   int    `json:"last_move"`
}

func statePayloadOf(snap app.Snapshot) statePayload {
	p := statePayload{
		ID:         snap.ID,
		Turn:       snap.Turn.String(),
		Status:     snap.Status.String(),
		Winner:     snap.Winner.String(),
		Human:      snap.Human.String(),
		Difficulty: snap.Difficulty.String(),
		MoveCount:  snap.MoveCount,
		LastMove:   snap.LastMove,
	}
	for i, c := range snap.Cells {
		p.Cells[i] = int(c)
	}
	return p
}

// ws streams game snapshots as JSON: the current state on connect, then one
// payload per move. The feed is read-only; client frames are consumed only
// to notice the peer going away.
func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ch, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(p statePayload) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(p)
	}
	if err := write(statePayloadOf(snap)); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if err := write(statePayloadOf(snap)); err != nil {
				return
			}
		}
	}
}
