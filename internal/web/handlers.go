package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KhemPoudel/tictactoe/internal/app"
	"github.com/KhemPoudel/tictactoe/internal/domain"
)

type handlers struct {
	svc *app.Service
	tpl *templates
}

// boardData feeds the board fragment template.
type boardData struct {
	ID     string
	Cells  [9]domain.Player
	Status string
	Over   bool
	Error  string
}

func boardDataOf(snap app.Snapshot, errMsg string) boardData {
	return boardData{
		ID:     snap.ID,
		Cells:  snap.Cells,
		Status: statusLine(snap),
		Over:   snap.Status != domain.InProgress,
		Error:  errMsg,
	}
}

// statusLine is the one-line summary shown above the grid.
func statusLine(snap app.Snapshot) string {
	switch snap.Status {
	case domain.Resulted:
		if snap.Winner == snap.Human {
			return "You win"
		}
		return "Engine wins"
	case domain.Draw:
		return "Draw"
	default:
		return fmt.Sprintf("Your move (%s)", snap.Turn)
	}
}

func (h *handlers) renderBoard(snap app.Snapshot, errMsg string) []byte {
	return renderTemplate(h.tpl.board, boardDataOf(snap, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	difficulty, err := domain.ParseDifficulty(r.Form.Get("difficulty"))
	if err != nil {
		difficulty = domain.Hard
	}
	human := domain.X
	if side, err := domain.ParsePlayer(r.Form.Get("side")); err == nil {
		human = side
	}
	engineFirst := r.Form.Get("first") == "engine"

	snap, err := h.svc.CreateGame(human, engineFirst, difficulty)
	if err != nil {
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+snap.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := struct {
		ID        string
		BoardHTML template.HTML
	}{
		ID:        snap.ID,
		BoardHTML: template.HTML(h.renderBoard(snap, "")),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, data))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	pos, convErr := strconv.Atoi(r.Form.Get("pos"))
	if convErr != nil {
		pos = -1 // rejected as out of range below
	}

	snap, err := h.svc.Play(id, pos)
	var errMsg string
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		switch {
		case errors.Is(err, app.ErrGameOver):
			errMsg = "Game is over"
		case errors.Is(err, app.ErrNotYourTurn):
			errMsg = "Not your turn"
		case errors.Is(err, domain.ErrOccupied):
			errMsg = "Cell is occupied"
		case errors.Is(err, domain.ErrOutOfRange):
			errMsg = "Pick a cell on the board"
		default:
			errMsg = "Invalid move"
		}
		current, ok := h.svc.Get(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		snap = current
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(snap, errMsg))
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// For requests that are not EventSource clients, acknowledge and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, _ := h.svc.Subscribe(ctx, id)
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case snap, ok := <-ch:
			if !ok {
				return
			}
			writeSSE(w, "board", h.renderBoard(snap, ""))
			flusher.Flush()
		}
	}
}

// writeSSE frames one event; payload newlines become continuation data lines.
func writeSSE(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range bytes.Split(payload, []byte("\n")) {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
