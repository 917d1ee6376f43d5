package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KhemPoudel/tictactoe/internal/domain"
	"github.com/KhemPoudel/tictactoe/internal/engine"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrGameOver    = errors.New("game over")
)

// game is the in-memory state tracked per game: the board plus the seat the
// human occupies. The engine fills the other seat.
type game struct {
	id      string
	board   *domain.Board
	human   domain.Player
	created time.Time
	updated time.Time
}

// Snapshot is an immutable copy of a game's state handed to transports and
// subscribers.
type Snapshot struct {
	ID         string
	Cells      [9]domain.Player
	Turn       domain.Player
	Status     domain.Status
	Winner     domain.Player
	Human      domain.Player
	Difficulty domain.Difficulty
	MoveCount  int
	LastMove   int // -1 before the first move
	Created    time.Time
	Updated    time.Time
}

func snapshotOf(g *game) Snapshot {
	snap := Snapshot{
		ID:         g.id,
		Cells:      g.board.Cells(),
		Turn:       g.board.CurrentTurn(),
		Status:     g.board.Status(),
		Winner:     g.board.Winner(),
		Human:      g.human,
		Difficulty: g.board.Difficulty(),
		MoveCount:  g.board.MoveCount(),
		LastMove:   -1,
		Created:    g.created,
		Updated:    g.updated,
	}
	if last, ok := g.board.LastMove(); ok {
		snap.LastMove = last
	}
	return snap
}

type subscriber struct {
	ch        chan Snapshot
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and their subscribers. Boards are only touched
// under mu; everything that leaves the lock is a Snapshot copy.
type Service struct {
	mu    sync.Mutex
	games map[string]*game
	subs  map[string]map[*subscriber]struct{}
}

func NewService() *Service {
	return &Service{
		games: make(map[string]*game),
		subs:  make(map[string]map[*subscriber]struct{}),
	}
}

// CreateGame registers a new game against the engine. human picks the seat
// the human plays; with engineFirst the engine owns the opening mark and
// its first move is applied before the game becomes visible.
func (s *Service) CreateGame(human domain.Player, engineFirst bool, difficulty domain.Difficulty) (Snapshot, error) {
	if human != domain.X && human != domain.O {
		human = domain.X
	}
	start := human
	if engineFirst {
		start = human.Opponent()
	}
	b := domain.New(start, difficulty)
	if engineFirst {
		mv, err := engine.NextMove(b)
		if err != nil {
			return Snapshot{}, err
		}
		if err := b.ApplyMove(mv); err != nil {
			return Snapshot{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	g := &game{id: uuid.NewString(), board: b, human: human, created: now, updated: now}
	s.games[g.id] = g
	return snapshotOf(g), nil
}

// Get returns a snapshot of the game if present.
func (s *Service) Get(id string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return Snapshot{}, false
	}
	return snapshotOf(g), true
}

// Play applies the human's move and, while the game stays open, the
// engine's reply. Exactly one broadcast goes out per successful call.
func (s *Service) Play(id string, pos int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	if g.board.Status() != domain.InProgress {
		return Snapshot{}, ErrGameOver
	}
	if g.board.CurrentTurn() != g.human {
		return Snapshot{}, ErrNotYourTurn
	}
	if err := g.board.ApplyMove(pos); err != nil {
		return Snapshot{}, err
	}
	if g.board.Status() == domain.InProgress {
		mv, err := engine.NextMove(g.board)
		if err == nil {
			err = g.board.ApplyMove(mv)
		}
		if err != nil {
			return Snapshot{}, err
		}
	}
	g.updated = time.Now()

	snap := snapshotOf(g)
	s.broadcastLocked(id, snap)
	return snap, nil
}

// broadcastLocked sends snap to every subscriber of the game. Sends never
// block: a subscriber whose buffer is still full is closed and dropped.
// Sends and closes both happen under mu, so a send can never hit a channel
// an unsubscribe is closing.
func (s *Service) broadcastLocked(id string, snap Snapshot) {
	set := s.subs[id]
	for sub := range set {
		select {
		case sub.ch <- snap:
		default:
			sub.close()
			delete(set, sub)
		}
	}
}

// Subscribe registers for snapshots of a game. The channel closes when the
// subscriber is dropped; the returned func unsubscribes and is safe to call
// more than once.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan Snapshot, func()) {
	s.mu.Lock()
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan Snapshot, 1)}
	set[sub] = struct{}{}
	s.mu.Unlock()

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			// Closing under mu keeps the close ordered against broadcasts.
			sub.close()
			s.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}
