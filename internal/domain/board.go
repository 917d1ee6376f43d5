package domain

import "errors"

// Errors returned by board operations.
var (
	ErrOutOfRange = errors.New("position out of range")
	ErrOccupied   = errors.New("cell occupied")
)

// Board is a 3x3 grid stored row-major, together with everything needed to
// replay and unwind a game: the moves in play order, the mark on turn, and
// the derived status.
type Board struct {
	cells      [9]Player
	history    []int
	turn       Player
	status     Status
	winner     Player
	difficulty Difficulty
}

// New returns an empty board. start picks the opening mark; anything other
// than X or O falls back to X. difficulty is fixed for the board's lifetime.
func New(start Player, difficulty Difficulty) *Board {
	if start != X && start != O {
		start = X
	}
	return &Board{
		history:    make([]int, 0, 9),
		turn:       start,
		difficulty: difficulty,
	}
}

// CurrentTurn returns the mark that moves next.
func (b *Board) CurrentTurn() Player { return b.turn }

// Status reports whether the game is in progress, drawn, or won.
func (b *Board) Status() Status { return b.status }

// Winner returns the winning mark. Meaningful only while Status is Resulted.
func (b *Board) Winner() Player { return b.winner }

// Difficulty returns the engine difficulty the board was created with.
func (b *Board) Difficulty() Difficulty { return b.difficulty }

// Cells returns a copy of the grid in row-major order.
func (b *Board) Cells() [9]Player { return b.cells }

// MoveCount returns how many moves have been played.
func (b *Board) MoveCount() int { return len(b.history) }

// LastMove returns the most recently played cell index, or false when no
// move has been played yet.
func (b *Board) LastMove() (int, bool) {
	if len(b.history) == 0 {
		return 0, false
	}
	return b.history[len(b.history)-1], true
}

// ApplyMove places the current turn's mark at pos (0..8). It fails with
// ErrOutOfRange or ErrOccupied and leaves the board untouched on failure.
// Whether the game has already ended is a rule for callers to enforce.
func (b *Board) ApplyMove(pos int) error {
	if pos < 0 || pos > 8 {
		return ErrOutOfRange
	}
	if b.cells[pos] != Empty {
		return ErrOccupied
	}

	b.cells[pos] = b.turn
	b.history = append(b.history, pos)
	b.turn = b.turn.Opponent()
	b.refreshStatus()
	return nil
}

// UndoLastMove unwinds the most recent move: the cell is cleared, the turn
// flips back, and the status is recomputed. It exists for search code that
// explores moves on a borrowed board; calling it with no moves played is a
// programming error and panics.
func (b *Board) UndoLastMove() {
	if len(b.history) == 0 {
		panic("domain: undo with no moves played")
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.cells[last] = Empty
	b.turn = b.turn.Opponent()
	b.refreshStatus()
}

// refreshStatus derives the status from the last move played. Only lines
// through that cell can have changed: its row, its column, and a diagonal
// when the cell lies on one.
func (b *Board) refreshStatus() {
	last, ok := b.LastMove()
	if !ok {
		b.status = InProgress
		return
	}

	var lines [4][3]int
	n := 0
	row := last / 3 * 3
	col := last % 3
	lines[n] = [3]int{row, row + 1, row + 2}
	n++
	lines[n] = [3]int{col, col + 3, col + 6}
	n++
	if last == 0 || last == 4 || last == 8 {
		lines[n] = [3]int{0, 4, 8}
		n++
	}
	if last == 2 || last == 4 || last == 6 {
		lines[n] = [3]int{2, 4, 6}
		n++
	}
	for _, ln := range lines[:n] {
		if c := b.cells[ln[0]]; c != Empty && c == b.cells[ln[1]] && c == b.cells[ln[2]] {
			b.status = Resulted
			b.winner = c
			return
		}
	}
	if len(b.history) >= 9 {
		b.status = Draw
		return
	}
	b.status = InProgress
}
