// Package engine picks moves for the computer seat. Hard runs a full
// minimax search, Easy plays uniformly at random, and Medium plays the
// minimax move three times out of four.
package engine

import (
	"errors"
	"math/rand"

	"github.com/KhemPoudel/tictactoe/internal/domain"
)

// ErrGameOver is returned when a move is requested on a finished game.
var ErrGameOver = errors.New("game over")

// randIntN returns a uniform int in [0, n). Tests substitute it.
var randIntN = rand.Intn

// NextMove picks a move using the difficulty the board was created with.
func NextMove(b *domain.Board) (int, error) {
	switch b.Difficulty() {
	case domain.Easy:
		return RandomMove(b)
	case domain.Medium:
		return MediumMove(b)
	default:
		return BestMove(b)
	}
}

// BestMove searches every continuation and returns the strongest cell for
// the mark on turn. Ties keep the lowest index, so the choice is
// deterministic.
func BestMove(b *domain.Board) (int, error) {
	if b.Status() != domain.InProgress {
		return 0, ErrGameOver
	}
	bestScore := -1000
	bestMove := 0
	for _, mv := range availableMoves(b) {
		_ = b.ApplyMove(mv)
		// The turn has flipped to the opponent, so scoring from its seat
		// makes +1 a win for the mark that just moved.
		score := minimax(b, b.CurrentTurn())
		b.UndoLastMove()
		if score > bestScore {
			bestScore = score
			bestMove = mv
		}
	}
	return bestMove, nil
}

// RandomMove picks uniformly among the free cells.
func RandomMove(b *domain.Board) (int, error) {
	if b.Status() != domain.InProgress {
		return 0, ErrGameOver
	}
	moves := availableMoves(b)
	return moves[randIntN(len(moves))], nil
}

// MediumMove draws once per call: below 75 it plays the minimax move,
// otherwise it falls through to a random one.
func MediumMove(b *domain.Board) (int, error) {
	if randIntN(100) < 75 {
		return BestMove(b)
	}
	return RandomMove(b)
}

// minimax exhaustively scores the position on b: -1 when perspective owns
// the winning line, +1 when the other mark does, 0 for a draw. Moves are
// explored in place and unwound before returning, so b comes back
// bit-identical.
func minimax(b *domain.Board, perspective domain.Player) int {
	switch b.Status() {
	case domain.Resulted:
		if b.Winner() == perspective {
			return -1
		}
		return 1
	case domain.Draw:
		return 0
	}

	maximizing := b.CurrentTurn() != perspective
	best := -1000
	if !maximizing {
		best = 1000
	}
	for _, mv := range availableMoves(b) {
		_ = b.ApplyMove(mv)
		score := minimax(b, perspective)
		b.UndoLastMove()
		if maximizing && score > best {
			best = score
		}
		if !maximizing && score < best {
			best = score
		}
	}
	return best
}

// availableMoves lists the free cell indices in ascending order.
func availableMoves(b *domain.Board) []int {
	moves := make([]int, 0, 9)
	for pos, c := range b.Cells() {
		if c == domain.Empty {
			moves = append(moves, pos)
		}
	}
	return moves
}
