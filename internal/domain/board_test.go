package domain

import (
	"errors"
	"testing"
)

// helper to apply a sequence of moves
func playMoves(t *testing.T, b *Board, moves []int) {
	t.Helper()
	for i, pos := range moves {
		if err := b.ApplyMove(pos); err != nil {
			t.Fatalf("move %d (cell %d) failed: %v", i, pos, err)
		}
	}
}

var winningLines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// fillerOrder lists cells tried for the side that must NOT win: the first
// three off-line entries never form a line of their own.
var fillerOrder = []int{5, 7, 3, 6, 2, 1, 8, 4}

func fillers(line [3]int, n int) []int {
	out := make([]int, 0, n)
	for _, pos := range fillerOrder {
		if pos == line[0] || pos == line[1] || pos == line[2] {
			continue
		}
		out = append(out, pos)
		if len(out) == n {
			break
		}
	}
	return out
}

func TestNewBoardInitialState(t *testing.T) {
	b := New(X, Hard)
	if b.CurrentTurn() != X {
		t.Fatalf("expected initial turn X, got %v", b.CurrentTurn())
	}
	if b.Status() != InProgress {
		t.Fatalf("expected InProgress, got %v", b.Status())
	}
	if b.MoveCount() != 0 {
		t.Fatalf("expected 0 moves, got %d", b.MoveCount())
	}
	if b.Winner() != Empty {
		t.Fatalf("expected no winner, got %v", b.Winner())
	}
	if b.Difficulty() != Hard {
		t.Fatalf("expected Hard, got %v", b.Difficulty())
	}
	if _, ok := b.LastMove(); ok {
		t.Fatalf("expected no last move on a fresh board")
	}
	for i, c := range b.Cells() {
		if c != Empty {
			t.Fatalf("expected empty board, cell %d = %v", i, c)
		}
	}
}

func TestNewBoardOpeningMark(t *testing.T) {
	if b := New(O, Easy); b.CurrentTurn() != O {
		t.Fatalf("expected O to open, got %v", b.CurrentTurn())
	}
	if b := New(Empty, Easy); b.CurrentTurn() != X {
		t.Fatalf("expected fallback to X, got %v", b.CurrentTurn())
	}
}

func TestApplyMovePlacesMoversMark(t *testing.T) {
	for pos := 0; pos < 9; pos++ {
		b := New(X, Hard)
		if err := b.ApplyMove(pos); err != nil {
			t.Fatalf("move at %d failed: %v", pos, err)
		}
		if b.Cells()[pos] != X {
			t.Fatalf("cell %d = %v, want the mover's mark X", pos, b.Cells()[pos])
		}
	}
}

func TestApplyMoveOutOfRange(t *testing.T) {
	b := New(X, Hard)
	for _, pos := range []int{-1, 9, 42} {
		if err := b.ApplyMove(pos); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange for %d, got %v", pos, err)
		}
	}
	if b.MoveCount() != 0 || b.CurrentTurn() != X {
		t.Fatalf("rejected moves must not change the board")
	}
}

func TestApplyMoveOccupied(t *testing.T) {
	b := New(X, Hard)
	if err := b.ApplyMove(4); err != nil {
		t.Fatalf("first move failed: %v", err)
	}
	if err := b.ApplyMove(4); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied on same cell, got %v", err)
	}
	if b.MoveCount() != 1 || b.CurrentTurn() != O || b.Cells()[4] != X {
		t.Fatalf("rejected move must not change the board")
	}
}

func TestTurnAlternates(t *testing.T) {
	b := New(X, Hard)
	want := []Player{O, X, O, X}
	for i, pos := range []int{0, 1, 3, 4} {
		if err := b.ApplyMove(pos); err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}
		if b.CurrentTurn() != want[i] {
			t.Fatalf("after move %d expected turn %v, got %v", i, want[i], b.CurrentTurn())
		}
	}
}

func TestWinDetectedOnCompletingMove(t *testing.T) {
	b := New(X, Hard)
	playMoves(t, b, []int{0, 3, 1, 4})
	if b.Status() != InProgress {
		t.Fatalf("no line is complete yet, status %v", b.Status())
	}
	playMoves(t, b, []int{2})
	if b.Status() != Resulted || b.Winner() != X {
		t.Fatalf("expected X to win the top row, got status=%v winner=%v", b.Status(), b.Winner())
	}
}

func TestWinConditionsForX(t *testing.T) {
	for _, line := range winningLines {
		b := New(X, Hard)
		fill := fillers(line, 2)
		playMoves(t, b, []int{line[0], fill[0], line[1], fill[1], line[2]})
		if b.Status() != Resulted || b.Winner() != X {
			t.Fatalf("expected X win on line %v; status=%v winner=%v", line, b.Status(), b.Winner())
		}
		if b.MoveCount() != 5 {
			t.Fatalf("expected win after 5 moves on line %v, got %d", line, b.MoveCount())
		}
	}
}

func TestWinConditionsForO(t *testing.T) {
	for _, line := range winningLines {
		b := New(X, Hard)
		fill := fillers(line, 3)
		playMoves(t, b, []int{fill[0], line[0], fill[1], line[1], fill[2], line[2]})
		if b.Status() != Resulted || b.Winner() != O {
			t.Fatalf("expected O win on line %v; status=%v winner=%v", line, b.Status(), b.Winner())
		}
		if b.MoveCount() != 6 {
			t.Fatalf("expected win after 6 moves on line %v, got %d", line, b.MoveCount())
		}
	}
}

func TestDrawOnFullBoard(t *testing.T) {
	b := New(X, Hard)
	// Final grid: X O X / X O O / O X X, no line completed along the way.
	seq := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}
	for i, pos := range seq {
		if got := b.Status(); got != InProgress {
			t.Fatalf("status before move %d = %v, want InProgress", i, got)
		}
		if err := b.ApplyMove(pos); err != nil {
			t.Fatalf("move %d (cell %d) failed: %v", i, pos, err)
		}
	}
	if b.Status() != Draw {
		t.Fatalf("expected draw on a full board, got %v", b.Status())
	}
	if b.Winner() != Empty {
		t.Fatalf("expected no winner on draw, got %v", b.Winner())
	}
	if b.MoveCount() != 9 {
		t.Fatalf("expected 9 moves, got %d", b.MoveCount())
	}
}

func TestUndoReopensFinishedGame(t *testing.T) {
	b := New(X, Hard)
	playMoves(t, b, []int{0, 3, 1, 4, 2}) // X takes the top row
	if b.Status() != Resulted {
		t.Fatalf("expected a win before undo, got %v", b.Status())
	}
	b.UndoLastMove()
	if b.Status() != InProgress {
		t.Fatalf("expected InProgress after undo, got %v", b.Status())
	}
	if b.CurrentTurn() != X {
		t.Fatalf("expected X back on turn, got %v", b.CurrentTurn())
	}
	if b.Cells()[2] != Empty {
		t.Fatalf("expected cell 2 cleared after undo")
	}
	if b.MoveCount() != 4 {
		t.Fatalf("expected 4 moves after undo, got %d", b.MoveCount())
	}
}

func TestUndoIsInverseOfApply(t *testing.T) {
	b := New(O, Medium)
	seq := []int{4, 0, 8, 2, 6}
	playMoves(t, b, seq)
	for range seq {
		b.UndoLastMove()
	}
	if b.MoveCount() != 0 {
		t.Fatalf("expected empty history, got %d moves", b.MoveCount())
	}
	if b.CurrentTurn() != O {
		t.Fatalf("expected O back on turn, got %v", b.CurrentTurn())
	}
	if b.Status() != InProgress {
		t.Fatalf("expected InProgress, got %v", b.Status())
	}
	if _, ok := b.LastMove(); ok {
		t.Fatalf("expected no last move after full unwind")
	}
	for i, c := range b.Cells() {
		if c != Empty {
			t.Fatalf("expected empty board after full unwind, cell %d = %v", i, c)
		}
	}
}

func TestUndoWithNoMovesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on undo with empty history")
		}
	}()
	New(X, Hard).UndoLastMove()
}

func TestParsePlayer(t *testing.T) {
	cases := []struct {
		in   string
		want Player
		ok   bool
	}{
		{"X", X, true},
		{"x", X, true},
		{" o ", O, true},
		{"O", O, true},
		{"", Empty, false},
		{"Z", Empty, false},
	}
	for _, tc := range cases {
		got, err := ParsePlayer(tc.in)
		if tc.ok != (err == nil) || (tc.ok && got != tc.want) {
			t.Errorf("ParsePlayer(%q) = (%v, %v), want (%v, ok=%v)", tc.in, got, err, tc.want, tc.ok)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"easy", Easy, true},
		{"Medium", Medium, true},
		{" HARD ", Hard, true},
		{"", Hard, false},
		{"impossible", Hard, false},
	}
	for _, tc := range cases {
		got, err := ParseDifficulty(tc.in)
		if tc.ok != (err == nil) || (tc.ok && got != tc.want) {
			t.Errorf("ParseDifficulty(%q) = (%v, %v), want (%v, ok=%v)", tc.in, got, err, tc.want, tc.ok)
		}
	}
}
