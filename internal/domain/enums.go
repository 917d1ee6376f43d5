package domain

import (
	"fmt"
	"strings"
)

// Player identifies a mark on the board. Empty marks a free cell.
type Player uint8

const (
	Empty Player = iota
	X
	O
)

// String returns "X" or "O", and an empty string for Empty.
func (p Player) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other mark. Empty maps to itself.
func (p Player) Opponent() Player {
	switch p {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// ParsePlayer reads a mark from flag, form, or config input.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "o":
		return O, nil
	default:
		return Empty, fmt.Errorf("unknown player %q", s)
	}
}

// Status describes where a game stands.
type Status uint8

const (
	InProgress Status = iota
	Draw
	Resulted
)

func (s Status) String() string {
	switch s {
	case Draw:
		return "draw"
	case Resulted:
		return "resulted"
	default:
		return "in progress"
	}
}

// Difficulty selects how the engine picks its moves.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	default:
		return "hard"
	}
}

// ParseDifficulty reads a difficulty from flag, form, or config input.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Hard, fmt.Errorf("unknown difficulty %q", s)
	}
}
