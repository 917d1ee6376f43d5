package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/KhemPoudel/tictactoe/internal/config"
	"github.com/KhemPoudel/tictactoe/internal/domain"
	"github.com/KhemPoudel/tictactoe/internal/engine"
)

func main() {
	cfg, err := config.Init()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags write straight into the loaded config, so the file supplies the
	// defaults and -save can persist whatever was chosen.
	flag.StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "engine difficulty: easy, medium, hard")
	flag.StringVar(&cfg.Side, "side", cfg.Side, "mark you play: X or O")
	flag.BoolVar(&cfg.EngineFirst, "engine-first", cfg.EngineFirst, "let the engine make the opening move")
	save := flag.Bool("save", false, "write these settings to the config file")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *save {
		if err := cfg.Save(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	difficulty := cfg.DifficultyValue()
	human := cfg.SideValue()
	start := human
	if cfg.EngineFirst {
		start = human.Opponent()
	}

	out := termenv.NewOutput(os.Stdout)
	b := domain.New(start, difficulty)
	fmt.Printf("You play %s against the %s engine. Cells are numbered 0-8, q quits.\n", human, difficulty)

	if cfg.EngineFirst {
		engineMove(b)
	}
	in := bufio.NewReader(os.Stdin)
	for b.Status() == domain.InProgress {
		printBoard(out, b)
		pos, quit := readMove(in)
		if quit {
			return
		}
		if err := b.ApplyMove(pos); err != nil {
			switch {
			case errors.Is(err, domain.ErrOccupied):
				fmt.Println("That cell is taken.")
			case errors.Is(err, domain.ErrOutOfRange):
				fmt.Println("Cells are numbered 0 through 8.")
			}
			continue
		}
		if b.Status() != domain.InProgress {
			break
		}
		engineMove(b)
	}

	printBoard(out, b)
	switch {
	case b.Status() == domain.Draw:
		fmt.Println("Draw.")
	case b.Winner() == human:
		fmt.Println("You win.")
	default:
		fmt.Println("Engine wins.")
	}
}

func engineMove(b *domain.Board) {
	mv, err := engine.NextMove(b)
	if err != nil {
		return
	}
	if err := b.ApplyMove(mv); err != nil {
		return
	}
	fmt.Printf("Engine plays %d.\n", mv)
}

// readMove prompts until it reads a number or a quit request.
func readMove(in *bufio.Reader) (int, bool) {
	for {
		fmt.Print("your move> ")
		line, err := in.ReadString('\n')
		if err != nil {
			return 0, true
		}
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			return 0, true
		}
		pos, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("Enter a cell number 0-8, or q to quit.")
			continue
		}
		return pos, false
	}
}

func printBoard(out *termenv.Output, b *domain.Board) {
	cells := b.Cells()
	for r := 0; r < 3; r++ {
		row := make([]string, 3)
		for c := 0; c < 3; c++ {
			pos := r*3 + c
			row[c] = cellText(out, cells[pos], pos)
		}
		fmt.Printf(" %s │ %s │ %s \n", row[0], row[1], row[2])
		if r < 2 {
			fmt.Println("───┼───┼───")
		}
	}
}

// cellText renders a mark in color, or the cell's number faintly so the
// player can see what to type.
func cellText(out *termenv.Output, mark domain.Player, pos int) string {
	switch mark {
	case domain.X:
		return out.String("X").Foreground(out.Color("1")).Bold().String()
	case domain.O:
		return out.String("O").Foreground(out.Color("4")).Bold().String()
	default:
		return out.String(strconv.Itoa(pos)).Faint().String()
	}
}
