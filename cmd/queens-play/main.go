// Command queens-play is an interactive terminal board for Queens puzzles.
// Load a saved puzzle or generate a fresh one, then place queens and
// scratch-marks until the board is solved; the elapsed time is reported on
// completion. All rule decisions come from the engine; this command only
// renders and translates commands.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/pkg/profile"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/engine"
	"svw.info/queens/internal/generator"
	"svw.info/queens/internal/hint"
	"svw.info/queens/internal/solver"
	"svw.info/queens/internal/validator"
)

func main() {
	puzzlePath := flag.String("puzzle", "", "path to a saved puzzle JSON file")
	n := flag.Int("n", 8, "grid size when generating a fresh puzzle")
	seed := flag.Int64("seed", 0, "generation seed (0 = time-based)")
	prof := flag.Bool("profile", false, "write a CPU profile for the generation run")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	def, err := loadOrGenerate(*puzzlePath, *n, *seed, *prof, logger)
	if err != nil {
		logger.Error("could not prepare puzzle", "err", err)
		os.Exit(1)
	}
	if ok, bad, _ := validator.New().Validate(context.Background(), def); !ok {
		logger.Error("malformed puzzle definition", "badCells", bad)
		os.Exit(1)
	}
	// Playing against the stored solution would be no fun.
	def.Solution = nil

	b, err := engine.New(def)
	if err != nil {
		logger.Error("could not start session", "err", err)
		os.Exit(1)
	}

	rl, err := readline.New("queens> ")
	if err != nil {
		logger.Error("readline init failed", "err", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println(render(b))
	fmt.Println(`Commands: queen R C | remove R C | cross R C | check R C | hint | show | help | quit`)
	start := time.Now()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			logger.Error("read failed", "err", err)
			return
		}
		if solved := run(b, strings.Fields(strings.TrimSpace(line))); solved {
			elapsed := time.Since(start).Round(time.Second)
			fmt.Println(render(b))
			fmt.Printf("Solved! Time taken: %02d:%02d\n", int(elapsed.Minutes()), int(elapsed.Seconds())%60)
			return
		}
	}
}

func loadOrGenerate(path string, n int, seed int64, prof bool, logger *slog.Logger) (*domain.Definition, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var p domain.Puzzle
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		logger.Info("loaded puzzle", "id", p.ID, "n", p.Definition.Size)
		return &p.Definition, nil
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	g := generator.NewUniqueGenerator(solver.NewCounter())
	p, st, err := g.Generate(context.Background(), seed, n)
	if err != nil {
		return nil, err
	}
	logger.Info("generated puzzle", "n", n, "seed", seed, "nodes", st.Nodes, "dur", st.Duration)
	return &p.Definition, nil
}

// run executes one command line and reports whether the board is solved.
func run(b *engine.Board, args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "quit", "exit":
		os.Exit(0)
	case "help":
		fmt.Println(`queen R C   place a queen (reports which rule blocks an illegal spot)
remove R C  take a queen off
cross R C   toggle a "no queen here" scratch-mark
check R C   preview the four rule checks without placing
hint        suggest a forced cell
show        redraw the board`)
	case "show":
		fmt.Println(render(b))
	case "hint":
		h, ok, err := hint.NewForced().Hint(context.Background(), b)
		if err != nil {
			fmt.Println("error:", err)
		} else if !ok {
			fmt.Println("no forced cell found")
		} else {
			fmt.Printf("%s: (%d, %d)\n", h.Message, h.Cells[0].Row, h.Cells[0].Col)
		}
	case "queen", "q":
		r, c, ok := parseCell(args)
		if !ok {
			return false
		}
		mv, err := b.PlaceQueen(r, c)
		if err != nil {
			fmt.Println("error:", err)
			return false
		}
		if !mv.Placed {
			explain(*mv.Checks)
			return false
		}
		fmt.Println(render(b))
		return mv.Solved
	case "remove", "r":
		r, c, ok := parseCell(args)
		if !ok {
			return false
		}
		if _, err := b.RemoveQueen(r, c); err != nil {
			fmt.Println("error:", err)
			return false
		}
		fmt.Println(render(b))
	case "cross", "x":
		r, c, ok := parseCell(args)
		if !ok {
			return false
		}
		if _, err := b.ToggleCross(r, c); err != nil {
			fmt.Println("error:", err)
			return false
		}
		fmt.Println(render(b))
	case "check":
		r, c, ok := parseCell(args)
		if !ok {
			return false
		}
		ck, err := b.QueryPlacement(r, c)
		if err != nil {
			fmt.Println("error:", err)
			return false
		}
		fmt.Printf("row=%v column=%v zone=%v corner=%v legal=%v\n", ck.Row, ck.Column, ck.ColorZone, ck.Corner, ck.OK())
	default:
		fmt.Println("unknown command (try 'help')")
	}
	return false
}

func parseCell(args []string) (int, int, bool) {
	if len(args) != 3 {
		fmt.Println("usage:", args[0], "R C")
		return 0, 0, false
	}
	r, err1 := strconv.Atoi(args[1])
	c, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil {
		fmt.Println("usage:", args[0], "R C")
		return 0, 0, false
	}
	return r, c, true
}

func explain(ck domain.Checks) {
	if !ck.Row {
		fmt.Println("There is another queen in the same row.")
	}
	if !ck.Column {
		fmt.Println("There is another queen in the same column.")
	}
	if !ck.ColorZone {
		fmt.Println("There is another queen in the same color zone.")
	}
	if !ck.Corner {
		fmt.Println("There is another queen touching that corner.")
	}
}

// render draws the board: each cell shows its zone letter, prefixed by Q
// for a queen or x for a scratch-mark.
func render(b *engine.Board) string {
	n := b.Size()
	var sb strings.Builder
	sb.WriteString("   ")
	for c := 0; c < n; c++ {
		fmt.Fprintf(&sb, "%3d", c)
	}
	sb.WriteByte('\n')
	for r := 0; r < n; r++ {
		fmt.Fprintf(&sb, "%3d", r)
		for c := 0; c < n; c++ {
			zone, _ := b.ZoneAt(r, c)
			mark, _ := b.MarkAt(r, c)
			letter := byte('A' + int(zone)%26)
			switch mark {
			case domain.Queen:
				fmt.Fprintf(&sb, " Q%c", letter)
			case domain.Cross:
				fmt.Fprintf(&sb, " x%c", letter)
			default:
				fmt.Fprintf(&sb, "  %c", letter)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
