package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/grid"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

var (
	flagSimSwaps int
	flagSimBoard bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play random swaps headless and print stats",
	Long: `Swap random neighbouring pieces on a fresh board, resolving every
cascade immediately, and print the resulting counters. Useful to check
a custom config or to compare seeds.

Examples:
  match3 simulate --swaps 500
  match3 simulate --seed 7 --board
  match3 simulate --config ./my-board.yaml --log-level debug --log-file sim.log`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimSwaps, "swaps", 100, "Number of swaps to play")
	simulateCmd.Flags().BoolVar(&flagSimBoard, "board", false, "Print the final board")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	mc, err := match3.LoadConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ec, err := match3.EngineConfig(mc, seed)
	if err != nil {
		return err
	}
	eng, err := engine.New(ec, engine.WithLogger(log.Default().With("cmd", "simulate")))
	if err != nil {
		return err
	}
	defer eng.Close()

	rng := rand.New(rand.NewSource(seed))
	b := eng.Board()
	start := time.Now()

	for range flagSimSwaps {
		a := grid.C(rng.Intn(b.Width()), rng.Intn(b.Height()))
		eng.Select(a)
		eng.Select(neighbour(rng, a, b.Width(), b.Height()))
		eng.Settle()
	}

	st := eng.Stats()
	fmt.Printf("seed:          %d\n", seed)
	fmt.Printf("board:         %dx%d %s\n", b.Width(), b.Height(), mc.Board.Orientation)
	fmt.Printf("swaps:         %d\n", st.Swaps)
	fmt.Printf("passes:        %d\n", st.Passes)
	fmt.Printf("cleared:       %d\n", st.Cleared)
	fmt.Printf("spawned:       %d\n", st.Spawned)
	fmt.Printf("longest chain: %d\n", st.LongestChain)
	fmt.Printf("elapsed:       %s\n", time.Since(start).Round(time.Microsecond))

	if flagSimBoard {
		fmt.Println()
		fmt.Print(drawBoard(b))
	}
	return nil
}

// neighbour picks a random orthogonal neighbour of c inside the board.
func neighbour(rng *rand.Rand, c grid.Coord, w, h int) grid.Coord {
	dirs := []grid.Coord{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	for _, d := range dirs {
		n := grid.C(c.X+d.X, c.Y+d.Y)
		if n.X >= 0 && n.X < w && n.Y >= 0 && n.Y < h {
			return n
		}
	}
	return c
}

// drawBoard prints rows top first.
func drawBoard(b *engine.Board) string {
	var sb strings.Builder
	for y := b.Height() - 1; y >= 0; y-- {
		for x := 0; x < b.Width(); x++ {
			if p, ok := b.Get(x, y).Value(); ok {
				sb.WriteRune(p.Type.Glyph)
			} else {
				sb.WriteRune('.')
			}
			sb.WriteRune(' ')
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
