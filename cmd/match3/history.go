package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [board]",
	Short: "Show recorded sessions",
	Long: `Display recent sessions and totals. Without a board, sessions of
every board are listed.

Examples:
  match3 history
  match3 history match3_tabletop --limit 5
  match3 history match3 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the board's history")
}

func runHistory(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown board %q, run 'match3 list' to see available boards", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if gameID == "" {
			return fmt.Errorf("--clear needs a board")
		}
		if err := store.ClearSessions(gameID); err != nil {
			return err
		}
		fmt.Printf("History of %s cleared.\n", gameID)
		return nil
	}

	sessions, err := store.RecentSessions(gameID, flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'match3 play' and make a swap to record one!")
		return nil
	}

	fmt.Printf("  %-16s  %-16s  %-12s  %5s  %7s  %5s  %8s\n", "Date", "Board", "Player", "Swaps", "Cleared", "Chain", "Time")
	fmt.Printf("  %-16s  %-16s  %-12s  %5s  %7s  %5s  %8s\n", "----", "-----", "------", "-----", "-------", "-----", "----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-16s  %-12s  %5d  %7d  %5d  %8s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.GameID,
			s.Player,
			s.Swaps,
			s.Cleared,
			s.LongestChain,
			s.Duration.Round(time.Second),
		)
	}

	all, err := store.AllTotals()
	if err != nil {
		return err
	}

	fmt.Println()
	for _, g := range registry.List() {
		t, ok := all[g.ID]
		if !ok || (gameID != "" && g.ID != gameID) {
			continue
		}
		fmt.Printf("%s: %d sessions, %d swaps, %d cleared, best chain x%d, %s played\n",
			g.Title, t.Sessions, t.Swaps, t.Cleared, t.LongestChain, t.PlayTime)
	}
	return nil
}
