package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long: `Shows every registered board variant with a short description
and how often it has been played on this machine.`,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	var totals map[string]*storage.Totals
	if store := openStore(); store != nil {
		defer store.Close()

		var err error
		if totals, err = store.AllTotals(); err != nil {
			log.Warn("cannot read totals", "err", err)
		}
	}

	writeBoardList(os.Stdout, registry.List(), totals)
	return nil
}

// writeBoardList prints one row per board. totals may be nil.
func writeBoardList(w io.Writer, boards []registry.GameInfo, totals map[string]*storage.Totals) {
	if len(boards) == 0 {
		fmt.Fprintln(w, "No boards available.")
		return
	}

	idWidth := len("ID")
	for _, b := range boards {
		idWidth = max(idWidth, len(b.ID))
	}

	fmt.Fprintln(w, "Available boards:")
	fmt.Fprintln(w)
	for _, b := range boards {
		played := "not played yet"
		if t := totals[b.ID]; t != nil && t.Sessions > 0 {
			played = fmt.Sprintf("%d sessions, best chain x%d", t.Sessions, t.LongestChain)
		}

		fmt.Fprintf(w, "  %-*s  %s (%s)\n", idWidth, b.ID, b.Title, played)
		if b.Description != "" {
			fmt.Fprintf(w, "  %-*s  %s\n", idWidth, "", b.Description)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'match3 play <id>' to play a board.")
}
