package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func TestWriteBoardList(t *testing.T) {
	boards := []registry.GameInfo{
		{ID: "match3", Title: "Match-3", Description: "Upright board"},
		{ID: "match3_tabletop", Title: "Match-3 (Tabletop)"},
	}
	totals := map[string]*storage.Totals{
		"match3": {GameID: "match3", Sessions: 4, LongestChain: 3},
	}

	var buf bytes.Buffer
	writeBoardList(&buf, boards, totals)
	out := buf.String()

	for _, want := range []string{
		"  match3           Match-3 (4 sessions, best chain x3)\n",
		"                   Upright board\n",
		"  match3_tabletop  Match-3 (Tabletop) (not played yet)\n",
		"match3 play <id>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestWriteBoardListEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeBoardList(&buf, nil, nil)
	if got := buf.String(); got != "No boards available.\n" {
		t.Errorf("output = %q", got)
	}
}
