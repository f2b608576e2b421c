package registry

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
)

type stubGame struct{ id, title string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return g.title }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_stub", func() Game { return stubGame{"zz_stub", "Stub Z"} })
	Register("aa_stub", func() Game { return stubGame{"aa_stub", "Stub A"} })

	if !Exists("aa_stub") || Exists("missing") {
		t.Fatal("Exists() reports the wrong registrations")
	}

	list := List()
	var ids []string
	for _, g := range list {
		if g.ID == "aa_stub" || g.ID == "zz_stub" {
			ids = append(ids, g.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "aa_stub" {
		t.Errorf("List() order = %v, want sorted by ID", ids)
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Stub Z" {
		t.Errorf("Title() = %q, want %q", g.Title(), "Stub Z")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for an unknown ID")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return stubGame{"dup_stub", "Dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering the same ID twice should panic")
		}
	}()
	Register("dup_stub", func() Game { return stubGame{"dup_stub", "Dup"} })
}

type describedGame struct {
	stubGame
	closed *int
}

func (g describedGame) Description() string { return "A board for tests" }
func (g describedGame) Close()              { *g.closed++ }

func TestRegisterReadsDescription(t *testing.T) {
	var closed int
	Register("described_stub", func() Game {
		return describedGame{stubGame{"described_stub", "Described"}, &closed}
	})

	info, ok := Lookup("described_stub")
	if !ok {
		t.Fatal("Lookup() did not find the registration")
	}
	want := GameInfo{ID: "described_stub", Title: "Described", Description: "A board for tests"}
	if info != want {
		t.Errorf("Lookup() = %+v, want %+v", info, want)
	}
	if closed != 1 {
		t.Errorf("temporary instance closed %d times, want 1", closed)
	}

	Register("plain_stub", func() Game { return stubGame{"plain_stub", "Plain"} })
	if info, _ := Lookup("plain_stub"); info.Description != "" {
		t.Errorf("plain game got description %q", info.Description)
	}
}

func TestRelease(t *testing.T) {
	var closed int
	Release(describedGame{closed: &closed})
	Release(stubGame{})
	Release(nil)

	if closed != 1 {
		t.Errorf("Release closed %d times, want 1", closed)
	}
}
