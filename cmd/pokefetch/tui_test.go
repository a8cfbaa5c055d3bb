package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avdejs/pokefetch/pkg/client"
	"github.com/avdejs/pokefetch/pkg/state"
)

func fixedSnapshot(names ...string) state.Snapshot {
	var items []client.Pokemon
	for _, name := range names {
		items = append(items, client.Pokemon{Name: name, ImageURL: "https://art/" + name + ".png"})
	}
	return state.Snapshot{Items: items}
}

// stub satisfies state.Fetcher without any network.
type stub struct{}

func (stub) FetchList(ctx context.Context, offset, limit int) (*client.Page, error) {
	return &client.Page{}, nil
}

func TestModel_SnapshotUpdatesItems(t *testing.T) {
	m := newModel(state.New(stub{}, 100), 100)

	updated, _ := m.Update(snapshotMsg(fixedSnapshot("bulbasaur", "pikachu")))
	mm := updated.(model)

	if len(mm.snapshot.Items) != 2 {
		t.Errorf("Items = %d, want 2", len(mm.snapshot.Items))
	}
}

func TestModel_CursorResetWhenOutOfRange(t *testing.T) {
	m := newModel(state.New(stub{}, 100), 100)
	m.cursor = 5

	updated, _ := m.Update(snapshotMsg(fixedSnapshot("bulbasaur")))
	mm := updated.(model)

	if mm.cursor != 0 {
		t.Errorf("cursor = %d, want 0", mm.cursor)
	}
}

func TestModel_CursorNavigation(t *testing.T) {
	m := newModel(state.New(stub{}, 100), 100)
	m.snapshot = fixedSnapshot("bulbasaur", "ivysaur", "venusaur")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	mm := updated.(model)
	if mm.cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", mm.cursor)
	}

	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyUp})
	mm = updated.(model)
	if mm.cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", mm.cursor)
	}

	// Never above the first row
	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyUp})
	mm = updated.(model)
	if mm.cursor != 0 {
		t.Errorf("cursor clamped = %d, want 0", mm.cursor)
	}
}

func TestModel_EnterOpensDialogOnlyWithItems(t *testing.T) {
	m := newModel(state.New(stub{}, 100), 100)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := updated.(model)
	if mm.showDialog {
		t.Error("Dialog should not open with no items")
	}

	mm.snapshot = fixedSnapshot("bulbasaur")
	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm = updated.(model)
	if !mm.showDialog {
		t.Error("Dialog should open with items selected")
	}

	// Any key closes it again
	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	mm = updated.(model)
	if mm.showDialog {
		t.Error("Dialog should close on any key")
	}
}
