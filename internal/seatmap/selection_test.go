package seatmap

import (
	"math/rand"
	"testing"

	"github.com/iliyamo/seatmap/internal/model"
)

func ids(seats []model.Seat) []uint64 {
	out := make([]uint64, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.ID)
	}
	return out
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectionDoubleToggleRestoresState(t *testing.T) {
	sel := NewSelection(3)
	a := model.Seat{ID: 1}
	b := model.Seat{ID: 2}
	sel.Toggle(a)
	before := ids(sel.Snapshot())

	if got := sel.Toggle(b); got != OutcomeSelected {
		t.Fatalf("first toggle = %s, want selected", got)
	}
	if got := sel.Toggle(b); got != OutcomeDeselected {
		t.Fatalf("second toggle = %s, want deselected", got)
	}
	if after := ids(sel.Snapshot()); !equalIDs(before, after) {
		t.Fatalf("selection = %v, want %v", after, before)
	}
}

func TestSelectionNeverExceedsCap(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	sel := NewSelection(3)
	seats := make([]model.Seat, 10)
	for i := range seats {
		seats[i] = model.Seat{ID: uint64(i + 1), IsBooked: i%4 == 0}
	}
	for i := 0; i < 1000; i++ {
		sel.Toggle(seats[r.Intn(len(seats))])
		if sel.Len() > sel.Max() {
			t.Fatalf("selection grew to %d", sel.Len())
		}
		seen := map[uint64]bool{}
		for _, s := range sel.Snapshot() {
			if seen[s.ID] {
				t.Fatalf("duplicate seat %d", s.ID)
			}
			if s.IsBooked {
				t.Fatalf("booked seat %d selected", s.ID)
			}
			seen[s.ID] = true
		}
	}
}

func TestSelectionRejectsBookedSeat(t *testing.T) {
	sel := NewSelection(2)
	if got := sel.Toggle(model.Seat{ID: 9, IsBooked: true}); got != OutcomeBooked {
		t.Fatalf("toggle booked = %s, want booked", got)
	}
	if sel.Len() != 0 {
		t.Fatalf("len = %d, want 0", sel.Len())
	}
}

func TestSelectionDeselectAllowedWhenFull(t *testing.T) {
	sel := NewSelection(1)
	sel.Toggle(model.Seat{ID: 1})
	if got := sel.Toggle(model.Seat{ID: 2}); got != OutcomeLimitReached {
		t.Fatalf("toggle over cap = %s, want limit_reached", got)
	}
	if got := sel.Toggle(model.Seat{ID: 1}); got != OutcomeDeselected {
		t.Fatalf("toggle selected seat = %s, want deselected", got)
	}
}

func TestSelectionKeepsInsertionOrder(t *testing.T) {
	sel := NewSelection(4)
	for _, id := range []uint64{4, 1, 3} {
		sel.Toggle(model.Seat{ID: id, Label: "x"})
	}
	sel.Toggle(model.Seat{ID: 1})
	sel.Toggle(model.Seat{ID: 2})
	if got, want := ids(sel.Snapshot()), []uint64{4, 3, 2}; !equalIDs(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestLimitNotice(t *testing.T) {
	if got := LimitNotice(2); got != "Maximum 2 seat(s) allowed" {
		t.Fatalf("notice = %q", got)
	}
}
