package seatmap

import (
	"fmt"

	"github.com/iliyamo/seatmap/internal/model"
)

// Outcome reports what a toggle did.
type Outcome int

const (
	// OutcomeSelected means the seat was added to the selection.
	OutcomeSelected Outcome = iota
	// OutcomeDeselected means the seat was removed from the selection.
	OutcomeDeselected
	// OutcomeLimitReached means the seat was not added because the
	// selection is already full.
	OutcomeLimitReached
	// OutcomeBooked means the seat is booked and cannot be selected.
	OutcomeBooked
	// OutcomeUnknownSeat means no seat with that id was rendered.
	OutcomeUnknownSeat
)

// Accepted reports whether the selection changed.
func (o Outcome) Accepted() bool {
	return o == OutcomeSelected || o == OutcomeDeselected
}

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeLimitReached:
		return "limit_reached"
	case OutcomeBooked:
		return "booked"
	case OutcomeUnknownSeat:
		return "unknown_seat"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// LimitNotice is the user-facing message shown when the cap is hit.
func LimitNotice(max int) string {
	return fmt.Sprintf("Maximum %d seat(s) allowed", max)
}

// Selection is the ordered set of chosen seats, capped at max entries.
type Selection struct {
	max   int
	seats []model.Seat
}

// NewSelection returns an empty selection.  max below one is raised to one.
func NewSelection(max int) *Selection {
	if max < 1 {
		max = 1
	}
	return &Selection{max: max}
}

// Max returns the cap.
func (s *Selection) Max() int { return s.max }

// Len returns the number of selected seats.
func (s *Selection) Len() int { return len(s.seats) }

// Contains reports whether id is selected.
func (s *Selection) Contains(id uint64) bool {
	return s.index(id) >= 0
}

func (s *Selection) index(id uint64) int {
	for i := range s.seats {
		if s.seats[i].ID == id {
			return i
		}
	}
	return -1
}

// Toggle flips seat between selected and available.  A selected seat is
// always released.  An unselected seat is refused when the selection is full
// (checked first, so a click on any seat of a full map yields the limit
// notice) and when it is booked; otherwise it is appended.
func (s *Selection) Toggle(seat model.Seat) Outcome {
	if i := s.index(seat.ID); i >= 0 {
		s.seats = append(s.seats[:i], s.seats[i+1:]...)
		return OutcomeDeselected
	}
	if len(s.seats) >= s.max {
		return OutcomeLimitReached
	}
	if seat.IsBooked {
		return OutcomeBooked
	}
	s.seats = append(s.seats, seat)
	return OutcomeSelected
}

// Snapshot returns a copy of the selection in insertion order.
func (s *Selection) Snapshot() []model.Seat {
	out := make([]model.Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

// Selected returns the id/label pairs of the selection in insertion order.
func (s *Selection) Selected() []model.SelectedSeat {
	out := make([]model.SelectedSeat, 0, len(s.seats))
	for _, seat := range s.seats {
		out = append(out, model.SelectedSeat{ID: seat.ID, Label: seat.Label})
	}
	return out
}
