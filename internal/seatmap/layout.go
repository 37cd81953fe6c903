package seatmap

import (
	"sort"
	"sync"

	"github.com/iliyamo/seatmap/internal/model"
)

// Element is one box of an arranged floor plan.  A non-nil Seat marks an
// interactive (or booked) seat cell; everything else is structure.  Tag
// defaults to div.
type Element struct {
	Tag      string
	Class    string
	Text     string
	Seat     *model.Seat
	Berth    bool
	Children []Element
}

// Grid is the arranged content of a vehicle's scrollable seat area.
type Grid struct {
	Items []Element
}

// Seats returns the seat cells of g in render order.
func (g Grid) Seats() []model.Seat {
	var out []model.Seat
	var visit func(e Element)
	visit = func(e Element) {
		if e.Seat != nil {
			out = append(out, *e.Seat)
		}
		for _, c := range e.Children {
			visit(c)
		}
	}
	for _, e := range g.Items {
		visit(e)
	}
	return out
}

// Shell is the fixed, non-interactive frame around the seat area.
type Shell struct {
	BodyClass string
	Before    []Element
	After     []Element
}

// Layout arranges a flat seat list into a vehicle-specific floor plan.
type Layout interface {
	Shell() Shell
	Arrange(seats []model.Seat) Grid
}

var (
	layoutsMu sync.RWMutex
	layouts   = map[model.VehicleType]Layout{
		model.VehicleFlight: flightLayout,
		model.VehicleBus:    busLayout,
		model.VehicleTrain:  trainLayout{},
	}
)

// RegisterLayout installs l for vt, replacing any previous layout.
func RegisterLayout(vt model.VehicleType, l Layout) {
	layoutsMu.Lock()
	defer layoutsMu.Unlock()
	layouts[vt] = l
}

// LayoutFor returns the layout registered for vt.
func LayoutFor(vt model.VehicleType) (Layout, bool) {
	layoutsMu.RLock()
	defer layoutsMu.RUnlock()
	l, ok := layouts[vt]
	return l, ok
}

// seatRow is the group of seats sharing one row number.
type seatRow struct {
	num   int
	byCol map[int]*model.Seat
}

// groupByRow groups seats by Row and returns the groups ascending.  When two
// records share a (row, col) slot the first one wins.
func groupByRow(seats []model.Seat) []seatRow {
	idx := make(map[int]int)
	var rows []seatRow
	for i := range seats {
		s := &seats[i]
		pos, ok := idx[s.Row]
		if !ok {
			pos = len(rows)
			idx[s.Row] = pos
			rows = append(rows, seatRow{num: s.Row, byCol: make(map[int]*model.Seat)})
		}
		if _, dup := rows[pos].byCol[s.Col]; !dup {
			rows[pos].byCol[s.Col] = s
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].num < rows[j].num })
	return rows
}

func seatCell(s *model.Seat, berth bool) Element {
	cp := *s
	return Element{Class: "seat", Seat: &cp, Berth: berth}
}

func legend() Element {
	swatch := func(state, caption string) Element {
		return Element{Tag: "span", Children: []Element{
			{Tag: "span", Class: "seat-swatch " + state},
			{Tag: "span", Text: " " + caption},
		}}
	}
	return Element{Class: "seat-legend", Children: []Element{
		swatch(classAvailable, "Available"),
		swatch(classSelected, "Selected"),
		swatch(classBooked, "Booked"),
	}}
}
