package seatmap

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/iliyamo/seatmap/internal/model"
)

const (
	classAvailable = "available"
	classSelected  = "selected"
	classBooked    = "booked"
)

// SeatClass returns the class attribute of a seat cell for the given state.
func SeatClass(s model.Seat, selected, berth bool) string {
	state := classAvailable
	switch {
	case s.IsBooked:
		state = classBooked
	case selected:
		state = classSelected
	}
	cls := "seat " + state
	if berth {
		cls += " berth"
	}
	return cls
}

func renderLoading(container *html.Node) {
	removeChildren(container)
	box := newElement("div", "seat-loading")
	box.AppendChild(newElement("div", "seat-loading-spinner"))
	appendText(box, "Loading seat map…")
	container.AppendChild(box)
}

func renderUnavailable(container *html.Node) {
	removeChildren(container)
	p := newElement("p", "seat-error")
	appendText(p, "Could not load seat map.")
	container.AppendChild(p)
}

// seatCellRef is a rendered seat cell kept for in-place class updates.
type seatCellRef struct {
	node  *html.Node
	berth bool
}

// renderLayout replaces the container's content with the vehicle shell, the
// arranged grid and the legend.  It returns the rendered seat cells by id.
func renderLayout(container *html.Node, shell Shell, grid Grid, isSelected func(uint64) bool) map[uint64]seatCellRef {
	removeChildren(container)
	cells := make(map[uint64]seatCellRef)

	wrapper := newElement("div", "seat-perspective-wrapper")
	vehicle := newElement("div", "seat-vehicle "+shell.BodyClass)
	for _, e := range shell.Before {
		vehicle.AppendChild(buildElement(e, cells, isSelected))
	}
	scroll := newElement("div", "seat-scroll-area")
	for _, e := range grid.Items {
		scroll.AppendChild(buildElement(e, cells, isSelected))
	}
	vehicle.AppendChild(scroll)
	for _, e := range shell.After {
		vehicle.AppendChild(buildElement(e, cells, isSelected))
	}
	wrapper.AppendChild(vehicle)
	container.AppendChild(wrapper)
	container.AppendChild(buildElement(legend(), cells, isSelected))
	return cells
}

func buildElement(e Element, cells map[uint64]seatCellRef, isSelected func(uint64) bool) *html.Node {
	tag := e.Tag
	if tag == "" {
		tag = "div"
	}
	if e.Seat != nil {
		return buildSeat(*e.Seat, e.Berth, cells, isSelected(e.Seat.ID))
	}
	n := newElement(tag, e.Class)
	if e.Text != "" {
		appendText(n, e.Text)
	}
	for _, c := range e.Children {
		n.AppendChild(buildElement(c, cells, isSelected))
	}
	return n
}

func buildSeat(s model.Seat, berth bool, cells map[uint64]seatCellRef, selected bool) *html.Node {
	n := newElement("div", SeatClass(s, selected, berth))
	setAttr(n, "data-seat-id", strconv.FormatUint(s.ID, 10))
	setAttr(n, "data-seat-label", s.Label)
	if s.IsBooked {
		setAttr(n, "title", "Seat "+s.Label+" - Booked")
	} else {
		setAttr(n, "title", "Seat "+s.Label+" - Click to select")
		setAttr(n, "data-action", "toggle")
	}
	label := newElement("span", "seat-label")
	appendText(label, s.Label)
	n.AppendChild(label)
	cells[s.ID] = seatCellRef{node: n, berth: berth}
	return n
}
