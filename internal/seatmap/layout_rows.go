package seatmap

import (
	"strconv"

	"github.com/iliyamo/seatmap/internal/model"
)

// rowLayout is a straight cabin: numbered rows of SeatCols seats with a
// single aisle gap inserted before column AisleAt.  Flights and buses differ
// only in their parameters.
type rowLayout struct {
	shell     Shell
	gridClass string
	headers   []string // display order, "" marks the aisle
	seatCols  int
	aisleAt   int
	rowLabels bool
}

var flightLayout = rowLayout{
	shell: Shell{
		BodyClass: "flight-body",
		Before: []Element{{Class: "flight-nose", Children: []Element{{Class: "flight-nose-inner", Children: []Element{
			{Tag: "i", Class: "fa-solid fa-plane"},
			{Tag: "span", Text: "COCKPIT"},
		}}}}},
		After: []Element{{Class: "flight-tail"}},
	},
	gridClass: "seat-grid flight-grid",
	headers:   []string{"A", "B", "C", "", "D", "E", "F"},
	seatCols:  6,
	aisleAt:   3,
	rowLabels: true,
}

var busLayout = rowLayout{
	shell: Shell{
		BodyClass: "bus-body",
		Before: []Element{
			{Class: "bus-driver", Children: []Element{
				{Class: "bus-driver-inner", Children: []Element{
					{Tag: "i", Class: "fa-solid fa-bus"},
					{Tag: "span", Text: "DRIVER"},
				}},
				{Class: "bus-steering", Children: []Element{{Tag: "i", Class: "fa-solid fa-circle-notch"}}},
			}},
			{Class: "bus-door", Children: []Element{{Tag: "span", Text: "DOOR"}}},
		},
		After: []Element{{Class: "bus-rear"}},
	},
	gridClass: "seat-grid bus-grid",
	headers:   []string{"W", "A", "", "B", "W"},
	seatCols:  4,
	aisleAt:   2,
}

func (l rowLayout) Shell() Shell { return l.shell }

func (l rowLayout) Arrange(seats []model.Seat) Grid {
	grid := Element{Class: l.gridClass}

	header := Element{Class: "seat-row seat-header-row"}
	for _, h := range l.headers {
		if h == "" {
			header.Children = append(header.Children, Element{Class: "seat-aisle"})
			continue
		}
		header.Children = append(header.Children, Element{Class: "seat-col-label", Text: h})
	}
	grid.Children = append(grid.Children, header)

	for _, row := range groupByRow(seats) {
		el := Element{Class: "seat-row"}
		if l.rowLabels {
			el.Children = append(el.Children, Element{Class: "seat-row-label", Text: strconv.Itoa(row.num)})
		}
		for c := 0; c < l.seatCols; c++ {
			if c == l.aisleAt {
				el.Children = append(el.Children, Element{Class: "seat-aisle"})
			}
			if s, ok := row.byCol[c]; ok {
				el.Children = append(el.Children, seatCell(s, false))
			} else {
				el.Children = append(el.Children, Element{Class: "seat empty"})
			}
		}
		grid.Children = append(grid.Children, el)
	}
	return Grid{Items: []Element{grid}}
}
