package seatmap

import (
	"fmt"

	"github.com/iliyamo/seatmap/internal/model"
)

// Berth columns within a bay.  Main berths are col = side*3 + tier with
// tier 0 lower, 1 middle, 2 upper; side berths sit across the aisle.
const (
	trainSides     = 2
	trainTiers     = 3
	trainSideLower = 6
	trainSideUpper = 7
)

// trainLayout renders sleeper coaches bay by bay.  Missing berths are simply
// left out; the tier rows, aisle and side section are always present.
type trainLayout struct{}

func (trainLayout) Shell() Shell {
	return Shell{
		BodyClass: "train-body",
		Before: []Element{{Class: "train-engine", Children: []Element{{Class: "train-engine-inner", Children: []Element{
			{Tag: "i", Class: "fa-solid fa-train"},
			{Tag: "span", Text: "COACH"},
		}}}}},
	}
}

func (trainLayout) Arrange(seats []model.Seat) Grid {
	var g Grid
	for _, row := range groupByRow(seats) {
		main := Element{Class: "train-main-berths"}
		for tier := trainTiers - 1; tier >= 0; tier-- {
			tierRow := Element{Class: "train-tier-row"}
			for side := 0; side < trainSides; side++ {
				if s, ok := row.byCol[side*trainTiers+tier]; ok {
					tierRow.Children = append(tierRow.Children, seatCell(s, true))
				}
			}
			main.Children = append(main.Children, tierRow)
		}

		side := Element{Class: "train-side-berths"}
		for col := trainSideUpper; col >= trainSideLower; col-- {
			if s, ok := row.byCol[col]; ok {
				side.Children = append(side.Children, seatCell(s, true))
			}
		}

		g.Items = append(g.Items, Element{Class: "train-compartment", Children: []Element{
			{Class: "train-comp-label", Text: fmt.Sprintf("Bay %d", row.num)},
			{Class: "train-berth-grid", Children: []Element{main, {Class: "train-aisle"}, side}},
		}})
	}
	return g
}
