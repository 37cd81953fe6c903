// Package seed generates demo seat inventories in the same shapes the
// layouts render: 3+3 flight cabins, 2+2 buses and 8-berth sleeper bays.
package seed

import (
	"fmt"
	"math/rand"

	"github.com/iliyamo/seatmap/internal/model"
)

var (
	flightCols  = []string{"A", "B", "C", "D", "E", "F"}
	busCols     = []string{"A", "B", "C", "D"}
	trainBerths = []string{"LB", "MB", "UB", "LB", "MB", "UB", "SL", "SU"}
)

// Options controls generation.  BookedRatio is the probability that a seat
// is pre-booked; Rand supplies randomness and may be nil for no bookings.
type Options struct {
	BookedRatio float64
	Rand        *rand.Rand
}

func (o Options) booked() bool {
	return o.Rand != nil && o.Rand.Float64() < o.BookedRatio
}

// DefaultBookedRatio returns the pre-booked share used for demo data.
func DefaultBookedRatio(vt model.VehicleType) float64 {
	switch vt {
	case model.VehicleFlight:
		return 0.25
	case model.VehicleBus:
		return 0.3
	case model.VehicleTrain:
		return 0.2
	}
	return 0
}

// Seats generates up to n seats for vt.  Small vehicles are padded with
// extra rows (at least 4 flight rows, 5 bus rows, 5 train bays) but never
// with more than n seats.
func Seats(vt model.VehicleType, n int, opts Options) ([]model.Seat, error) {
	switch vt {
	case model.VehicleFlight:
		return grid(n, max(n/6, 4), flightCols, "economy", opts, func(row int, col string) string {
			return fmt.Sprintf("%d%s", row, col)
		}), nil
	case model.VehicleBus:
		return grid(n, max(n/4, 5), busCols, "standard", opts, func(row int, col string) string {
			return fmt.Sprintf("%d%s", row, col)
		}), nil
	case model.VehicleTrain:
		return grid(n, max(n/8, 5), trainBerths, "sleeper", opts, func(bay int, berth string) string {
			return fmt.Sprintf("%s-%d", berth, bay)
		}), nil
	}
	return nil, fmt.Errorf("seed: unsupported vehicle type %q", vt)
}

func grid(n, rows int, cols []string, class string, opts Options, label func(int, string) string) []model.Seat {
	seats := make([]model.Seat, 0, n)
	for row := 1; row <= rows; row++ {
		for col, name := range cols {
			if len(seats) >= n {
				return seats
			}
			seats = append(seats, model.Seat{
				Label:     label(row, name),
				Row:       row,
				Col:       col,
				SeatClass: class,
				IsBooked:  opts.booked(),
			})
		}
	}
	return seats
}
