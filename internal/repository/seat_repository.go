package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"strings"

	"github.com/iliyamo/seatmap/internal/model"
)

// SeatRepo provides methods to work with the seats table.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// ListByVehicle returns every seat of one vehicle ordered by row then
// column.  An unknown vehicle yields an empty slice.
func (r *SeatRepo) ListByVehicle(ctx context.Context, vt model.VehicleType, vehicleID uint64) ([]model.Seat, error) {
	if _, ok := model.ParseVehicleType(string(vt)); !ok {
		return nil, ErrInvalidVehicleType
	}
	const q = `SELECT id, seat_label, row_no, col_no, seat_class, is_booked
	           FROM seats
	           WHERE vehicle_type = ? AND vehicle_id = ?
	           ORDER BY row_no, col_no`
	rows, err := r.db.QueryContext(ctx, q, string(vt), vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Seat{}
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.Label, &s.Row, &s.Col, &s.SeatClass, &s.IsBooked); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateBulk inserts the seats of one vehicle in a single statement.  The
// ID fields of seats are not populated.
func (r *SeatRepo) CreateBulk(ctx context.Context, vt model.VehicleType, vehicleID uint64, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	if _, ok := model.ParseVehicleType(string(vt)); !ok {
		return ErrInvalidVehicleType
	}
	var b strings.Builder
	b.WriteString(`INSERT INTO seats (vehicle_type, vehicle_id, seat_label, row_no, col_no, seat_class, is_booked) VALUES `)
	args := make([]interface{}, 0, len(seats)*7)
	for i, s := range seats {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, string(vt), vehicleID, s.Label, s.Row, s.Col, s.SeatClass, s.IsBooked)
	}
	_, err := r.db.ExecContext(ctx, b.String(), args...)
	return err
}

// DeleteByVehicle removes all seats of a vehicle so its layout can be
// regenerated.
func (r *SeatRepo) DeleteByVehicle(ctx context.Context, vt model.VehicleType, vehicleID uint64) error {
	const q = `DELETE FROM seats WHERE vehicle_type = ? AND vehicle_id = ?`
	_, err := r.db.ExecContext(ctx, q, string(vt), vehicleID)
	return err
}
