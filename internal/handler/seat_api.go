// Package handler exposes the HTTP handlers of the seat map service: the
// public seat inventory endpoint widgets fetch from and the widget hosting
// API that drives server-side widget instances.
package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/seatmap/internal/model"
    "github.com/iliyamo/seatmap/internal/repository"
)

// SeatLister is the read side of the seat inventory store.
type SeatLister interface {
    ListByVehicle(ctx context.Context, vt model.VehicleType, vehicleID uint64) ([]model.Seat, error)
}

// SeatAPIHandler serves seat inventories.
type SeatAPIHandler struct {
    Seats SeatLister
}

// NewSeatAPIHandler constructs a SeatAPIHandler and panics if seats is nil.
func NewSeatAPIHandler(seats SeatLister) *SeatAPIHandler {
    if seats == nil {
        panic("nil seat lister passed to NewSeatAPIHandler")
    }
    return &SeatAPIHandler{Seats: seats}
}

// GetSeats handles GET /api/seats/:vehicle_type/:vehicle_id.  It returns
// every seat of the vehicle with its booking state plus total, booked and
// available counters.  Unknown vehicles yield an empty inventory.
func (h *SeatAPIHandler) GetSeats(c echo.Context) error {
    vt, ok := model.ParseVehicleType(c.Param("vehicle_type"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid vehicle type"})
    }
    vehicleID, err := strconv.ParseUint(c.Param("vehicle_id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
    }
    seats, err := h.Seats.ListByVehicle(c.Request().Context(), vt, vehicleID)
    if err != nil {
        if errors.Is(err, repository.ErrInvalidVehicleType) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid vehicle type"})
        }
        c.Logger().Errorf("list seats %s/%d: %v", vt, vehicleID, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, model.NewSeatInventory(vt, vehicleID, seats))
}

// InProcessSource adapts a SeatLister into a seatmap.Source so hosted
// widgets can read the inventory without an HTTP round trip.
type InProcessSource struct {
    Seats SeatLister
}

// FetchSeats implements seatmap.Source.
func (s InProcessSource) FetchSeats(ctx context.Context, vt model.VehicleType, vehicleID string) ([]model.Seat, error) {
    id, err := strconv.ParseUint(vehicleID, 10, 64)
    if err != nil {
        return nil, err
    }
    return s.Seats.ListByVehicle(ctx, vt, id)
}
