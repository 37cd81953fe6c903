package model

import "strings"

// VehicleType names the kind of vehicle a seat map belongs to.  The set is
// closed at the API boundary (flight, bus, train) but layouts are looked up
// by value so new types can be registered without touching callers.
type VehicleType string

const (
    VehicleFlight VehicleType = "flight"
    VehicleBus    VehicleType = "bus"
    VehicleTrain  VehicleType = "train"
)

// ParseVehicleType normalizes s and reports whether it names one of the
// built-in vehicle types.
func ParseVehicleType(s string) (VehicleType, bool) {
    vt := VehicleType(strings.ToLower(strings.TrimSpace(s)))
    switch vt {
    case VehicleFlight, VehicleBus, VehicleTrain:
        return vt, true
    }
    return vt, false
}

// Seat describes one physical seat or berth of a vehicle.  Seats are
// uniquely identified within a vehicle by their (Row, Col) position.
//
// Fields:
//  ID        – opaque identifier, stable for the session.
//  Label     – human readable seat code such as 14C or LB-3.
//  Row       – row (or bay for trains) used as the grouping key.
//  Col       – column index; its meaning depends on the vehicle type.
//  SeatClass – economy, standard or sleeper.  Informational only.
//  IsBooked  – booked seats can never be selected.
type Seat struct {
    ID        uint64 `json:"id"`
    Label     string `json:"seat_label"`
    Row       int    `json:"row"`
    Col       int    `json:"col"`
    SeatClass string `json:"seat_class,omitempty"`
    IsBooked  bool   `json:"is_booked"`
}

// SelectedSeat is the public projection of a selected seat.
type SelectedSeat struct {
    ID    uint64 `json:"id"`
    Label string `json:"label"`
}

// SeatInventory is the body returned by the seat inventory endpoint.
type SeatInventory struct {
    VehicleType VehicleType `json:"vehicle_type"`
    VehicleID   uint64      `json:"vehicle_id"`
    Seats       []Seat      `json:"seats"`
    Total       int         `json:"total"`
    Booked      int         `json:"booked"`
    Available   int         `json:"available"`
}

// NewSeatInventory builds an inventory response and fills in the counters.
func NewSeatInventory(vt VehicleType, vehicleID uint64, seats []Seat) SeatInventory {
    if seats == nil {
        seats = []Seat{}
    }
    inv := SeatInventory{VehicleType: vt, VehicleID: vehicleID, Seats: seats, Total: len(seats)}
    for _, s := range seats {
        if s.IsBooked {
            inv.Booked++
        } else {
            inv.Available++
        }
    }
    return inv
}
