// Package repository defines data access for the seat inventory.  Sentinel
// errors let handlers distinguish caller mistakes from storage failures.
package repository

import "errors"

// ErrInvalidVehicleType is returned when a query names a vehicle type the
// inventory does not hold.  Handlers translate it into HTTP 400.
var ErrInvalidVehicleType = errors.New("invalid vehicle type")
