// Package queue defines message payloads exchanged over the message broker.
package queue

// SelectionQueueName is the durable queue selection events are routed to.
const SelectionQueueName = "seat.selection.changed"

// SelectionChangedEvent is published after every accepted toggle of a
// hosted widget.  It carries the full ordered selection so consumers never
// need to replay earlier events.
type SelectionChangedEvent struct {
    WidgetID    string   `json:"widget_id"`
    VehicleType string   `json:"vehicle_type"`
    VehicleID   string   `json:"vehicle_id"`
    SeatIDs     []uint64 `json:"seat_ids"`
    SeatLabels  []string `json:"seats"`
    MaxSeats    int      `json:"max_seats"`
    ChangedAt   string   `json:"changed_at"`
}
