// Package seatmap implements the interactive seat map widget: fetching a
// vehicle's seat inventory, arranging it into a type-specific floor plan,
// tracking the user's selection and mirroring it into a host booking form.
//
// A Widget owns all of its state, so several widgets (one per leg of a
// multi-leg booking) can live side by side.  The rendered markup is an
// x/net/html node tree held by a Document; CSS classes on seat cells are a
// projection of the in-memory selection and are never read back.
package seatmap

import "errors"

// ErrDataUnavailable is returned by a Source when the seat inventory could
// not be retrieved or decoded.  Widgets recover from it locally by rendering
// a static error message.
var ErrDataUnavailable = errors.New("seat data unavailable")

// ErrInvalidConfiguration is returned by Widget.Init when the configuration
// cannot produce a layout: unknown vehicle type, missing container, empty
// vehicle id or a non-positive seat cap.
var ErrInvalidConfiguration = errors.New("invalid seat map configuration")
