package seatmap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/iliyamo/seatmap/internal/model"
)

// Config is supplied once per Init and is immutable afterwards.
type Config struct {
	VehicleType model.VehicleType
	VehicleID   string
	ContainerID string
	MaxSeats    int
	// FormID names the host form; empty means DefaultFormID.
	FormID string
	// OnSelectionChange receives the ordered selection after every accepted
	// toggle.  It runs synchronously, after the form has been synced, while
	// the widget is locked: it must not call back into the widget.
	OnSelectionChange func(seats []model.Seat)
	// OnNotice receives transient user-facing notices such as the seat cap
	// message.
	OnNotice func(msg string)
}

// State is the widget's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateUnavailable:
		return "unavailable"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ToggleResult describes the effect of a toggle.
type ToggleResult struct {
	Outcome Outcome
	Notice  string
	// Cell is the re-rendered seat cell; empty for unknown seats.
	Cell string
}

// Widget is one seat map instance.  It owns its configuration, seat data
// and selection; all methods are safe for concurrent use and toggles never
// interleave.
type Widget struct {
	source Source
	doc    *Document

	mu    sync.Mutex
	gen   uint64
	cfg   Config
	state State
	seats map[uint64]model.Seat
	cells map[uint64]seatCellRef
	sel   *Selection
}

// NewWidget returns an idle widget drawing into doc.
func NewWidget(src Source, doc *Document) *Widget {
	return &Widget{source: src, doc: doc, sel: NewSelection(1)}
}

// Init validates cfg, discards any previous selection, shows the loading
// placeholder and fetches the seats.  Only configuration problems are
// returned; a failed fetch leaves the widget in StateUnavailable with an
// error message rendered.  If another Init starts while this one is
// fetching, this one's result is dropped.
func (w *Widget) Init(ctx context.Context, cfg Config) error {
	layout, err := validateConfig(cfg)
	if err != nil {
		return err
	}
	if cfg.FormID == "" {
		cfg.FormID = DefaultFormID
	}

	w.mu.Lock()
	container := w.doc.ElementByID(cfg.ContainerID)
	if container == nil {
		w.mu.Unlock()
		return fmt.Errorf("%w: container %q not found", ErrInvalidConfiguration, cfg.ContainerID)
	}
	w.gen++
	gen := w.gen
	w.cfg = cfg
	w.state = StateLoading
	w.seats = nil
	w.cells = nil
	w.sel = NewSelection(cfg.MaxSeats)
	SyncForm(w.doc, cfg.FormID, nil)
	renderLoading(container)
	w.mu.Unlock()

	seats, fetchErr := w.source.FetchSeats(ctx, cfg.VehicleType, cfg.VehicleID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		return nil
	}
	if fetchErr != nil {
		if !errors.Is(fetchErr, ErrDataUnavailable) {
			fetchErr = fmt.Errorf("%w: %v", ErrDataUnavailable, fetchErr)
		}
		log.Printf("seatmap: %s/%s: %v", cfg.VehicleType, cfg.VehicleID, fetchErr)
		w.state = StateUnavailable
		renderUnavailable(container)
		return nil
	}

	// Only seats that made it onto the grid are selectable.
	grid := layout.Arrange(seats)
	placed := grid.Seats()
	w.seats = make(map[uint64]model.Seat, len(placed))
	for _, s := range placed {
		w.seats[s.ID] = s
	}
	if n := len(seats) - len(placed); n > 0 {
		log.Printf("seatmap: %s/%s: %d seat(s) outside the layout skipped", cfg.VehicleType, cfg.VehicleID, n)
	}
	w.cells = renderLayout(container, layout.Shell(), grid, w.sel.Contains)
	w.state = StateReady
	return nil
}

func validateConfig(cfg Config) (Layout, error) {
	if strings.TrimSpace(cfg.VehicleID) == "" {
		return nil, fmt.Errorf("%w: empty vehicle id", ErrInvalidConfiguration)
	}
	if strings.TrimSpace(cfg.ContainerID) == "" {
		return nil, fmt.Errorf("%w: empty container id", ErrInvalidConfiguration)
	}
	if cfg.MaxSeats < 1 {
		return nil, fmt.Errorf("%w: max seats must be at least 1, got %d", ErrInvalidConfiguration, cfg.MaxSeats)
	}
	layout, ok := LayoutFor(cfg.VehicleType)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported vehicle type %q", ErrInvalidConfiguration, cfg.VehicleType)
	}
	return layout, nil
}

// Toggle flips the selection state of seatID.  Accepted toggles update the
// seat's cell, sync the host form and then call OnSelectionChange.  A full
// selection yields OutcomeLimitReached and the cap notice; booked and
// unknown seats change nothing.
func (w *Widget) Toggle(seatID uint64) ToggleResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	seat, ok := w.seats[seatID]
	ref, drawn := w.cells[seatID]
	if !ok || !drawn || w.state != StateReady {
		return ToggleResult{Outcome: OutcomeUnknownSeat}
	}

	res := ToggleResult{Outcome: w.sel.Toggle(seat)}
	if ref.node != nil {
		setAttr(ref.node, "class", SeatClass(seat, w.sel.Contains(seatID), ref.berth))
		res.Cell = RenderNode(ref.node)
	}

	switch {
	case res.Outcome == OutcomeLimitReached:
		res.Notice = LimitNotice(w.sel.Max())
		if w.cfg.OnNotice != nil {
			w.cfg.OnNotice(res.Notice)
		}
	case res.Outcome.Accepted():
		snapshot := w.sel.Snapshot()
		SyncForm(w.doc, w.cfg.FormID, snapshot)
		if w.cfg.OnSelectionChange != nil {
			w.cfg.OnSelectionChange(snapshot)
		}
	}
	return res
}

// SelectedSeats returns the current selection as id/label pairs.
func (w *Widget) SelectedSeats() []model.SelectedSeat {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sel.Selected()
}

// State returns the lifecycle state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Config returns the active configuration.
func (w *Widget) Config() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// FormFields returns the hidden seat inputs currently in the host form.
func (w *Widget) FormFields() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return FormFields(w.doc.ElementByID(w.cfg.FormID))
}

// HTML renders the widget's document.
func (w *Widget) HTML() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc.String()
}
