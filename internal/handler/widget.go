package handler

import (
    "context"
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strconv"
    "strings"
    "sync"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/seatmap/internal/middleware"
    "github.com/iliyamo/seatmap/internal/model"
    q "github.com/iliyamo/seatmap/internal/queue"
    "github.com/iliyamo/seatmap/internal/seatmap"
    "github.com/iliyamo/seatmap/internal/utils"
)

// WidgetContainerID is the id of the element hosted widgets draw into.
const WidgetContainerID = "seat-map"

// SelectionPublisher forwards selection changes to interested consumers.
type SelectionPublisher interface {
    PublishSelectionChanged(ctx context.Context, event q.SelectionChangedEvent) error
}

// WidgetHandler hosts seat map widgets on the server.  Each widget lives in
// memory and is addressed by the widget id carried in its handle token.
type WidgetHandler struct {
    Source      seatmap.Source
    Publisher   SelectionPublisher // optional
    Secret      string
    TokenTTLMin int

    mu      sync.Mutex
    widgets map[string]*hostedWidget

    // events is drained by a single goroutine so selection changes reach
    // the publisher in the order they happened.
    eventsMu sync.RWMutex
    events   chan q.SelectionChangedEvent
    closed   bool
    done     chan struct{}
}

type hostedWidget struct {
    widget  *seatmap.Widget
    expires time.Time
}

// NewWidgetHandler constructs a WidgetHandler.  pub may be nil, in which
// case selection changes are not published.
func NewWidgetHandler(src seatmap.Source, pub SelectionPublisher, secret string, ttlMin int) *WidgetHandler {
    if src == nil {
        panic("nil seat source passed to NewWidgetHandler")
    }
    if ttlMin <= 0 {
        ttlMin = 120
    }
    h := &WidgetHandler{
        Source:      src,
        Publisher:   pub,
        Secret:      secret,
        TokenTTLMin: ttlMin,
        widgets:     make(map[string]*hostedWidget),
    }
    if pub != nil {
        h.events = make(chan q.SelectionChangedEvent, 256)
        h.done = make(chan struct{})
        go h.publishLoop()
    }
    return h
}

// Close stops accepting selection events and waits until the queued ones
// have been handed to the publisher.
func (h *WidgetHandler) Close() {
    h.eventsMu.Lock()
    if h.events == nil || h.closed {
        h.eventsMu.Unlock()
        return
    }
    h.closed = true
    close(h.events)
    h.eventsMu.Unlock()
    <-h.done
}

func (h *WidgetHandler) publishLoop() {
    defer close(h.done)
    for ev := range h.events {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        if err := h.Publisher.PublishSelectionChanged(ctx, ev); err != nil {
            log.Printf("[WIDGET] publish selection for %s failed: %v", ev.WidgetID, err)
        }
        cancel()
    }
}

// enqueue hands ev to publishLoop.  It blocks while the queue is full.
func (h *WidgetHandler) enqueue(ev q.SelectionChangedEvent) {
    h.eventsMu.RLock()
    defer h.eventsMu.RUnlock()
    if h.events == nil || h.closed {
        return
    }
    h.events <- ev
}

type createWidgetReq struct {
    VehicleType string      `json:"vehicle_type"`
    VehicleID   json.Number `json:"vehicle_id"`
    MaxSeats    int         `json:"max_seats"`
    FormID      string      `json:"form_id"`
}

// Create handles POST /v1/widgets.  It builds a widget, loads its seats and
// returns the handle token together with the rendered document.  A failed
// seat fetch is not an error here: the widget is returned in the
// "unavailable" state and can be reloaded.
func (h *WidgetHandler) Create(c echo.Context) error {
    var req createWidgetReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    formID := strings.TrimSpace(req.FormID)
    if formID == "" {
        formID = seatmap.DefaultFormID
    }

    wid, err := utils.NewWidgetID()
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create widget"})
    }
    w := seatmap.NewWidget(h.Source, seatmap.NewDocument(WidgetContainerID, formID))
    cfg := seatmap.Config{
        VehicleType: model.VehicleType(strings.ToLower(strings.TrimSpace(req.VehicleType))),
        VehicleID:   req.VehicleID.String(),
        ContainerID: WidgetContainerID,
        MaxSeats:    req.MaxSeats,
        FormID:      formID,
    }
    cfg.OnSelectionChange = h.selectionNotifier(wid, cfg)
    if err := w.Init(c.Request().Context(), cfg); err != nil {
        if errors.Is(err, seatmap.ErrInvalidConfiguration) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not initialise widget"})
    }

    tok, err := utils.NewWidgetToken(h.Secret, wid, h.TokenTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign widget token"})
    }

    h.mu.Lock()
    h.sweepLocked(time.Now())
    h.widgets[wid] = &hostedWidget{widget: w, expires: tok.Exp}
    h.mu.Unlock()

    return c.JSON(http.StatusCreated, echo.Map{
        "widget_id":  wid,
        "token":      tok.Token,
        "expires_at": tok.Exp,
        "state":      w.State().String(),
        "html":       w.HTML(),
        "selected":   w.SelectedSeats(),
    })
}

// Toggle handles POST /v1/widgets/toggle/:seat_id.
func (h *WidgetHandler) Toggle(c echo.Context) error {
    w, ok := h.lookup(c)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "widget not found"})
    }
    seatID, err := strconv.ParseUint(c.Param("seat_id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }
    res := w.Toggle(seatID)
    if res.Outcome == seatmap.OutcomeUnknownSeat {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
    }
    body := echo.Map{
        "outcome":     res.Outcome.String(),
        "cell":        res.Cell,
        "form_fields": w.FormFields(),
        "selected":    w.SelectedSeats(),
    }
    if res.Notice != "" {
        body["notice"] = res.Notice
    }
    return c.JSON(http.StatusOK, body)
}

// Selection handles GET /v1/widgets/selection.  The form key carries the
// selection encoded exactly as the host form would submit it.
func (h *WidgetHandler) Selection(c echo.Context) error {
    w, ok := h.lookup(c)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "widget not found"})
    }
    selected := w.SelectedSeats()
    seats := make([]model.Seat, 0, len(selected))
    for _, s := range selected {
        seats = append(seats, model.Seat{ID: s.ID, Label: s.Label})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "selected": selected,
        "form":     seatmap.FormValues(seats).Encode(),
    })
}

// Reload handles POST /v1/widgets/reload.  The widget is re-initialised
// with its original configuration, which discards the selection.
func (h *WidgetHandler) Reload(c echo.Context) error {
    w, ok := h.lookup(c)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "widget not found"})
    }
    if err := w.Init(c.Request().Context(), w.Config()); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "state":    w.State().String(),
        "html":     w.HTML(),
        "selected": w.SelectedSeats(),
    })
}

// Render handles GET /v1/widgets/html and serves the widget document as
// an HTML fragment.
func (h *WidgetHandler) Render(c echo.Context) error {
    w, ok := h.lookup(c)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "widget not found"})
    }
    return c.HTML(http.StatusOK, w.HTML())
}

// Delete handles DELETE /v1/widgets.
func (h *WidgetHandler) Delete(c echo.Context) error {
    wid, _ := c.Get(middleware.WidgetIDKey).(string)
    h.mu.Lock()
    _, ok := h.widgets[wid]
    delete(h.widgets, wid)
    h.mu.Unlock()
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "widget not found"})
    }
    return c.NoContent(http.StatusNoContent)
}

func (h *WidgetHandler) lookup(c echo.Context) (*seatmap.Widget, bool) {
    wid, _ := c.Get(middleware.WidgetIDKey).(string)
    h.mu.Lock()
    defer h.mu.Unlock()
    hw, ok := h.widgets[wid]
    if !ok {
        return nil, false
    }
    if time.Now().After(hw.expires) {
        delete(h.widgets, wid)
        return nil, false
    }
    return hw.widget, true
}

// sweepLocked drops widgets whose handle has expired.
func (h *WidgetHandler) sweepLocked(now time.Time) {
    for id, hw := range h.widgets {
        if now.After(hw.expires) {
            delete(h.widgets, id)
        }
    }
}

// selectionNotifier returns the OnSelectionChange callback of a widget.
// It runs under the widget lock, so toggles of one widget enqueue their
// events in toggle order.
func (h *WidgetHandler) selectionNotifier(wid string, cfg seatmap.Config) func([]model.Seat) {
    return func(seats []model.Seat) {
        if h.Publisher == nil {
            return
        }
        ev := q.SelectionChangedEvent{
            WidgetID:    wid,
            VehicleType: string(cfg.VehicleType),
            VehicleID:   cfg.VehicleID,
            SeatIDs:     make([]uint64, 0, len(seats)),
            SeatLabels:  make([]string, 0, len(seats)),
            MaxSeats:    cfg.MaxSeats,
            ChangedAt:   time.Now().UTC().Format(time.RFC3339),
        }
        for _, s := range seats {
            ev.SeatIDs = append(ev.SeatIDs, s.ID)
            ev.SeatLabels = append(ev.SeatLabels, s.Label)
        }
        h.enqueue(ev)
    }
}
