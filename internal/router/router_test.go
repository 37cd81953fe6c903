package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatmap/internal/handler"
	"github.com/iliyamo/seatmap/internal/model"
)

type emptySeats struct{}

func (emptySeats) ListByVehicle(ctx context.Context, vt model.VehicleType, id uint64) ([]model.Seat, error) {
	return nil, nil
}

func TestRoutesAreRegistered(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e)
	RegisterSeatAPI(e, handler.NewSeatAPIHandler(emptySeats{}))
	RegisterWidgets(e, handler.NewWidgetHandler(handler.InProcessSource{Seats: emptySeats{}}, nil, "s", 5), "s", nil)

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/seats/bus/1", http.StatusOK},
		{http.MethodGet, "/api/seats/ship/1", http.StatusBadRequest},
		{http.MethodGet, "/v1/widgets/selection", http.StatusUnauthorized},
		{http.MethodPost, "/v1/widgets/toggle/1", http.StatusUnauthorized},
		{http.MethodDelete, "/v1/widgets", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.status {
			t.Errorf("%s %s = %d, want %d", tc.method, tc.path, rec.Code, tc.status)
		}
	}
}
