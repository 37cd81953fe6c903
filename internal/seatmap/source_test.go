package seatmap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iliyamo/seatmap/internal/model"
)

func TestHTTPSourceFetchesSeats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/seats/bus/12" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"vehicle_type":"bus","vehicle_id":12,"seats":[{"id":1,"seat_label":"1A","row":1,"col":0,"is_booked":false},{"id":2,"seat_label":"1B","row":1,"col":1,"is_booked":true}],"total":2}`)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", time.Second, 0)
	seats, err := src.FetchSeats(context.Background(), model.VehicleBus, "12")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(seats) != 2 {
		t.Fatalf("seats = %d, want 2", len(seats))
	}
	if seats[0].Label != "1A" || !seats[1].IsBooked {
		t.Fatalf("unexpected seats: %+v", seats)
	}
}

func TestHTTPSourceFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}},
		{"malformed", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"seats": [`)
		}},
		{"missing seats", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"total": 0}`)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			_, err := NewHTTPSource(srv.URL, time.Second, 0).FetchSeats(context.Background(), model.VehicleFlight, "1")
			if !errors.Is(err, ErrDataUnavailable) {
				t.Fatalf("err = %v, want ErrDataUnavailable", err)
			}
		})
	}
}

func TestHTTPSourceRetriesOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"seats":[]}`)
	}))
	defer srv.Close()

	seats, err := NewHTTPSource(srv.URL, time.Second, 1).FetchSeats(context.Background(), model.VehicleTrain, "3")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(seats) != 0 {
		t.Fatalf("seats = %d, want 0", len(seats))
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestHTTPSourceTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPSource(srv.URL, 20*time.Millisecond, 0).FetchSeats(context.Background(), model.VehicleBus, "1")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestHTTPSourceRejectsBadInput(t *testing.T) {
	src := NewHTTPSource("http://127.0.0.1:0", time.Second, 0)
	if _, err := src.FetchSeats(context.Background(), "boat", "1"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := src.FetchSeats(context.Background(), model.VehicleBus, " "); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
}
