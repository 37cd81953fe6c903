package seatmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/seatmap/internal/model"
)

// Source retrieves the full seat inventory of one vehicle.  Implementations
// return the whole list in one call; there is no paging.
type Source interface {
	FetchSeats(ctx context.Context, vt model.VehicleType, vehicleID string) ([]model.Seat, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context, vt model.VehicleType, vehicleID string) ([]model.Seat, error)

// FetchSeats calls f.
func (f SourceFunc) FetchSeats(ctx context.Context, vt model.VehicleType, vehicleID string) ([]model.Seat, error) {
	return f(ctx, vt, vehicleID)
}

// HTTPSource fetches seats from GET {BaseURL}/api/seats/{type}/{id}.  Each
// attempt is bounded by Timeout; a failed attempt is retried Retries times
// before the failure is surfaced as ErrDataUnavailable.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
	Retries int
}

// NewHTTPSource returns an HTTPSource with a default client.  A zero timeout
// falls back to five seconds and a negative retry count to zero.
func NewHTTPSource(baseURL string, timeout time.Duration, retries int) *HTTPSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{},
		Timeout: timeout,
		Retries: retries,
	}
}

type seatsResponse struct {
	Seats []model.Seat `json:"seats"`
}

// FetchSeats implements Source.
func (s *HTTPSource) FetchSeats(ctx context.Context, vt model.VehicleType, vehicleID string) ([]model.Seat, error) {
	if _, ok := model.ParseVehicleType(string(vt)); !ok {
		return nil, fmt.Errorf("%w: unsupported vehicle type %q", ErrInvalidConfiguration, vt)
	}
	if strings.TrimSpace(vehicleID) == "" {
		return nil, fmt.Errorf("%w: empty vehicle id", ErrInvalidConfiguration)
	}
	endpoint := fmt.Sprintf("%s/api/seats/%s/%s", s.BaseURL, url.PathEscape(string(vt)), url.PathEscape(vehicleID))

	var lastErr error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		seats, err := s.fetchOnce(ctx, endpoint)
		if err == nil {
			return seats, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < s.Retries {
			log.Printf("seatmap: fetch %s failed: %v; retrying", endpoint, err)
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, lastErr)
}

func (s *HTTPSource) fetchOnce(ctx context.Context, endpoint string) ([]model.Seat, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var body seatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode seats: %w", err)
	}
	if body.Seats == nil {
		return nil, errors.New("response has no seats array")
	}
	return body.Seats, nil
}
