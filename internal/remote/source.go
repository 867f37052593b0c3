// Package remote pulls destinations and trips from an external catalogue
// and upserts them into the Store.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// DestinationRecord is a destination as served by the remote catalogue.
type DestinationRecord struct {
	ID         ID     `json:"id"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PictureURL string `json:"pictureURL"`
}

// TripRecord is a trip as served by the remote catalogue. Dates are
// "2006-01-02" strings.
type TripRecord struct {
	ID            ID     `json:"id"`
	Title         string `json:"title"`
	DestinationID ID     `json:"destinationID"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

// Dates returns the trip's start and end as calendar dates. The catalogue
// serves either plain "2006-01-02" dates or RFC 3339 timestamps such as
// "2025-05-01T10:30:00.000Z"; timestamps keep the date in their own offset.
func (r TripRecord) Dates() (start, end time.Time, err error) {
	if start, err = parseRecordDate(r.StartDate); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end, err = parseRecordDate(r.EndDate); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseRecordDate(s string) (time.Time, error) {
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, nil
	}
	// RFC3339Nano accepts timestamps with or without fractional seconds.
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is neither YYYY-MM-DD nor RFC 3339", domain.ErrValidation, s)
	}
	return domain.TruncateDate(t), nil
}

// ID is a record identifier that decodes from either a JSON number or a
// numeric JSON string; mock catalogues commonly serve ids as strings.
type ID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("remote.ID: %q is not an integer id", s)
	}
	*id = ID(n)
	return nil
}

// Source supplies remote records.
type Source interface {
	Destinations(ctx context.Context) ([]DestinationRecord, error)
	Trips(ctx context.Context) ([]TripRecord, error)
}

// Default catalogue paths, relative to the base URL.
const (
	DefaultDestinationsPath = "/destination"
	DefaultTripsPath        = "/trips"
)

// HTTPSource fetches records from two collection paths under a base URL.
type HTTPSource struct {
	baseURL   string
	destsPath string
	tripsPath string
	client    *http.Client
}

// maxResponseBytes bounds how much of a response body is decoded.
const maxResponseBytes = 8 << 20

// SourceOption configures an HTTPSource.
type SourceOption func(*HTTPSource)

// WithPaths overrides the destination and trip collection paths. Empty
// values keep the defaults.
func WithPaths(destinations, trips string) SourceOption {
	return func(s *HTTPSource) {
		if destinations != "" {
			s.destsPath = destinations
		}
		if trips != "" {
			s.tripsPath = trips
		}
	}
}

// NewHTTPSource returns a source rooted at baseURL. Each request is bounded
// by timeout in addition to the caller's context.
func NewHTTPSource(baseURL string, timeout time.Duration, opts ...SourceOption) *HTTPSource {
	s := &HTTPSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		destsPath: DefaultDestinationsPath,
		tripsPath: DefaultTripsPath,
		client:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Destinations implements Source.
func (s *HTTPSource) Destinations(ctx context.Context) ([]DestinationRecord, error) {
	var out []DestinationRecord
	if err := s.get(ctx, s.destsPath, &out); err != nil {
		return nil, fmt.Errorf("remote.HTTPSource.Destinations: %w", err)
	}
	return out, nil
}

// Trips implements Source.
func (s *HTTPSource) Trips(ctx context.Context) ([]TripRecord, error) {
	var out []TripRecord
	if err := s.get(ctx, s.tripsPath, &out); err != nil {
		return nil, fmt.Errorf("remote.HTTPSource.Trips: %w", err)
	}
	return out, nil
}

func (s *HTTPSource) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dst); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}
