package parking

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
)

// Service exposes spot discovery for the driver dashboard.
type Service struct {
	gw *gateway.Client
}

func NewService(gw *gateway.Client) *Service {
	return &Service{gw: gw}
}

// Search finds spots by state and district. Both fields are required before
// anything goes on the wire; the find button stays disabled without them.
func (s *Service) Search(ctx context.Context, state, district string) ([]Spot, error) {
	state = strings.TrimSpace(state)
	district = strings.TrimSpace(district)
	if state == "" || district == "" {
		return nil, apierr.Validation("state and district are required")
	}

	q := url.Values{}
	q.Set("state", state)
	q.Set("district", district)

	var spots []Spot
	if err := s.gw.Get(ctx, "/parking/search", q, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

// Nearby runs a single coordinate radius query. The coordinates come from the
// caller; when location access was denied there is nothing to send.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]Spot, error) {
	if lat == 0 && lng == 0 {
		return nil, apierr.Validation("location unavailable")
	}
	if radiusKm <= 0 {
		radiusKm = 5
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	var spots []Spot
	if err := s.gw.Get(ctx, "/parking/nearby", q, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

// All lists every approved spot.
func (s *Service) All(ctx context.Context) ([]Spot, error) {
	var spots []Spot
	if err := s.gw.Get(ctx, "/parking/all", nil, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

// ByID fetches a single spot.
func (s *Service) ByID(ctx context.Context, id int64) (*Spot, error) {
	var spot Spot
	if err := s.gw.Get(ctx, fmt.Sprintf("/parking/%d", id), nil, &spot); err != nil {
		return nil, err
	}
	return &spot, nil
}
