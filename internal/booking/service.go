package booking

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
)

// Service handles booking creation, listing and cancellation.
type Service struct {
	gw  *gateway.Client
	log *zap.Logger
}

func NewService(gw *gateway.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gw: gw, log: log}
}

// CreateRequest is the confirmed booking form.
type CreateRequest struct {
	ParkingSpotID int64
	StartTime     time.Time
	EndTime       time.Time
	PricePerHour  float64
	PaymentMethod string
}

// Total quotes the request against the selected spot's rate. Recomputed on
// every call; nothing is cached between edits.
func (r CreateRequest) Total() int64 {
	return Quote(r.StartTime, r.EndTime, r.PricePerHour)
}

// Create submits a booking. The form must quote a positive total or the
// confirmation is refused client-side. On failure the backend's message is
// returned verbatim and the caller may retry with the form intact.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !CanConfirm(req.Total()) {
		return nil, apierr.Validation("select a valid start and end time")
	}

	payload := map[string]any{
		"parkingSpotId": req.ParkingSpotID,
		"startTime":     req.StartTime.Format(TimeLayout),
		"endTime":       req.EndTime.Format(TimeLayout),
	}
	if req.PaymentMethod != "" {
		payload["paymentMethod"] = req.PaymentMethod
	}

	var created Booking
	if err := s.gw.Post(ctx, "/bookings/create", payload, &created); err != nil {
		return nil, err
	}

	s.log.Debug("booking created",
		zap.Int64("booking_id", created.ID),
		zap.Int64("spot_id", created.ParkingSpotID),
	)
	return &created, nil
}

// MyBookings lists the current user's bookings.
func (s *Service) MyBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := s.gw.Get(ctx, "/bookings/my-bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByID fetches one booking. A missing id surfaces as a not-found state.
func (s *Service) ByID(ctx context.Context, id int64) (*Booking, error) {
	var out Booking
	if err := s.gw.Get(ctx, fmt.Sprintf("/bookings/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels a confirmed booking. The current status is checked first so
// a cancelled booking never produces a second cancel call.
func (s *Service) Cancel(ctx context.Context, b *Booking) error {
	if !b.Cancellable() {
		return apierr.Validation("booking is not cancellable")
	}
	return s.gw.Patch(ctx, fmt.Sprintf("/bookings/%d/cancel", b.ID), nil)
}

// Availability returns the free slot count for a spot over a window.
func (s *Service) Availability(ctx context.Context, spotID int64, start, end time.Time) (int, error) {
	q := url.Values{}
	q.Set("parkingSpotId", strconv.FormatInt(spotID, 10))
	q.Set("startTime", start.Format(TimeLayout))
	q.Set("endTime", end.Format(TimeLayout))

	var free int
	if err := s.gw.Get(ctx, "/bookings/check-availability", q, &free); err != nil {
		return 0, err
	}
	return free, nil
}
