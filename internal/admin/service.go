package admin

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
)

// Applicant is the owner block of a pending application.
type Applicant struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// SpotSummary is the parking-spot block of a pending application.
type SpotSummary struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	TotalCapacity int    `json:"totalCapacity"`
}

// Application is one row of the review queue.
type Application struct {
	ID             int64       `json:"id"`
	Status         string      `json:"status"`
	Name           string      `json:"name"`
	SubmissionDate string      `json:"submissionDate"`
	User           Applicant   `json:"user"`
	ParkingSpot    SpotSummary `json:"parkingSpot"`
}

// Service wraps the admin review endpoints.
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

// Pending lists applications awaiting review.
func (s *Service) Pending(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := s.gw.Get(ctx, "/admin/provider-applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// View fetches the full detail of one application.
func (s *Service) View(ctx context.Context, id int64) (map[string]any, error) {
	var detail map[string]any
	if err := s.gw.Get(ctx, fmt.Sprintf("/admin/view/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// Approve approves an application. One call, no undo once confirmed.
func (s *Service) Approve(ctx context.Context, id int64) error {
	if err := s.gw.Post(ctx, fmt.Sprintf("/admin/provider/%d/approve", id), nil, nil); err != nil {
		return err
	}
	s.log.Info("application approved", zap.Int64("application_id", id))
	return nil
}

// Reject rejects an application. The reason is mandatory and checked before
// the call is made; it is forwarded so the applicant later sees it on their
// status screen.
func (s *Service) Reject(ctx context.Context, id int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apierr.Validation("rejection reason is required")
	}

	body := map[string]string{"reason": reason}
	if err := s.gw.Post(ctx, fmt.Sprintf("/admin/provider/%d/reject", id), body, nil); err != nil {
		return err
	}
	s.log.Info("application rejected", zap.Int64("application_id", id))
	return nil
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers        int64    `json:"totalUsers"`
	TotalProviders    int64    `json:"totalProviders"`
	TotalSpots        int64    `json:"totalSpots"`
	ActiveBookings    int64    `json:"activeBookings"`
	CancelledBookings int64    `json:"cancelledBookings"`
	TotalRevenue      float64  `json:"totalRevenue"`
	SystemAlerts      []string `json:"systemAlerts"`
}

// FetchStats loads the admin dashboard numbers.
func (s *Service) FetchStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := s.gw.Get(ctx, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
