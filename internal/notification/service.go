// Package notification wraps the in-app notification endpoints: listing,
// marking read and dismissing. Notifications are produced server-side
// (application decisions, booking confirmations); this client only consumes
// them.
package notification

import (
	"context"
	"fmt"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
)

// Notification is one inbox entry.
type Notification struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

type Service struct {
	gw *gateway.Client
}

func NewService(gw *gateway.Client) *Service {
	return &Service{gw: gw}
}

// List fetches the current user's notifications.
func (s *Service) List(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := s.gw.Get(ctx, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags one notification as read. Idempotent on the backend; marking
// an already-read entry is not an error.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.gw.Patch(ctx, fmt.Sprintf("/notifications/%d/read", id), nil)
}

// Dismiss deletes one notification.
func (s *Service) Dismiss(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, fmt.Sprintf("/notifications/%d", id), nil)
}
