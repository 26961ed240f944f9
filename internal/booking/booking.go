package booking

import "time"

// TimeLayout is the wire format for start/end times, seconds precision.
const TimeLayout = "2006-01-02 15:04:05"

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Booking mirrors the backend's booking DTO.
type Booking struct {
	ID              int64   `json:"id"`
	ParkingSpotID   int64   `json:"parkingSpotId"`
	ParkingSpotName string  `json:"parkingSpotName,omitempty"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          Status  `json:"status"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	UserName        string  `json:"userName,omitempty"`
	UserEmail       string  `json:"userEmail,omitempty"`
}

// Cancellable reports whether the cancel action is offered at all. Only a
// confirmed booking can be cancelled; there is no un-cancel and no
// double-cancel path.
func (b *Booking) Cancellable() bool {
	return b.Status == StatusConfirmed
}

// Start parses the wire-format start time.
func (b *Booking) Start() (time.Time, error) {
	return time.Parse(TimeLayout, b.StartTime)
}

// End parses the wire-format end time.
func (b *Booking) End() (time.Time, error) {
	return time.Parse(TimeLayout, b.EndTime)
}
