package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/booking"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/parking"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/pkg/validate"
)

// Application is the become-a-provider form: a parking spot plus owner, bank
// and legal details.
type Application struct {
	OwnerName    string `validate:"required"`
	Phone        string `validate:"required"`
	Email        string `validate:"required,email"`
	GovernmentID string `validate:"required"`

	Name           string `validate:"required"`
	Description    string
	State          string `validate:"required"`
	District       string `validate:"required"`
	Address1       string `validate:"required"`
	Address2       string
	Pincode        string `validate:"required"`
	GoogleMapsLink string

	TotalCapacity int     `validate:"required,min=1"`
	PricePerHour  float64 `validate:"required,gt=0"`
	WeekendPrice  float64
	VehicleTypes  []string
	ParkingType   string `validate:"required,oneof=Covered Open"`
	Cctv          bool
	Guard         bool
	EvCharging    bool
	MonthlyPlan   bool

	BankAccount string `validate:"required"`
	UpiID       string
	GstNumber   string
	PanNumber   string

	// Declaration must be accepted before the form can be submitted.
	Declaration bool `validate:"eq=true"`

	// Image payloads keyed by part name (parkingAreaImage, entryGateImage,
	// surroundingAreaImage).
	Images map[string][]byte
}

// normalize applies the same defaults the form applies: vehicle types fall
// back to {Car} when none are picked.
func (a *Application) normalize() {
	if len(a.VehicleTypes) == 0 {
		a.VehicleTypes = []string{string(parking.VehicleCar)}
	}
}

// Service covers the provider-side operations: applying, managing spots and
// the provider dashboard.
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

// Apply submits a provider application. Field validation happens before
// anything is sent; a successful submission moves the application (back) to
// PENDING. A cooldown violation comes back as the backend's message verbatim.
func (s *Service) Apply(ctx context.Context, app Application) error {
	app.normalize()
	if fields := validate.Struct(app); fields != nil {
		return apierr.Validation("application form incomplete: " + validate.Join(fields))
	}

	fields := map[string]string{
		"ownerName":      app.OwnerName,
		"phoneNumber":    app.Phone,
		"email":          app.Email,
		"governmentId":   app.GovernmentID,
		"name":           app.Name,
		"description":    app.Description,
		"state":          app.State,
		"district":       app.District,
		"address":        strings.TrimSpace(app.Address1 + " " + app.Address2),
		"pincode":        app.Pincode,
		"googleMapsLink": app.GoogleMapsLink,
		"totalCapacity":  strconv.Itoa(app.TotalCapacity),
		"pricePerHour":   strconv.FormatFloat(app.PricePerHour, 'f', -1, 64),
		"weekendPricing": strconv.FormatFloat(app.WeekendPrice, 'f', -1, 64),
		"vehicleTypes":   strings.Join(app.VehicleTypes, ","),
		"parkingType":    app.ParkingType,
		"cctv":           strconv.FormatBool(app.Cctv),
		"guard":          strconv.FormatBool(app.Guard),
		"evCharging":     strconv.FormatBool(app.EvCharging),
		"monthlyPlan":    strconv.FormatBool(app.MonthlyPlan),
		"bankAccount":    app.BankAccount,
		"upiId":          app.UpiID,
		"gstNumber":      app.GstNumber,
		"panNumber":      app.PanNumber,
	}

	if err := s.gw.PostMultipart(ctx, "/provider/add", fields, app.Images, nil); err != nil {
		return err
	}

	s.log.Debug("provider application submitted", zap.String("email", app.Email))
	return nil
}

// MySpots lists the provider's parking spots.
func (s *Service) MySpots(ctx context.Context, email string) ([]parking.Spot, error) {
	q := url.Values{}
	q.Set("email", email)

	var spots []parking.Spot
	if err := s.gw.Get(ctx, "/provider/parkings", q, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

// Bookings lists every booking made against the provider's spots, newest
// first as the backend returns them.
func (s *Service) Bookings(ctx context.Context, email string) ([]booking.Booking, error) {
	q := url.Values{}
	q.Set("email", email)

	var out []booking.Booking
	if err := s.gw.Get(ctx, "/provider/bookings", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleSpotStatus flips a spot between active and blocked.
func (s *Service) ToggleSpotStatus(ctx context.Context, spotID int64, status string) error {
	q := url.Values{}
	q.Set("status", status)
	return s.gw.Put(ctx, fmt.Sprintf("/provider/toggle-status/%d", spotID), q, nil, nil)
}

// UpdateSpot edits a listed spot.
func (s *Service) UpdateSpot(ctx context.Context, spotID int64, spot parking.Spot) (*parking.Spot, error) {
	var updated parking.Spot
	if err := s.gw.Put(ctx, fmt.Sprintf("/provider/update/%d", spotID), nil, spot, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DashboardStats is the provider dashboard summary.
type DashboardStats struct {
	TotalParkings   int     `json:"totalParkings"`
	ActiveBookings  int     `json:"activeBookings"`
	TodayEarnings   float64 `json:"todayEarnings"`
	MonthlyEarnings float64 `json:"monthlyEarnings"`
}

// Dashboard fetches the provider dashboard stats.
func (s *Service) Dashboard(ctx context.Context, email string) (*DashboardStats, error) {
	q := url.Values{}
	q.Set("email", email)

	var stats DashboardStats
	if err := s.gw.Get(ctx, "/provider/dashboard", q, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
