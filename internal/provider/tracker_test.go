package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
)

type tok string

func (t tok) Token() string { return string(t) }

func newTracker(t *testing.T, handler http.HandlerFunc) *Tracker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTracker(gateway.New(srv.URL, tok("t"), srv.Client(), nil), nil)
}

func TestFetchLoadsRejectedState(t *testing.T) {
	tr := newTracker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p@q.com", r.URL.Query().Get("email"))
		w.Write([]byte(`{"status":"REJECTED","rejectionReason":"incomplete bank details","daysLeft":"3"}`))
	})

	res := tr.Fetch(context.Background(), "p@q.com")
	require.True(t, res.Known)
	assert.Equal(t, StatusRejected, res.State.Status)
	assert.Equal(t, "incomplete bank details", res.State.RejectionReason)
	assert.Equal(t, 3, res.State.DaysLeft)
	assert.False(t, res.State.CanReapply())
}

func TestFetchFailureIsFailOpen(t *testing.T) {
	tr := newTracker(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	res := tr.Fetch(context.Background(), "p@q.com")
	assert.False(t, res.Known, "a failed fetch is distinguishable from no application")
	assert.Equal(t, StatusNone, res.Display().Status, "but renders like the call-to-action")
}

func TestFetchNoApplication(t *testing.T) {
	tr := newTracker(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"NONE"}`))
	})

	res := tr.Fetch(context.Background(), "p@q.com")
	assert.True(t, res.Known)
	assert.Equal(t, StatusNone, res.State.Status)
}

func TestApplyValidatesBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"message":"Application submitted successfully!"}`))
	}))
	defer srv.Close()

	svc := NewService(gateway.New(srv.URL, tok("t"), srv.Client(), nil), nil)

	err := svc.Apply(context.Background(), Application{OwnerName: "Only Name"})
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
	assert.Zero(t, calls)

	err = svc.Apply(context.Background(), validApplication())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestApplyDefaultsVehicleTypesToCar(t *testing.T) {
	var gotVehicles string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(8<<20))
		gotVehicles = r.FormValue("vehicleTypes")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewService(gateway.New(srv.URL, tok("t"), srv.Client(), nil), nil)

	app := validApplication()
	app.VehicleTypes = nil
	require.NoError(t, svc.Apply(context.Background(), app))
	assert.Equal(t, "Car", gotVehicles)
}

func TestApplySurfacesCooldownMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"You cannot resubmit yet. Please wait 4 more days."}`))
	}))
	defer srv.Close()

	svc := NewService(gateway.New(srv.URL, tok("t"), srv.Client(), nil), nil)

	err := svc.Apply(context.Background(), validApplication())
	require.Error(t, err)
	assert.Equal(t, "You cannot resubmit yet. Please wait 4 more days.", err.Error())
}

func validApplication() Application {
	return Application{
		OwnerName:     "Prasann",
		Phone:         "9999999999",
		Email:         "p@q.com",
		GovernmentID:  "GOV-1",
		Name:          "City Mall Parking",
		State:         "Kerala",
		District:      "Ernakulam",
		Address1:      "MG Road",
		Pincode:       "682001",
		TotalCapacity: 12,
		PricePerHour:  30,
		VehicleTypes:  []string{"Car", "Bike"},
		ParkingType:   "Covered",
		BankAccount:   "000111222",
		Declaration:   true,
	}
}
