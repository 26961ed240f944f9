package parking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
)

type noToken struct{}

func (noToken) Token() string { return "" }

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return NewService(gateway.New(srv.URL, noToken{}, srv.Client(), nil)), &calls
}

func TestSearchRequiresStateAndDistrict(t *testing.T) {
	svc, calls := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Spot{})
	})

	for _, pair := range [][2]string{{"", ""}, {"Kerala", ""}, {"", "Ernakulam"}, {"  ", "Ernakulam"}} {
		_, err := svc.Search(context.Background(), pair[0], pair[1])
		require.Error(t, err)
		assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
	}
	assert.Zero(t, *calls, "validation errors must never reach the network layer")

	spots, err := svc.Search(context.Background(), "Kerala", "Ernakulam")
	require.NoError(t, err)
	assert.Empty(t, spots)
	assert.Equal(t, 1, *calls)
}

func TestNearbyWithoutCoordinates(t *testing.T) {
	svc, calls := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Spot{})
	})

	_, err := svc.Nearby(context.Background(), 0, 0, 5)
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
	assert.Zero(t, *calls)
}

func TestNearbyDefaultsRadius(t *testing.T) {
	var gotRadius string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotRadius = r.URL.Query().Get("radius")
		json.NewEncoder(w).Encode([]Spot{{ID: 1, Name: "City Mall Parking"}})
	})

	spots, err := svc.Nearby(context.Background(), 9.98, 76.28, 0)
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "5", gotRadius)
}

func TestAllowedVehiclesDefaultsToCar(t *testing.T) {
	s := Spot{}
	assert.Equal(t, []string{"Car"}, s.AllowedVehicles())

	s.VehicleTypes = []string{"Bike", "EV"}
	assert.Equal(t, []string{"Bike", "EV"}, s.AllowedVehicles())
}
