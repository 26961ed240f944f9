package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok-1"), srv.Client(), nil)
	require.NoError(t, c.Get(context.Background(), "/bookings/my-bookings", nil, nil))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestBearerOmittedWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""), srv.Client(), nil)
	require.NoError(t, c.Get(context.Background(), "/parking/all", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestAuthEndpointsNeverCarryToken(t *testing.T) {
	paths := []string{"/auth/login", "/auth/register", "/auth/forgot-password", "/auth/reset-password"}

	for _, p := range paths {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))

		c := New(srv.URL, staticToken("stale-token"), srv.Client(), nil)
		require.NoError(t, c.Post(context.Background(), p, map[string]string{}, nil))
		assert.Emptyf(t, gotAuth, "path %s must not carry a bearer token", p)
		srv.Close()
	}
}

func TestPostCarriesIdempotencyKey(t *testing.T) {
	keys := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys[r.Header.Get("X-Idempotency-Key")] = true
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), srv.Client(), nil)
	require.NoError(t, c.Post(context.Background(), "/bookings/create", map[string]any{"parkingSpotId": 1}, nil))
	require.NoError(t, c.Post(context.Background(), "/bookings/create", map[string]any{"parkingSpotId": 1}, nil))

	delete(keys, "")
	assert.Len(t, keys, 2, "each invocation gets its own key")
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		kind   apierr.Kind
		msg    string
	}{
		{400, `{"message":"end time must be after start time"}`, apierr.KindValidation, "end time must be after start time"},
		{401, `{"error":"Invalid credentials"}`, apierr.KindAuth, "Invalid credentials"},
		{404, `{"error":{"code":"NOT_FOUND","message":"Booking not found"}}`, apierr.KindNotFound, "Booking not found"},
		{409, `{"message":"Email already exists"}`, apierr.KindConflict, "Email already exists"},
		{500, `oops`, apierr.KindNetwork, "oops"},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))

		c := New(srv.URL, staticToken("t"), srv.Client(), nil)
		err := c.Get(context.Background(), "/whatever", nil, nil)
		require.Error(t, err)
		assert.Equal(t, tc.kind, apierr.KindOf(err), "status %d", tc.status)
		assert.Equal(t, tc.msg, err.Error(), "status %d", tc.status)
		srv.Close()
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, staticToken("t"), nil, nil)
	err := c.Get(context.Background(), "/parking/all", nil, nil)
	require.Error(t, err)
	assert.Equal(t, apierr.KindNetwork, apierr.KindOf(err))
}

func TestQueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"), srv.Client(), nil)
	q := url.Values{}
	q.Set("state", "Kerala")
	q.Set("district", "Ernakulam")

	var out []any
	require.NoError(t, c.Get(context.Background(), "/parking/search", q, &out))
	assert.Equal(t, "Kerala", gotQuery.Get("state"))
	assert.Equal(t, "Ernakulam", gotQuery.Get("district"))
}
