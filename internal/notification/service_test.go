package notification

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

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(gateway.New(srv.URL, tok("t"), srv.Client(), nil))
}

func TestListParsesInbox(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		w.Write([]byte(`[
			{"id":1,"message":"Your application was approved","read":false,"createdAt":"2026-08-30 09:00:00"},
			{"id":2,"message":"Booking confirmed","read":true,"createdAt":"2026-08-31 10:00:00"}
		]`))
	})

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Your application was approved", list[0].Message)
	assert.False(t, list[0].Read)
	assert.True(t, list[1].Read)
}

func TestMarkReadHitsReadEndpoint(t *testing.T) {
	var gotMethod, gotPath string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{}`))
	})

	require.NoError(t, svc.MarkRead(context.Background(), 7))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/notifications/7/read", gotPath)
}

func TestDismissDeletes(t *testing.T) {
	var gotMethod, gotPath string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{}`))
	})

	require.NoError(t, svc.Dismiss(context.Background(), 7))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/notifications/7", gotPath)
}

func TestDismissMissingIsNotFound(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Notification not found"}`))
	})

	err := svc.Dismiss(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
}
