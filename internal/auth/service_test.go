package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/apierr"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/database"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
	"github.com/Prasann2003/smart-parking-spot-finder/internal/session"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *session.Store, *int) {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	store, err := session.NewStore(db)
	require.NoError(t, err)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	gw := gateway.New(srv.URL, store, srv.Client(), nil)
	return NewService(gw, store, nil), store, &calls
}

func TestRegisterPasswordMismatchNeverReachesNetwork(t *testing.T) {
	svc, store, calls := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	err := svc.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret2",
	})
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
	assert.Zero(t, *calls)
	assert.False(t, store.IsLoggedIn(), "register never stores a session")
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	svc, store, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Email already exists"})
	})

	err := svc.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@b.com", Password: "secret", ConfirmPassword: "secret",
	})
	require.Error(t, err)
	assert.Equal(t, apierr.KindConflict, apierr.KindOf(err))
	assert.Equal(t, "Email already exists", err.Error())
	assert.False(t, store.IsLoggedIn())
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	svc, store, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"token": "tok-abc", "name": "Asha", "email": "a@b.com", "role": "PROVIDER",
		})
	})

	ok, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	require.True(t, svc.IsLoggedIn())
	u := svc.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "PROVIDER", u.Role)
	assert.Equal(t, "tok-abc", store.Token())
}

func TestLoginRejectionReturnsFalseWithoutError(t *testing.T) {
	svc, store, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	})

	ok, err := svc.Login(context.Background(), "a@b.com", "wrong")
	require.NoError(t, err, "auth failures are a normal try-again outcome")
	assert.False(t, ok)
	assert.False(t, store.IsLoggedIn())
}

func TestLoginTransportFailureIsAnError(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	db, err := database.Connect(filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	store, err := session.NewStore(db)
	require.NoError(t, err)
	svc := NewService(gateway.New(dead.URL, store, nil, nil), store, nil)

	ok, err := svc.Login(context.Background(), "a@b.com", "secret")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Equal(t, apierr.KindNetwork, apierr.KindOf(err))
}

func TestLogoutAfterLogin(t *testing.T) {
	svc, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok", "role": "USER"})
	})

	ok, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, svc.IsLoggedIn())

	require.NoError(t, svc.Logout())
	assert.False(t, svc.IsLoggedIn())
	assert.Nil(t, svc.CurrentUser())

	// logout with no session is still fine
	require.NoError(t, svc.Logout())
	assert.False(t, svc.IsLoggedIn())
}

func TestLoginRoleFallsBackToTokenClaim(t *testing.T) {
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":  "a@b.com",
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	svc, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": signed, "email": "a@b.com"})
	})

	ok, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	u := svc.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "ADMIN", u.Role)
}

func TestChangePasswordMismatchBlockedLocally(t *testing.T) {
	svc, _, calls := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	err := svc.ChangePassword(context.Background(), "old", "new1", "new2")
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
	assert.Zero(t, *calls)
}
