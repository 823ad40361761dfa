package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/users/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"email":"ann@example.com","name":"Ann"}`))
	})
	mux.HandleFunc("/internal/users/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/internal/users/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetUser(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL+"/", time.Second, nopLogger{})

	user, err := client.GetUser(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, &User{ID: 42, Email: "ann@example.com", Name: "Ann"}, user)
}

func TestClient_GetUser_NotFound(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetUser(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_GetUserWithGracefulDegradation(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetUserWithGracefulDegradation(context.Background(), 9)
	assert.ErrorIs(t, err, ErrServiceDegraded)

	_, err = client.GetUserWithGracefulDegradation(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NotErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_GetUser_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})

	_, err := client.GetUserWithGracefulDegradation(context.Background(), 42)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
