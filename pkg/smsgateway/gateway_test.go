package smsgateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOTPSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Status":"Success","Details":"session-id"}`))
	}))
	defer srv.Close()

	g := NewTwoFactorGateway(srv.URL, "api-key", time.Second)
	err := g.SendOTP(context.Background(), "+919876543210", "123456")
	require.NoError(t, err)
	assert.Equal(t, "/api-key/SMS/9876543210/123456", gotPath)
}

func TestSendReminderCarriesWeekNumber(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Status":"Success","Details":"session-id"}`))
	}))
	defer srv.Close()

	g := NewTwoFactorGateway(srv.URL, "api-key", time.Second)
	err := g.SendReminder(context.Background(), "9876543210", 7)
	require.NoError(t, err)
	assert.Equal(t, "/api-key/SMS/9876543210/7", gotPath)
}

func TestSendOTPVendorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Status":"Error","Details":"invalid api key"}`))
	}))
	defer srv.Close()

	g := NewTwoFactorGateway(srv.URL, "bad-key", time.Second)
	err := g.SendOTP(context.Background(), "9876543210", "123456")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestSendOTPHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewTwoFactorGateway(srv.URL, "api-key", time.Second)
	err := g.SendOTP(context.Background(), "9876543210", "123456")
	assert.Error(t, err)
}

func TestSendOTPTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	g := NewTwoFactorGateway(srv.URL, "api-key", 50*time.Millisecond)
	err := g.SendOTP(context.Background(), "9876543210", "123456")
	assert.Error(t, err)
}
