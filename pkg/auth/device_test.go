package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRequestDeviceCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "Iv1.abc", r.PostForm.Get("client_id"))
		require.Equal(t, "repo read:user", r.PostForm.Get("scope"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"device_code":      "dev-123",
			"user_code":        "WDJB-MJHT",
			"verification_uri": "https://github.com/login/device",
			"expires_in":       900,
			"interval":         5,
		})
	}))
	defer server.Close()

	authz, err := RequestDeviceCode(context.Background(), Config{
		ClientID:       "Iv1.abc",
		DeviceEndpoint: server.URL,
	})
	require.NoError(t, err)
	require.Equal(t, "dev-123", authz.DeviceCode)
	require.Equal(t, "WDJB-MJHT", authz.UserCode)
	require.Equal(t, "https://github.com/login/device", authz.VerificationURI)
	require.Equal(t, 5*time.Second, authz.Interval)
	require.Equal(t, 900*time.Second, authz.ExpiresIn)
}

func TestRequestDeviceCodeDefaultsInterval(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"device_code":      "dev-123",
			"user_code":        "WDJB-MJHT",
			"verification_uri": "https://github.com/login/device",
			"expires_in":       900,
		})
	}))
	defer server.Close()

	authz, err := RequestDeviceCode(context.Background(), Config{ClientID: "Iv1.abc", DeviceEndpoint: server.URL})
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, authz.Interval)
}

func TestRequestDeviceCodeUnknownClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := RequestDeviceCode(context.Background(), Config{ClientID: "bogus", DeviceEndpoint: server.URL})
	require.ErrorIs(t, err, ErrInvalidClient)
	require.NotErrorIs(t, err, ErrNetwork)
}

func TestRequestDeviceCodeProviderErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized_client"})
	}))
	defer server.Close()

	_, err := RequestDeviceCode(context.Background(), Config{ClientID: "bogus", DeviceEndpoint: server.URL})
	require.ErrorIs(t, err, ErrInvalidClient)
}

func TestRequestDeviceCodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := RequestDeviceCode(context.Background(), Config{ClientID: "Iv1.abc", DeviceEndpoint: server.URL})
	require.ErrorIs(t, err, ErrNetwork)
}

func TestRequestDeviceCodeTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := RequestDeviceCode(context.Background(), Config{ClientID: "Iv1.abc", DeviceEndpoint: server.URL})
	require.ErrorIs(t, err, ErrNetwork)
}
