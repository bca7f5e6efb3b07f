package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// GitHub device authorization grant endpoints.
	DefaultDeviceEndpoint   = "https://github.com/login/device/code"
	DefaultTokenEndpoint    = "https://github.com/login/oauth/access_token"
	DefaultIdentityEndpoint = "https://api.github.com/user"

	defaultPollInterval = 5 * time.Second
	slowDownIncrement   = 5 * time.Second

	userAgent = "repogen"
)

// DefaultScopes is the fixed scope set required by repogen's feature set:
// repository creation and identity lookup.
var DefaultScopes = []string{"repo", "read:user"}

// Config carries the provider endpoints and collaborators for one
// authentication attempt. Zero values fall back to the GitHub endpoints, the
// system clock, and a default HTTP client.
type Config struct {
	ClientID         string
	Scopes           []string
	DeviceEndpoint   string
	TokenEndpoint    string
	IdentityEndpoint string
	HTTPClient       *http.Client
	Clock            Clock
	Logger           *zap.Logger
}

func (c Config) withDefaults() Config {
	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes
	}
	if c.DeviceEndpoint == "" {
		c.DeviceEndpoint = DefaultDeviceEndpoint
	}
	if c.TokenEndpoint == "" {
		c.TokenEndpoint = DefaultTokenEndpoint
	}
	if c.IdentityEndpoint == "" {
		c.IdentityEndpoint = DefaultIdentityEndpoint
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.Clock == nil {
		c.Clock = SystemClock
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// DeviceAuthorization is the provider's response to a device-code request.
// The device code is only ever used by this process's poll loop and is never
// persisted.
type DeviceAuthorization struct {
	DeviceCode      string
	UserCode        string
	VerificationURI string
	Interval        time.Duration
	ExpiresIn       time.Duration
}

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
	Error           string `json:"error,omitempty"`
	ErrorDesc       string `json:"error_description,omitempty"`
}

// RequestDeviceCode issues the initial device/user-code request. An unknown
// or malformed client ID surfaces as ErrInvalidClient so the caller can
// prompt for re-registration instead of retrying blindly; transport failures
// surface as ErrNetwork.
func RequestDeviceCode(ctx context.Context, cfg Config) (*DeviceAuthorization, error) {
	cfg = cfg.withDefaults()

	values := url.Values{}
	values.Set("client_id", cfg.ClientID)
	values.Set("scope", strings.Join(cfg.Scopes, " "))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.DeviceEndpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, newError(KindNetwork, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, newError(KindInvalidClient, fmt.Errorf("device authorization failed with status %d", resp.StatusCode))
	}
	if resp.StatusCode >= 500 {
		return nil, newError(KindNetwork, fmt.Errorf("device authorization failed with status %d", resp.StatusCode))
	}

	var payload deviceCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, newError(KindNetwork, fmt.Errorf("failed to parse device authorization response: %w", err))
	}
	if payload.Error != "" {
		return nil, classifyProviderError(payload.Error, payload.ErrorDesc)
	}
	if payload.DeviceCode == "" || payload.UserCode == "" {
		return nil, newError(KindNetwork, fmt.Errorf("incomplete device authorization response"))
	}

	interval := time.Duration(payload.Interval) * time.Second
	if interval <= 0 {
		interval = defaultPollInterval
	}
	cfg.Logger.Debug("device code issued",
		zap.String("user_code", payload.UserCode),
		zap.Duration("interval", interval),
		zap.Int("expires_in", payload.ExpiresIn))

	return &DeviceAuthorization{
		DeviceCode:      payload.DeviceCode,
		UserCode:        payload.UserCode,
		VerificationURI: payload.VerificationURI,
		Interval:        interval,
		ExpiresIn:       time.Duration(payload.ExpiresIn) * time.Second,
	}, nil
}

func classifyProviderError(code, desc string) *Error {
	detail := fmt.Errorf("provider reported %q", code)
	if desc != "" {
		detail = fmt.Errorf("provider reported %q: %s", code, desc)
	}
	switch code {
	case "unauthorized_client", "incorrect_client_credentials", "invalid_client":
		return newError(KindInvalidClient, detail)
	case "access_denied":
		return newError(KindAccessDenied, detail)
	case "expired_token":
		return newError(KindExpired, detail)
	default:
		return newError(KindNetwork, detail)
	}
}
