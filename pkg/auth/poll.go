package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const deviceGrantType = "urn:ietf:params:oauth:grant-type:device_code"

// Poll loop sentinels. Both keep the loop running; everything else is
// terminal for the attempt.
var (
	errAuthorizationPending = errors.New("authorization pending")
	errSlowDown             = errors.New("slow down")
)

// PollToken repeatedly attempts to redeem the device code for an access
// token. Invariants:
//
//   - the wait interval never decreases within one attempt; each slow_down
//     response increases it by a fixed increment
//   - elapsed time is monotonic and the loop terminates the instant it
//     reaches the authorization's lifetime
//   - cancellation is observed at the top of every iteration
//
// Transport errors are terminal for the attempt rather than retried in
// place, so persistent connectivity problems are not masked behind silent
// infinite polling.
func PollToken(ctx context.Context, cfg Config, authz *DeviceAuthorization) (string, error) {
	cfg = cfg.withDefaults()

	interval := authz.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	var elapsed time.Duration
	attempt := 0

	for {
		if err := ctx.Err(); err != nil {
			return "", newError(KindCancelled, err)
		}
		if elapsed >= authz.ExpiresIn {
			return "", newError(KindExpired, fmt.Errorf("device code lifetime of %s elapsed", authz.ExpiresIn))
		}
		if err := cfg.Clock.Sleep(ctx, interval); err != nil {
			return "", newError(KindCancelled, err)
		}
		elapsed += interval
		attempt++

		token, err := redeemDeviceCode(ctx, cfg, authz.DeviceCode)
		switch {
		case err == nil:
			cfg.Logger.Debug("device authorization granted", zap.Int("attempt", attempt))
			return token, nil
		case errors.Is(err, errAuthorizationPending):
			cfg.Logger.Debug("authorization pending",
				zap.Int("attempt", attempt),
				zap.Duration("elapsed", elapsed))
		case errors.Is(err, errSlowDown):
			interval += slowDownIncrement
			cfg.Logger.Debug("provider requested slow down", zap.Duration("interval", interval))
		default:
			return "", err
		}
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	Scope       string `json:"scope,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorDesc   string `json:"error_description,omitempty"`
}

func redeemDeviceCode(ctx context.Context, cfg Config, deviceCode string) (string, error) {
	values := url.Values{}
	values.Set("client_id", cfg.ClientID)
	values.Set("device_code", deviceCode)
	values.Set("grant_type", deviceGrantType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TokenEndpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return "", newError(KindNetwork, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return "", newError(KindNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", newError(KindNetwork, fmt.Errorf("failed to parse token response: %w", err))
	}
	if payload.Error != "" {
		switch payload.Error {
		case "authorization_pending":
			return "", errAuthorizationPending
		case "slow_down":
			return "", errSlowDown
		default:
			return "", classifyProviderError(payload.Error, payload.ErrorDesc)
		}
	}
	if payload.AccessToken == "" {
		return "", newError(KindNetwork, errors.New("token response carried neither token nor error"))
	}
	return payload.AccessToken, nil
}
