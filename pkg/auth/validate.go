package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	// A bad token will not become valid by retrying, but a transient
	// transport failure right after a successful exchange should not throw
	// the token away. Two spaced retries, then the failure is reported as a
	// network error.
	validateRetries    = 2
	validateRetryDelay = 2 * time.Second
)

// Identity is the account resolved from a candidate token.
type Identity struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
}

// Validate exchanges a candidate token for identity information. A credential
// is only persisted after this confirms the token resolves to a real account.
func Validate(ctx context.Context, cfg Config, token string) (*Identity, error) {
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= validateRetries; attempt++ {
		if attempt > 0 {
			if err := cfg.Clock.Sleep(ctx, validateRetryDelay); err != nil {
				return nil, newError(KindCancelled, err)
			}
		}
		identity, err := fetchIdentity(ctx, cfg, token)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, ErrNetwork) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func fetchIdentity(ctx context.Context, cfg Config, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.IdentityEndpoint, nil)
	if err != nil {
		return nil, newError(KindNetwork, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, newError(KindInvalidToken, fmt.Errorf("identity endpoint returned status %d", resp.StatusCode))
	}
	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, newError(KindInvalidToken, fmt.Errorf("failed to parse identity response: %w", err))
	}
	if identity.Login == "" {
		return nil, newError(KindInvalidToken, errors.New("identity response missing account login"))
	}
	return &identity, nil
}
