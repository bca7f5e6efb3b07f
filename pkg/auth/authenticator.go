package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/repogen/repogen/pkg/config"
)

const (
	methodDeviceFlow = iota + 1
	methodPersonalToken
)

// Method selects how Authenticate obtains a credential.
type Method struct {
	kind  int
	token string
}

// DeviceFlow authenticates via the OAuth 2.0 device authorization grant.
func DeviceFlow() Method { return Method{kind: methodDeviceFlow} }

// PersonalToken authenticates with a caller-supplied personal access token.
func PersonalToken(token string) Method {
	return Method{kind: methodPersonalToken, token: token}
}

// Credential is a validated access token bound to the account it resolves to.
type Credential struct {
	Token    *oauth2.Token
	Username string
}

// Authenticator orchestrates setup guide, device-code acquisition, polling,
// validation, and persistence into a single authenticate operation. A
// credential is written to the store at most once per attempt, and only after
// validation succeeds; any terminal failure aborts without partial
// persistence.
type Authenticator struct {
	Config Config
	Store  *config.Store
	// Guide handles first-time client registration. Leave nil in
	// non-interactive contexts; authentication then fails with
	// ErrInvalidClient when no usable client ID is configured.
	Guide *SetupGuide
	// OnDeviceAuthorization is invoked once per device-flow attempt, before
	// polling starts. The command layer uses it to present the user code and
	// verification URL.
	OnDeviceAuthorization func(*DeviceAuthorization)
}

// Authenticate runs the selected flow and returns the validated, persisted
// credential.
func (a *Authenticator) Authenticate(ctx context.Context, method Method) (*Credential, error) {
	switch method.kind {
	case methodPersonalToken:
		return a.personalToken(ctx, method.token)
	case methodDeviceFlow:
		return a.deviceFlow(ctx)
	default:
		return nil, errors.New("unknown authentication method")
	}
}

func (a *Authenticator) deviceFlow(ctx context.Context) (*Credential, error) {
	logger := a.logger()

	rec, err := a.Store.Load()
	if err != nil {
		return nil, newError(KindStorage, err)
	}

	clientID := rec.ClientID
	if clientID == "" {
		if clientID, err = a.runGuide(ctx); err != nil {
			return nil, err
		}
	}

	cfg := a.Config
	cfg.ClientID = clientID

	authz, err := RequestDeviceCode(ctx, cfg)
	if errors.Is(err, ErrInvalidClient) && a.Guide != nil {
		// The persisted ID turned out to be unknown to the provider; loop
		// back into the guide once before giving up.
		logger.Debug("client rejected, re-entering setup guide", zap.String("client_id", clientID))
		if clientID, err = a.runGuide(ctx); err != nil {
			return nil, err
		}
		cfg.ClientID = clientID
		authz, err = RequestDeviceCode(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	if a.OnDeviceAuthorization != nil {
		a.OnDeviceAuthorization(authz)
	}

	token, err := PollToken(ctx, cfg, authz)
	if err != nil {
		return nil, err
	}

	identity, err := Validate(ctx, cfg, token)
	if err != nil {
		return nil, err
	}
	return a.persist(token, identity)
}

func (a *Authenticator) personalToken(ctx context.Context, token string) (*Credential, error) {
	if token == "" {
		return nil, newError(KindInvalidToken, errors.New("no token supplied"))
	}
	identity, err := Validate(ctx, a.Config, token)
	if err != nil {
		return nil, err
	}
	return a.persist(token, identity)
}

func (a *Authenticator) runGuide(ctx context.Context) (string, error) {
	if a.Guide == nil {
		return "", newError(KindInvalidClient, errors.New("no OAuth client ID configured"))
	}
	return a.Guide.Run(ctx)
}

// persist is the single save site of an authentication attempt. It reloads
// the record first so client IDs captured by the guide mid-flow survive.
func (a *Authenticator) persist(token string, identity *Identity) (*Credential, error) {
	rec, err := a.Store.Load()
	if err != nil {
		return nil, newError(KindStorage, err)
	}
	rec.AccessToken = token
	rec.AuthenticatedUsername = identity.Login
	if rec.GithubUsername == "" {
		rec.GithubUsername = identity.Login
	}
	if err := a.Store.Save(rec); err != nil {
		return nil, newError(KindStorage, err)
	}
	a.logger().Debug("credential persisted", zap.String("username", identity.Login))
	return &Credential{
		Token:    &oauth2.Token{AccessToken: token, TokenType: "bearer"},
		Username: identity.Login,
	}, nil
}

func (a *Authenticator) logger() *zap.Logger {
	if a.Config.Logger != nil {
		return a.Config.Logger
	}
	return zap.NewNop()
}
