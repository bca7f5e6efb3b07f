package auth

// Every remote failure is classified into exactly one Kind at the point of
// occurrence. The caller's recovery action differs per kind: re-register the
// client, retry the whole attempt, or abort. Provider error strings are only
// carried as wrapped context, never as the primary signal.

type Kind int

const (
	KindInvalidClient Kind = iota + 1
	KindNetwork
	KindAccessDenied
	KindExpired
	KindInvalidToken
	KindStorage
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidClient:
		return "invalid client"
	case KindNetwork:
		return "network failure"
	case KindAccessDenied:
		return "access denied"
	case KindExpired:
		return "expired"
	case KindInvalidToken:
		return "invalid token"
	case KindStorage:
		return "storage"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// message is the short actionable text shown to the user for each terminal
// state.
func (k Kind) message() string {
	switch k {
	case KindInvalidClient:
		return "GitHub does not recognize the configured OAuth client ID; run `repogen init --auth` to register one"
	case KindNetwork:
		return "could not reach GitHub; check your connection and try again"
	case KindAccessDenied:
		return "authorization was denied"
	case KindExpired:
		return "the code expired, please try again"
	case KindInvalidToken:
		return "GitHub rejected the token"
	case KindStorage:
		return "could not read or write the repogen configuration file"
	case KindCancelled:
		return "authentication was cancelled"
	default:
		return "authentication failed"
	}
}

// Error is a classified authentication failure.
type Error struct {
	Kind Kind
	err  error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Kind.message() + ": " + e.err.Error()
	}
	return e.Kind.message()
}

func (e *Error) Unwrap() error { return e.err }

// Is matches any *Error of the same kind, so callers can test against the
// exported sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidClient = &Error{Kind: KindInvalidClient}
	ErrNetwork       = &Error{Kind: KindNetwork}
	ErrAccessDenied  = &Error{Kind: KindAccessDenied}
	ErrExpired       = &Error{Kind: KindExpired}
	ErrInvalidToken  = &Error{Kind: KindInvalidToken}
	ErrStorage       = &Error{Kind: KindStorage}
	ErrCancelled     = &Error{Kind: KindCancelled}
)
