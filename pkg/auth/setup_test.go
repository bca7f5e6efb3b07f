package auth

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repogen/repogen/pkg/config"
)

// scriptedPrompter answers prompts from canned values so guide flows can run
// without a terminal.
type scriptedPrompter struct {
	confirmAnswer bool
	confirmErr    error
	confirmCalls  int

	inputAnswer string
	inputErr    error
	inputCalls  int
}

func (p *scriptedPrompter) Confirm(_, _ string, _ bool) (bool, error) {
	p.confirmCalls++
	return p.confirmAnswer, p.confirmErr
}

func (p *scriptedPrompter) Input(_, _ string, validate func(string) error) (string, error) {
	p.inputCalls++
	if p.inputErr != nil {
		return "", p.inputErr
	}
	if validate != nil {
		if err := validate(p.inputAnswer); err != nil {
			return "", err
		}
	}
	return p.inputAnswer, nil
}

func testStore(t *testing.T) *config.Store {
	t.Helper()
	return config.NewStore(filepath.Join(t.TempDir(), "config.yaml"))
}

func TestSetupGuidePersistsClientID(t *testing.T) {
	store := testStore(t)
	var out bytes.Buffer
	guide := &SetupGuide{
		Prompter:    &scriptedPrompter{confirmAnswer: true, inputAnswer: "  Iv1.abc123  "},
		Store:       store,
		Out:         &out,
		OpenBrowser: func(string) error { return errors.New("no browser") },
	}

	clientID, err := guide.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Iv1.abc123", clientID)

	rec, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "Iv1.abc123", rec.ClientID)
	require.Contains(t, out.String(), OAuthAppRegistrationURL)
}

func TestSetupGuideDeclinedConsentLeavesStoreUntouched(t *testing.T) {
	store := testStore(t)
	guide := &SetupGuide{
		Prompter: &scriptedPrompter{confirmAnswer: false},
		Store:    store,
		Out:      &bytes.Buffer{},
	}

	_, err := guide.Run(context.Background())
	require.ErrorIs(t, err, ErrCancelled)

	rec, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, rec.ClientID)
}

func TestSetupGuideSkipsConsentWhenClientIDPresent(t *testing.T) {
	store := testStore(t)
	rec := config.DefaultRecord()
	rec.ClientID = "Iv1.old"
	require.NoError(t, store.Save(rec))

	prompter := &scriptedPrompter{inputAnswer: "Iv1.new"}
	var out bytes.Buffer
	guide := &SetupGuide{
		Prompter:    prompter,
		Store:       store,
		Out:         &out,
		OpenBrowser: func(string) error { return nil },
	}

	clientID, err := guide.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Iv1.new", clientID)
	require.Zero(t, prompter.confirmCalls)
	require.Contains(t, out.String(), "Iv1.old")

	saved, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "Iv1.new", saved.ClientID)
}

func TestSetupGuideBrowserFailureIsNotFatal(t *testing.T) {
	store := testStore(t)
	var out bytes.Buffer
	guide := &SetupGuide{
		Prompter:    &scriptedPrompter{confirmAnswer: true, inputAnswer: "Iv1.nobrowser"},
		Store:       store,
		Out:         &out,
		OpenBrowser: func(string) error { return errors.New("exec: xdg-open not found") },
	}

	clientID, err := guide.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Iv1.nobrowser", clientID)
}

func TestSetupGuideRejectsEmptyInput(t *testing.T) {
	guide := &SetupGuide{
		Prompter: &scriptedPrompter{confirmAnswer: true, inputAnswer: "   "},
		Store:    testStore(t),
		Out:      &bytes.Buffer{},
	}

	_, err := guide.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "client ID cannot be empty")
}

func TestSetupGuideWithoutPrompterIsCancelled(t *testing.T) {
	guide := &SetupGuide{Store: testStore(t), Out: &bytes.Buffer{}}

	_, err := guide.Run(context.Background())
	require.ErrorIs(t, err, ErrCancelled)
}

func TestSetupGuideObservesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	guide := &SetupGuide{
		Prompter: &scriptedPrompter{confirmAnswer: true, inputAnswer: "Iv1.x"},
		Store:    testStore(t),
		Out:      &bytes.Buffer{},
	}

	_, err := guide.Run(ctx)
	require.ErrorIs(t, err, ErrCancelled)
}
