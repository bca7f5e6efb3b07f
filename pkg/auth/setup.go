package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/repogen/repogen/pkg/config"
)

// OAuthAppRegistrationURL is where a first-time user registers the OAuth app
// whose client ID feeds the device flow.
const OAuthAppRegistrationURL = "https://github.com/settings/applications/new"

// SetupGuide walks a first-time user through registering a GitHub OAuth app
// and capturing its client ID. It performs no network calls of its own; the
// pasted ID is not validated against the provider; validity is discovered
// lazily on the first device-code request.
type SetupGuide struct {
	Prompter    Prompter
	Store       *config.Store
	Out         io.Writer
	OpenBrowser func(url string) error
}

// Run executes the guide: consent prompt (skipped when a client ID is already
// persisted), instructions with a best-effort browser open, client ID
// capture, and persistence. It returns the captured client ID.
func (g *SetupGuide) Run(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", newError(KindCancelled, err)
	}
	if g.Prompter == nil {
		return "", newError(KindCancelled, errors.New("interactive setup requires a terminal"))
	}

	rec, err := g.Store.Load()
	if err != nil {
		return "", newError(KindStorage, err)
	}

	if !rec.HasClientID() {
		proceed, err := g.Prompter.Confirm(
			"Set up GitHub device login?",
			"repogen needs a GitHub OAuth app client ID to sign you in from the terminal.",
			true,
		)
		if err != nil {
			return "", err
		}
		if !proceed {
			return "", newError(KindCancelled, nil)
		}
	} else {
		fmt.Fprintf(g.writer(), "GitHub rejected the configured client ID (%s); let's capture a new one.\n", rec.ClientID)
	}

	g.showInstructions()

	clientID, err := g.Prompter.Input("OAuth app Client ID", "Iv1.xxxxxxxxxxxxxxxx", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("client ID cannot be empty")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	clientID = strings.TrimSpace(clientID)

	// Reload before writing so a concurrent edit of unrelated fields is not
	// clobbered wholesale.
	rec, err = g.Store.Load()
	if err != nil {
		return "", newError(KindStorage, err)
	}
	rec.ClientID = clientID
	if err := g.Store.Save(rec); err != nil {
		return "", newError(KindStorage, err)
	}
	return clientID, nil
}

func (g *SetupGuide) showInstructions() {
	w := g.writer()
	fmt.Fprintln(w, "Register a new OAuth app for repogen:")
	fmt.Fprintln(w, "  1. Name it anything you like (e.g. \"repogen\").")
	fmt.Fprintln(w, "  2. Homepage and callback URL can both be http://localhost.")
	fmt.Fprintln(w, "  3. Tick \"Enable Device Flow\".")
	fmt.Fprintln(w, "  4. Copy the Client ID shown after creation.")

	open := g.OpenBrowser
	if open == nil {
		open = OpenBrowser
	}
	if BrowserEnabled() && open(OAuthAppRegistrationURL) == nil {
		fmt.Fprintf(w, "Opened %s in your browser.\n", OAuthAppRegistrationURL)
		return
	}
	fmt.Fprintf(w, "Open %s to get started.\n", OAuthAppRegistrationURL)
}

func (g *SetupGuide) writer() io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stdout
}
