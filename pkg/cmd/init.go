package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/repogen/repogen/pkg/auth"
	"github.com/repogen/repogen/pkg/output"
)

var (
	licenseOptions   = []string{"None", "MIT", "Apache-2.0", "GPL-3.0", "BSD-3-Clause", "Unlicense"}
	gitignoreOptions = []string{"None", "Node", "Python", "Rust", "Go", "Java", "C++", "Swift"}
	editorOptions    = []string{"None", "VS Code", "Vim", "Emacs", "Sublime Text", "IntelliJ"}
)

func NewInitCommand() *cobra.Command {
	var authOnly, metaOnly bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up your profile, preferences, and GitHub connection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if authOnly && metaOnly {
				return errors.New("--auth and --meta are mutually exclusive")
			}
			if rt.nonInteractive {
				return errors.New("init is interactive; unset --non-interactive to run it")
			}

			w := rt.Writer()
			fmt.Fprintln(w, output.Title.Render("Welcome to repogen!"))
			fmt.Fprintln(w, "Let's set up your profile, preferences, and GitHub connection.")
			fmt.Fprintln(w, output.Rule())

			if !authOnly {
				if err := editProfile(rt); err != nil {
					return err
				}
				if err := editDefaults(rt); err != nil {
					return err
				}
			}
			if !metaOnly {
				if err := runAuthSetup(cmd.Context(), rt); err != nil {
					return err
				}
			}

			fmt.Fprintln(w, output.Success.Render("repogen is configured and ready to use."))
			fmt.Fprintf(w, "Config saved to %s\n", output.Accent.Render(rt.store.Path()))
			fmt.Fprintln(w, "Try: repogen new my-project")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&authOnly, "auth", "a", false, "Only run the authentication setup")
	cmd.Flags().BoolVarP(&metaOnly, "meta", "m", false, "Only run the profile and preferences setup")

	return cmd
}

func editProfile(rt *runtimeState) error {
	rec, err := rt.store.Load()
	if err != nil {
		return err
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("GitHub username").
			Value(&rec.GithubUsername).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("GitHub username cannot be empty")
				}
				return nil
			}),
		huh.NewInput().
			Title("Full name (for commits, optional)").
			Value(&rec.UserName),
		huh.NewInput().
			Title("Email (for commits, optional)").
			Value(&rec.UserEmail),
	))
	if err := form.Run(); err != nil {
		return promptErr(err)
	}
	return rt.store.Save(rec)
}

func editDefaults(rt *runtimeState) error {
	rec, err := rt.store.Load()
	if err != nil {
		return err
	}

	license := orNone(rec.DefaultLicense)
	gitignore := orNone(rec.DefaultGitignore)
	editor := orNone(rec.PreferredEditor)

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Make repositories private by default?").
			Value(&rec.DefaultPrivate),
		huh.NewSelect[string]().
			Title("Default license").
			Options(huh.NewOptions(licenseOptions...)...).
			Value(&license),
		huh.NewSelect[string]().
			Title("Default .gitignore template").
			Options(huh.NewOptions(gitignoreOptions...)...).
			Value(&gitignore),
		huh.NewSelect[string]().
			Title("Preferred editor").
			Options(huh.NewOptions(editorOptions...)...).
			Value(&editor),
		huh.NewConfirm().
			Title("Clone new repositories automatically?").
			Value(&rec.AutoClone),
		huh.NewInput().
			Title("Clone directory (empty for current directory)").
			Value(&rec.CloneDirectory),
	))
	if err := form.Run(); err != nil {
		return promptErr(err)
	}

	rec.DefaultLicense = noneToEmpty(license)
	rec.DefaultGitignore = noneToEmpty(gitignore)
	rec.PreferredEditor = noneToEmpty(editor)
	return rt.store.Save(rec)
}

func runAuthSetup(ctx context.Context, rt *runtimeState) error {
	rec, err := rt.store.Load()
	if err != nil {
		return err
	}
	w := rt.Writer()

	if rec.HasToken() {
		keep := true
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("A GitHub token is already configured. Keep it?").
				Value(&keep),
		))
		if err := form.Run(); err != nil {
			return promptErr(err)
		}
		if keep {
			fmt.Fprintln(w, "Keeping the existing GitHub token.")
			return nil
		}
	}

	method := "device"
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("How would you like to authenticate with GitHub?").
			Options(
				huh.NewOption("Browser device login (recommended)", "device"),
				huh.NewOption("Personal access token", "pat"),
			).
			Value(&method),
	))
	if err := form.Run(); err != nil {
		return promptErr(err)
	}

	authenticator := buildAuthenticator(rt)
	var cred *auth.Credential
	switch method {
	case "pat":
		var token string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("GitHub personal access token").
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Validate(func(s string) error {
					if !strings.HasPrefix(s, "ghp_") && !strings.HasPrefix(s, "github_pat_") {
						return errors.New("expected a token starting with ghp_ or github_pat_")
					}
					return nil
				}),
		))
		if err := form.Run(); err != nil {
			return promptErr(err)
		}
		cred, err = authenticator.Authenticate(ctx, auth.PersonalToken(token))
	default:
		cred, err = authenticator.Authenticate(ctx, auth.DeviceFlow())
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Signed in as %s\n", output.Success.Render("✓"), output.Value.Render(cred.Username))
	return nil
}

func buildAuthenticator(rt *runtimeState) *auth.Authenticator {
	a := &auth.Authenticator{
		Config: auth.Config{Logger: rt.logger},
		Store:  rt.store,
	}
	if !rt.nonInteractive {
		a.Guide = &auth.SetupGuide{
			Prompter: auth.NewPrompter(),
			Store:    rt.store,
			Out:      rt.Writer(),
		}
	}
	a.OnDeviceAuthorization = func(d *auth.DeviceAuthorization) {
		w := rt.Writer()
		fmt.Fprintln(w)
		fmt.Fprintf(w, "First, copy your one-time code: %s\n", output.Value.Render(d.UserCode))
		fmt.Fprintf(w, "Then authorize repogen at %s\n", output.Accent.Render(d.VerificationURI))
		if auth.BrowserEnabled() && auth.OpenBrowser(d.VerificationURI) == nil {
			fmt.Fprintln(w, output.Dim.Render("Opened the verification page in your browser."))
		}
		fmt.Fprintln(w, "Waiting for authorization...")
	}
	return a
}

func promptErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("cancelled")
	}
	return err
}

func orNone(value string) string {
	if value == "" {
		return "None"
	}
	return value
}

func noneToEmpty(value string) string {
	if value == "None" {
		return ""
	}
	return value
}
