package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/repogen/repogen/pkg/output"
)

func NewConfigCommand() *cobra.Command {
	var view, edit, clear bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and edit the repogen configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			switch {
			case edit:
				return editConfig(rt)
			case clear:
				return clearConfig(rt)
			default:
				_ = view
				return viewConfig(rt)
			}
		},
	}

	cmd.Flags().BoolVarP(&view, "view", "w", false, "View the current configuration")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Edit the configuration interactively")
	cmd.Flags().BoolVarP(&clear, "clear", "c", false, "Clear the configuration")

	return cmd
}

func viewConfig(rt *runtimeState) error {
	rec, err := rt.store.Load()
	if err != nil {
		return err
	}
	w := rt.Writer()

	fmt.Fprintln(w, output.Title.Render("repogen configuration"))
	fmt.Fprintln(w, output.Rule())

	fmt.Fprintf(w, "\n%s\n", output.Section.Render("User profile"))
	fmt.Fprintln(w, output.Field("GitHub username", rec.GithubUsername))
	fmt.Fprintln(w, output.Field("Full name", rec.UserName))
	fmt.Fprintln(w, output.Field("Email", rec.UserEmail))

	fmt.Fprintf(w, "\n%s\n", output.Section.Render("Authentication"))
	if rec.HasToken() {
		fmt.Fprintf(w, "  GitHub token: %s\n", output.Value.Render(output.MaskSecret(rec.AccessToken)))
	} else {
		fmt.Fprintf(w, "  GitHub token: %s\n", output.Failure.Render("not configured"))
	}
	fmt.Fprintln(w, output.Field("OAuth client ID", rec.ClientID))
	fmt.Fprintln(w, output.Field("Authenticated as", rec.AuthenticatedUsername))

	fmt.Fprintf(w, "\n%s\n", output.Section.Render("Repository defaults"))
	fmt.Fprintf(w, "  Private by default: %s\n", output.Bool(rec.DefaultPrivate))
	fmt.Fprintln(w, output.Field("Default license", rec.DefaultLicense))
	fmt.Fprintln(w, output.Field("Default .gitignore", rec.DefaultGitignore))
	fmt.Fprintln(w, output.Field("Preferred editor", rec.PreferredEditor))

	fmt.Fprintf(w, "\n%s\n", output.Section.Render("Cloning"))
	fmt.Fprintf(w, "  Auto-clone: %s\n", output.Bool(rec.AutoClone))
	fmt.Fprintln(w, output.Field("Clone directory", rec.CloneDirectory))

	fmt.Fprintf(w, "\n%s\n", output.Section.Render("Configuration file"))
	fmt.Fprintln(w, output.Field("Location", rt.store.Path()))

	fmt.Fprintln(w, "\n"+output.Rule())
	fmt.Fprintln(w, output.Dim.Render("Run `repogen config --edit` to modify, `repogen config --clear` to reset."))
	return nil
}

func editConfig(rt *runtimeState) error {
	if rt.nonInteractive {
		return errors.New("config --edit is interactive; unset --non-interactive to run it")
	}

	choice := "profile"
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("What would you like to edit?").
			Options(
				huh.NewOption("User profile (username, name, email)", "profile"),
				huh.NewOption("Repository defaults (privacy, license, gitignore, editor)", "defaults"),
				huh.NewOption("GitHub authentication", "auth"),
				huh.NewOption("Everything", "all"),
				huh.NewOption("Cancel", "cancel"),
			).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return promptErr(err)
	}

	w := rt.Writer()
	switch choice {
	case "profile":
		return editProfile(rt)
	case "defaults":
		return editDefaults(rt)
	case "auth":
		fmt.Fprintln(w, "Run `repogen init --auth` to update authentication; it validates the new credential before saving.")
		return nil
	case "all":
		if err := editProfile(rt); err != nil {
			return err
		}
		return editDefaults(rt)
	default:
		fmt.Fprintln(w, "Edit cancelled.")
		return nil
	}
}

func clearConfig(rt *runtimeState) error {
	if rt.nonInteractive {
		return errors.New("config --clear is interactive; unset --non-interactive to run it")
	}
	w := rt.Writer()

	confirm := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Clear all configuration?").
			Description("This resets every setting and cannot be undone.").
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return promptErr(err)
	}
	if !confirm {
		fmt.Fprintln(w, "Clear cancelled.")
		return nil
	}

	// A stored token is deleted too; ask again.
	confirm = false
	form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Really clear? This deletes your GitHub token as well.").
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return promptErr(err)
	}
	if !confirm {
		fmt.Fprintln(w, "Clear cancelled.")
		return nil
	}

	if err := rt.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(w, output.Success.Render("Configuration cleared."))
	fmt.Fprintln(w, "Run `repogen init` to set up again.")
	return nil
}
