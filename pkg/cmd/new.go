package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repogen/repogen/pkg/config"
	"github.com/repogen/repogen/pkg/git"
	"github.com/repogen/repogen/pkg/github"
	"github.com/repogen/repogen/pkg/output"
)

func NewNewCommand() *cobra.Command {
	var (
		description string
		private     bool
		public      bool
		license     string
		gitignore   string
		readme      bool
		clone       bool
	)

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create a new repository on GitHub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if private && public {
				return errors.New("--private and --public are mutually exclusive")
			}

			rec, err := rt.store.Load()
			if err != nil {
				return err
			}
			token := rt.resolveToken(rec)
			if token == "" {
				return errors.New("no GitHub token found; run `repogen init --auth` to authenticate")
			}

			isPrivate := rec.DefaultPrivate
			if public {
				isPrivate = false
			}
			if private {
				isPrivate = true
			}
			req := &github.CreateRepositoryRequest{
				Name:              args[0],
				Description:       description,
				Private:           isPrivate,
				LicenseTemplate:   resolveTemplate(license, rec.DefaultLicense),
				GitignoreTemplate: resolveTemplate(gitignore, rec.DefaultGitignore),
				AutoInit:          readme,
			}

			w := rt.Writer()
			fmt.Fprintln(w, output.Title.Render("repogen: create repository"))
			fmt.Fprintln(w, output.Rule())
			fmt.Fprintln(w, output.Field("Name", req.Name))
			if req.Description != "" {
				fmt.Fprintln(w, output.Field("Description", req.Description))
			}
			fmt.Fprintf(w, "  Visibility: %s\n", visibility(req.Private))
			if req.LicenseTemplate != "" {
				fmt.Fprintln(w, output.Field("License", req.LicenseTemplate))
			}
			if req.GitignoreTemplate != "" {
				fmt.Fprintln(w, output.Field(".gitignore", req.GitignoreTemplate))
			}
			fmt.Fprintf(w, "  Initialize with README: %s\n", output.Bool(req.AutoInit))

			var opts []github.Option
			if rt.apiURL != "" {
				opts = append(opts, github.WithBaseURL(rt.apiURL))
			}
			client := github.New(token, opts...)

			fmt.Fprintln(w, "\nCreating repository on GitHub...")
			repo, err := client.CreateRepository(cmd.Context(), req)
			if err != nil {
				return err
			}

			displayCreated(rt, rec, repo)

			if clone || rec.AutoClone {
				fmt.Fprintln(w, "\nCloning repository...")
				path, err := git.Clone(cmd.Context(), repo.CloneURL, rec.CloneDirectory)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s Cloned to %s\n", output.Success.Render("✓"), output.Accent.Render(path))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description of the new repository")
	cmd.Flags().BoolVarP(&private, "private", "p", false, "Make the repository private")
	cmd.Flags().BoolVar(&public, "public", false, "Make the repository public")
	cmd.Flags().StringVarP(&license, "license", "l", "", "License template (\"none\" to skip)")
	cmd.Flags().StringVarP(&gitignore, "gitignore", "g", "", ".gitignore template (\"none\" to skip)")
	cmd.Flags().BoolVarP(&readme, "readme", "r", false, "Initialize with a README")
	cmd.Flags().BoolVar(&clone, "clone", false, "Clone the repository after creation")

	return cmd
}

// resolveTemplate applies flag-over-config precedence; the literal "none"
// suppresses the configured default.
func resolveTemplate(flagValue, configValue string) string {
	if flagValue != "" {
		if strings.EqualFold(flagValue, "none") {
			return ""
		}
		return flagValue
	}
	return configValue
}

func visibility(private bool) string {
	if private {
		return output.Value.Render("private")
	}
	return output.Value.Render("public")
}

func displayCreated(rt *runtimeState, rec *config.Record, repo *github.Repository) {
	w := rt.Writer()
	fmt.Fprintf(w, "\n%s\n", output.Success.Render("Repository created successfully!"))
	fmt.Fprintln(w, output.Field("Name", repo.FullName))
	fmt.Fprintln(w, output.Field("URL", repo.HTMLURL))
	fmt.Fprintf(w, "  Visibility: %s\n", visibility(repo.Private))

	fmt.Fprintf(w, "\n%s\n", output.Section.Render("Clone URLs"))
	fmt.Fprintln(w, output.Field("HTTPS", repo.CloneURL))
	fmt.Fprintln(w, output.Field("SSH", repo.SSHURL))

	fmt.Fprintf(w, "\n%s\n", output.Section.Render("Next steps"))
	fmt.Fprintf(w, "  git clone %s\n", repo.CloneURL)
	fmt.Fprintf(w, "  cd %s\n", repo.Name)
	if hint := editorHint(rec.PreferredEditor); hint != "" {
		fmt.Fprintf(w, "  %s\n", hint)
	}
}

func editorHint(editor string) string {
	switch editor {
	case "VS Code":
		return "code ."
	case "Vim":
		return "vim ."
	case "Emacs":
		return "emacs ."
	case "Sublime Text":
		return "subl ."
	default:
		return ""
	}
}
