package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repogen/repogen/pkg/config"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
}

type runtimeState struct {
	configPath     string
	store          *config.Store
	apiURL         string
	tokenOverride  string
	nonInteractive bool
	verbose        bool
	writer         io.Writer
	logger         *zap.Logger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:   "repogen",
		Short: "Create and bootstrap GitHub repositories from the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.configPath == "" {
				rt.configPath = config.DefaultConfigPath()
			}
			if rt.apiURL == "" {
				rt.apiURL = os.Getenv("REPOGEN_API_URL")
			}
			if rt.tokenOverride == "" {
				rt.tokenOverride = os.Getenv("REPOGEN_TOKEN")
			}
			if !rt.nonInteractive {
				rt.nonInteractive = strings.EqualFold(os.Getenv("REPOGEN_NON_INTERACTIVE"), "true")
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv("REPOGEN_VERBOSE"), "true")
			}

			rt.store = config.NewStore(rt.configPath)

			if rt.verbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				rt.logger = logger
			} else {
				rt.logger = zap.NewNop()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringVar(&rt.apiURL, "api-url", "", "GitHub API base URL override")
	root.PersistentFlags().StringVar(&rt.tokenOverride, "token", "", "Access token override (bypass stored credential)")
	root.PersistentFlags().BoolVar(&rt.nonInteractive, "non-interactive", false, "Fail instead of prompting")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable verbose diagnostics")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewInitCommand(),
		NewNewCommand(),
		NewConfigCommand(),
		NewVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) resolveToken(rec *config.Record) string {
	if rt.tokenOverride != "" {
		return rt.tokenOverride
	}
	return rec.AccessToken
}
