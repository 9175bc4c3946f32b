// Package cli defines the beejlander command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/beejlander/internal/cards/scryfall"
	"github.com/ramonehamilton/beejlander/internal/config"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

// GUIOptions is what the window needs to start.
type GUIOptions struct {
	Config     *config.Config
	ConfigPath string
	Fetcher    sampler.Fetcher
	Logger     *slog.Logger
}

// GUIRunner opens the desktop window and blocks until it is closed.
type GUIRunner func(opts GUIOptions) error

// rootFlags are shared by every command.
type rootFlags struct {
	configPath string
	debug      bool
}

// NewRootCmd builds the command tree. runGUI backs the default command; a
// nil runner makes "gui" fail with an error.
func NewRootCmd(runGUI GUIRunner) *cobra.Command {
	flags := &rootFlags{}

	guiRun := func(cmd *cobra.Command, _ []string) error {
		if runGUI == nil {
			return fmt.Errorf("gui is not available in this build")
		}
		cfg, logger, err := flags.load(cmd)
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		return runGUI(GUIOptions{
			Config:     cfg,
			ConfigPath: flags.configPath,
			Fetcher:    client,
			Logger:     logger,
		})
	}

	rootCmd := &cobra.Command{
		Use:           "beejlander",
		Short:         "Draw a random budget card pool from Scryfall",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          guiRun,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.beejlander/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window (default)",
		Args:  cobra.NoArgs,
		RunE:  guiRun,
	})
	rootCmd.AddCommand(newSampleCmd(flags))
	rootCmd.AddCommand(newQueryCmd(flags))
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// load reads the config file and builds the logger for a command.
func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, newLogger(cmd.ErrOrStderr(), f.debug || cfg.App.DebugMode), nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newClient(cfg *config.Config) (*scryfall.Client, error) {
	clientConfig, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}
	return scryfall.NewClient(clientConfig), nil
}

// writef writes to a command's output. Failures are ignored: there is
// nowhere left to report them.
func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
