// ABOUTME: Root command wiring config, logging, storage and the notebook.
// ABOUTME: Every subcommand runs against the notebook opened here.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harper/notebook/internal/config"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/storage"
	"github.com/harper/notebook/internal/ui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *log.Logger
	store  storage.Store
	nb     *notebook.Notebook
)

var rootCmd = &cobra.Command{
	Use:           "notebook",
	Short:         "Tagged markdown notes",
	Long:          `A personal notebook of markdown notes organized with tags, filterable by title and tag.`,
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("backend") {
			cfg.Backend, _ = cmd.Flags().GetString("backend")
		}
		if cmd.Flags().Changed("data") {
			cfg.DataPath, _ = cmd.Flags().GetString("data")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}

		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			Prefix:          "notebook",
			ReportTimestamp: true,
		})

		store, err = storage.Open(cfg.Backend, cfg.DataPath, logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		nb, err = notebook.Open(store, notebook.WithLogger(logger))
		if err != nil {
			_ = closeStore()
			return fmt.Errorf("failed to open notebook: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command, cancelling its context on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		_ = closeStore()
	}
	return err
}

// closeStore is safe to call more than once; a failed command skips the
// post-run hook, so Execute closes the store too.
func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// interactive reports whether stdin and stdout are both terminals, which
// is required for huh forms.
func interactive() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().String("backend", config.DefaultBackend, "storage backend: badger, sqlite or memory")
	rootCmd.PersistentFlags().String("data", "", "data location for the storage backend")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
}
