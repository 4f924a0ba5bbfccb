// Package cli wires the passgrip command line: configuration, logging, the
// password store watch and the bubbletea program.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"passgrip/internal/bridge"
	"passgrip/internal/clipboard"
	"passgrip/internal/config"
	"passgrip/internal/logging"
	"passgrip/internal/store"
	"passgrip/internal/ui"
)

// PassphraseEnv holds the passphrase for the sealed codec
const PassphraseEnv = "PASSGRIP_PASSPHRASE"

var version = "dev" // set by the linker

// output is the terminal the UI draws on. Tests replace it.
var output = os.Stdout

// runProgram runs the UI until it quits, rendering to out. Tests replace it.
var runProgram = func(ctx context.Context, model tea.Model, out io.Writer) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

// NewRootCmd creates the root command. Each call returns a fresh command
// tree so tests can execute it in isolation.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "passgrip [store-dir]",
		Short: "Search, copy and edit password store entries",
		Long: `passgrip is a terminal front-end for a password store.

Type to fuzzy-search entry names, copy the selected secret with Ctrl-Y or
Enter, and edit it with Ctrl-O. The list follows changes made to the store
while passgrip is running.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.StoreDir = args[0]
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	flags.StringP("store", "s", "", "password store directory")
	flags.String("codec", "", `entry codec ("plain", "sealed")`)
	flags.String("clipboard", "", `clipboard backend ("system", "osc52")`)
	flags.Duration("clear-after", 0, "clear the clipboard this long after a copy (0 disables)")
	flags.Duration("poll-interval", 0, "how often the UI checks for store changes")
	flags.String("log-file", "", "log file path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newConfigCmd(&configPath))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command with a context that is cancelled on
// SIGINT or SIGTERM
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return NewRootCmd().ExecuteContext(ctx)
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	codec, err := store.NewCodec(cfg.Codec, os.Getenv(PassphraseEnv))
	if err != nil {
		return err
	}
	st := store.New(cfg.StoreDir, codec,
		store.WithLogger(logger.Named("store")),
		store.WithDebounce(cfg.WatchDebounce),
	)

	// The only fatal failure: nothing is drawn if the store cannot be watched
	b, err := bridge.Start(ctx, st, logger.Named("bridge"))
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}

	// The renderer and the OSC52 sink share the terminal
	term := clipboard.NewTerminal(output)
	sink, err := clipboard.New(cfg.ClipboardMode, term)
	if err != nil {
		return err
	}

	logger.Info("starting UI",
		zap.String("store", st.Dir()),
		zap.String("codec", cfg.Codec),
		zap.String("clipboard", cfg.ClipboardMode),
	)
	model := ui.NewModel(b, sink, cfg, logger.Named("ui"))
	if err := runProgram(ctx, model, term); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("UI stopped by signal")
			return nil
		}
		logger.Error("error running program", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}
