// Package commands wires the CLI surface: the root command launches the
// interactive TUI, the subcommands run one-shot task operations.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"tudu/internal/config"
	"tudu/internal/storage"
	"tudu/internal/store"
	"tudu/internal/update"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "tudu",
		Usage: "Track short tasks from your terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the task database",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep tasks in memory only (nothing survives exit)",
			},
		},
		Commands: []*cli.Command{
			NewAddCommand(),
			NewListCommand(),
			NewDoneCommand(),
			NewEditCommand(),
			NewRmCommand(),
			NewClearCommand(),
		},
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	s, cfg, cleanup, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	program := tea.NewProgram(update.NewModelWithConfig(s, notifier, cfg))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// openStore resolves configuration and constructs the task store over the
// configured persistence backend.
func openStore(ctx context.Context, cmd *cli.Command) (*store.Store, config.Config, func(), error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, cfg, nil, err
	}
	if v := cmd.String("db"); v != "" {
		cfg.DBPath = v
	}

	var kv storage.KV
	if cmd.Bool("ephemeral") {
		kv = storage.NewMemoryKV()
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, cfg, nil, fmt.Errorf("create data dir: %w", err)
		}
		kv, err = storage.OpenSQLiteKV(cfg.DBPath)
		if err != nil {
			return nil, cfg, nil, err
		}
	}

	s, err := store.New(ctx, kv, store.WithKey(cfg.StoreKey))
	if err != nil {
		_ = kv.Close()
		return nil, cfg, nil, err
	}
	return s, cfg, func() { _ = kv.Close() }, nil
}
