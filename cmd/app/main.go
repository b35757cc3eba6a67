package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/perhult/reelsync/internal"
	"github.com/perhult/reelsync/internal/mcpserver"
	"github.com/perhult/reelsync/internal/sync"
	pkgconfig "github.com/perhult/reelsync/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// cliApp wires an App for the one-shot commands: terse logger on stderr,
// user-facing messages on stdout.
func cliApp(cmd *cli.Command) (*internal.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	notifier := sync.NotifierFunc(func(msg string) {
		fmt.Println(msg)
	})
	return internal.NewApp(cfg, notifier, logger)
}

func runSync(ctx context.Context, cmd *cli.Command) error {
	app, err := cliApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if path := cmd.Args().First(); path != "" {
		_, err := app.Syncer.SyncNote(ctx, path, false)
		return err
	}
	_, err = app.Syncer.SyncAll(ctx)
	return err
}

func runCreate(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		return fmt.Errorf("usage: reelsync create <imdb-id-or-url>")
	}
	app, err := cliApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	_, err = app.Syncer.CreateNote(ctx, input)
	return err
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	notifier := sync.NotifierFunc(func(msg string) {
		fmt.Println(msg)
	})
	app, err := internal.NewApp(cfg, notifier, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return sync.Watch(ctx, app.Syncer, app.Vault.Root(), logger)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Stdout carries the MCP transport, so everything else goes to stderr
	// and notifications are dropped.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	app, err := internal.NewApp(cfg, sync.NewLogNotifier(logger), logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return mcpserver.New(app.Syncer, app.Client, app.Ledger).ServeStdio()
}

func runHistory(ctx context.Context, cmd *cli.Command) error {
	app, err := cliApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	entries, err := app.Ledger.Recent(int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No sync history yet")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-7s  %s",
			e.SyncedAt.Local().Format("2006-01-02 15:04:05"), e.Outcome, e.Path)
		if e.Detail != "" {
			line += "  (" + e.Detail + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "reelsync",
		Usage: "Sync movie and series notes with OMDb metadata",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "sync",
				Usage:     "Sync one note, or every note in the configured folders",
				ArgsUsage: "[path]",
				Action:    runSync,
			},
			{
				Name:      "create",
				Usage:     "Create a new note from an IMDb ID or title URL",
				ArgsUsage: "<id|url>",
				Action:    runCreate,
			},
			{
				Name:   "watch",
				Usage:  "Watch the vault and auto-sync notes as they change",
				Action: runWatch,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server with the file watcher",
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdin/stdout",
				Action: runMCP,
			},
			{
				Name:  "history",
				Usage: "Show recent sync outcomes",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Max entries to show",
						Value: 50,
					},
				},
				Action: runHistory,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
