package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/perhult/reelsync/internal/ledger"
	"github.com/perhult/reelsync/internal/omdb"
	"github.com/perhult/reelsync/internal/sync"
	"github.com/perhult/reelsync/internal/vault"
)

// App bundles the wired-up application components shared by the CLI commands
// and the server.
type App struct {
	Config *Config
	Log    *slog.Logger
	Vault  *vault.FS
	Ledger *ledger.DB
	Client *omdb.Client
	Syncer *sync.Syncer
}

// NewApp builds the component graph from the configuration. notifier may be
// nil, in which case user-facing messages go to the logger.
func NewApp(cfg *Config, notifier sync.Notifier, logger *slog.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}
	store, err := vault.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, fmt.Errorf("init vault: %w", err)
	}

	db, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}

	apiKey := cfg.OMDb.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OMDB_API_KEY")
	}
	client := omdb.NewClient(apiKey, cfg.OMDb.Delay())

	syncer := sync.New(store, client, cfg.Sync, notifier, logger)
	syncer.SetRecorder(db)

	return &App{
		Config: cfg,
		Log:    logger,
		Vault:  store,
		Ledger: db,
		Client: client,
		Syncer: syncer,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	return a.Ledger.Close()
}
