package cmd

import (
	"errors"
	"fmt"

	"parquet-compactor/core/columnar"
	"parquet-compactor/core/config"
	"parquet-compactor/core/database"
	"parquet-compactor/core/logger"
	"parquet-compactor/core/storage"
	"parquet-compactor/feature/compaction"
	"parquet-compactor/feature/journal"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errIncomplete marks a run that finished but left groups failed or unreaped.
var errIncomplete = errors.New("run did not fully compact every group")

// exitCode maps command errors to process exit codes:
// 2 for bad configuration, 3 for incomplete strict runs, 1 otherwise.
func exitCode(err error) int {
	switch {
	case compaction.IsConfigError(err):
		return 2
	case errors.Is(err, errIncomplete):
		return 3
	default:
		return 1
	}
}

// app bundles what every command builds from the configuration.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *compaction.Service
	db      *gorm.DB
	journal *journal.Store
}

// newApp loads the configuration and wires the compaction service.
// The journal is optional: a failed connection is logged and the run continues without it.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	codec, err := columnar.NewCodec(cfg.Codec)
	if err != nil {
		return nil, fmt.Errorf("failed to create codec: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logg,
		service: compaction.NewService(client, cfg.Storage.Bucket, codec, cfg.Compaction, logg),
	}

	if cfg.Database.Enabled() {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Warn("Optional database connection failed, journal disabled", zap.Error(err))
			return a, nil
		}
		store := journal.NewStore(db)
		if err := store.Migrate(); err != nil {
			logg.Warn("Journal migration failed, journal disabled", zap.Error(err))
			return a, nil
		}
		a.db = db
		a.journal = store
		a.service.SetRecorder(store)
		logg.Debug("Connected to journal database", zap.String("driver", cfg.Database.Driver))
	}

	return a, nil
}
