// Package postgres implements the storage.Backend interface on PostgreSQL
// through the GORM backend.
package postgres

import (
	"errors"
	"fmt"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/database"
	"github.com/OCAP2/hoopshot/internal/logging"
	gormstorage "github.com/OCAP2/hoopshot/internal/storage/gorm"
	"github.com/OCAP2/hoopshot/pkg/core"

	"gorm.io/gorm"
)

// ErrNotInitialized is returned when the backend is used before Init.
var ErrNotInitialized = errors.New("postgres backend not initialized")

// Backend connects to Postgres on Init and delegates to the GORM backend.
type Backend struct {
	cfg   config.PostgresConfig
	log   *logging.SlogManager
	db    *gorm.DB
	inner *gormstorage.Backend
}

// New creates a new Postgres storage backend. No connection is made until Init.
func New(cfg config.PostgresConfig, logManager *logging.SlogManager) *Backend {
	if logManager == nil {
		logManager = logging.NewSlogManager()
	}
	return &Backend{
		cfg: cfg,
		log: logManager,
	}
}

// Init connects, validates the connection and migrates the schema.
func (b *Backend) Init() error {
	db, err := database.GetPostgresDB(b.cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	inner := gormstorage.New(gormstorage.Dependencies{
		DB:         db,
		LogManager: b.log,
	})
	if err := inner.Init(); err != nil {
		return err
	}

	b.db = db
	b.inner = inner
	b.log.Logger().Info("Connected to database", "host", b.cfg.Host, "database", b.cfg.Database)
	return nil
}

// RecordRun stores the run.
func (b *Backend) RecordRun(run *core.Run) error {
	if b.inner == nil {
		return ErrNotInitialized
	}
	return b.inner.RecordRun(run)
}

// Close releases the connection pool.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
