// Package sqlitestorage implements the storage.Backend interface on SQLite.
// It wraps the GORM backend via composition. The only SQLite-specific
// concerns are opening the database, in memory or on disk, and dumping an
// in-memory database to disk via VACUUM INTO when the backend is closed.
package sqlitestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/database"
	"github.com/OCAP2/hoopshot/internal/logging"
	gormstorage "github.com/OCAP2/hoopshot/internal/storage/gorm"

	"gorm.io/gorm"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db  *gorm.DB
	cfg config.SQLiteConfig
	log *logging.SlogManager
}

// New opens the SQLite database described by cfg.
func New(cfg config.SQLiteConfig, logManager *logging.SlogManager) (*Backend, error) {
	db, err := database.GetSqliteDB(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	if logManager == nil {
		logManager = logging.NewSlogManager()
	}

	gormBackend := gormstorage.New(gormstorage.Dependencies{
		DB:         db,
		LogManager: logManager,
	})

	return &Backend{
		Backend: gormBackend,
		db:      db,
		cfg:     cfg,
		log:     logManager,
	}, nil
}

// InMemory reports whether the database lives only in memory.
func (b *Backend) InMemory() bool {
	return b.cfg.Path == ""
}

// Dump writes an in-memory database to cfg.DumpPath.
func (b *Backend) Dump() error {
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(b.cfg.DumpPath), 0o755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}
	if err := database.DumpMemoryDBToDisk(b.db, b.cfg.DumpPath); err != nil {
		return err
	}
	b.log.WriteLog("sqlite:dump", fmt.Sprintf("Dumped to %s in %s", b.cfg.DumpPath, time.Since(start)), "DEBUG")
	return nil
}

// Close dumps an in-memory database when a dump path is set, then closes
// the connection.
func (b *Backend) Close() error {
	var dumpErr error
	if b.InMemory() && b.cfg.DumpPath != "" {
		dumpErr = b.Dump()
		if dumpErr != nil {
			b.log.WriteLog("sqlite:dump", fmt.Sprintf("Error dumping to disk: %v", dumpErr), "ERROR")
		}
	}

	if err := b.Backend.Close(); err != nil {
		return err
	}

	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close SQLite DB: %w", err)
	}
	return dumpErr
}
