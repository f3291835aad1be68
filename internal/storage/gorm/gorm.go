// Package gormstorage implements the storage.Backend interface on top of any
// GORM connection. The SQLite and Postgres backends wrap it.
package gormstorage

import (
	"errors"
	"fmt"

	"github.com/OCAP2/hoopshot/internal/database"
	"github.com/OCAP2/hoopshot/internal/logging"
	"github.com/OCAP2/hoopshot/internal/model"
	"github.com/OCAP2/hoopshot/internal/model/convert"
	"github.com/OCAP2/hoopshot/pkg/core"

	"gorm.io/gorm"
)

// ErrNoDB is returned when the backend has no connection to work with.
var ErrNoDB = errors.New("no database connection")

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB         *gorm.DB
	LogManager *logging.SlogManager
}

// Backend implements storage.Backend using GORM.
type Backend struct {
	deps    Dependencies
	dbReady bool
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.LogManager == nil {
		deps.LogManager = logging.NewSlogManager()
	}
	return &Backend{
		deps: deps,
	}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init runs the schema migration.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return ErrNoDB
	}
	if err := database.Migrate(b.deps.DB); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	b.dbReady = true
	return nil
}

// Close is a no-op; the connection belongs to whoever opened it.
func (b *Backend) Close() error {
	return nil
}

// RecordRun inserts the run and its samples in one transaction.
func (b *Backend) RecordRun(run *core.Run) error {
	if !b.dbReady {
		return fmt.Errorf("record run: %w", ErrNoDB)
	}

	row, err := convert.CoreToRun(*run)
	if err != nil {
		return err
	}

	err = b.deps.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	b.deps.LogManager.Logger().Debug("Recorded run",
		"run_id", run.ID,
		"db_id", row.ID,
		"samples", len(row.Samples),
		"entered", row.Entered,
	)
	return nil
}

// GetRun loads a run by its UUID, samples in time order.
func (b *Backend) GetRun(id string) (core.Run, error) {
	if !b.dbReady {
		return core.Run{}, fmt.Errorf("get run: %w", ErrNoDB)
	}

	var row model.Run
	err := b.deps.DB.
		Preload("Samples", func(db *gorm.DB) *gorm.DB {
			return db.Order("samples.seq ASC")
		}).
		Where("uuid = ?", id).
		First(&row).Error
	if err != nil {
		return core.Run{}, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return convert.RunToCore(&row), nil
}

// CountRuns returns the number of stored runs, optionally only the ones that
// entered the basket.
func (b *Backend) CountRuns(enteredOnly bool) (int64, error) {
	if !b.dbReady {
		return 0, fmt.Errorf("count runs: %w", ErrNoDB)
	}

	q := b.deps.DB.Model(&model.Run{})
	if enteredOnly {
		q = q.Where("entered = ?", true)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}
