// internal/storage/memory/memory.go
package memory

import (
	"sync"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/pkg/core"
)

// Backend keeps runs in memory and exports each one to JSON as it is recorded
type Backend struct {
	cfg  config.MemoryConfig
	runs []core.Run

	lastExportPath string
	lastRun        *core.Run

	mu sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg: cfg,
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// RecordRun stores the run and writes its export file
func (b *Backend) RecordRun(run *core.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	last := *run
	b.runs = append(b.runs, last)
	b.lastRun = &last

	return b.exportJSON(b.lastRun)
}

// Runs returns a copy of the recorded runs
func (b *Backend) Runs() []core.Run {
	b.mu.RLock()
	defer b.mu.RUnlock()

	runs := make([]core.Run, len(b.runs))
	copy(runs, b.runs)
	return runs
}

// GetExportedFilePath returns the path of the last export
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// GetExportMetadata describes the last exported run
func (b *Backend) GetExportMetadata() core.UploadMetadata {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.lastRun == nil {
		return core.UploadMetadata{}
	}
	return core.UploadMetadata{
		RunID:      b.lastRun.ID,
		VenueName:  b.lastRun.Venue.Name,
		Entered:    b.lastRun.Trajectory.Entered,
		Duration:   b.lastRun.Window.Seconds,
		NumSamples: len(b.lastRun.Trajectory.Samples),
	}
}
