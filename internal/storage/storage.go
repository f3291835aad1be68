// internal/storage/storage.go
package storage

import "github.com/OCAP2/hoopshot/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// RecordRun persists one finished run, samples included.
	RecordRun(run *core.Run) error
}

// Uploadable is an optional interface for storage backends that produce
// files suitable for upload to the run server.
type Uploadable interface {
	GetExportedFilePath() string
	GetExportMetadata() core.UploadMetadata
}
