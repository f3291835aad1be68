package storage_test

import (
	"testing"

	"github.com/OCAP2/hoopshot/internal/storage"
	"github.com/OCAP2/hoopshot/pkg/core"
	"github.com/stretchr/testify/assert"
)

type fakeBackend struct {
	recorded []string
	path     string
}

func (f *fakeBackend) Init() error  { return nil }
func (f *fakeBackend) Close() error { return nil }
func (f *fakeBackend) RecordRun(run *core.Run) error {
	f.recorded = append(f.recorded, run.ID)
	return nil
}
func (f *fakeBackend) GetExportedFilePath() string { return f.path }
func (f *fakeBackend) GetExportMetadata() core.UploadMetadata {
	return core.UploadMetadata{RunID: f.recorded[len(f.recorded)-1]}
}

func TestUploadableAssertion(t *testing.T) {
	var b storage.Backend = &fakeBackend{path: "/tmp/run.json"}
	assert.NoError(t, b.RecordRun(&core.Run{ID: "abc"}))

	u, ok := b.(storage.Uploadable)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/run.json", u.GetExportedFilePath())
	assert.Equal(t, "abc", u.GetExportMetadata().RunID)
}
