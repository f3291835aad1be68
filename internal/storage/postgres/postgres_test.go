package postgres

import (
	"testing"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/storage"
	"github.com/OCAP2/hoopshot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface check
var _ storage.Backend = (*Backend)(nil)

func TestNew(t *testing.T) {
	b := New(config.PostgresConfig{Host: "localhost"}, nil)
	require.NotNil(t, b)
	assert.NotNil(t, b.log)
}

func TestRecordRun_BeforeInit(t *testing.T) {
	b := New(config.PostgresConfig{}, nil)
	assert.ErrorIs(t, b.RecordRun(&core.Run{ID: "x"}), ErrNotInitialized)
}

func TestClose_BeforeInit(t *testing.T) {
	b := New(config.PostgresConfig{}, nil)
	assert.NoError(t, b.Close())
}

func TestInit_Unreachable(t *testing.T) {
	// port 1 on loopback refuses connections
	b := New(config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     "1",
		Username: "postgres",
		Password: "postgres",
		Database: "hoopshot",
	}, nil)

	err := b.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
	assert.ErrorIs(t, b.RecordRun(&core.Run{ID: "x"}), ErrNotInitialized)
}
