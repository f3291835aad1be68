package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OCAP2/hoopshot/internal/api"
	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/influx"
	"github.com/OCAP2/hoopshot/internal/storage"
	"github.com/OCAP2/hoopshot/internal/storage/memory"
	pgstorage "github.com/OCAP2/hoopshot/internal/storage/postgres"
	sqlitestorage "github.com/OCAP2/hoopshot/internal/storage/sqlite"
	wsstorage "github.com/OCAP2/hoopshot/internal/storage/websocket"
	"github.com/OCAP2/hoopshot/pkg/core"
)

const influxTimeout = 30 * time.Second

// createStorageBackend returns the run store for storageCfg.Type, or nil
// for "none".
func createStorageBackend(s *session, storageCfg config.StorageConfig) (storage.Backend, error) {
	switch storageCfg.Type {
	case "", "none":
		return nil, nil

	case "memory":
		s.logger.Info("Memory storage backend initialized", "dir", storageCfg.Memory.OutputDir)
		return memory.New(storageCfg.Memory), nil

	case "sqlite":
		backend, err := sqlitestorage.New(storageCfg.SQLite, s.slog)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		s.logger.Info("SQLite storage backend initialized", "inMemory", backend.InMemory())
		return backend, nil

	case "postgres":
		s.logger.Info("Postgres storage backend initialized", "host", storageCfg.Postgres.Host)
		return pgstorage.New(storageCfg.Postgres, s.slog), nil

	case "websocket":
		s.logger.Info("WebSocket storage backend initialized", "url", storageCfg.WebSocket.URL)
		return wsstorage.New(storageCfg.WebSocket, s.logger), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
	}
}

// recordRun stores the run, uploads the export when the store produces one
// and writes the InfluxDB points. The first failing sink ends the chain.
func recordRun(s *session, run *core.Run) error {
	backend, err := createStorageBackend(s, config.GetStorageConfig())
	if err != nil {
		return err
	}

	if backend != nil {
		if err := storeRun(backend, run); err != nil {
			return err
		}
		if err := upload(s, backend); err != nil {
			return err
		}
	}

	return writeInflux(s, run)
}

func storeRun(backend storage.Backend, run *core.Run) (err error) {
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close storage backend: %w", closeErr))
		}
	}()

	if err := backend.RecordRun(run); err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}
	return nil
}

func upload(s *session, backend storage.Backend) error {
	apiCfg := config.GetAPIConfig()
	if !apiCfg.Enabled {
		return nil
	}
	u, ok := backend.(storage.Uploadable)
	if !ok {
		s.logger.Debug("Storage backend has no export to upload")
		return nil
	}

	client := api.New(apiCfg.ServerURL, apiCfg.APIKey)
	if err := client.Healthcheck(); err != nil {
		return fmt.Errorf("upload server unavailable: %w", err)
	}
	path := u.GetExportedFilePath()
	if err := client.Upload(path, u.GetExportMetadata()); err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	s.logger.Info("Run uploaded", "file", path)
	return nil
}

func writeInflux(s *session, run *core.Run) (err error) {
	influxCfg := config.GetInfluxConfig()
	if !influxCfg.Enabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), influxTimeout)
	defer cancel()

	m := influx.NewManager(influxCfg, s.zerolog("influx"))
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close InfluxDB manager: %w", closeErr))
		}
	}()

	if err := m.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	return m.WriteRun(ctx, run)
}
