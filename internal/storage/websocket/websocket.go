package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/pkg/core"
	"github.com/OCAP2/hoopshot/pkg/streaming"
)

const defaultAckTimeout = 10 * time.Second

// Backend streams each run over WebSocket to a collecting server.
// Every RecordRun opens its own connection, so the backend holds no
// socket between runs. It implements storage.Backend but not
// storage.Uploadable.
type Backend struct {
	cfg    config.WebSocketConfig
	logger *slog.Logger
}

// New creates a new WebSocket storage backend.
func New(cfg config.WebSocketConfig, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AckTimeout <= 0 {
		cfg.AckTimeout = defaultAckTimeout
	}
	return &Backend{cfg: cfg, logger: logger}
}

// Init validates the server URL.
func (b *Backend) Init() error {
	u, err := url.Parse(b.cfg.URL)
	if err != nil {
		return fmt.Errorf("invalid websocket URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("invalid websocket URL %q: scheme must be ws or wss", b.cfg.URL)
	}
	return nil
}

// Close is a no-op; connections are closed by RecordRun.
func (b *Backend) Close() error {
	return nil
}

// marshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func marshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	env := streaming.Envelope{Type: msgType, Payload: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// RecordRun sends start_run, one sample message per sample and end_run.
// start_run and end_run wait for the server's ack.
func (b *Backend) RecordRun(run *core.Run) (err error) {
	conn, err := dial(b.cfg.URL, b.cfg.Secret, b.cfg.DialTimeout, b.logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, conn.close())
	}()

	data, err := marshalEnvelope(streaming.TypeStartRun, streaming.StartRunPayload{
		RunID:  run.ID,
		Inputs: run.Inputs(),
	})
	if err != nil {
		return err
	}
	if err := conn.sendAndWait(data, streaming.TypeStartRun, b.cfg.AckTimeout); err != nil {
		return err
	}

	for i, s := range run.Trajectory.Samples {
		data, err := marshalEnvelope(streaming.TypeSample, streaming.SamplePayload{
			RunID:   run.ID,
			Seq:     i,
			T:       s.T,
			X:       s.Position.X,
			Y:       s.Position.Y,
			Entered: s.Entered,
		})
		if err != nil {
			return err
		}
		if err := conn.send(data); err != nil {
			return err
		}
	}

	data, err = marshalEnvelope(streaming.TypeEndRun, streaming.EndRunPayload{
		RunID:      run.ID,
		Entered:    run.Trajectory.Entered,
		NumSamples: len(run.Trajectory.Samples),
	})
	if err != nil {
		return err
	}
	if err := conn.sendAndWait(data, streaming.TypeEndRun, b.cfg.AckTimeout); err != nil {
		return err
	}

	b.logger.Debug("Run streamed", "runId", run.ID, "samples", len(run.Trajectory.Samples))
	return nil
}
