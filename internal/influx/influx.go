package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/pkg/core"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"
)

const (
	// MeasurementSample holds one point per trajectory sample.
	MeasurementSample = "throw_samples"
	// MeasurementRun holds one summary point per run.
	MeasurementRun = "throw_runs"
	// BackupFileName is the gzip line-protocol file used when the server is unreachable.
	BackupFileName = "influx_backup.lp.gz"
)

// ErrDisabled is returned by Connect when InfluxDB is switched off.
var ErrDisabled = errors.New("influx.enabled is false")

// Manager handles InfluxDB connections and writes.
type Manager struct {
	Client       influxdb2.Client
	Writer       influxdb2_api.WriteAPIBlocking
	BackupWriter *gzip.Writer
	IsValid      bool
	Logger       zerolog.Logger

	cfg        config.InfluxConfig
	backupFile *os.File
}

// NewManager creates a new InfluxDB manager.
func NewManager(cfg config.InfluxConfig, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		Logger: log,
	}
}

// BackupPath returns the location of the line-protocol backup file.
func (m *Manager) BackupPath() string {
	return filepath.Join(m.cfg.BackupDir, BackupFileName)
}

// Connect establishes a connection to InfluxDB. When the server does not
// answer, points go to the backup file instead.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf("%s://%s:%s", m.cfg.Protocol, m.cfg.Host, m.cfg.Port),
		m.cfg.Token,
		influxdb2.DefaultOptions().SetHTTPRequestTimeout(5),
	)

	// validate client connection health
	running, err := m.Client.Ping(ctx)

	if err != nil || !running {
		m.IsValid = false
		if m.BackupWriter == nil {
			m.Logger.Info().Str("backupPath", m.BackupPath()).
				Msg("Failed to initialize InfluxDB client, writing to backup file")

			if err := os.MkdirAll(filepath.Dir(m.BackupPath()), 0o755); err != nil {
				return fmt.Errorf("error creating backup directory: %w", err)
			}
			file, err := os.OpenFile(m.BackupPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("error creating backup file: %w", err)
			}
			m.backupFile = file
			m.BackupWriter = gzip.NewWriter(file)
		}
		m.Logger.Warn().Msg("InfluxDB client failed to initialize, using backup writer")
		return nil
	}

	m.IsValid = true
	if err := m.setupOrganizationAndBucket(ctx); err != nil {
		return err
	}
	m.Writer = m.Client.WriteAPIBlocking(m.cfg.Org, m.cfg.Bucket)
	m.Logger.Info().Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) setupOrganizationAndBucket(ctx context.Context) error {
	orgName := m.cfg.Org

	// ensure org exists
	influxOrg, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Info().Str("org", orgName).Msg("Organization not found, creating")
		influxOrg, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	// ensure the bucket exists with 90 day retention
	if _, err = m.Client.BucketsAPI().FindBucketByName(ctx, m.cfg.Bucket); err != nil {
		m.Logger.Info().Str("bucket", m.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, influxOrg, m.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 90, // 90 days
		})
		if err != nil {
			m.Logger.Error().Err(err).Str("bucket", m.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}

	return nil
}

// RunPoints builds one point per sample plus a summary point. Sample points
// are stamped at start + t so a run reads as a time series.
func RunPoints(run *core.Run) []*influxdb2_write.Point {
	tags := map[string]string{
		"run_id": run.ID,
		"venue":  run.Venue.Name,
	}

	points := make([]*influxdb2_write.Point, 0, len(run.Trajectory.Samples)+1)
	for _, s := range run.Trajectory.Samples {
		ts := run.StartTime.Add(time.Duration(s.T * float64(time.Second)))
		points = append(points, influxdb2.NewPoint(MeasurementSample, tags, map[string]interface{}{
			"t":       s.T,
			"x":       s.Position.X,
			"y":       s.Position.Y,
			"entered": s.Entered,
		}, ts))
	}

	points = append(points, influxdb2.NewPoint(MeasurementRun, tags, map[string]interface{}{
		"speed":       run.Launch.Speed,
		"teta_0":      run.Launch.Teta0,
		"num_samples": len(run.Trajectory.Samples),
		"entered":     run.Trajectory.Entered,
	}, run.StartTime))

	return points
}

// WriteRun writes the run's points to InfluxDB or the backup file.
func (m *Manager) WriteRun(ctx context.Context, run *core.Run) error {
	points := RunPoints(run)

	if m.IsValid {
		if err := m.Writer.WritePoint(ctx, points...); err != nil {
			return fmt.Errorf("error writing to InfluxDB: %w", err)
		}
		return nil
	}

	if m.BackupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}
	for _, point := range points {
		lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
		if _, err := m.BackupWriter.Write([]byte(lineProtocol)); err != nil {
			return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
		}
	}
	return nil
}

// Close flushes the backup file and releases the client.
func (m *Manager) Close() error {
	var errs []error
	if m.BackupWriter != nil {
		errs = append(errs, m.BackupWriter.Close())
		m.BackupWriter = nil
	}
	if m.backupFile != nil {
		errs = append(errs, m.backupFile.Close())
		m.backupFile = nil
	}
	if m.Client != nil {
		m.Client.Close()
	}
	return errors.Join(errs...)
}
