package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/OCAP2/hoopshot/internal/config"
	"github.com/OCAP2/hoopshot/internal/logging"
	intOtel "github.com/OCAP2/hoopshot/internal/otel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const appName = "hoopshot"

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// session holds the per-invocation logging state.
type session struct {
	runID     string
	start     time.Time
	slog      *logging.SlogManager
	logger    *slog.Logger
	logOut    io.Writer // log file, or stderr when no logs directory is set
	otel      *intOtel.Provider
	closers   []io.Closer
	zerologLv string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one simulation and returns the process exit code.
func run(args []string, stdout io.Writer) int {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	s := &session{
		runID: uuid.NewString(),
		start: time.Now(),
		slog:  logging.NewSlogManager(),
	}
	s.slog.Setup(nil, "info", nil, nil)
	s.logger = s.slog.Logger()
	defer s.close()

	if err := config.BindFlags(fs); err != nil {
		s.logger.Error("Failed to bind flags", "error", err)
		return exitError
	}

	configDir, _ := fs.GetString("config-dir")
	if err := config.Load(configDir); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			s.logger.Error("Failed to load config", "error", err)
			return exitError
		}
		s.logger.Warn("Failed to load config, using defaults!", "dir", configDir)
	} else {
		s.logger.Info("Loaded config", "file", viper.ConfigFileUsed())
	}

	s.setupLogging()

	basket, _ := fs.GetString("basket")
	return simulate(s, basket, stdout)
}

// setupLogging re-initializes logging with the configured level, the log
// file, Graylog and OTel. Sink failures are logged and the sink is skipped.
func (s *session) setupLogging() {
	level := config.GetString("logLevel")
	s.zerologLv = level
	s.logOut = os.Stderr

	var file io.Writer
	if logsDir := config.GetString("logsDir"); logsDir != "" {
		path := logging.LogFilePath(logsDir, appName, s.start)
		f, err := openLogFile(path)
		if err != nil {
			s.logger.Error("Failed to create/open log file!", "error", err, "path", path)
		} else {
			file = f
			s.logOut = f
			s.closers = append(s.closers, f)
			s.logger.Info("Begin logging in logs directory", "path", path)
		}
	}

	var extra []slog.Handler
	if gl := config.GetGraylogConfig(); gl.Enabled {
		h, closer, err := logging.NewGraylogHandler(gl.Address, level)
		if err != nil {
			s.logger.Error("Failed to initialize Graylog handler", "error", err)
		} else {
			extra = append(extra, h)
			s.closers = append(s.closers, closer)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if otelCfg := config.GetOTelConfig(); otelCfg.Enabled {
		provider, err := intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    file,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			s.logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			s.otel = provider
			otelLogProvider = provider.LoggerProvider()
		}
	}

	runID := s.runID
	s.slog.Setup(file, level, otelLogProvider, func() []slog.Attr {
		return []slog.Attr{slog.String("run_id", runID)}
	}, extra...)
	s.logger = s.slog.Logger()
	s.logger.Info("Starting up...", "version", Version)
}

// zerolog returns a zerolog logger writing next to the slog output.
func (s *session) zerolog(component string) zerolog.Logger {
	return logging.NewZerolog(s.logOut, s.zerologLv, component)
}

// close flushes telemetry and releases log sinks.
func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.otel != nil {
		if err := s.otel.Flush(ctx); err != nil {
			s.logger.Warn("Failed to flush OTel", "error", err)
		}
	}
	if err := s.slog.Flush(ctx); err != nil {
		s.logger.Warn("Failed to flush logs", "error", err)
	}
	if s.otel != nil {
		if err := s.otel.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shut down OTel: %v\n", err)
		}
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// keep the previous log of the same second
	if _, err := os.Stat(path); err == nil {
		_ = os.Rename(path, path+".old")
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
}
