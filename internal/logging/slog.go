package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// instrumentationName names the otelslog bridge scope.
const instrumentationName = "hoopshot"

// consoleOut receives the console handler output. Stdout carries the report,
// so logs go to stderr.
var consoleOut io.Writer = os.Stderr

// SlogManager manages slog-based logging with optional OTel integration.
type SlogManager struct {
	logger *slog.Logger

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
}

// Setup initializes the logging system. Records go to file when it is set
// and to the console otherwise. If provider is nil, OTel logging is disabled.
// Extra handlers, such as the Graylog one, receive every record as well.
// runContext, when set, is called for every record to attach run attributes.
func (m *SlogManager) Setup(file io.Writer, level string, provider *sdklog.LoggerProvider, runContext ContextProvider, extra ...slog.Handler) {
	lvl := parseLevel(level)
	m.logProvider = provider

	handlerOpts := handlerOptions(lvl)

	var handlers []slog.Handler

	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(consoleOut, handlerOpts))
	}

	if provider != nil {
		otelHandler := otelslog.NewHandler(instrumentationName, otelslog.WithLoggerProvider(provider))
		handlers = append(handlers, otelHandler)
	}

	handlers = append(handlers, extra...)

	var handler slog.Handler = NewMultiHandler(handlers...)
	if runContext != nil {
		handler = NewContextHandler(handler, runContext)
	}

	m.logger = slog.New(handler)
	m.logger.Debug("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

// WriteLog writes a log entry for the named component at the given level.
func (m *SlogManager) WriteLog(component, data, level string) {
	if m.logger == nil {
		return
	}

	lvl := parseLevel(level)

	switch lvl {
	case slog.LevelDebug:
		m.logger.Debug(data, "component", component)
	case slog.LevelInfo:
		m.logger.Info(data, "component", component)
	case slog.LevelWarn:
		m.logger.Warn(data, "component", component)
	case slog.LevelError:
		m.logger.Error(data, "component", component)
	default:
		m.logger.Info(data, "component", component)
	}
}
