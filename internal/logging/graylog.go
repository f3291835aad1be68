package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGraylogHandler returns a handler that ships records to a GELF UDP
// endpoint, and the closer releasing its socket.
func NewGraylogHandler(address, level string) (slog.Handler, io.Closer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create graylog writer: %w", err)
	}
	return NewGELFHandler(w, level), w, nil
}

// NewGELFHandler formats records as text lines for a GELF writer. The writer
// turns the first line of every record into the short message.
func NewGELFHandler(w io.Writer, level string) slog.Handler {
	return slog.NewTextHandler(w, handlerOptions(parseLevel(level)))
}
