// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	v1 "github.com/OCAP2/hoopshot/internal/storage/memory/export/v1"
	"github.com/OCAP2/hoopshot/pkg/core"
)

// exportFilename names the export after the run start and ID
func (b *Backend) exportFilename(run *core.Run) string {
	timestamp := run.StartTime.UTC().Format("20060102_150405")
	if b.cfg.CompressOutput {
		return fmt.Sprintf("run_%s_%s.json.gz", timestamp, run.ID)
	}
	return fmt.Sprintf("run_%s_%s.json", timestamp, run.ID)
}

// exportJSON writes the run to a JSON file, gzipped if configured
func (b *Backend) exportJSON(run *core.Run) error {
	export := v1.Build(run)

	outputPath := filepath.Join(b.cfg.OutputDir, b.exportFilename(run))

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Write file
	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func writeJSON(path string, data v1.Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return f.Close()
}

func writeGzipJSON(path string, data v1.Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	gzWriter := gzip.NewWriter(f)
	if err := json.NewEncoder(gzWriter).Encode(data); err != nil {
		gzWriter.Close()
		f.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return f.Close()
}
