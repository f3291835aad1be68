// internal/api/client_test.go
package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCAP2/hoopshot/pkg/core"
)

func TestNew(t *testing.T) {
	c := New("http://localhost:5000", "secret123")

	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.baseURL != "http://localhost:5000" {
		t.Errorf("expected baseURL=http://localhost:5000, got %s", c.baseURL)
	}
	if c.apiKey != "secret123" {
		t.Errorf("expected apiKey=secret123, got %s", c.apiKey)
	}
	if c.httpClient == nil {
		t.Error("httpClient is nil")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:5000/", "secret")
	if c.baseURL != "http://localhost:5000" {
		t.Errorf("expected trailing slash trimmed, got %s", c.baseURL)
	}
}

func TestHealthcheck_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthcheck" {
			t.Errorf("expected path /healthcheck, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, "")
	if err := c.Healthcheck(); err != nil {
		t.Errorf("Healthcheck failed: %v", err)
	}
}

func TestHealthcheck_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := New(url, "")
	if err := c.Healthcheck(); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestHealthcheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, "")
	if err := c.Healthcheck(); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestUpload_Success(t *testing.T) {
	var received map[string]string
	var receivedFileContent []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/runs/add" {
			t.Errorf("expected path /api/v1/runs/add, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		received = map[string]string{}
		for _, key := range []string{"secret", "filename", "runId", "venueName", "entered", "duration", "numSamples"} {
			received[key] = r.FormValue(key)
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("failed to get file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		receivedFileContent, _ = io.ReadAll(file)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	testFile := filepath.Join(t.TempDir(), "run_20260301_120000_abc.json.gz")
	if err := os.WriteFile(testFile, []byte("test content"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	c := New(server.URL, "mysecret")
	meta := core.UploadMetadata{
		RunID:      "abc",
		VenueName:  "Court 1",
		Entered:    true,
		Duration:   3,
		NumSamples: 38,
	}

	if err := c.Upload(testFile, meta); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	expected := map[string]string{
		"secret":     "mysecret",
		"filename":   "run_20260301_120000_abc.json.gz",
		"runId":      "abc",
		"venueName":  "Court 1",
		"entered":    "true",
		"duration":   "3.000000",
		"numSamples": "38",
	}
	for key, want := range expected {
		if received[key] != want {
			t.Errorf("expected %s=%s, got %s", key, want, received[key])
		}
	}
	if string(receivedFileContent) != "test content" {
		t.Errorf("expected file content 'test content', got '%s'", string(receivedFileContent))
	}
}

func TestUpload_FileNotFound(t *testing.T) {
	c := New("http://localhost:5000", "secret")
	if err := c.Upload("/nonexistent/file.json.gz", core.UploadMetadata{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUpload_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	testFile := filepath.Join(t.TempDir(), "run.json")
	if err := os.WriteFile(testFile, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	c := New(server.URL, "wrong-secret")
	if err := c.Upload(testFile, core.UploadMetadata{}); err == nil {
		t.Error("expected error for 403 response")
	}
}
