package main

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bdougie/videoanalyzer/internal/config"
	"github.com/bdougie/videoanalyzer/internal/inference/gemini"
)

func newFakeGemini(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return newRecordingGemini(t, calls, nil)
}

func newRecordingGemini(t *testing.T, calls *atomic.Int64, paths chan<- string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if paths != nil {
			paths <- r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestAnalyzePrintsResponse(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	var calls atomic.Int64
	srv := newFakeGemini(t, &calls)

	videoPath := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(videoPath, make([]byte, 100), 0644); err != nil {
		t.Fatal(err)
	}

	tests := [][]string{
		{"analyze", "--video", videoPath, "--base-url", srv.URL, "--prompt", "describe"},
		{"analyze", videoPath, "--base-url", srv.URL, "--prompt", "describe"},
	}
	for _, args := range tests {
		out, err := runCmd(t, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if out != "ok\n" {
			t.Errorf("%v: expected output %q, got %q", args, "ok\n", out)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 remote calls, got %d", calls.Load())
	}
}

func TestAnalyzeFailures(t *testing.T) {
	var calls atomic.Int64
	srv := newFakeGemini(t, &calls)
	missing := filepath.Join(t.TempDir(), "missing.mp4")

	t.Setenv("GEMINI_API_KEY", "")
	if _, err := runCmd(t, "analyze", "--video", missing, "--base-url", srv.URL); !errors.Is(err, gemini.ErrMissingAPIKey) {
		t.Errorf("expected error (%v), got error (%v)", gemini.ErrMissingAPIKey, err)
	}

	t.Setenv("GEMINI_API_KEY", "test-key")
	if _, err := runCmd(t, "analyze", "--base-url", srv.URL); !errors.Is(err, config.ErrMissingVideoPath) {
		t.Errorf("expected error (%v), got error (%v)", config.ErrMissingVideoPath, err)
	}
	if _, err := runCmd(t, "analyze", "--video", missing, "--base-url", srv.URL); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected error (%v), got error (%v)", fs.ErrNotExist, err)
	}

	if calls.Load() != 0 {
		t.Errorf("expected no remote calls, got %d", calls.Load())
	}
}

func TestAnalyzeFlagsReachConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	var calls atomic.Int64
	paths := make(chan string, 1)
	srv := newRecordingGemini(t, &calls, paths)

	videoPath := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(videoPath, make([]byte, 100), 0644); err != nil {
		t.Fatal(err)
	}
	promptPath := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(promptPath, []byte("describe"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "analyze", "--video", videoPath, "--base-url", srv.URL,
		"--model", "custom-model", "--prompt-file", promptPath, "--workers", "1", "--log-level", "debug")
	if err != nil {
		t.Fatal(err)
	}
	if out != "ok\n" {
		t.Errorf("expected output %q, got %q", "ok\n", out)
	}
	if path := <-paths; !strings.HasSuffix(path, "/models/custom-model:generateContent") {
		t.Errorf("expected the --model flag in the request path, got %q", path)
	}
}
