package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdrpinto/gridastar/gridfile"
	"github.com/pdrpinto/gridastar/render"
)

const (
	instructorJSON = "../../gridfile/testdata/instructor.json"
	instructorTOML = "../../gridfile/testdata/instructor.toml"
	enclosedJSON   = "../../gridfile/testdata/enclosed.json"
)

var discard = slog.New(slog.DiscardHandler)

func defaultConfig() config {
	return config{format: "text", cellSize: 4, workers: 2}
}

func TestRunText(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run(context.Background(), discard, defaultConfig(), []string{instructorJSON}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 18 {
		t.Fatalf("run() printed %d lines, want 18:\n%s", len(lines), out.String())
	}
	if lines[0] != "x=3, y=2" || lines[17] != "x=0, y=0" {
		t.Fatalf("first/last lines = %q/%q", lines[0], lines[17])
	}
}

func TestRunMultipleFilesKeepsOrder(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	files := []string{enclosedJSON, instructorTOML, instructorJSON}
	err := run(context.Background(), discard, defaultConfig(), files, &out)
	if !errors.Is(err, errUnreachable) {
		t.Fatalf("run() error = %v, want %v", err, errUnreachable)
	}

	got := out.String()
	first := strings.Index(got, "== "+enclosedJSON)
	second := strings.Index(got, "== "+instructorTOML)
	third := strings.Index(got, "== "+instructorJSON)
	if first < 0 || second < first || third < second {
		t.Fatalf("headers out of order:\n%s", got)
	}
	if !strings.Contains(got, "no path: no path found") {
		t.Fatalf("missing no-path line:\n%s", got)
	}
}

func TestRunMap(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.format = "map"
	var out bytes.Buffer
	if err := run(context.Background(), discard, cfg, []string{instructorJSON}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("map has %d rows, want 10", len(lines))
	}
	// Bottom row is y=0: start, obstacle, then free cells.
	if lines[9] != "S#........" {
		t.Fatalf("bottom row = %q", lines[9])
	}
	if lines[7] != "*#.E***..." {
		t.Fatalf("row y=2 = %q", lines[7])
	}
}

func TestRunJSON(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.format = "json"
	var out bytes.Buffer
	if err := run(context.Background(), discard, cfg, []string{instructorJSON}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var got render.Report
	if err := json.NewDecoder(&out).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Found || got.Length != 17 || got.Name != instructorJSON {
		t.Fatalf("report = %+v", got)
	}
}

func TestRunPNG(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.pngDir = filepath.Join(t.TempDir(), "out")
	if err := run(context.Background(), discard, cfg, []string{instructorJSON}, io.Discard); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	info, err := os.Stat(filepath.Join(cfg.pngDir, "instructor.png"))
	if err != nil {
		t.Fatalf("stat png: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("png is empty")
	}
}

func TestRunStrict(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blocked.json")
	content := `{"dimension": 3, "start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 1}, "obstacles": [{"x": 1, "y": 1}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := defaultConfig()
	if err := run(context.Background(), discard, cfg, []string{path}, io.Discard); !errors.Is(err, errUnreachable) {
		t.Fatalf("run() error = %v, want %v", err, errUnreachable)
	}

	cfg.strict = true
	if err := run(context.Background(), discard, cfg, []string{path}, io.Discard); !errors.Is(err, gridfile.ErrInvalid) {
		t.Fatalf("run() strict error = %v, want %v", err, gridfile.ErrInvalid)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     func(config) config
		files   []string
		wantErr error
	}{
		{
			name:  "no files",
			cfg:   func(c config) config { return c },
			files: nil,
		},
		{
			name:  "unknown format",
			cfg:   func(c config) config { c.format = "xml"; return c },
			files: []string{instructorJSON},
		},
		{
			name:    "missing file",
			cfg:     func(c config) config { return c },
			files:   []string{instructorJSON, "does-not-exist.json"},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "expansion limit",
			cfg:     func(c config) config { c.maxExpansions = 2; return c },
			files:   []string{instructorJSON},
			wantErr: errUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), discard, tt.cfg(defaultConfig()), tt.files, io.Discard)
			if err == nil {
				t.Fatal("run() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
