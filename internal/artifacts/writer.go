// Package artifacts writes the JSON outputs of aggchain-tool runs.
package artifacts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/ulid"
)

// ManifestFile is the name of the run manifest inside the output directory.
const ManifestFile = "manifest.json"

// Artifact file names.
const (
	SelectorFile        = "selector.json"
	ParamsHashFile      = "params-hash.json"
	AggchainHashFile    = "aggchain-hash.json"
	InitBytesFile       = "init-bytes.json"
	TimelockStorageFile = "timelock-storage.json"
	GenesisFile         = "genesis.json"
)

// Manifest records every file written during one run.
type Manifest struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Command   string    `json:"command"`
	Files     []string  `json:"files"`
}

// Writer writes indented JSON files into a single output directory.
type Writer struct {
	logger *slog.Logger
	dir    string

	mu       sync.Mutex
	manifest Manifest
}

// NewWriter creates dir if needed and starts a new run manifest for command.
func NewWriter(logger *slog.Logger, dir, command string) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	now := time.Now().UTC()
	return &Writer{
		logger: logger,
		dir:    dir,
		manifest: Manifest{
			RunID:     ulid.NewRunID(now),
			CreatedAt: now,
			Command:   command,
			Files:     []string{},
		},
	}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// RunID returns the identifier of this run.
func (w *Writer) RunID() string { return w.manifest.RunID }

// WriteJSON marshals v with two-space indentation into name and records it in the manifest.
func (w *Writer) WriteJSON(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	path, err := w.write(name, data)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	w.manifest.Files = append(w.manifest.Files, name)
	w.mu.Unlock()

	w.logger.Info(name+" written", slog.String("path", path), slog.String("run_id", w.manifest.RunID))
	return path, nil
}

// Close writes the manifest. The Writer must not be used afterwards.
func (w *Writer) Close() error {
	w.mu.Lock()
	data, err := json.MarshalIndent(w.manifest, "", "  ")
	w.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	path, err := w.write(ManifestFile, data)
	if err != nil {
		return err
	}
	w.logger.Info(ManifestFile+" written", slog.String("path", path))
	return nil
}

func (w *Writer) write(name string, data []byte) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("write file %s: %w", path, err)
	}
	return path, nil
}

// ReadManifest loads the manifest from dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
