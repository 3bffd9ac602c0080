package reporter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jiangege/servercli/internal/sigma"
)

// Writer saves scan evidence to disk: the results JSON plus a hash manifest so
// an operator can prove the evidence was not altered after collection.
type Writer struct {
	outputDir string
	hashes    []FileHash
}

// FileHash records the SHA-256 hash of a saved evidence file.
type FileHash struct {
	File   string `json:"file"`
	SHA256 string `json:"sha256"`
	Size   int    `json:"size"`
}

// ScanReport is the evidence document written for one scan run.
type ScanReport struct {
	Hostname    string        `json:"hostname"`
	GeneratedAt time.Time     `json:"generated_at"`
	Window      string        `json:"window"`
	Entries     []Entry       `json:"entries"`
	Matches     []sigma.Match `json:"sigma_matches,omitempty"`
}

// Manifest records all evidence file hashes for integrity verification.
type Manifest struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Hostname    string     `json:"hostname"`
	Files       []FileHash `json:"files"`
}

// NewWriter creates a Writer for the given output directory.
func NewWriter(outputDir string) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{outputDir: outputDir}, nil
}

// OutputDir returns the output directory path.
func (w *Writer) OutputDir() string {
	return w.outputDir
}

// SaveScan writes the scan report to scan_results.json and records its hash.
func (w *Writer) SaveScan(report ScanReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scan report: %w", err)
	}
	const filename = "scan_results.json"
	path := filepath.Join(w.outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.hashes = append(w.hashes, FileHash{
		File:   filename,
		SHA256: sha256Hex(data),
		Size:   len(data),
	})
	return nil
}

// SaveManifest writes the hash manifest to manifest.json.
func (w *Writer) SaveManifest(hostname string) error {
	manifest := Manifest{
		GeneratedAt: time.Now().UTC(),
		Hostname:    hostname,
		Files:       append([]FileHash{}, w.hashes...),
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(w.outputDir, "manifest.json")
	return os.WriteFile(path, data, 0644)
}

// GenerateOutputDir creates a timestamped output directory path under baseDir.
func GenerateOutputDir(baseDir string) string {
	ts := time.Now().Format("2006-01-02T15-04-05")
	return filepath.Join(baseDir, ts)
}

// sha256Hex computes the SHA-256 hex digest of data.
func sha256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
