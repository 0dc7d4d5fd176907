package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"MarketBreadth/internal/model"
)

// JSONRecorder writes the document as a single UTF-8 JSON file, replacing
// any previous file at Path.
type JSONRecorder struct {
	Path string
}

func NewJSONRecorder(path string) *JSONRecorder { return &JSONRecorder{Path: path} }

func (r *JSONRecorder) Name() string { return "json" }

// Record writes doc to a temporary file next to Path and renames it into
// place, so a failed write never leaves a truncated file behind.
func (r *JSONRecorder) Record(doc *model.ExportDocument) error {
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("replace %s: %w", r.Path, err)
	}
	return nil
}
