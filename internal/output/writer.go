// Package output persists generated profiles: one pretty-printed JSON
// file per profile, or a single lz4-compressed bundle for large batches.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/pierrec/lz4/v4"

	"phantomid/internal/profile"
)

const (
	profileFilePattern = "fake_profile_*.json"
	bundleFilename     = "profiles.json.lz4"
)

// Writer writes profiles into one output directory. Force-clearing only
// removes files matching the owned globs, so regenerating into a shared
// fixtures directory cannot destroy unrelated files.
type Writer struct {
	dir   string
	globs []string
}

// NewWriter returns a Writer for dir. extraGlobs extend the set of file
// patterns the writer considers its own when clearing.
func NewWriter(dir string, extraGlobs ...string) *Writer {
	globs := []string{profileFilePattern, bundleFilename}
	for _, g := range extraGlobs {
		g = strings.TrimSpace(g)
		if g != "" {
			globs = append(globs, g)
		}
	}
	return &Writer{dir: dir, globs: globs}
}

// Dir reports the output directory.
func (w *Writer) Dir() string { return w.dir }

// Prepare creates the output directory if needed. With force set, files
// from previous runs (matching the owned globs) are removed first.
func (w *Writer) Prepare(force bool) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}
	if !force {
		return nil
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory %s: %w", w.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !w.owns(entry.Name()) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to clear %s: %w", path, err)
		}
	}
	return nil
}

func (w *Writer) owns(name string) bool {
	unix := strings.ReplaceAll(name, "\\", "/")
	for _, pat := range w.globs {
		if ok, err := doublestar.Match(pat, unix); err == nil && ok {
			return true
		}
	}
	return false
}

// WriteProfiles writes one numbered JSON file per profile and returns the
// paths written, in profile order.
func (w *Writer) WriteProfiles(profiles []*profile.Profile) ([]string, error) {
	paths := make([]string, 0, len(profiles))
	for i, p := range profiles {
		data, err := json.MarshalIndent(p, "", "    ")
		if err != nil {
			return paths, fmt.Errorf("failed to encode profile %d: %w", i+1, err)
		}
		path := filepath.Join(w.dir, fmt.Sprintf("fake_profile_%d.json", i+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteBundle writes every profile into a single lz4-compressed JSON
// array and returns the bundle path.
func (w *Writer) WriteBundle(profiles []*profile.Profile) (string, error) {
	data, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode profile bundle: %w", err)
	}

	path := filepath.Join(w.dir, bundleFilename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	zw := lz4.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to compress bundle: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to finalize bundle: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}
