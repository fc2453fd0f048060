package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed report.yaml
var reportYAML []byte

// ErrUnsupportedFormat is returned for manifest files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Loader decodes a manifest from raw bytes.
type Loader interface {
	Load(r io.Reader, filename string) (*Manifest, error)
}

// SupportedExtensions lists file extensions a manifest can be authored in.
var SupportedExtensions = map[string]bool{
	".yaml":     true,
	".yml":      true,
	".json":     true,
	".md":       true,
	".markdown": true,
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml":
		return &YAMLLoader{}, nil
	case ".json":
		return &JSONLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Load decodes a manifest using the loader matching filename.
func Load(r io.Reader, filename string) (*Manifest, error) {
	l, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	return l.Load(r, filename)
}

// LoadFile reads and decodes the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Load(f, filepath.Base(path))
}

// Default returns the report manifest compiled into the binary.
func Default() (*Manifest, error) {
	return Load(bytes.NewReader(reportYAML), "report.yaml")
}

// YAMLLoader decodes YAML manifests. Unknown keys are rejected so that a
// misspelled variant does not silently drop content.
type YAMLLoader struct{}

func (l *YAMLLoader) Load(r io.Reader, filename string) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("decode yaml manifest %s: %w", filename, err)
	}
	return &m, nil
}

// JSONLoader decodes JSON manifests, the same shape /manifest.json serves.
type JSONLoader struct{}

func (l *JSONLoader) Load(r io.Reader, filename string) (*Manifest, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("decode json manifest %s: %w", filename, err)
	}
	return &m, nil
}
