// Package genres manages the user's genre list and its XML file.
package genres

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/mesh-intelligence/shelf/internal/logger"
)

// Registry errors.
var (
	ErrMalformed = errors.New("malformed genre file")
	ErrEmptyName = errors.New("genre name must not be empty")
	ErrDuplicate = errors.New("genre already exists")
)

// document is the on-disk shape: <genres><genre>Name</genre>...</genres>.
type document struct {
	XMLName xml.Name `xml:"genres"`
	Genres  []string `xml:"genre"`
}

// Registry loads and saves the genre list at Path.
type Registry struct {
	Path string
}

// NewRegistry returns a registry for the genre file at path.
func NewRegistry(path string) *Registry {
	return &Registry{Path: path}
}

// Load returns the saved genres in file order. A missing file yields an
// empty list. A file that is not a genre document returns an error wrapping
// ErrMalformed.
func (r *Registry) Load() ([]string, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", r.Path, err)
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, r.Path, err)
	}
	if doc.Genres == nil {
		doc.Genres = []string{}
	}
	logger.Debug("loaded genres", "path", r.Path, "count", len(doc.Genres))
	return doc.Genres, nil
}

// Save replaces the genre file with list, in order. The write is atomic; the
// list is stored as given.
func (r *Registry) Save(list []string) error {
	data, err := xml.MarshalIndent(document{Genres: list}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding genres: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(data)
	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil {
		return fmt.Errorf("creating genre dir: %w", err)
	}
	if err := atomic.WriteFile(r.Path, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", r.Path, err)
	}
	logger.Debug("saved genres", "path", r.Path, "count", len(list))
	return nil
}

// Exists reports whether the genre file is present.
func (r *Registry) Exists() bool {
	_, err := os.Stat(r.Path)
	return err == nil
}
