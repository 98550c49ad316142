// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/sprockets/sprockets/internal/cueutil"
	"github.com/sprockets/sprockets/internal/issue"
)

//go:embed manifest_schema.cue
var manifestSchema []byte

type (
	// Manifest lists the entry points a distribution installs.
	Manifest struct {
		Distribution string                       `json:"distribution" toml:"distribution"`
		EntryPoints  map[string]map[string]string `json:"entry_points,omitempty" toml:"entry_points"`
	}

	// FileIndex reads manifests (*.cue and *.toml) from a list of directories.
	// Directories are read in order, files within a directory by name, and
	// entries within a manifest group by name. Missing directories are skipped.
	FileIndex struct {
		Dirs []string
		// ReadFile defaults to os.ReadFile.
		ReadFile func(name string) ([]byte, error)
	}
)

// ParseManifest decodes a manifest. The format is chosen by the file extension
// of name (".cue" or ".toml").
func ParseManifest(name string, data []byte) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch filepath.Ext(name) {
	case ".cue":
		m, err = cueutil.Decode[Manifest](manifestSchema, data, "#Manifest", cueutil.WithFilename(name))
	case ".toml":
		m = &Manifest{}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err = dec.Decode(m); err != nil {
			err = fmt.Errorf("%s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported manifest format", name)
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Validate checks the fields the CUE schema also enforces, so TOML manifests
// get the same guarantees.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Distribution) == "" {
		return errors.New("distribution must not be empty")
	}
	for group, entries := range m.EntryPoints {
		if group == "" {
			return errors.New("entry point group must not be empty")
		}
		for name, module := range entries {
			if name == "" || strings.ContainsFunc(name, isSpace) {
				return fmt.Errorf("entry point %q in group %s: invalid name", name, group)
			}
			if module == "" || strings.ContainsFunc(module, isSpace) {
				return fmt.Errorf("entry point %s in group %s: invalid module %q", name, group, module)
			}
		}
	}
	return nil
}

// Entries returns the entry points of group sorted by name.
func (m *Manifest) Entries(group string) []EntryPoint {
	entries := m.EntryPoints[group]
	out := make([]EntryPoint, 0, len(entries))
	for _, name := range slices.Sorted(maps.Keys(entries)) {
		out = append(out, EntryPoint{Group: group, Name: name, Module: entries[name]})
	}
	return out
}

// EntryPoints implements Index. A manifest that cannot be read or parsed
// yields one error and enumeration moves on to the next file.
func (f FileIndex) EntryPoints(ctx context.Context, group string) iter.Seq2[EntryPoint, error] {
	readFile := f.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	return func(yield func(EntryPoint, error) bool) {
		for _, dir := range f.Dirs {
			files, err := manifestFiles(dir)
			if err != nil {
				if !yield(EntryPoint{}, issue.WrapWithContext(err, "read index directory", dir)) {
					return
				}
				continue
			}

			for _, path := range files {
				if ctx.Err() != nil {
					yield(EntryPoint{}, ctx.Err())
					return
				}

				m, err := loadManifest(readFile, path)
				if err != nil {
					if !yield(EntryPoint{}, err) {
						return
					}
					continue
				}
				for _, ep := range m.Entries(group) {
					if !yield(ep, nil) {
						return
					}
				}
			}
		}
	}
}

func loadManifest(readFile func(string) ([]byte, error), path string) (*Manifest, error) {
	data, err := readFile(path)
	if err == nil {
		err = cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path)
	}
	if err != nil {
		return nil, issue.WrapWithContext(err, "read plugin manifest", path)
	}

	m, err := ParseManifest(path, data)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse plugin manifest").
			WithResource(path).
			WithSuggestion("Reinstall the package that provides this manifest").
			Wrap(err).
			BuildError()
	}
	return m, nil
}

// manifestFiles lists *.cue and *.toml files in dir by name.
// A missing directory is not an error.
func manifestFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".cue", ".toml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
