/*
Package store persists analyzed token streams next to the documents that use
them.

Layout:
------

	build/
	├── listing.json        <- Stream as JSON   {"txt": ..., "tokens": [...]}
	├── listing.msgpack     <- Stream as msgpack, same field names
	├── listing.tex         <- rendered output, removed by ClearCache
	└── .cache/             <- analyzer scratch space, removed by ClearCache

Writes go to a uniquely named sibling first and are renamed into place, so a
reader never sees a half-written file.
*/
package store

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/semtok"
)

var ErrUnknownFormat = errors.Base("unknown stream file format")

// Format is an on-disk encoding of a [semtok.Stream].
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// FormatFor picks the format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	}
	return 0, errors.Errorf("%q: %w", path, ErrUnknownFormat)
}

// Store reads and writes streams on an afero filesystem.
type Store struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// Fs is the underlying filesystem.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Marshal encodes stream in format.
func Marshal(format Format, stream semtok.Stream) ([]byte, error) {
	if stream.Tokens == nil {
		stream.Tokens = []semtok.Token{}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(stream, "", "\t")
		if err != nil {
			return nil, errors.Errorf("encoding JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatMsgpack:
		data, err := msgpack.Marshal(stream)
		if err != nil {
			return nil, errors.Errorf("encoding msgpack: %w", err)
		}
		return data, nil
	}
	return nil, errors.Errorf("format %d: %w", format, ErrUnknownFormat)
}

// Unmarshal decodes data in format and canonicalizes the result.
func Unmarshal(format Format, data []byte) (semtok.Stream, error) {
	var stream semtok.Stream
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &stream); err != nil {
			return semtok.Stream{}, errors.Errorf("decoding JSON: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &stream); err != nil {
			return semtok.Stream{}, errors.Errorf("decoding msgpack: %w", err)
		}
	default:
		return semtok.Stream{}, errors.Errorf("format %d: %w", format, ErrUnknownFormat)
	}
	return stream.Canonical(), nil
}

// Load reads the stream stored at path.
func (s *Store) Load(path string) (semtok.Stream, error) {
	format, err := FormatFor(path)
	if err != nil {
		return semtok.Stream{}, err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return semtok.Stream{}, errors.Errorf("reading %s: %w", path, err)
	}
	stream, err := Unmarshal(format, data)
	if err != nil {
		return semtok.Stream{}, errors.Errorf("loading %s: %w", path, err)
	}
	return stream, nil
}

// Save writes stream to path, creating parent directories as needed.
func (s *Store) Save(path string, stream semtok.Stream) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(format, stream)
	if err != nil {
		return errors.Errorf("saving %s: %w", path, err)
	}
	return s.WriteFile(path, data)
}

// WriteFile atomically replaces path with data.
func (s *Store) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return errors.Errorf("writing temporary file: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Errorf("moving %s into place: %w", path, err)
	}
	return nil
}

// Fresh returns the stream stored at path when it was computed for exactly
// text. A missing file is not an error.
func (s *Store) Fresh(path, text string) (semtok.Stream, bool, error) {
	stream, err := s.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return semtok.Stream{}, false, nil
		}
		return semtok.Stream{}, false, err
	}
	if stream.Text != text {
		return semtok.Stream{}, false, nil
	}
	return stream, true, nil
}

// ClearCache removes every .tex file directly inside dir and the .cache
// directory below it. All failures are reported together.
func (s *Store) ClearCache(dir string) error {
	var result *multierror.Error

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, os.ErrNotExist) {
		return errors.Errorf("listing %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".tex" {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := s.fs.Remove(p); err != nil {
			result = multierror.Append(result, errors.Errorf("removing %s: %w", p, err))
		}
	}

	cache := filepath.Join(dir, ".cache")
	if err := s.fs.RemoveAll(cache); err != nil {
		result = multierror.Append(result, errors.Errorf("removing %s: %w", cache, err))
	}

	return result.ErrorOrNil()
}

// Glob expands a doublestar pattern ("src/**/*.py") relative to the root of
// the store's filesystem. Matches are sorted.
func (s *Store) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.Glob(afero.NewIOFS(s.fs), filepath.ToSlash(pattern))
	if err != nil {
		return nil, errors.Errorf("expanding %q: %w", pattern, err)
	}
	slices.Sort(matches)
	return matches, nil
}
