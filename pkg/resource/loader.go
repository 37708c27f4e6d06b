// Package resource loads inline image resources by path and caches them for
// the lifetime of a host.
package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"
	"path"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

var (
	// ErrNotFound is returned when no file matches a resource path.
	ErrNotFound = errors.New("resource not found")

	// ErrUnsupportedFormat is returned when a file is not a decodable image.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Loader loads the image behind a resource path.
type Loader interface {
	Load(path string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (image.Image, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (image.Image, error) {
	return f(path)
}

// DefaultExtensions are the file extensions tried, in order, for a resource
// path that names no existing file.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// FSLoader resolves resource paths against a file system. Paths are
// extensionless by convention: "icons/star" finds "icons/star.png".
type FSLoader struct {
	FS         fs.FS
	Extensions []string
}

// NewFSLoader returns a loader over fsys trying DefaultExtensions.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{FS: fsys, Extensions: DefaultExtensions}
}

// Load finds, sniffs and decodes the resource at name.
func (l *FSLoader) Load(name string) (image.Image, error) {
	file, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.FS, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !strings.HasPrefix(kind.MIME.Value, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, file)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s (%s): %w", ErrUnsupportedFormat, file, kind.Extension, err)
	}

	return img, nil
}

// resolve maps a resource path to an existing file name in the file system.
func (l *FSLoader) resolve(name string) (string, error) {
	name = strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "/")
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("%w: invalid path %q", ErrNotFound, name)
	}

	if path.Ext(name) != "" && isFile(l.FS, name) {
		return name, nil
	}

	for _, ext := range l.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if candidate := name + ext; isFile(l.FS, candidate) {
			return candidate, nil
		}
	}

	if isFile(l.FS, name) {
		return name, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func isFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
