package xsdschema

import (
	"bytes"
	"context"
	"io/fs"
	"net/url"
	"path"
	"time"

	"hotels_xml/internal/domain"
)

// remoteFS exposes the documents reachable from base as a read-only fs.FS.
// Each Open is one Fetch. rootName maps to root unchanged, query included.
type remoteFS struct {
	ctx      context.Context
	docs     domain.Fetcher
	base     *url.URL
	root     string
	rootName string
}

func (f *remoteFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	location := f.resolve(name)
	if f.root != "" && name == f.rootName {
		location = f.root
	}
	b, err := f.docs.Fetch(f.ctx, location)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &memFile{Reader: bytes.NewReader(b), name: path.Base(name)}, nil
}

func (f *remoteFS) resolve(name string) string {
	// URL resolution would root a relative local path
	if f.base.Scheme == "" {
		return path.Join(f.base.Path, name)
	}
	return f.base.ResolveReference(&url.URL{Path: name}).String()
}

type memFile struct {
	*bytes.Reader
	name string
}

func (m *memFile) Stat() (fs.FileInfo, error) { return m, nil }
func (m *memFile) Close() error               { return nil }

// fs.FileInfo; Size comes from the embedded reader.
func (m *memFile) Name() string       { return m.name }
func (m *memFile) Mode() fs.FileMode  { return 0o444 }
func (m *memFile) ModTime() time.Time { return time.Time{} }
func (m *memFile) IsDir() bool        { return false }
func (m *memFile) Sys() any           { return nil }
