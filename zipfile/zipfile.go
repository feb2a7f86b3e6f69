// Package zipfile opens checkpoint containers: read-only zip archives of
// named byte-stream entries.
package zipfile

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrArchive indicates the container is missing, unreadable, or not
	// a valid archive.
	ErrArchive = errors.New("archive error")

	// ErrEntryNotFound indicates a named entry is absent from the
	// container.
	ErrEntryNotFound = errors.New("entry not found")
)

// Container is an open, read-only checkpoint archive.
type Container struct {
	path string
	rc   *zip.ReadCloser
}

// Open opens the archive at path.
func Open(path string) (*Container, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArchive, path, err)
	}
	return &Container{path: path, rc: rc}, nil
}

// Entry returns the full contents of the named entry.
func (c *Container) Entry(name string) ([]byte, error) {
	for _, f := range c.rc.File {
		if f.Name != name {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, name, err)
		}
		defer r.Close()
		d, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, name, err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrEntryNotFound, name, c.path)
}

// Names returns the entry names in archive order.
func (c *Container) Names() []string {
	res := make([]string, len(c.rc.File))
	for i, f := range c.rc.File {
		res[i] = f.Name
	}
	return res
}

func (c *Container) Close() error {
	return c.rc.Close()
}
