package inputs

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
)

// fileInput reads fields from a local YAML index instead of a remote
// service. The owner's requests play no role; level-type selection
// happens over the already loaded set.
type fileInput struct {
	owner Owner
	file  string

	once   sync.Once
	fields Fields
	err    error
}

func newFile(owner Owner, c *config) Input {
	return &fileInput{owner: owner, file: c.file}
}

func (fi *fileInput) AllFields(ctx context.Context) (Fields, error) {
	fi.once.Do(func() {
		d, err := os.ReadFile(fi.file)
		if err != nil {
			fi.err = err
			return
		}
		if err := yaml.Unmarshal(d, &fi.fields); err != nil {
			fi.err = fmt.Errorf("index %s: %w", fi.file, err)
		}
	})
	return fi.fields, fi.err
}

func (fi *fileInput) sel(ctx context.Context, levtype string) (Fields, error) {
	all, err := fi.AllFields(ctx)
	if err != nil {
		return nil, err
	}
	return all.Sel(levtype), nil
}

func (fi *fileInput) SurfaceFields(ctx context.Context) (Fields, error) {
	return fi.sel(ctx, "sfc")
}

func (fi *fileInput) PressureFields(ctx context.Context) (Fields, error) {
	return fi.sel(ctx, "pl")
}

func (fi *fileInput) ModelLevelFields(ctx context.Context) (Fields, error) {
	return fi.sel(ctx, "ml")
}
