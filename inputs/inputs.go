// Package inputs fetches the initial condition fields a checkpointed
// model runs from.
//
// An Owner describes what it needs (parameters, levels, grid, area,
// dates); an Input knows where to get it. Remote inputs build one
// retrieval request per datetime and hand each to a LoadFunc, so the
// actual transport stays injectable.
package inputs

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownInput = errors.New("unknown input")
	ErrNoLoader     = errors.New("no loader configured")
)

// Request is the keyword set of a single retrieval.
type Request map[string]any

// Clone returns a shallow copy of r.
func (r Request) Clone() Request {
	res := make(Request, len(r))
	for k, v := range r {
		res[k] = v
	}
	return res
}

// Datetime is one analysis date/time an owner wants fields for.
type Datetime struct {
	Date string
	Time string
}

// Owner describes the fields a model consumes.
type Owner interface {
	// ParamSfc lists the surface parameters, empty for none.
	ParamSfc() []string

	// ParamLevelPl lists the pressure-level parameters and levels.
	ParamLevelPl() ([]string, []int)

	// ParamLevelMl lists the model-level parameters and levels.
	ParamLevelMl() ([]string, []int)

	Grid() []float64
	Area() []float64
	Datetimes() []Datetime

	// Retrieve supplies extra request keywords for surface
	// retrievals.
	Retrieve() Request

	// PatchRequest lets the owner adjust every outgoing request.
	PatchRequest(Request)
}

// Field is one retrieved field, identified structurally.
type Field struct {
	Param   string `yaml:"param" json:"param"`
	Level   int    `yaml:"level,omitempty" json:"level,omitempty"`
	Levtype string `yaml:"levtype" json:"levtype"`
	Date    string `yaml:"date" json:"date"`
	Time    string `yaml:"time" json:"time"`
}

type Fields []Field

// Sel filters fields by level type.
func (fs Fields) Sel(levtype string) Fields {
	res := Fields{}
	for _, f := range fs {
		if f.Levtype == levtype {
			res = append(res, f)
		}
	}
	return res
}

// Input yields the fields an owner asked for.
type Input interface {
	SurfaceFields(ctx context.Context) (Fields, error)
	PressureFields(ctx context.Context) (Fields, error)
	ModelLevelFields(ctx context.Context) (Fields, error)
	AllFields(ctx context.Context) (Fields, error)
}

// LoadFunc retrieves the fields matching req from the named source,
// e.g. "mars" or a CDS dataset.
type LoadFunc func(ctx context.Context, source string, req Request) (Fields, error)

type Option func(*config)

type config struct {
	file string
	load LoadFunc
}

// WithFile points a file input at its index.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
	}
}

// WithLoader supplies the retrieval transport for remote inputs.
func WithLoader(load LoadFunc) Option {
	return func(c *config) {
		c.load = load
	}
}

type factory func(owner Owner, c *config) Input

var registry = map[string]factory{
	"mars": newMars,
	"cds":  newCds,
	"file": newFile,
}

// Get constructs the named input.
func Get(name string, owner Owner, opts ...Option) (Input, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, name)
	}
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return mk(owner, c), nil
}

// Available lists the input names Get accepts.
func Available() []string {
	res := make([]string, 0, len(registry))
	for name := range registry {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}
