package inputs

import (
	"context"
	"errors"
	"sync"

	"github.com/modelpeek/go-modelpeek/debug"
)

// ErrModelLevels is returned by inputs whose backend has no model-level
// data.
var ErrModelLevels = errors.New("model levels not supported")

// requestInput builds one retrieval request per owner datetime and
// hands each to a backend-specific load function.
type requestInput struct {
	owner Owner
	where string

	sfc loadGroup
	pl  loadGroup
	ml  loadGroup
}

// loadGroup caches one field set per input, like the first-use caching
// of remote retrievals.
type loadGroup struct {
	load LoadFunc

	once   sync.Once
	fields Fields
	err    error
}

func (g *loadGroup) get(ctx context.Context, reqs []Request, source string) (Fields, error) {
	g.once.Do(func() {
		for _, req := range reqs {
			fs, err := g.load(ctx, source, req)
			if err != nil {
				g.err = err
				return
			}
			g.fields = append(g.fields, fs...)
		}
	})
	return g.fields, g.err
}

func (ri *requestInput) patch(req Request) Request {
	ri.owner.PatchRequest(req)
	return req
}

func (ri *requestInput) requests(param []string, level []int, extra Request) []Request {
	res := []Request{}
	for _, dt := range ri.owner.Datetimes() {
		req := Request{
			"date":  dt.Date,
			"time":  dt.Time,
			"param": param,
			"grid":  ri.owner.Grid(),
			"area":  ri.owner.Area(),
		}
		if level != nil {
			req["level"] = level
		}
		for k, v := range extra {
			req[k] = v
		}
		res = append(res, ri.patch(req))
	}
	return res
}

func (ri *requestInput) SurfaceFields(ctx context.Context) (Fields, error) {
	param := ri.owner.ParamSfc()
	if len(param) == 0 {
		return Fields{}, nil
	}
	if debug.Inputs() {
		debug.Logf("inputs: loading surface fields from %s\n", ri.where)
	}
	return ri.sfc.get(ctx, ri.requests(param, nil, ri.owner.Retrieve()), ri.where)
}

func (ri *requestInput) PressureFields(ctx context.Context) (Fields, error) {
	param, level := ri.owner.ParamLevelPl()
	if len(param) == 0 || len(level) == 0 {
		return Fields{}, nil
	}
	if debug.Inputs() {
		debug.Logf("inputs: loading pressure fields from %s\n", ri.where)
	}
	return ri.pl.get(ctx, ri.requests(param, level, nil), ri.where)
}

func (ri *requestInput) ModelLevelFields(ctx context.Context) (Fields, error) {
	param, level := ri.owner.ParamLevelMl()
	if len(param) == 0 || len(level) == 0 {
		return Fields{}, nil
	}
	if debug.Inputs() {
		debug.Logf("inputs: loading model fields from %s\n", ri.where)
	}
	return ri.ml.get(ctx, ri.requests(param, level, nil), ri.where)
}

func (ri *requestInput) AllFields(ctx context.Context) (Fields, error) {
	res := Fields{}
	for _, get := range []func(context.Context) (Fields, error){
		ri.SurfaceFields,
		ri.PressureFields,
		ri.ModelLevelFields,
	} {
		fs, err := get(ctx)
		if err != nil {
			return nil, err
		}
		res = append(res, fs...)
	}
	return res, nil
}

func noLoader(ctx context.Context, source string, req Request) (Fields, error) {
	return nil, ErrNoLoader
}

func orNoLoader(load LoadFunc) LoadFunc {
	if load == nil {
		return noLoader
	}
	return load
}

func newMars(owner Owner, c *config) Input {
	load := orNoLoader(c.load)
	withLevtype := func(levtype string) LoadFunc {
		return func(ctx context.Context, source string, req Request) (Fields, error) {
			req = req.Clone()
			req["levtype"] = levtype
			if debug.Inputs() {
				debug.Logf("inputs: load source mars %v\n", req)
			}
			return load(ctx, "mars", req)
		}
	}
	return &requestInput{
		owner: owner,
		where: "MARS",
		sfc:   loadGroup{load: withLevtype("sfc")},
		pl:    loadGroup{load: withLevtype("pl")},
		ml:    loadGroup{load: withLevtype("ml")},
	}
}

func newCds(owner Owner, c *config) Input {
	load := orNoLoader(c.load)
	reanalysis := func(dataset string) LoadFunc {
		return func(ctx context.Context, source string, req Request) (Fields, error) {
			req = req.Clone()
			req["product_type"] = "reanalysis"
			return load(ctx, dataset, req)
		}
	}
	return &requestInput{
		owner: owner,
		where: "CDS",
		sfc:   loadGroup{load: reanalysis("reanalysis-era5-single-levels")},
		pl:    loadGroup{load: reanalysis("reanalysis-era5-pressure-levels")},
		ml: loadGroup{load: func(ctx context.Context, source string, req Request) (Fields, error) {
			return nil, ErrModelLevels
		}},
	}
}
