package inputs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type testOwner struct {
	sfc     []string
	pl      []string
	plLevs  []int
	ml      []string
	mlLevs  []int
	patched int
}

func (o *testOwner) ParamSfc() []string              { return o.sfc }
func (o *testOwner) ParamLevelPl() ([]string, []int) { return o.pl, o.plLevs }
func (o *testOwner) ParamLevelMl() ([]string, []int) { return o.ml, o.mlLevs }
func (o *testOwner) Grid() []float64                 { return []float64{0.25, 0.25} }
func (o *testOwner) Area() []float64                 { return []float64{90, -180, -90, 180} }
func (o *testOwner) Retrieve() Request               { return Request{"class": "od"} }

func (o *testOwner) Datetimes() []Datetime {
	return []Datetime{
		{Date: "2023-06-01", Time: "0000"},
		{Date: "2023-06-01", Time: "1200"},
	}
}

func (o *testOwner) PatchRequest(r Request) {
	o.patched++
	r["expver"] = "0001"
}

type recorder struct {
	sources []string
	reqs    []Request
	calls   int
}

func (c *recorder) load(ctx context.Context, source string, req Request) (Fields, error) {
	c.calls++
	c.sources = append(c.sources, source)
	c.reqs = append(c.reqs, req)
	return Fields{{Param: "2t", Levtype: "sfc"}}, nil
}

func TestMarsSurfaceRequests(t *testing.T) {
	owner := &testOwner{sfc: []string{"2t", "msl"}}
	rec := &recorder{}
	in, err := Get("mars", owner, WithLoader(rec.load))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs, err := in.SurfaceFields(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs) != 2 {
		t.Errorf("expected one field per datetime, got %d", len(fs))
	}
	if rec.calls != 2 {
		t.Fatalf("expected one load per datetime, got %d", rec.calls)
	}
	if rec.sources[0] != "mars" {
		t.Errorf("expected mars source, got %q", rec.sources[0])
	}
	req := rec.reqs[0]
	if req["levtype"] != "sfc" {
		t.Errorf("expected levtype sfc, got %v", req["levtype"])
	}
	if req["class"] != "od" {
		t.Errorf("expected retrieve extras merged, got %v", req["class"])
	}
	if req["expver"] != "0001" {
		t.Errorf("expected owner patch applied, got %v", req["expver"])
	}
	if !reflect.DeepEqual(req["param"], []string{"2t", "msl"}) {
		t.Errorf("unexpected param: %v", req["param"])
	}
	if rec.reqs[1]["time"] != "1200" {
		t.Errorf("expected second datetime, got %v", rec.reqs[1]["time"])
	}
}

func TestMarsPressureRequests(t *testing.T) {
	owner := &testOwner{pl: []string{"t", "z"}, plLevs: []int{1000, 850, 500}}
	rec := &recorder{}
	in, err := Get("mars", owner, WithLoader(rec.load))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := in.PressureFields(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := rec.reqs[0]
	if req["levtype"] != "pl" {
		t.Errorf("expected levtype pl, got %v", req["levtype"])
	}
	if !reflect.DeepEqual(req["level"], []int{1000, 850, 500}) {
		t.Errorf("unexpected level: %v", req["level"])
	}
	if _, ok := req["class"]; ok {
		t.Error("retrieve extras must only apply to surface requests")
	}
}

func TestEmptyParamsSkipLoading(t *testing.T) {
	rec := &recorder{}
	in, err := Get("mars", &testOwner{}, WithLoader(rec.load))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs, err := in.AllFields(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs) != 0 || rec.calls != 0 {
		t.Errorf("expected no fields and no loads, got %d fields, %d calls", len(fs), rec.calls)
	}
}

func TestFieldsCached(t *testing.T) {
	owner := &testOwner{sfc: []string{"2t"}}
	rec := &recorder{}
	in, err := Get("mars", owner, WithLoader(rec.load))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	if _, err := in.SurfaceFields(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := in.SurfaceFields(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.calls != 2 {
		t.Errorf("expected loads for one pass only, got %d", rec.calls)
	}
}

func TestCdsRequests(t *testing.T) {
	owner := &testOwner{
		sfc:    []string{"2t"},
		pl:     []string{"t"},
		plLevs: []int{500},
		ml:     []string{"q"},
		mlLevs: []int{1},
	}
	rec := &recorder{}
	in, err := Get("cds", owner, WithLoader(rec.load))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	if _, err := in.SurfaceFields(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.sources[0] != "reanalysis-era5-single-levels" {
		t.Errorf("unexpected dataset: %q", rec.sources[0])
	}
	if rec.reqs[0]["product_type"] != "reanalysis" {
		t.Errorf("expected reanalysis product type, got %v", rec.reqs[0]["product_type"])
	}
	if _, err := in.PressureFields(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.sources[2] != "reanalysis-era5-pressure-levels" {
		t.Errorf("unexpected dataset: %q", rec.sources[2])
	}
	if _, err := in.ModelLevelFields(ctx); !errors.Is(err, ErrModelLevels) {
		t.Errorf("expected ErrModelLevels, got %v", err)
	}
}

func TestNoLoader(t *testing.T) {
	in, err := Get("mars", &testOwner{sfc: []string{"2t"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := in.SurfaceFields(context.Background()); !errors.Is(err, ErrNoLoader) {
		t.Errorf("expected ErrNoLoader, got %v", err)
	}
}

func TestFileInput(t *testing.T) {
	index := `- param: 2t
  levtype: sfc
  date: "2023-06-01"
  time: "0000"
- param: t
  level: 500
  levtype: pl
  date: "2023-06-01"
  time: "0000"
`
	path := filepath.Join(t.TempDir(), "fields.yaml")
	if err := os.WriteFile(path, []byte(index), 0644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	in, err := Get("file", &testOwner{}, WithFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	all, err := in.AllFields(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(all))
	}
	pl, err := in.PressureFields(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pl) != 1 || pl[0].Param != "t" || pl[0].Level != 500 {
		t.Errorf("unexpected pressure fields: %v", pl)
	}
	ml, err := in.ModelLevelFields(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ml) != 0 {
		t.Errorf("expected no model-level fields, got %v", ml)
	}
}

func TestFileInputMissing(t *testing.T) {
	in, err := Get("file", &testOwner{}, WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := in.AllFields(context.Background()); err == nil {
		t.Error("expected error for missing index")
	}
}

func TestRegistry(t *testing.T) {
	if _, err := Get("bogus", &testOwner{}); !errors.Is(err, ErrUnknownInput) {
		t.Errorf("expected ErrUnknownInput, got %v", err)
	}
	want := []string{"cds", "file", "mars"}
	if got := Available(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
