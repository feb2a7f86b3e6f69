package summarydiff

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelpeek/go-modelpeek/sanitize"
)

func summary(lr float64, weights string) *sanitize.Value {
	hp := sanitize.EmptyMapping()
	hp.SetItem(sanitize.FromString("lr"), sanitize.FromFloat(lr))
	m := sanitize.EmptyMapping()
	m.SetItem(sanitize.FromString("hyper_parameters"), hp)
	m.SetItem(sanitize.FromString("weights"), sanitize.FromString(weights))
	return m
}

func TestDiffEqual(t *testing.T) {
	a := summary(0.001, "float32-storage")
	b := summary(0.001, "float32-storage")
	res, err := Diff(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Equal {
		t.Error("expected equal summaries")
	}
	if string(res.MergePatch) != "{}" {
		t.Errorf("expected empty patch, got %s", res.MergePatch)
	}
	if res.Text != "" {
		t.Errorf("expected empty text diff, got %q", res.Text)
	}
}

func TestDiffMergePatch(t *testing.T) {
	a := summary(0.001, "float32-storage")
	b := summary(0.01, "float16-storage")
	res, err := Diff(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Equal {
		t.Fatal("expected unequal summaries")
	}
	var patch map[string]any
	if err := json.Unmarshal(res.MergePatch, &patch); err != nil {
		t.Fatalf("invalid patch %s: %v", res.MergePatch, err)
	}
	if patch["weights"] != "float16-storage" {
		t.Errorf("expected weights in patch, got %s", res.MergePatch)
	}
	hp, ok := patch["hyper_parameters"].(map[string]any)
	if !ok || hp["lr"] != 0.01 {
		t.Errorf("expected changed lr in patch, got %s", res.MergePatch)
	}
}

func TestDiffText(t *testing.T) {
	a := summary(0.001, "float32-storage")
	b := summary(0.001, "float16-storage")
	res, err := Diff(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "-weights: float32-storage\n") {
		t.Errorf("expected removed line, got:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "+weights: float16-storage\n") {
		t.Errorf("expected added line, got:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, " hyper_parameters:\n") {
		t.Errorf("expected unchanged context line, got:\n%s", res.Text)
	}
}
