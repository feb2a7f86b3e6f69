package modelpeek_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	modelpeek "github.com/modelpeek/go-modelpeek"
	"github.com/modelpeek/go-modelpeek/pickle/pickletest"
	"github.com/modelpeek/go-modelpeek/sanitize"
	"github.com/modelpeek/go-modelpeek/zipfile"
)

func writeCheckpoint(t *testing.T, entries map[string][]byte) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	zw := zip.NewWriter(buf)
	for name, d := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write(d); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.ckpt")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func stateDict(t *testing.T) []byte {
	t.Helper()
	// {"a": [1, 2.5, "x", None, (True, False)]}
	return pickletest.NewProto(2).
		EmptyDict().
		ShortUnicode("a").
		EmptyList().
		Mark().
		Int(1).
		Float(2.5).
		Unicode("x").
		None().
		Bool(true).Bool(false).Tuple2().
		Appends().
		SetItem().
		Stop().
		Bytes()
}

func TestPeekStructuralFidelity(t *testing.T) {
	path := writeCheckpoint(t, map[string][]byte{
		modelpeek.DataEntry: stateDict(t),
	})
	v, err := modelpeek.Peek(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != sanitize.MappingKind {
		t.Fatalf("expected mapping, got %s", v.Kind)
	}
	seq := sanitize.Get(v, "a")
	if seq == nil || seq.Kind != sanitize.SequenceKind || len(seq.Values) != 5 {
		t.Fatalf("expected 5-element sequence at %q, got %v", "a", seq)
	}
	if seq.Values[3].Kind != sanitize.NullKind {
		t.Errorf("element 3: expected null, got %s", seq.Values[3].Kind)
	}
	tup := seq.Values[4]
	if tup.Kind != sanitize.TupleKind {
		t.Fatalf("expected tuple, distinguishable from sequence, got %s", tup.Kind)
	}
	if !tup.Values[0].Bool || tup.Values[1].Bool {
		t.Errorf("unexpected tuple: %v", tup)
	}
}

func TestPeekStorageCollapse(t *testing.T) {
	d := pickletest.NewProto(2).
		Global("collections", "OrderedDict").
		EmptyTuple().
		Reduce().Memoize().
		Mark().
		ShortUnicode("weight").Storage("FloatStorage", "0", "cpu", 1_000_000_000_000).
		SetItems().
		Stop().
		Bytes()
	path := writeCheckpoint(t, map[string][]byte{modelpeek.DataEntry: d})

	v, err := modelpeek.Peek(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := sanitize.Get(v, "weight")
	if w == nil || w.Kind != sanitize.StringKind {
		t.Fatalf("expected string collapse, got %v", w)
	}
	if w.String != "float32-storage" {
		t.Errorf("expected %q, got %q", "float32-storage", w.String)
	}
}

func TestPeekUnknownRecord(t *testing.T) {
	d := pickletest.NewProto(2).
		Global("pkg", "Widget").
		EmptyTuple().
		Reduce().
		Stop().
		Bytes()
	path := writeCheckpoint(t, map[string][]byte{modelpeek.DataEntry: d})

	v, err := modelpeek.Peek(path)
	if err != nil {
		t.Fatalf("unknown record types must not fail: %v", err)
	}
	if v.Kind != sanitize.StringKind || v.String != "pkg.Widget" {
		t.Errorf("expected %q, got %v", "pkg.Widget", v)
	}
}

func TestPeekMissingEntry(t *testing.T) {
	path := writeCheckpoint(t, map[string][]byte{
		"archive/version": []byte("3\n"),
	})
	_, err := modelpeek.Peek(path)
	if !errors.Is(err, zipfile.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestPeekMalformedStream(t *testing.T) {
	path := writeCheckpoint(t, map[string][]byte{
		modelpeek.DataEntry: []byte("not a pickle"),
	})
	_, err := modelpeek.Peek(path)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPeekIdempotent(t *testing.T) {
	path := writeCheckpoint(t, map[string][]byte{
		modelpeek.DataEntry: stateDict(t),
	})
	a, err := modelpeek.Peek(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := modelpeek.Peek(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sanitize.Equal(a, b) {
		t.Error("expected structurally equal results")
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("unexpected diff (-first +second):\n%s", diff)
	}
}
