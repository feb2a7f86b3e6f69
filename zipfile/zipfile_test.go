package zipfile

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeArchive(t *testing.T, entries map[string][]byte) string {
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
	path := filepath.Join(t.TempDir(), "test.ckpt")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.ckpt"))
	if !errors.Is(err, ErrArchive) {
		t.Errorf("expected ErrArchive, got %v", err)
	}
}

func TestOpenNotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if !errors.Is(err, ErrArchive) {
		t.Errorf("expected ErrArchive, got %v", err)
	}
}

func TestEntry(t *testing.T) {
	path := writeArchive(t, map[string][]byte{
		"archive/data.pkl": {0x80, 0x02, '.'},
		"archive/version":  []byte("3\n"),
	})
	c, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	d, err := c.Entry("archive/data.pkl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(d, []byte{0x80, 0x02, '.'}) {
		t.Errorf("unexpected entry contents: %v", d)
	}

	_, err = c.Entry("archive/missing")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
	if errors.Is(err, ErrArchive) {
		t.Errorf("missing entry must not be an archive error: %v", err)
	}
}

func TestNames(t *testing.T) {
	path := writeArchive(t, map[string][]byte{"a": nil})
	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	names := c.Names()
	if len(names) != 1 || names[0] != "a" {
		t.Errorf("unexpected names: %v", names)
	}
}
