package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadMissing(t *testing.T) {
	var d doc
	ok, err := Load(filepath.Join(t.TempDir(), "missing.json"), &d)
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	if err := Save(path, doc{Name: "eagle", Count: 3}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	var d doc
	ok, err := Load(path, &d)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if d.Name != "eagle" || d.Count != 3 {
		t.Errorf("unexpected doc %+v", d)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	var d doc
	if _, err := Load(path, &d); err == nil {
		t.Fatal("expected decode error")
	}
}
