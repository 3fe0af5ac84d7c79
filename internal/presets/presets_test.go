package presets

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestSaveLoad_RoundTrip verifies saving and loading preserves presets.
func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "presets.yaml")
	in := Set{
		"careful": {Speed: 8, Mistake: 0},
		"human":   {Speed: 14, Mistake: 2},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
	if names := out.Names(); len(names) != 2 || names[0] != "careful" {
		t.Fatalf("unexpected names %v", names)
	}
}

// TestLoad_MissingFile_ReturnsEmpty verifies missing files return no presets.
func TestLoad_MissingFile_ReturnsEmpty(t *testing.T) {
	out, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty set, got %+v", out)
	}
	if _, err := out.Lookup("human"); err == nil {
		t.Fatalf("expected lookup error")
	}
}

// TestLoad_RejectsInvalidPreset verifies range validation on load.
func TestLoad_RejectsInvalidPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := "presets:\n  broken:\n    speed: 0\n    mistake: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
