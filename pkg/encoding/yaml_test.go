package encoding

import (
	"path/filepath"
	"testing"
)

type sampleDocument struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yml")

	original := &sampleDocument{Name: "widget", Count: 3}
	if err := MarshalAndSaveYAML(path, original); err != nil {
		t.Fatal(err)
	}

	loaded := &sampleDocument{}
	if err := LoadAndUnmarshalYAML(path, loaded); err != nil {
		t.Fatal(err)
	}
	if *loaded != *original {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, original)
	}
}

func TestYAMLRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yml")

	if err := MarshalAndSave(path, func() ([]byte, error) {
		return []byte("name: widget\nbogusField: 1\n"), nil
	}); err != nil {
		t.Fatal(err)
	}

	loaded := &sampleDocument{}
	if err := LoadAndUnmarshalYAML(path, loaded); err == nil {
		t.Error("expected an error for an unknown field")
	}
}
