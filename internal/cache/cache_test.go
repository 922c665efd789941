package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type entry struct {
	Name string   `json:"name"`
	Tips []string `json:"tips"`
}

func TestNewStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := NewStore(path)
	if s == nil {
		t.Fatal("NewStore() returned nil")
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cache file should be created lazily")
	}
}

func TestGetMissingFileCreatesEmptyObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")
	s := NewStore(path)

	_, found, err := s.Get("lechuga")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("Get should return false on an empty cache")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cache file not created: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil || len(decoded) != 0 {
		t.Errorf("cache file = %q, want empty object", string(data))
	}
}

func TestCorruptFileSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	if _, found, err := s.Get("x"); err != nil || found {
		t.Fatalf("Get on corrupt cache = found %v, err %v", found, err)
	}

	data, _ := os.ReadFile(path)
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Errorf("corrupt cache was not rewritten: %q", string(data))
	}
}

func TestPutAndGetRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cache.json"))

	want := entry{Name: "Lettuce", Tips: []string{"Grows fast"}}
	if err := s.Put("lettuce", want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	raw, found, err := s.Get("lettuce")
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}

	var got entry
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decoding cached entry: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPutPreservesOtherEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := NewStore(path)

	if err := s.Put("a", entry{Name: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("b", entry{Name: "B"}); err != nil {
		t.Fatal(err)
	}

	// A second store on the same file sees both entries.
	keys, err := NewStore(path).Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
}

func TestPutOverwritesKey(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cache.json"))

	_ = s.Put("a", entry{Name: "old"})
	_ = s.Put("a", entry{Name: "new"})

	raw, _, _ := s.Get("a")
	var got entry
	_ = json.Unmarshal(raw, &got)
	if got.Name != "new" {
		t.Errorf("Name = %q, want new", got.Name)
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "cache.json"))

	for i := 0; i < 3; i++ {
		if err := s.Put("k", entry{Name: "v"}); err != nil {
			t.Fatal(err)
		}
	}

	files, _ := os.ReadDir(dir)
	if len(files) != 1 {
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name())
		}
		t.Errorf("directory contains %v, want only cache.json", names)
	}
}
