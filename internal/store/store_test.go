package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newBackends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFSStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "todo.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"file":   fs,
		"sqlite": sq,
		"memory": NewMemStore(),
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			v, err := s.Get(KeyTasks)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if v != nil {
				t.Errorf("expected nil for missing key, got %q", v)
			}
		})
	}
}

func TestStoreSetOverwrite(t *testing.T) {
	for name, s := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(KeyTasks, []byte(`[1]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(KeyTasks, []byte(`[1,2]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(KeyFavorites, []byte(`[]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get(KeyTasks)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !bytes.Equal(got, []byte(`[1,2]`)) {
				t.Errorf("Get(tasks) = %q, want [1,2]", got)
			}
			got, _ = s.Get(KeyFavorites)
			if !bytes.Equal(got, []byte(`[]`)) {
				t.Errorf("Get(favorites) = %q, want []", got)
			}
		})
	}
}

func TestStoreRejectsBadKeys(t *testing.T) {
	for name, s := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "..", "a/b", `a\b`} {
				if err := s.Set(key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
					t.Errorf("Set(%q) error = %v, want ErrInvalidKey", key, err)
				}
				if _, err := s.Get(key); !errors.Is(err, ErrInvalidKey) {
					t.Errorf("Get(%q) error = %v, want ErrInvalidKey", key, err)
				}
			}
		})
	}
}

func TestFSStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Set(KeyTasks, []byte(`[]`)); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected dir contents: %v", names)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyFavorites, []byte(`[{"id":1}]`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.Get(KeyFavorites)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[{"id":1}]` {
		t.Errorf("got %q after reopen", got)
	}
}

func TestMemStoreCopiesValues(t *testing.T) {
	s := NewMemStore()
	buf := []byte("abc")
	_ = s.Set("k", buf)
	buf[0] = 'z'
	got, _ := s.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend Backend
		check   func(t *testing.T)
	}{
		{BackendFile, func(t *testing.T) {}},
		{BackendSQLite, func(t *testing.T) {
			if _, err := os.Stat(filepath.Join(dir, SQLiteFile)); err != nil {
				t.Errorf("expected sqlite file: %v", err)
			}
		}},
		{BackendMemory, func(t *testing.T) {}},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			s, closer, err := Open(tt.backend, dir)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer closer.Close()
			if err := s.Set(KeyTasks, []byte(`[]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			tt.check(t)
		})
	}
}

func TestOpenDefaultDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "default")
	t.Setenv("TODO_DATA_DIR", dir)
	for _, backend := range []Backend{BackendFile, BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			s, closer, err := Open(backend, "")
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer closer.Close()
			if err := s.Set(KeyTasks, []byte(`[]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, KeyTasks+".json")); err != nil {
		t.Errorf("file store not rooted at TODO_DATA_DIR: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, SQLiteFile)); err != nil {
		t.Errorf("sqlite store not rooted at TODO_DATA_DIR: %v", err)
	}
}

func TestParseBackend(t *testing.T) {
	if b, err := ParseBackend(""); err != nil || b != BackendFile {
		t.Errorf("ParseBackend(\"\") = %q, %v", b, err)
	}
	if b, err := ParseBackend("SQLite"); err != nil || b != BackendSQLite {
		t.Errorf("ParseBackend(SQLite) = %q, %v", b, err)
	}
	if _, err := ParseBackend("redis"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestResolveDataDirEnvOverride(t *testing.T) {
	t.Setenv("TODO_DATA_DIR", "/tmp/custom-todo")
	dir, err := ResolveDataDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/custom-todo" {
		t.Errorf("ResolveDataDir() = %q", dir)
	}
}
