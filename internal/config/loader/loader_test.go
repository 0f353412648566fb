package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/critic.toml", `
author = "amy"
timestamps = true

[kinds.comment]
edit = "raw"

[merge]
time = "prefer-new"
`)
	cfg, err := NewTOMLLoaderWithFS(memfs, "/critic.toml").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg["author"] != "amy" || cfg["timestamps"] != true {
		t.Errorf("top level = %v", cfg)
	}
	kinds, _ := cfg["kinds"].(map[string]any)
	comment, _ := kinds["comment"].(map[string]any)
	if comment["edit"] != "raw" {
		t.Errorf("kinds.comment = %v", comment)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	cfg, err := NewTOMLLoaderWithFS(NewMemFS(), "/none.toml").Load()
	if err != nil || cfg != nil {
		t.Errorf("missing file = %v, %v; want nil, nil", cfg, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "author = \n")
	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Path != "/bad.toml" || pe.Line != 1 {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/critic.yaml", `
author: bob
kinds:
  highlight:
    movement: skip-entire
merge:
  author: move-outside
`)
	cfg, err := ForPath(memfs, "/critic.yaml").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]any{
		"author": "bob",
		"kinds":  map[string]any{"highlight": map[string]any{"movement": "skip-entire"}},
		"merge":  map[string]any{"author": "move-outside"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("got %v, want %v", cfg, want)
	}
}

func TestYAMLLoader_NotMapping(t *testing.T) {
	_, err := ParseYAML("list.yaml", []byte("- a\n- b\n"))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Line != 1 {
		t.Errorf("expected ParseError at line 1, got %v", err)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		yaml bool
	}{
		{"a.toml", false},
		{"a.yml", true},
		{"a.YAML", true},
		{"noext", false},
	}
	for _, tt := range tests {
		_, isYAML := ForPath(NewMemFS(), tt.path).(*YAMLLoader)
		if isYAML != tt.yaml {
			t.Errorf("ForPath(%q) yaml = %v, want %v", tt.path, isYAML, tt.yaml)
		}
	}
}

func TestEnvLoader(t *testing.T) {
	env := []string{
		"CRITIC_AUTHOR=amy",
		"CRITIC_TIMESTAMPS=yes",
		"CRITIC_MERGE_AUTHOR=prefer-new",
		"CRITIC_LOG_LEVEL=debug",
		"CRITIC_HIGHLIGHT_EDIT=drop",
		"OTHER=1",
	}
	l := NewEnvLoader(DefaultPrefix).WithEnviron(func() []string { return env })
	l.AddMapping("CRITIC_HIGHLIGHT_EDIT", "kinds.highlight.edit")

	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"author":     "amy",
		"timestamps": true,
		"merge":      map[string]any{"author": "prefer-new"},
		"log":        map[string]any{"level": "debug"},
		"kinds":      map[string]any{"highlight": map[string]any{"edit": "drop"}},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("got %v, want %v", cfg, want)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"skip-entire", "skip-entire"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"author": "amy",
		"merge":  map[string]any{"author": "split", "time": "prefer-new"},
	}
	src := map[string]any{
		"author": "bob",
		"merge":  map[string]any{"author": "skip"},
	}
	got := DeepMerge(dst, src)
	want := map[string]any{
		"author": "bob",
		"merge":  map[string]any{"author": "skip", "time": "prefer-new"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoadAll(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `author = "amy"`+"\nlabel = \"x\"\n")
	memfs.AddFile("/b.yaml", "author: bob\n")
	cfg, err := LoadAll(
		NewTOMLLoaderWithFS(memfs, "/a.toml"),
		NewYAMLLoaderWithFS(memfs, "/b.yaml"),
		NewTOMLLoaderWithFS(memfs, "/missing.toml"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if cfg["author"] != "bob" || cfg["label"] != "x" {
		t.Errorf("merged = %v", cfg)
	}
}
