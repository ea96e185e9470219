package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cango.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Project.Package != "main" || cfg.Project.Entry != "main" {
		t.Errorf("project defaults = %q/%q, want main/main",
			cfg.Project.Package, cfg.Project.Entry)
	}
	if cfg.Translate.Pointers != "auto" {
		t.Errorf("pointers default = %q, want auto", cfg.Translate.Pointers)
	}
	if cfg.Translate.Bitfields != "msb-first" {
		t.Errorf("bitfields default = %q, want msb-first", cfg.Translate.Bitfields)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[project]
package = "translated"

[translate]
pointers = "slice"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Project.Package != "translated" {
		t.Errorf("package = %q, want translated", cfg.Project.Package)
	}
	if cfg.Translate.Pointers != "slice" {
		t.Errorf("pointers = %q, want slice", cfg.Translate.Pointers)
	}
	// 没写的字段回填默认值
	if cfg.Project.Entry != "main" {
		t.Errorf("entry = %q, want main", cfg.Project.Entry)
	}
	if cfg.Translate.Bitfields != "msb-first" {
		t.Errorf("bitfields = %q, want msb-first", cfg.Translate.Bitfields)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[project\npackage =")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed toml")
	}
}

func TestFindAndLoadUpward(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, `
[project]
package = "deep"
`)
	sub := filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := FindAndLoad(sub)
	if err != nil {
		t.Fatal(err)
	}
	if path != want {
		t.Errorf("config path = %q, want %q", path, want)
	}
	if cfg.Project.Package != "deep" {
		t.Errorf("package = %q, want deep", cfg.Project.Package)
	}
	if GetProjectRoot(path) != root {
		t.Errorf("project root = %q, want %q", GetProjectRoot(path), root)
	}
}

func TestFindAndLoadAbsent(t *testing.T) {
	cfg, path, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Project.Package != "main" {
		t.Error("missing config must fall back to defaults")
	}
	if GetProjectRoot("") != "" {
		t.Error("empty config path has no project root")
	}
}
