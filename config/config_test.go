package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSplitSearchPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"empty", "", nil},
		{"single", "/a/b", []string{"/a/b"}},
		{"multiple", "/a/b:/c/d", []string{"/a/b", "/c/d"}},
		{"skips empty segments", "/a/b::/c/d:", []string{"/a/b", "/c/d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSearchPath(tt.path)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitSearchPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitSearchPath(%q)[%d] = %q, want %q", tt.path, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadDefaultsWithNoFileOrEnv(t *testing.T) {
	t.Setenv("DE_GEDCOM_PATH", "")
	t.Setenv("DE_SCRIPTS_PATH", "")
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputMode != "unbuffered" {
		t.Errorf("OutputMode = %q, want unbuffered", cfg.OutputMode)
	}
	if len(cfg.GedcomPath) != 0 || len(cfg.ScriptsPath) != 0 {
		t.Errorf("expected empty search paths, got %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "deadends.yaml")
	contents := "gedcom_path:\n  - /from/file\noutput_mode: buffered\n"
	if err := os.WriteFile(configPath, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("DE_GEDCOM_PATH", "/from/env")
	t.Setenv("DE_SCRIPTS_PATH", "")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputMode != "buffered" {
		t.Errorf("OutputMode = %q, want buffered (from file)", cfg.OutputMode)
	}
	if len(cfg.GedcomPath) != 1 || cfg.GedcomPath[0] != "/from/env" {
		t.Errorf("GedcomPath = %v, want [/from/env] (env overrides file)", cfg.GedcomPath)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "script.ds")
	if err := os.WriteFile(target, []byte("proc main {}"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, ok := ResolveFile([]string{dir}, "script.ds")
	if !ok || got != target {
		t.Errorf("ResolveFile = (%q, %v), want (%q, true)", got, ok, target)
	}

	if _, ok := ResolveFile([]string{dir}, "missing.ds"); ok {
		t.Error("ResolveFile found a file that does not exist")
	}
}
