package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vela.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
verbose: true
no_color: true
source_dirs: [lib, /opt/vela]
max_steps: 10000
history_file: /tmp/history
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := &Config{
		Verbose:     true,
		NoColor:     true,
		SourceDirs:  []string{"lib", "/opt/vela"},
		MaxSteps:    10000,
		HistoryFile: "/tmp/history",
	}
	if !reflect.DeepEqual(cfg, expected) {
		t.Errorf("expected %+v, got %+v", expected, cfg)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "max_steps: 5\n"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MaxSteps != 5 {
		t.Errorf("expected max_steps 5, got %d", cfg.MaxSteps)
	}
	if cfg.HistoryFile != Default().HistoryFile {
		t.Errorf("expected the default history file, got %q", cfg.HistoryFile)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, content := range []string{"verbose: [", "max_steps: -1\n", "max_steps: many\n"} {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%q: expected an error", content)
		}
	}
}
