package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTabOrderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), TabOrderFile)
	defaults := []string{"Dienstplan", "Urlaub"}

	tabs, err := LoadTabOrder(path, defaults)
	if err != nil {
		t.Fatalf("LoadTabOrder: %v", err)
	}
	if !reflect.DeepEqual(tabs, defaults) {
		t.Errorf("missing file: tabs = %v, want defaults", tabs)
	}

	saved := []string{"Urlaub", "Dienstplan", "Verwaltung"}
	if err := SaveTabOrder(path, saved); err != nil {
		t.Fatalf("SaveTabOrder: %v", err)
	}
	tabs, err = LoadTabOrder(path, defaults)
	if err != nil {
		t.Fatalf("LoadTabOrder: %v", err)
	}
	if !reflect.DeepEqual(tabs, saved) {
		t.Errorf("tabs = %v, want %v", tabs, saved)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTabOrder(path, defaults); err == nil {
		t.Error("broken file must surface an error, not defaults")
	}
}

func TestRequestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), RequestConfigFile)

	cfg, err := LoadRequestConfig(path)
	if err != nil {
		t.Fatalf("LoadRequestConfig: %v", err)
	}
	if len(cfg) != 0 {
		t.Errorf("missing file: cfg = %v, want empty", cfg)
	}

	saved := map[string]bool{"wunschfrei": false, "urlaub": true}
	if err := SaveRequestConfig(path, saved); err != nil {
		t.Fatalf("SaveRequestConfig: %v", err)
	}
	cfg, err = LoadRequestConfig(path)
	if err != nil {
		t.Fatalf("LoadRequestConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, saved) {
		t.Errorf("cfg = %v, want %v", cfg, saved)
	}
}

func TestVersion(t *testing.T) {
	dir := t.TempDir()
	if got := Version(filepath.Join(dir, VersionFile)); got != "dev" {
		t.Errorf("missing file: Version = %q, want dev", got)
	}

	path := filepath.Join(dir, VersionFile)
	if err := os.WriteFile(path, []byte("1.4.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Version(path); got != "1.4.2" {
		t.Errorf("Version = %q, want 1.4.2", got)
	}
}
