package fieldserv

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldserv.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigFileName(t *testing.T) {
	path := writeTempConfig(t, `{"addr": ":9999", "cadence_ms": 500, "history_limit": 30}`)

	cfg, err := LoadConfigFileName(path)
	if err != nil {
		t.Fatalf("LoadConfigFileName: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q; want :9999", cfg.Addr)
	}
	if cfg.CadenceMS != 500 {
		t.Errorf("CadenceMS = %d; want 500", cfg.CadenceMS)
	}
	if cfg.HistoryLimit != 30 {
		t.Errorf("HistoryLimit = %d; want 30", cfg.HistoryLimit)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Seed == 0 {
		t.Errorf("Seed should retain a nonzero default")
	}
}

func TestLoadConfigFileNameEmptyFile(t *testing.T) {
	path := writeTempConfig(t, "")
	if _, err := LoadConfigFileName(path); err == nil {
		t.Error("expected error for empty config file")
	}
}

func TestLoadConfigFileNameMissingFile(t *testing.T) {
	if _, err := LoadConfigFileName(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigFileNameEmptyAddr(t *testing.T) {
	path := writeTempConfig(t, `{"addr": ""}`)
	if _, err := LoadConfigFileName(path); err == nil {
		t.Error("expected error when addr is explicitly empty")
	}
}
