package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Document.Units != BaseUnits {
		t.Errorf("Units = %q, want %q", cfg.Document.Units, BaseUnits)
	}
	if !cfg.Export.ExportNone {
		t.Error("ExportNone should default to true")
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Store.MongoDatabase != "geomodel" {
		t.Errorf("MongoDatabase = %q", cfg.Store.MongoDatabase)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(`
[document]
name = "site A"
comments = "boreholes B-1 through B-4"

[export]
export_none = false

[store]
backend = "redis"
redis_addr = "localhost:6379"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Document.Name != "site A" {
		t.Errorf("Name = %q", cfg.Document.Name)
	}
	if cfg.Document.Comments != "boreholes B-1 through B-4" {
		t.Errorf("Comments = %q", cfg.Document.Comments)
	}
	// Unset keys keep their defaults.
	if cfg.Document.Units != BaseUnits {
		t.Errorf("Units = %q, want default %q", cfg.Document.Units, BaseUnits)
	}
	if cfg.Export.ExportNone {
		t.Error("export_none override ignored")
	}
	if cfg.Store.Backend != "redis" || cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("Store = %+v", cfg.Store)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse("document = ["); err == nil {
		t.Error("Parse accepted malformed TOML")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document.Units != BaseUnits {
		t.Errorf("Units = %q, want default", cfg.Document.Units)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geomodel.toml")
	text := "[document]\nname = \"from file\"\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document.Name != "from file" {
		t.Errorf("Name = %q", cfg.Document.Name)
	}
}

func TestNewOutputSeedsMetadata(t *testing.T) {
	cfg := Default()
	cfg.Document.Name = "seeded"
	out := cfg.NewOutput()
	if out.Name != "seeded" || out.Units != BaseUnits {
		t.Errorf("output metadata = %q, %q", out.Name, out.Units)
	}
}

func TestExportOptions(t *testing.T) {
	cfg := Default()
	if !cfg.Export.Options().ExportNone {
		t.Error("Options() dropped ExportNone")
	}
	cfg.Export.ExportNone = false
	if cfg.Export.Options().ExportNone {
		t.Error("Options() ignored ExportNone = false")
	}
}
