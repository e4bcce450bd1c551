// Package config loads geomodel settings from a TOML file.
//
// Settings cover document metadata defaults, export behavior, and the
// document store backend. A missing file yields the defaults; unknown
// keys in the file are ignored.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/terradyn/geomodel/pkg/ecp"
)

// BaseUnits is the default unit system declaration written to documents.
const BaseUnits = "N, kg, m, s"

// Config is the root settings structure.
type Config struct {
	Document DocumentConfig `toml:"document"`
	Export   ExportConfig   `toml:"export"`
	Store    StoreConfig    `toml:"store"`
}

// DocumentConfig seeds the metadata of new outputs.
type DocumentConfig struct {
	Name     string `toml:"name"`
	Units    string `toml:"units"`
	Comments string `toml:"comments"`
}

// ExportConfig controls document generation.
type ExportConfig struct {
	// ExportNone writes unset optional attributes as explicit nulls.
	ExportNone bool `toml:"export_none"`
}

// Options maps the settings to export options.
func (e ExportConfig) Options() ecp.ExportOptions {
	return ecp.ExportOptions{ExportNone: e.ExportNone}
}

// StoreConfig selects and parameterizes the document store backend.
type StoreConfig struct {
	// Backend is one of "file", "redis", or "mongo".
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Document: DocumentConfig{Units: BaseUnits},
		Export:   ExportConfig{ExportNone: true},
		Store:    StoreConfig{Backend: "file", MongoDatabase: "geomodel"},
	}
}

// Load reads settings from a TOML file, filling unset keys from Default.
// A missing file is not an error; it yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads settings from TOML text, filling unset keys from Default.
func Parse(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// NewOutput creates an export builder seeded with the document metadata.
func (c Config) NewOutput() *ecp.Output {
	out := ecp.NewOutput()
	out.Name = c.Document.Name
	out.Units = c.Document.Units
	out.Comments = c.Document.Comments
	return out
}
