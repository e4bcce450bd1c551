package ecp

import (
	"encoding/json"
	"fmt"
)

// FormatVersion is the ecp document format version written by this library.
const FormatVersion = "1.0"

// Attrs is the flat attribute mapping of one serialized object.
type Attrs = map[string]any

// metaKeys are the reserved top-level document keys; every other top-level
// key is an object category block.
var metaKeys = map[string]bool{
	"name":        true,
	"units":       true,
	"comments":    true,
	"doi":         true,
	"ecp_version": true,
}

// Document is the transient top-level container of an export: document
// metadata plus one block per object category mapping decimal-string ids
// to attribute mappings. A Document is built fresh per export and consumed
// whole per import; it holds no live objects.
type Document struct {
	Name     string
	Units    string
	Comments string
	DOI      string
	Version  string

	// Models maps category name -> decimal id -> attributes.
	Models map[string]map[string]Attrs
}

// MarshalJSON flattens the document: metadata keys and category blocks
// share the top level.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Models)+5)
	out["name"] = d.Name
	out["units"] = d.Units
	out["comments"] = d.Comments
	version := d.Version
	if version == "" {
		version = FormatVersion
	}
	out["ecp_version"] = version
	if d.DOI != "" {
		out["doi"] = d.DOI
	}
	for cat, block := range d.Models {
		if metaKeys[cat] {
			return nil, fmt.Errorf("category %q collides with a reserved document key", cat)
		}
		out[cat] = block
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a flattened document. Unknown metadata is treated as
// category blocks; a legacy "models" wrapper written by older tooling is
// merged into the top level.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	stringKey := func(key string, dst *string) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		if string(v) == "null" {
			return nil
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		return nil
	}
	for key, dst := range map[string]*string{
		"name":        &d.Name,
		"units":       &d.Units,
		"comments":    &d.Comments,
		"doi":         &d.DOI,
		"ecp_version": &d.Version,
	} {
		if err := stringKey(key, dst); err != nil {
			return err
		}
	}

	d.Models = make(map[string]map[string]Attrs)
	decodeBlock := func(cat string, msg json.RawMessage) error {
		var block map[string]Attrs
		if err := json.Unmarshal(msg, &block); err != nil {
			return fmt.Errorf("category %q: %w", cat, err)
		}
		d.Models[cat] = block
		return nil
	}

	if wrapped, ok := raw["models"]; ok {
		var blocks map[string]json.RawMessage
		if err := json.Unmarshal(wrapped, &blocks); err != nil {
			return fmt.Errorf("models wrapper: %w", err)
		}
		for cat, msg := range blocks {
			if err := decodeBlock(cat, msg); err != nil {
				return err
			}
		}
		delete(raw, "models")
	}
	for cat, msg := range raw {
		// Unknown top-level scalars (e.g. version stamps from other
		// writers) are tolerated; only objects form category blocks.
		if !startsObject(msg) {
			continue
		}
		if err := decodeBlock(cat, msg); err != nil {
			return err
		}
	}
	return nil
}

func startsObject(msg json.RawMessage) bool {
	for _, b := range msg {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
