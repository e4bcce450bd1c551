package ecp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes a document as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}

// DecodeDocument parses a JSON document from r without reconstructing
// objects. Most callers want [ReadJSON] instead.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// ReadJSON decodes a JSON document from r and reconstructs its object
// graph. See [Import] for the reconstruction semantics and [LoadOptions]
// for the recognized options.
func ReadJSON(r io.Reader, opts LoadOptions) (Objects, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return Import(doc, opts)
}

// LoadsJSON reconstructs an object graph from in-memory JSON text.
func LoadsJSON(data []byte, opts LoadOptions) (Objects, error) {
	return ReadJSON(bytes.NewReader(data), opts)
}

// ImportJSON reads a JSON file at path and reconstructs its object graph.
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string, opts LoadOptions) (Objects, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts)
}
