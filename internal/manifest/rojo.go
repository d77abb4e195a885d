package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hjson/hjson-go/v4"

	"github.com/rbxts-luau/rbxts-luau/internal/defs"
	"github.com/rbxts-luau/rbxts-luau/pkg/models"
)

// NewRojoFile returns the project-tree manifest for a package: a single
// metadata node mapping the package root to ".".
func NewRojoFile(packageName string) models.RojoFile {
	return models.RojoFile{
		Name: packageName,
		Tree: models.RojoMetadata{Path: "."},
	}
}

// MarshalRelaxedJSON encodes v in the layout used for luau-config.json and
// project files: every key quoted, comma separators, tab indentation and
// opening braces on the key's line. No trailing newline is written.
func MarshalRelaxedJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteRelaxedJSON encodes v with MarshalRelaxedJSON and writes it to path.
func WriteRelaxedJSON(path string, v any) error {
	data, err := MarshalRelaxedJSON(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ParseRojoFile decodes a Rojo project file. Comments, quoteless keys and
// trailing commas are accepted.
func ParseRojoFile(data []byte) (models.RojoFile, error) {
	var f models.RojoFile
	if err := hjson.Unmarshal(data, &f); err != nil {
		return models.RojoFile{}, fmt.Errorf("parse rojo project: %w", err)
	}
	return f, nil
}

// ReadRojoFile reads and decodes the Rojo project file at path.
func ReadRojoFile(path string) (models.RojoFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.RojoFile{}, fmt.Errorf("read rojo project: %w", err)
	}
	return ParseRojoFile(data)
}
