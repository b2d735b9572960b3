// Package schemaio loads a schema-definition document from disk into the
// schema package's plain spec types. It supports YAML (the format used by
// doismellburning/samoyed's own config loading, via gopkg.in/yaml.v3) and
// JSON, as the two concrete front ends feeding the out-of-scope
// schema-definition/validation layer named in the codec's design notes.
package schemaio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oceancomm/uwacodec/internal/schema"
)

// Load reads a MessageSpec from path, choosing a decoder by file
// extension: .yaml/.yml for YAML, .json for JSON.
func Load(path string) (schema.MessageSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.MessageSpec{}, fmt.Errorf("schemaio: %w", err)
	}

	var spec schema.MessageSpec
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return schema.MessageSpec{}, fmt.Errorf("schemaio: parsing %s as YAML: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &spec); err != nil {
			return schema.MessageSpec{}, fmt.Errorf("schemaio: parsing %s as JSON: %w", path, err)
		}
	default:
		return schema.MessageSpec{}, fmt.Errorf("schemaio: unsupported schema file extension %q", ext)
	}

	return spec, nil
}
