package meta

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"
)

// SupportedSchema is the range of metadata schema versions this build understands.
const SupportedSchema = ">= 1.0.0, < 2.0.0"

// Schema is the decoded form of a metadata file.
type Schema struct {
	Version string       `toml:"schema" msgpack:"schema"`
	Types   []TypeSchema `toml:"type" msgpack:"types"`
}

// TypeSchema declares one class type and its members.
type TypeSchema struct {
	Name       string           `toml:"name" msgpack:"name"`
	Properties []PropertySchema `toml:"property" msgpack:"properties,omitempty"`
	Indexers   []IndexerSchema  `toml:"indexer" msgpack:"indexers,omitempty"`
	Methods    []MethodSchema   `toml:"method" msgpack:"methods,omitempty"`
}

// PropertySchema declares a property; both accessors are generated unless restricted.
type PropertySchema struct {
	Name      string `toml:"name" msgpack:"name"`
	Type      string `toml:"type" msgpack:"type"`
	ReadOnly  bool   `toml:"read_only" msgpack:"read_only,omitempty"`
	WriteOnly bool   `toml:"write_only" msgpack:"write_only,omitempty"`
	NonPublic bool   `toml:"non_public" msgpack:"non_public,omitempty"`
}

// IndexerSchema declares an indexer. Name defaults to "Item".
type IndexerSchema struct {
	Name      string   `toml:"name" msgpack:"name,omitempty"`
	Type      string   `toml:"type" msgpack:"type"`
	Params    []string `toml:"params" msgpack:"params"`
	ReadOnly  bool     `toml:"read_only" msgpack:"read_only,omitempty"`
	WriteOnly bool     `toml:"write_only" msgpack:"write_only,omitempty"`
	NonPublic bool     `toml:"non_public" msgpack:"non_public,omitempty"`
}

// MethodSchema declares an ordinary method. Special marks it special-name even though
// no property backs it, which is how hand-written get_X lookalikes are described.
type MethodSchema struct {
	Name      string   `toml:"name" msgpack:"name"`
	Params    []string `toml:"params" msgpack:"params,omitempty"`
	Returns   string   `toml:"returns" msgpack:"returns"`
	Static    bool     `toml:"static" msgpack:"static,omitempty"`
	Special   bool     `toml:"special" msgpack:"special,omitempty"`
	NonPublic bool     `toml:"non_public" msgpack:"non_public,omitempty"`
}

// Decode reads a metadata schema from TOML and checks its version.
func Decode(r io.Reader, name string) (*Schema, error) {
	var s Schema
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	if !md.IsDefined("schema") || strings.TrimSpace(s.Version) == "" {
		return nil, fmt.Errorf("%s: missing schema version", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if err := CheckSchemaVersion(s.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &s, nil
}

// DecodeFile reads and decodes a metadata file from disk.
func DecodeFile(path string) (*Schema, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, path)
}

// CheckSchemaVersion validates a schema version string against SupportedSchema.
func CheckSchemaVersion(v string) error {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid schema version %q: %w", v, err)
	}
	c, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return err
	}
	if ok, errs := c.Validate(ver); !ok {
		return fmt.Errorf("unsupported schema version %s (want %s): %w", ver, SupportedSchema, errors.Join(errs...))
	}
	return nil
}
