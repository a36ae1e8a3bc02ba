package cli

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads a YAML document
// and maps its top-level keys onto Kong flags.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Flag names with hyphens (e.g. "log-level") may be written with either
// hyphens or underscores in the file; both spellings resolve to the same
// flag. Command-line flags override values loaded this way.
//
// Example:
//
//	log-level: debug
//	log-format: json
//	dynamo-table: rollenv
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return config{}, nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// A malformed or absent config file yields an empty resolver rather
		// than a startup failure; flags and defaults still apply.
		return config{}, nil
	}

	return config(doc), nil
}

// config implements [kong.Resolver] over a flat YAML document.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := c[name]; ok {
		return value, nil
	}

	if value, ok := c[underscoreName]; ok {
		return value, nil
	}

	return nil, nil
}
