// Package cmd provides the roll, repl, and serve subcommands.
package cmd

// CacheIdentifier is the kong variable identifier containing the path to
// the runtime cache directory.
const CacheIdentifier = "cache"

// ConfigIdentifier is the kong variable identifier containing the path of
// the configuration file, without its ".json"/".yaml" extension.
const ConfigIdentifier = "config"
