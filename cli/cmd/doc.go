// Package cmd implements the kdlhtml subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the KDL configuration file.
	ConfigIdentifier = "config"
)
