// Package config handles configuration management for shipshape.
// It loads the JSON deployment file, resolves the requested environment
// against it, and validates the effective configuration before the
// pipeline is allowed to touch the filesystem.
//
// Two file shapes are accepted. The structured shape carries shared
// defaults plus per-environment overrides:
//
//	{
//	  "default":      { "source": "dist", "keepList": ["log"] },
//	  "environments": { "staging": { "destination": "/srv/staging" },
//	                    "prod":    { "destination": "\\\\fileserver\\apps" } }
//	}
//
// The legacy flat shape is a single object with the deployment fields at
// the top level. Environment lookup is case-insensitive, and the merge is
// shallow: a key present in the selected environment replaces the default
// value wholesale, keys absent in the override fall through.
package config
