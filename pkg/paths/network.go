package paths

import "strings"

// uncPrefix is the UNC share prefix: two backslashes.
const uncPrefix = `\\`

// Classifier reports whether a configured destination string names a
// network-style location. The pipeline takes one of these so tests can
// substitute their own predicate.
type Classifier func(path string) bool

// IsNetworkPath returns true iff path begins with the double-backslash
// UNC prefix. The test is on the configured string as written, not on a
// resolved path, and forward slashes never count.
func IsNetworkPath(path string) bool {
	return strings.HasPrefix(path, uncPrefix)
}
