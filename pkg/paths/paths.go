package paths

import "path/filepath"

// ResolveSource resolves the configured source directory against the
// invocation root. Absolute sources are cleaned and used as-is.
func ResolveSource(root, source string) string {
	if filepath.IsAbs(source) {
		return filepath.Clean(source)
	}
	return filepath.Join(root, source)
}

// ResolveDestination resolves the configured destination against the
// invocation root. Network-style destinations are returned verbatim:
// they already name an absolute remote location and cleaning them would
// mangle the UNC prefix on non-Windows platforms.
func ResolveDestination(root, destination string) string {
	if IsNetworkPath(destination) {
		return destination
	}
	if filepath.IsAbs(destination) {
		return filepath.Clean(destination)
	}
	return filepath.Join(root, destination)
}
