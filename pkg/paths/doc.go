// Package paths provides path classification and resolution for shipshape.
//
// It answers the two path questions a deployment run asks:
//
//   - Is the configured destination a network-style (UNC) location? This
//     drives the post-deploy working directory: commands cannot chdir into
//     a UNC share, so the pipeline stays in the invocation directory.
//   - What are the absolute source and destination paths for this run,
//     given the invocation working directory?
//
// Classification is a pure string test on the configured value, before any
// resolution. The Classifier function type exists so the pipeline can be
// tested with a substitute predicate instead of real network paths.
//
// # Usage
//
//	import "github.com/klaus-strele/shipshape/pkg/paths"
//
//	paths.IsNetworkPath(`\\fileserver\apps`) // true
//	paths.IsNetworkPath("/srv/apps")         // false
//
//	src := paths.ResolveSource(cwd, "dist")
//	dst := paths.ResolveDestination(cwd, `\\fileserver\apps\site`)
package paths
