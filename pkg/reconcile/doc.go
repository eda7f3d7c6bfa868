// Package reconcile prepares a destination directory for deployment and
// copies the source tree into it.
//
// Reconcile brings the destination to a known state: it creates the
// directory if absent, then removes every immediate entry whose
// canonical (uppercased) name is not on the keep set. Keep-set entries
// that do not exist are silently ignored. After a successful pass the
// destination contains exactly the kept entries, contents untouched.
//
// CopyTree then copies every entry of the source directory into the
// destination, overwriting whatever collides, kept entries included.
// Symlinks are reproduced with their original target rather than
// followed.
//
// Both operate through the types.FS seam so tests can run against an
// in-memory filesystem. Neither takes locks: a concurrent writer to the
// destination between the two calls is an accepted hazard.
package reconcile
