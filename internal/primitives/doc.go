// Package primitives provides the small value-level helpers the container
// is built on: draft cloning, structural fingerprints and snapshot rendering.
//
// Core invariants:
// - Clone never returns a value that aliases mutable memory of its input
// - Fingerprint depends only on structure, never on identity
//
// Snapshots are plain Go values. Anything Clone cannot copy (channels,
// funcs, unsafe pointers) is shared and must be treated as immutable.
package primitives
