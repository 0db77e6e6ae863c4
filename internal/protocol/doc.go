// Package protocol owns the wire codec and its primitive types.
//
// Ownership boundary:
// - encode/decode contract
// - fixed-width, string and uuid primitives
// - varint/varlong groups
// - length-prefixed containers
//
// Every type here encodes to an io.Writer and decodes from an io.Reader
// supplied by the caller. Nothing is buffered or retained between calls.
package protocol
