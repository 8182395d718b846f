// Package key provides the live key-state table and key identifiers.
//
// Keys are identified by strings. Printable keys use the character they
// produce ("w", "W", "1", "/"); other keys use the names defined in this
// package, which follow the DOM KeyboardEvent.key values so that identifiers
// read the same regardless of which platform delivered the event.
//
// The table is pull-based: a host reads Pressed each frame instead of
// handling discrete key events.
package key
