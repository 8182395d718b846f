// Package input aggregates keyboard and pointer signals into pollable state.
//
// A Tracker is bound to one Surface. Platforms deliver raw signals to the
// listeners the tracker registers; the handlers update a key-state table
// and a pointer-state record in place; a frame task snapshots pointer
// motion no more than once per SampleInterval. The host reads the state
// whenever it needs it. Nothing is emitted outward.
//
// # Capture Modes
//
// In the default mode the tracker listens for as long as it exists, and
// asks the surface to present itself as directly focusable.
//
// With WithExclusiveCapture the tracker listens only while the surface
// holds exclusive pointer capture:
//
//	Inactive --(capture acquired by surface)--> Active
//	Active   --(capture held by anything else)--> Inactive
//
// An activation signal on the surface requests capture. If the platform
// refuses, the tracker simply stays Inactive.
//
// # Platform Collaborators
//
// Surface, Capture, Scheduler and Clock abstract the host environment so
// the tracker runs the same against a terminal (platform/terminal) or a
// virtual environment (platform/sim).
//
// # Thread Safety
//
// The tracker assumes single-threaded delivery: every signal, capture
// notification and frame callback must arrive on one goroutine. There is
// no locking.
package input
