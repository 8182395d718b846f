// Package mouse provides the live pointer-state record.
//
// State holds two copies of the pointer position and wheel accumulator:
// the current values, written by event handlers as signals arrive, and the
// last-sampled values, written only by the periodic sampler. A host that
// polls once per frame computes motion since the previous sample with
// Delta and WheelDelta, without losing movement that arrived between polls.
//
//	p := tracker.Pointer()
//	dx, dy := p.Delta()
//	camera.Rotate(dx, dy)
//
// The wheel accumulator is never reset or clamped; it is always consumed
// as a delta.
//
// # Thread Safety
//
// State is not synchronized. It is mutated and read on the single event
// goroutine that delivers input signals and frame ticks.
package mouse
