package key

// Table maps key identifiers to their pressed state.
//
// A key that was never signalled reads as not pressed. Entries are only
// ever overwritten, never removed, so the table grows with the set of
// distinct keys seen over its lifetime.
//
// Table is not safe for concurrent use; it is mutated on the host's event
// goroutine and read by the same goroutine.
type Table struct {
	state map[string]bool
}

// NewTable creates an empty key-state table.
func NewTable() *Table {
	return &Table{state: make(map[string]bool)}
}

// Press marks k as held down. Repeated presses re-assert true.
func (t *Table) Press(k string) {
	t.state[k] = true
}

// Release marks k as released.
func (t *Table) Release(k string) {
	t.state[k] = false
}

// Pressed reports whether k is currently held down.
func (t *Table) Pressed(k string) bool {
	return t.state[k]
}

// Known reports whether k has ever been pressed or released.
func (t *Table) Known(k string) bool {
	_, ok := t.state[k]
	return ok
}

// Len returns the number of distinct keys ever signalled.
func (t *Table) Len() int {
	return len(t.state)
}

// Held returns the identifiers of all keys currently held down.
// The order is unspecified.
func (t *Table) Held() []string {
	held := make([]string, 0, len(t.state))
	for k, down := range t.state {
		if down {
			held = append(held, k)
		}
	}
	return held
}

// Snapshot returns a copy of every entry in the table.
func (t *Table) Snapshot() map[string]bool {
	out := make(map[string]bool, len(t.state))
	for k, v := range t.state {
		out[k] = v
	}
	return out
}
