package key

// Identifiers for non-character keys.
const (
	Escape    = "Escape"
	Enter     = "Enter"
	Tab       = "Tab"
	Backspace = "Backspace"
	Delete    = "Delete"
	Insert    = "Insert"
	Home      = "Home"
	End       = "End"
	PageUp    = "PageUp"
	PageDown  = "PageDown"

	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"

	// Space is the identifier for the space bar, which produces " ".
	Space = " "

	Pause       = "Pause"
	PrintScreen = "PrintScreen"
	ScrollLock  = "ScrollLock"
	NumLock     = "NumLock"
	CapsLock    = "CapsLock"
)

var functionKeys = [...]string{
	"F1", "F2", "F3", "F4", "F5", "F6",
	"F7", "F8", "F9", "F10", "F11", "F12",
}

// Function returns the identifier for function key Fn (1-12).
// It returns "" for n outside that range.
func Function(n int) string {
	if n < 1 || n > len(functionKeys) {
		return ""
	}
	return functionKeys[n-1]
}

// Rune returns the identifier for a character key.
func Rune(r rune) string {
	return string(r)
}
