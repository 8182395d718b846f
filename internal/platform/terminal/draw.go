package terminal

import "github.com/gdamore/tcell/v2"

// Size returns the screen size in cells.
func (t *Terminal) Size() (width, height int) {
	return t.screen.Size()
}

// Clear clears the screen.
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// Show flushes drawing to the terminal.
func (t *Terminal) Show() {
	t.screen.Show()
}

// DrawText writes s starting at (x, y), clipped to the screen width.
func (t *Terminal) DrawText(x, y int, s string) {
	width, height := t.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range s {
		if x >= width {
			return
		}
		if x >= 0 {
			t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
		x++
	}
}

// DrawOutline draws a border around the screen when the presentation asks
// for one.
func (t *Terminal) DrawOutline() {
	if !t.presentation.Outline {
		return
	}
	width, height := t.screen.Size()
	if width < 2 || height < 2 {
		return
	}
	style := tcell.StyleDefault
	for x := 1; x < width-1; x++ {
		t.screen.SetContent(x, 0, tcell.RuneHLine, nil, style)
		t.screen.SetContent(x, height-1, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < height-1; y++ {
		t.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		t.screen.SetContent(width-1, y, tcell.RuneVLine, nil, style)
	}
	t.screen.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	t.screen.SetContent(width-1, 0, tcell.RuneURCorner, nil, style)
	t.screen.SetContent(0, height-1, tcell.RuneLLCorner, nil, style)
	t.screen.SetContent(width-1, height-1, tcell.RuneLRCorner, nil, style)
}

// Sync redraws the whole screen, for use after a resize.
func (t *Terminal) Sync() {
	t.screen.Sync()
}
