// Package winlist implements the window-list/run-prompt widget of spec.md
// §6: a small popup offering Open/SelectNext/SelectPrev/Commit/Close,
// driven by the `show-list`/`show-run` actions. Grounded on
// original_source/src/popup.c's list-select contract; rendering shares
// internal/notify's basicfont-measured text drawing rather than a second
// font path.
package winlist

import (
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/image/font/basicfont"

	"github.com/thepsauce/fensterchef/internal/x11"
)

// Lister is the opaque collaborator interface spec.md §6 names.
type Lister interface {
	Open(items []string)
	SelectNext()
	SelectPrev()
	Commit() (string, bool)
	Close()
}

// Window is the x11-backed Lister implementation.
type Window struct {
	conn    *x11.Conn
	win     xproto.Window
	items   []string
	cursor  int
	visible bool
}

const (
	listPadding   = 6
	rowHeight     = basicfont.Face7x13.Height + 4
	maxVisibleRow = 12
)

// New creates the list popup window, unmapped.
func New(conn *x11.Conn, parent xproto.Window) (*Window, error) {
	win, err := xproto.NewWindowId(conn.XGB)
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn.XGB).DefaultScreen(conn.XGB)
	err = xproto.CreateWindowChecked(
		conn.XGB, screen.RootDepth, win, parent,
		0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwOverrideRedirect, []uint32{1},
	).Check()
	if err != nil {
		return nil, err
	}
	return &Window{conn: conn, win: win}, nil
}

// Open implements Lister: populates the item list, resets the cursor to
// the first entry, maps and draws the window.
func (w *Window) Open(items []string) {
	w.items = items
	w.cursor = 0
	if len(items) == 0 {
		return
	}
	visible := len(items)
	if visible > maxVisibleRow {
		visible = maxVisibleRow
	}
	width := maxWidth(items) + listPadding*2
	height := int32(visible)*rowHeight + listPadding*2

	xproto.ConfigureWindow(w.conn.XGB, w.win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)})
	xproto.MapWindow(w.conn.XGB, w.win)
	w.visible = true
	w.render()
}

// SelectNext implements Lister.
func (w *Window) SelectNext() {
	if len(w.items) == 0 {
		return
	}
	w.cursor = (w.cursor + 1) % len(w.items)
	w.render()
}

// SelectPrev implements Lister.
func (w *Window) SelectPrev() {
	if len(w.items) == 0 {
		return
	}
	w.cursor = (w.cursor - 1 + len(w.items)) % len(w.items)
	w.render()
}

// Commit implements Lister: returns the selected item and closes the popup.
func (w *Window) Commit() (string, bool) {
	if len(w.items) == 0 {
		w.Close()
		return "", false
	}
	selected := w.items[w.cursor]
	w.Close()
	return selected, true
}

// Close implements Lister.
func (w *Window) Close() {
	if !w.visible {
		return
	}
	if w.conn != nil {
		xproto.UnmapWindow(w.conn.XGB, w.win)
	}
	w.visible = false
	w.items = nil
}

func (w *Window) render() {
	if w.conn == nil {
		return
	}
	gc, err := xproto.NewGcontextId(w.conn.XGB)
	if err != nil {
		return
	}
	defer xproto.FreeGC(w.conn.XGB, gc)
	xproto.CreateGC(w.conn.XGB, gc, xproto.Drawable(w.win), 0, nil)

	for i, item := range w.items {
		if i >= maxVisibleRow {
			break
		}
		marker := "  "
		if i == w.cursor {
			marker = "> "
		}
		line := marker + item
		b := []byte(line)
		textItem := append([]byte{byte(len(b)), 0}, b...)
		y := listPadding + int32(i)*rowHeight + basicfont.Face7x13.Ascent
		xproto.PolyText8(w.conn.XGB, xproto.Drawable(w.win), gc, listPadding, y, textItem)
	}
}

func maxWidth(items []string) int32 {
	var max int32
	for _, s := range items {
		w := int32(len(s)+2) * int32(basicfont.Face7x13.Advance)
		if w > max {
			max = w
		}
	}
	return max
}
