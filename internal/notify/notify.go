// Package notify implements the system-notification widget of spec.md §6:
// a small always-on-top window showing a line of text for a limited time,
// driven by the `show-message` action. Grounded on
// original_source/src/notification.c's show/auto-hide contract; pixel
// rendering stays out of scope per spec.md §1, so text is measured (not
// shaped) with golang.org/x/image/font/basicfont and drawn with simple
// xproto.PolyText8 calls instead of a font-rendering library.
package notify

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/image/font/basicfont"

	"github.com/thepsauce/fensterchef/internal/x11"
)

// Notifier shows and hides the notification popup.
type Notifier interface {
	Show(text string, x, y int32, duration time.Duration)
	Hide()
}

// Window is the x11-backed Notifier implementation.
type Window struct {
	conn    *x11.Conn
	win     xproto.Window
	visible bool
	timer   *time.Timer
	// OnExpire is called from the timer's own goroutine when the display
	// duration elapses; the event loop wires this to post onto its expiry
	// channel rather than touching X state off the event-loop thread.
	OnExpire func()
}

const facePadding = 6 // matches config.Notification.Padding's default

// New creates the notification window, unmapped, sized for one line of
// basicfont.Face7x13 text plus padding on every side.
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

// Show implements Notifier: maps the window at (x,y) sized for text, draws
// it, and schedules auto-hide after duration.
func (w *Window) Show(text string, x, y int32, duration time.Duration) {
	width := measureWidth(text) + facePadding*2
	height := basicfont.Face7x13.Height + facePadding*2

	xproto.ConfigureWindow(w.conn.XGB, w.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(x), uint32(y), uint32(width), uint32(height)})
	xproto.MapWindow(w.conn.XGB, w.win)
	w.drawText(text)
	w.visible = true

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(duration, func() {
		if w.OnExpire != nil {
			w.OnExpire()
		}
	})
}

// Hide implements Notifier.
func (w *Window) Hide() {
	if w.timer != nil {
		w.timer.Stop()
	}
	if !w.visible {
		return
	}
	xproto.UnmapWindow(w.conn.XGB, w.win)
	w.visible = false
}

func (w *Window) drawText(text string) {
	gc, err := xproto.NewGcontextId(w.conn.XGB)
	if err != nil {
		return
	}
	defer xproto.FreeGC(w.conn.XGB, gc)
	xproto.CreateGC(w.conn.XGB, gc, xproto.Drawable(w.win), 0, nil)
	xproto.PolyText8(w.conn.XGB, xproto.Drawable(w.win), gc, facePadding, facePadding+basicfont.Face7x13.Ascent,
		encodePolyText(text))
}

// measureWidth sums each rune's advance width in basicfont.Face7x13,
// avoiding the x/image/font.MeasureString convenience wrapper's dependency
// on a full font.Drawer (overkill for a fixed-width bitmap face).
func measureWidth(text string) int32 {
	var width int32
	for range text {
		width += int32(basicfont.Face7x13.Advance)
	}
	return width
}

// encodePolyText builds the TEXTITEM8 wire format PolyText8 expects: one
// byte of string length, one byte of delta (0, unused here), then the bytes.
func encodePolyText(text string) []byte {
	b := []byte(text)
	out := make([]byte, 0, len(b)+2)
	out = append(out, byte(len(b)), 0)
	out = append(out, b...)
	return out
}
