package sync

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/monitor"
	"github.com/thepsauce/fensterchef/internal/notify"
	"github.com/thepsauce/fensterchef/internal/winstate"
)

// Synchronizer runs the eight-step reconciliation of spec.md §4.6 once per
// event cycle. It keeps the small amount of state needed to detect "did
// focus change" / "did the client set change" between cycles (step 6/7),
// since those steps are write-backs only when something actually moved.
type Synchronizer struct {
	Backend Backend
	Notify  notify.Notifier
	Config  *config.Config

	lastFocusedClient   xproto.Window
	lastClientSignature string
	notifyPending       bool
}

// New returns a Synchronizer bound to backend, the notification widget and
// the live configuration (for border colors).
func New(backend Backend, notifier notify.Notifier, cfg *config.Config) *Synchronizer {
	return &Synchronizer{Backend: backend, Notify: notifier, Config: cfg}
}

// NotifyExpired records that the notification widget's auto-hide timer
// fired; step 8 of the next Cycle call hides it. Called from the event
// loop's timer channel, never directly from the notify package (which has
// no reference back to the synchronizer).
func (s *Synchronizer) NotifyExpired() { s.notifyPending = true }

// Cycle runs all eight steps against the current monitor set and window
// registry.
func (s *Synchronizer) Cycle(monitors *monitor.Set, reg *winstate.Registry) error {
	// Step 1: struts, then usable-rectangle write-back.
	s.recomputeStruts(monitors.Monitors(), reg)
	if primary := monitors.Primary(); primary != nil {
		u := primary.UsableRect()
		if err := s.Backend.SetWorkarea(u.X, u.Y, u.Width, u.Height); err != nil {
			return err
		}
	}

	// Steps 2/3: border color and stacking order share one pass over the
	// window list, since both need the same grouped order.
	order := computeStackingOrder(reg.AllByAge())
	top := topFloating(order)
	focused := reg.Focused()

	// Steps 4/5: geometry, border color, map/unmap, WM_STATE, HIDDEN.
	if err := s.pushGeometryAndVisibility(order, focused, top); err != nil {
		return err
	}
	if err := s.Backend.Restack(clientIDs(order)); err != nil {
		return err
	}

	// Step 6: focus.
	if err := s.syncFocus(focused); err != nil {
		return err
	}

	// Step 7: client lists.
	if err := s.syncClientLists(reg); err != nil {
		return err
	}

	// Step 8: notification auto-hide.
	s.expireNotificationIfPending()
	return nil
}

func (s *Synchronizer) recomputeStruts(monitors []*monitor.Monitor, reg *winstate.Registry) {
	var infos []monitor.WindowStrutInfo
	for _, w := range reg.AllByAge() {
		sp := w.Strut()
		if sp.IsZero() {
			continue
		}
		r := w.Rect()
		infos = append(infos, monitor.WindowStrutInfo{
			CenterX: r.X + r.Width/2,
			CenterY: r.Y + r.Height/2,
			Strut: monitor.Strut{
				Left: sp.Left, Right: sp.Right, Top: sp.Top, Bottom: sp.Bottom,
			},
		})
	}
	monitor.RecomputeStruts(monitors, infos)
}

func (s *Synchronizer) pushGeometryAndVisibility(order []*winstate.Window, focused, top *winstate.Window) error {
	for _, w := range order {
		color := borderColor(w, focused, top, s.Config.Settings.Border)
		if err := s.Backend.SetBorderColor(w.Client(), color); err != nil {
			return err
		}
		if w.Visible() {
			g := windowGeometry(w)
			if err := s.Backend.ConfigureWindow(w.Client(), g.X, g.Y, g.Width, g.Height, g.BorderWidth); err != nil {
				return err
			}
			if err := s.Backend.Map(w.Client()); err != nil {
				return err
			}
			if err := s.Backend.SetWMState(w.Client(), uint32(winstate.StateNormal)); err != nil {
				return err
			}
			if err := s.Backend.SetHidden(w.Client(), false); err != nil {
				return err
			}
			continue
		}
		if err := s.Backend.Unmap(w.Client()); err != nil {
			return err
		}
		if err := s.Backend.SetWMState(w.Client(), uint32(winstate.StateWithdrawn)); err != nil {
			return err
		}
		if err := s.Backend.SetHidden(w.Client(), true); err != nil {
			return err
		}
	}
	return nil
}

func (s *Synchronizer) syncFocus(focused *winstate.Window) error {
	var client xproto.Window
	if focused != nil {
		client = focused.Client()
	}
	if client == s.lastFocusedClient {
		return nil
	}
	s.lastFocusedClient = client
	if focused == nil {
		return nil
	}
	if err := s.Backend.Focus(client, focused.Protocols().TakeFocus); err != nil {
		return err
	}
	return s.Backend.SetActiveWindow(client)
}

func (s *Synchronizer) syncClientLists(reg *winstate.Registry) error {
	age := reg.AllByAge()
	stacking := reg.AllByStacking()
	sig := clientListSignature(age, stacking)
	if sig == s.lastClientSignature {
		return nil
	}
	s.lastClientSignature = sig
	if err := s.Backend.SetClientList(clientIDs(age)); err != nil {
		return err
	}
	return s.Backend.SetClientListStacking(clientIDs(stacking))
}

func (s *Synchronizer) expireNotificationIfPending() {
	if !s.notifyPending {
		return
	}
	s.notifyPending = false
	if s.Notify != nil {
		s.Notify.Hide()
	}
}

func clientIDs(ws []*winstate.Window) []xproto.Window {
	out := make([]xproto.Window, len(ws))
	for i, w := range ws {
		out[i] = w.Client()
	}
	return out
}

func clientListSignature(age, stacking []*winstate.Window) string {
	var b strings.Builder
	for _, w := range age {
		fmt.Fprintf(&b, "%d,", uint32(w.Client()))
	}
	b.WriteByte('|')
	for _, w := range stacking {
		fmt.Fprintf(&b, "%d,", uint32(w.Client()))
	}
	return b.String()
}
