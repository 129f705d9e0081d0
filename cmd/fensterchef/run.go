package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/thepsauce/fensterchef/internal/config"
	"github.com/thepsauce/fensterchef/internal/config/parse"
	"github.com/thepsauce/fensterchef/internal/expr"
	"github.com/thepsauce/fensterchef/internal/frame"
	"github.com/thepsauce/fensterchef/internal/keysym"
	"github.com/thepsauce/fensterchef/internal/monitor"
	"github.com/thepsauce/fensterchef/internal/notify"
	"github.com/thepsauce/fensterchef/internal/sync"
	"github.com/thepsauce/fensterchef/internal/winlist"
	"github.com/thepsauce/fensterchef/internal/winstate"
	"github.com/thepsauce/fensterchef/internal/wm"
	"github.com/thepsauce/fensterchef/internal/x11"
)

// display bundles everything connectDisplay produces, so run and
// runCheckConfig share one setup path without run's event-loop concerns
// leaking into the check-only path.
type display struct {
	xgbConn *xgb.Conn
	conn    *x11.Conn
	keys    *keysym.Table
	screen  *xproto.ScreenInfo
}

func connectDisplay() (*display, error) {
	xgbConn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to X: %w", err)
	}
	screen := xproto.Setup(xgbConn).DefaultScreen(xgbConn)
	conn := &x11.Conn{XGB: xgbConn, Root: screen.Root, Atoms: x11.NewAtoms(xgbConn)}
	keys, err := keysym.Load(xgbConn)
	if err != nil {
		xgbConn.Close()
		return nil, fmt.Errorf("loading keyboard mapping: %w", err)
	}
	return &display{xgbConn: xgbConn, conn: conn, keys: keys, screen: screen}, nil
}

func runCheckConfig(configPath, logLevel string) error {
	log := newLogger(logLevel)
	d, err := connectDisplay()
	if err != nil {
		return err
	}
	defer d.xgbConn.Close()

	disp := newCheckConfigDispatcher()

	_, errs := parse.Parse(configPath, disp, d.keys, log)
	if len(errs) == 0 {
		fmt.Println("configuration OK")
		return nil
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	return fmt.Errorf("%d configuration error(s)", len(errs))
}

func run(configPath, logLevel string) error {
	log := newLogger(logLevel)
	d, err := connectDisplay()
	if err != nil {
		return err
	}
	defer d.xgbConn.Close()

	if err := d.conn.InitRandr(); err != nil {
		log.Warn().Err(err).Msg("RandR unavailable, falling back to one monitor covering the whole screen")
	} else if err := d.conn.SelectRandrInput(); err != nil {
		log.Warn().Err(err).Msg("failed to subscribe to RandR hotplug events")
	}

	if err := becomeWM(d.conn); err != nil {
		return fmt.Errorf("could not become window manager (another one running?): %w", err)
	}

	checkWin, err := xproto.NewWindowId(d.xgbConn)
	if err != nil {
		return err
	}
	if err := xproto.CreateWindowChecked(d.xgbConn, d.screen.RootDepth, checkWin, d.conn.Root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOutput, d.screen.RootVisual,
		xproto.CwOverrideRedirect, []uint32{1}).Check(); err != nil {
		return fmt.Errorf("creating supporting-WM-check window: %w", err)
	}
	if err := d.conn.InitRootProperties(checkWin, int32(d.screen.WidthInPixels), int32(d.screen.HeightInPixels)); err != nil {
		log.Warn().Err(err).Msg("failed to write initial root properties")
	}

	cfg := config.Default()
	monitors, err := d.conn.QueryMonitors(frame.Gaps{Inner: cfg.Settings.Gaps.Inner[0], Outer: cfg.Settings.Gaps.Outer[0]})
	if err != nil || len(monitors) == 0 {
		monitors = []*monitor.Monitor{monitor.New("default", monitor.Rect{
			X: 0, Y: 0, Width: int32(d.screen.WidthInPixels), Height: int32(d.screen.HeightInPixels),
		}, true, frame.Gaps{})}
	}
	monSet := monitor.NewSet(frame.NewStash())
	monSet.Reconcile(monitors, frame.Gaps{})

	reg := winstate.NewRegistry()
	reg.Logger = log
	notifyWin, err := notify.New(d.conn, d.conn.Root)
	if err != nil {
		return fmt.Errorf("creating notification window: %w", err)
	}
	listWin, err := winlist.New(d.conn, d.conn.Root)
	if err != nil {
		return fmt.Errorf("creating window-list popup: %w", err)
	}
	synchronizer := sync.New(d.conn, notifyWin, cfg)

	ctx := wm.New(d.conn, d.keys, monSet, reg, frame.NewStash(), cfg, synchronizer, notifyWin, listWin)

	parsed, errs := parse.Parse(configPath, ctx.Actions, d.keys, log)
	for _, e := range errs {
		log.Warn().Err(e).Msg("configuration error")
	}
	ctx.Config = parsed
	ctx.VM = expr.NewVM(ctx.Actions, parsed.Globals.Len())
	synchronizer.Config = parsed

	ctx.OnReloadConfig = func() {
		reparsed, errs := parse.Parse(configPath, ctx.Actions, d.keys, log)
		for _, e := range errs {
			log.Warn().Err(e).Msg("configuration error")
		}
		ctx.Config = reparsed
		ctx.VM = expr.NewVM(ctx.Actions, reparsed.Globals.Len())
		synchronizer.Config = reparsed
		if err := regrabInput(d.conn, d.keys, reparsed); err != nil {
			log.Warn().Err(err).Msg("failed to regrab keys/buttons after reload")
		}
	}
	ctx.OnMergeDefault = func(section string) { mergeDefaultSection(ctx.Config, section) }

	expired := make(chan struct{}, 1)
	notifyWin.OnExpire = func() {
		select {
		case expired <- struct{}{}:
		default:
		}
	}

	if err := regrabInput(d.conn, d.keys, ctx.Config); err != nil {
		log.Warn().Err(err).Msg("failed to grab configured keys/buttons")
	}

	if err := synchronizer.Cycle(monSet, reg); err != nil {
		log.Warn().Err(err).Msg("initial synchronizer cycle failed")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	events := make(chan xgb.Event, 64)
	go pumpEvents(d.xgbConn, events, log)

	for !ctx.QuitRequested() {
		select {
		case <-sig:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			dispatchEvent(ctx, d, ev, log)
			if err := synchronizer.Cycle(monSet, reg); err != nil {
				log.Warn().Err(err).Msg("synchronizer cycle failed")
			}
		case <-expired:
			synchronizer.NotifyExpired()
			if err := synchronizer.Cycle(monSet, reg); err != nil {
				log.Warn().Err(err).Msg("synchronizer cycle failed")
			}
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil
}

func pumpEvents(conn *xgb.Conn, out chan<- xgb.Event, log zerolog.Logger) {
	defer close(out)
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			log.Warn().Err(err).Msg("event wait error")
			continue
		}
		if ev == nil {
			return
		}
		out <- ev
	}
}
