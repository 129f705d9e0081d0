package x11

import (
	"github.com/BurntSushi/xgb/randr"

	"github.com/thepsauce/fensterchef/internal/frame"
	"github.com/thepsauce/fensterchef/internal/monitor"
)

// InitRandr registers the RandR extension on conn; must be called once
// before any other randr.* request, including QueryMonitors.
func (c *Conn) InitRandr() error {
	return randr.Init(c.XGB)
}

// SelectRandrInput subscribes the root window to RandR hotplug
// notifications, grounded on original_source/src/monitor.c's
// initialize_monitors (xcb_randr_select_input with the same four masks).
func (c *Conn) SelectRandrInput() error {
	return randr.SelectInputChecked(c.XGB, c.Root,
		randr.NotifyMaskScreenChange|
			randr.NotifyMaskOutputChange|
			randr.NotifyMaskCrtcChange|
			randr.NotifyMaskOutputProperty).Check()
}

// QueryMonitors re-queries every connected, enabled RandR output and
// returns one monitor.Monitor per output, the primary one first-marked,
// grounded on original_source/src/monitor.c's query_monitors (same
// primary-output / screen-resources / output-info / crtc-info request
// sequence, translated from XCB to xgb/randr).
func (c *Conn) QueryMonitors(gaps frame.Gaps) ([]*monitor.Monitor, error) {
	resources, err := randr.GetScreenResourcesCurrent(c.XGB, c.Root).Reply()
	if err != nil {
		return nil, err
	}

	var primaryOutput randr.Output
	if primary, err := randr.GetOutputPrimary(c.XGB, c.Root).Reply(); err == nil {
		primaryOutput = primary.Output
	}

	var monitors []*monitor.Monitor
	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(c.XGB, output, resources.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(c.XGB, info.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		rect := monitor.Rect{
			X: int32(crtc.X), Y: int32(crtc.Y),
			Width: int32(crtc.Width), Height: int32(crtc.Height),
		}
		name := string(info.Name)
		monitors = append(monitors, monitor.New(name, rect, output == primaryOutput, gaps))
	}
	return monitors, nil
}
