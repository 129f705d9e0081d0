package wm

import (
	"github.com/thepsauce/fensterchef/internal/winstate"
	"github.com/thepsauce/fensterchef/internal/x11"
)

// The x11 package's property decoders return small structs scoped to what
// it can read off the wire; winstate's equivalents carry a couple of extra
// policy fields (aspect ratio, Ping, the strut-partial side-ranges) that
// have no wire decoder yet. These convert field-by-field rather than by
// type assertion, so a mismatched decoder addition fails to compile instead
// of silently truncating.

func toWinstateSizeHints(h x11.SizeHints) winstate.SizeHints {
	return winstate.SizeHints{
		HasMin: h.HasMin, HasMax: h.HasMax,
		MinWidth: h.MinWidth, MinHeight: h.MinHeight,
		MaxWidth: h.MaxWidth, MaxHeight: h.MaxHeight,
	}
}

func toWinstateWMHints(h x11.WMHints) winstate.WMHints {
	return winstate.WMHints{InputSet: h.HasInput, Input: h.Input}
}

func toWinstateStrut(s x11.StrutPartial) winstate.StrutPartial {
	return winstate.StrutPartial{Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom}
}

func toWinstateProtocols(p x11.Protocols) winstate.Protocols {
	return winstate.Protocols{Delete: p.DeleteWindow, TakeFocus: p.TakeFocus}
}

func toWinstateMotif(m x11.MotifHints) winstate.MotifHints {
	return winstate.MotifHints{DecorationsSet: m.HasDecorations, Decorations: m.Decorations}
}
