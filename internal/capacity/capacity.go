// Package capacity computes pixel and power load figures for a layout
// and compares them against the fixed controller, port and breaker
// limits. Degenerate inputs (zero pitch, zero sizes, unresolved types)
// contribute zero rather than failing.
package capacity

import (
	"math"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/geometry"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// Nominal 1.56mm pitch panels resolve at a slightly coarser effective
// pitch; using the nominal value would over-count pixels against real
// panel resolution. The corrected divisor must be reproduced exactly.
const (
	nominalFinePitch   = 1.56
	correctedFinePitch = 1.568627
)

// effectivePitch returns the divisor used for pixel computation.
func effectivePitch(pitch float64) float64 {
	if pitch == nominalFinePitch {
		return correctedFinePitch
	}
	return pitch
}

// safeDiv divides, yielding zero for zero or non-finite divisors.
func safeDiv(a, b float64) float64 {
	if b == 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return 0
	}
	v := a / b
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// PixelDims returns the pixel resolution of a cabinet type under the
// given rotation.
func PixelDims(t model.CabinetType, rotation int) (w, h int) {
	pw := int(math.Round(safeDiv(t.Width, effectivePitch(t.Pitch))))
	ph := int(math.Round(safeDiv(t.Height, effectivePitch(t.Pitch))))
	if rotation == 90 || rotation == 270 {
		pw, ph = ph, pw
	}
	return pw, ph
}

// CabinetPixels returns the pixel area of one cabinet, or zero when its
// type does not resolve.
func CabinetPixels(c model.Cabinet, types model.TypeIndex, defaultPitch float64) int {
	t, ok := geometry.ResolveType(c.TypeID, types, defaultPitch)
	if !ok {
		return 0
	}
	w, h := PixelDims(t, c.Rotation)
	return w * h
}

// RouteLoad is the pixel accounting for one data route.
type RouteLoad struct {
	RouteID string `json:"route_id"`
	Port    int    `json:"port"`
	Pixels  int    `json:"pixels"`
	Over    bool   `json:"over"`
}

// RoutePixelLoad sums the pixel load a route puts on its controller
// port. A dual-card cabinet splits its area across two independent card
// outputs, so it contributes half; a single- or zero-card cabinet
// contributes its full area. Loads strictly above MaxPortPixels are over
// capacity.
func RoutePixelLoad(l model.Layout, r model.DataRoute) RouteLoad {
	types := l.TypeIndex()
	total := 0.0
	for _, step := range r.Steps {
		cs, ok := step.(model.CabinetStep)
		if !ok {
			continue
		}
		c, ok := l.CabinetByID(cs.CabinetID)
		if !ok {
			continue
		}
		px := float64(CabinetPixels(c, types, l.Settings.DefaultPitch))
		cards := 1.0
		if c.CardCount() == 2 {
			cards = 2.0
		}
		total += safeDiv(px, cards)
	}
	pixels := int(math.Round(total))
	return RouteLoad{
		RouteID: r.ID,
		Port:    r.Port,
		Pixels:  pixels,
		Over:    pixels > model.MaxPortPixels,
	}
}

// RouteLoads computes the load of every route in the layout, in layout
// order.
func RouteLoads(l model.Layout) []RouteLoad {
	out := make([]RouteLoad, 0, len(l.Routes))
	for _, r := range l.Routes {
		out = append(out, RoutePixelLoad(l, r))
	}
	return out
}

// ControllerLoad is the pixel accounting for the whole layout against
// one controller model.
type ControllerLoad struct {
	Model        string `json:"model"`
	TotalPixels  int    `json:"total_pixels"`
	WidthPixels  int    `json:"width_pixels"`
	HeightPixels int    `json:"height_pixels"`
	OverTotal    bool   `json:"over_total"`
	OverWidth    bool   `json:"over_width"`
	OverHeight   bool   `json:"over_height"`
}

// Over reports whether any checked ceiling is exceeded.
func (c ControllerLoad) Over() bool {
	return c.OverTotal || c.OverWidth || c.OverHeight
}

// Controller sums all cabinet pixel areas and the layout's pixel extents
// and compares them against the configured controller model's limits.
// An unknown controller model checks nothing.
func Controller(l model.Layout) ControllerLoad {
	types := l.TypeIndex()
	out := ControllerLoad{Model: l.Settings.Controller}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	any := false
	for _, c := range l.Cabinets {
		t, ok := geometry.ResolveType(c.TypeID, types, l.Settings.DefaultPitch)
		if !ok {
			continue
		}
		pw, ph := PixelDims(t, c.Rotation)
		out.TotalPixels += pw * ph

		b, _ := geometry.Bounds(c, types, l.Settings.DefaultPitch)
		pitch := effectivePitch(t.Pitch)
		x0 := safeDiv(b.X, pitch)
		y0 := safeDiv(b.Y, pitch)
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x0+float64(pw))
		maxY = math.Max(maxY, y0+float64(ph))
		any = true
	}
	if any {
		out.WidthPixels = int(math.Round(maxX - minX))
		out.HeightPixels = int(math.Round(maxY - minY))
	}

	limit, ok := model.ControllerByModel(l.Settings.Controller)
	if !ok {
		return out
	}
	if limit.MaxPixels > 0 {
		out.OverTotal = out.TotalPixels > limit.MaxPixels
	}
	if limit.MaxWidth > 0 {
		out.OverWidth = out.WidthPixels > limit.MaxWidth
	}
	if limit.MaxHeight > 0 {
		out.OverHeight = out.HeightPixels > limit.MaxHeight
	}
	return out
}

// FeedLoad is the wattage accounting for one power feed.
type FeedLoad struct {
	FeedID    string  `json:"feed_id"`
	Label     string  `json:"label"`
	Watts     int     `json:"watts"`
	SafeWatts float64 `json:"safe_watts"` // 0 = breaker not in table, no limit
	Over      bool    `json:"over"`
}

// FeedPowerLoad sums the estimated draw of a feed's assigned cabinets:
// rotated physical area in square metres times the areal power density,
// rounded to the nearest watt. Breakers absent from the safe-wattage
// table impose no limit.
func FeedPowerLoad(l model.Layout, f model.PowerFeed) FeedLoad {
	types := l.TypeIndex()
	watts := 0.0
	for _, step := range f.Steps {
		cs, ok := step.(model.CabinetStep)
		if !ok {
			continue
		}
		c, ok := l.CabinetByID(cs.CabinetID)
		if !ok {
			continue
		}
		b, ok := geometry.Bounds(c, types, l.Settings.DefaultPitch)
		if !ok {
			continue
		}
		areaM2 := (b.W / 1000) * (b.H / 1000)
		watts += areaM2 * model.PowerDensityWPerM2
	}
	out := FeedLoad{
		FeedID: f.ID,
		Label:  f.Label,
		Watts:  int(math.Round(watts)),
	}
	if safe, ok := model.BreakerSafeWatts[f.Breaker]; ok {
		out.SafeWatts = safe
		out.Over = float64(out.Watts) > safe
	}
	return out
}

// FeedLoads computes the load of every feed in the layout, in layout
// order.
func FeedLoads(l model.Layout) []FeedLoad {
	out := make([]FeedLoad, 0, len(l.Feeds))
	for _, f := range l.Feeds {
		out = append(out, FeedPowerLoad(l, f))
	}
	return out
}
