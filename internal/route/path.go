package route

import (
	"math"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/geometry"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// Routing constants.
const (
	alignTolerance = 1.0  // mm; treat near-collinear anchors as axis-aligned
	laneGap        = 30.0 // mm; lateral clearance of the side-port cable lane
	// approachClearRatio sizes the far-side port approach's clearance
	// around the receiver card, as a fraction of the cabinet height.
	approachClearRatio = 0.25
)

// Path is the drawable geometry of one chain or feed.
type Path struct {
	Anchors []Anchor `json:"anchors"`
	// Lines holds one or more orthogonal polylines. Standard chaining
	// yields a single contiguous line; side-port chaining starts a new
	// line whenever a cabinet's entry and exit ports must not be
	// bridged.
	Lines [][]model.Point `json:"lines"`
	// Terminal marks the chain's end when the last anchor is not
	// already a card connector.
	Terminal *model.Point `json:"terminal,omitempty"`
}

// Synthesize builds the cable path for a route.
func Synthesize(l model.Layout, r model.DataRoute) Path {
	return synthesize(l, r.Steps)
}

// SynthesizeFeed builds the cable path for a power feed.
func SynthesizeFeed(l model.Layout, f model.PowerFeed) Path {
	return synthesize(l, f.Steps)
}

func synthesize(l model.Layout, steps model.Steps) Path {
	anchors := ResolveAnchors(l, steps)
	out := Path{Anchors: anchors}
	if len(anchors) == 0 {
		return out
	}
	if len(anchors) > 1 {
		if l.Settings.ChainMode == model.ChainSidePort && !steps.HasFreePoint() {
			out.Lines = sidePortLines(l, anchors)
		} else {
			out.Lines = [][]model.Point{standardLine(anchors, steps.HasFreePoint())}
		}
	}
	last := anchors[len(anchors)-1]
	if !last.OnConnector {
		p := last.Point
		out.Terminal = &p
	}
	return out
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// appendPoint extends a polyline, dropping consecutive duplicates.
func appendPoint(line []model.Point, p model.Point) []model.Point {
	if n := len(line); n > 0 {
		q := line[n-1]
		if math.Abs(q.X-p.X) < 1e-9 && math.Abs(q.Y-p.Y) < 1e-9 {
			return line
		}
	}
	return append(line, p)
}

// standardLine connects consecutive anchors with orthogonal segments.
// Near-aligned anchors get a single straight segment. Otherwise the
// path turns at the midpoint Y, unless that would reverse the vertical
// direction of travel; then the turn is pinned to the chain's overall
// minimum or maximum Y so the path never doubles back across a row
// change. Chains containing an explicit free point use a simpler rule
// that turns at the destination's column, preserving user-placed
// waypoints exactly.
func standardLine(anchors []Anchor, freeMode bool) []model.Point {
	minY, maxY := anchors[0].Point.Y, anchors[0].Point.Y
	for _, a := range anchors[1:] {
		minY = math.Min(minY, a.Point.Y)
		maxY = math.Max(maxY, a.Point.Y)
	}

	line := []model.Point{anchors[0].Point}
	prevVert := 0
	for i := 1; i < len(anchors); i++ {
		a := anchors[i-1].Point
		b := anchors[i].Point

		if math.Abs(a.X-b.X) <= alignTolerance || math.Abs(a.Y-b.Y) <= alignTolerance {
			line = appendPoint(line, b)
			if s := sign(b.Y - a.Y); s != 0 {
				prevVert = s
			}
			continue
		}

		if freeMode {
			line = appendPoint(line, model.Point{X: b.X, Y: a.Y})
			line = appendPoint(line, b)
			if s := sign(b.Y - a.Y); s != 0 {
				prevVert = s
			}
			continue
		}

		turnY := (a.Y + b.Y) / 2
		if prevVert != 0 && sign(turnY-a.Y) == -prevVert {
			// Entering the turn against the direction of travel:
			// pin it to the chain's extreme Y instead.
			if prevVert < 0 {
				turnY = minY
			} else {
				turnY = maxY
			}
		}
		line = appendPoint(line, model.Point{X: a.X, Y: turnY})
		line = appendPoint(line, model.Point{X: b.X, Y: turnY})
		line = appendPoint(line, b)
		if s := sign(b.Y - turnY); s != 0 {
			prevVert = s
		} else if s := sign(turnY - a.Y); s != 0 {
			prevVert = s
		}
	}
	return line
}

// sidePortLines routes side-ported chains through deterministic lateral
// lanes. A cabinet-to-cabinet transition leaves through a lane beside
// the source cabinet, picked by which half of the layout the source sits
// in. A lane on the port side approaches the destination directly at
// port height; a lane on the far side would cross the receiver card
// that way, so it dips under the card first. Entry and exit ports of
// the same cabinet are never bridged by a drawn segment.
func sidePortLines(l model.Layout, anchors []Anchor) [][]model.Point {
	types := l.TypeIndex()
	layoutBounds, _ := geometry.LayoutBounds(l)
	layoutCenterX := layoutBounds.X + layoutBounds.W/2

	var lines [][]model.Point
	line := []model.Point{anchors[0].Point}
	for i := 1; i < len(anchors); i++ {
		a, b := anchors[i-1], anchors[i]

		if a.CabinetID != "" && a.CabinetID == b.CabinetID {
			// Internal card-to-card hop; the cabinet wiring is not drawn.
			if len(line) > 1 {
				lines = append(lines, line)
			}
			line = []model.Point{b.Point}
			continue
		}

		laneX := a.Point.X - laneGap
		if src, ok := l.CabinetByID(a.CabinetID); ok {
			if sb, ok := geometry.Bounds(src, types, l.Settings.DefaultPitch); ok {
				if sb.Center().X < layoutCenterX {
					laneX = sb.X - laneGap
				} else {
					laneX = sb.Right() + laneGap
				}
			}
		}

		line = appendPoint(line, model.Point{X: laneX, Y: a.Point.Y})
		if detour, ok := farSideApproach(l, types, b, laneX); ok {
			for _, p := range detour {
				line = appendPoint(line, p)
			}
		} else {
			line = appendPoint(line, model.Point{X: laneX, Y: b.Point.Y})
		}
		line = appendPoint(line, b.Point)
	}
	if len(line) > 1 {
		lines = append(lines, line)
	}
	return lines
}

// farSideApproach plans the entry into a destination port whose exit
// lane sits on the opposite side of the port. Coming in straight at
// port height would run across the receiver-card body, so instead the
// cable drops below the card with clearance proportional to the cabinet
// height, crosses under it, and rises in front of the port.
func farSideApproach(l model.Layout, types model.TypeIndex, dst Anchor, laneX float64) ([]model.Point, bool) {
	if !dst.OnConnector || laneX <= dst.Point.X {
		return nil, false
	}
	c, ok := l.CabinetByID(dst.CabinetID)
	if !ok {
		return nil, false
	}
	db, ok := geometry.Bounds(c, types, l.Settings.DefaultPitch)
	if !ok {
		return nil, false
	}
	clear := db.H * approachClearRatio
	card := CardRect(db, dst.Card, c.CardCount())
	entryX := dst.Point.X - clear
	underY := card.Bottom() + clear
	return []model.Point{
		{X: laneX, Y: underY},
		{X: entryX, Y: underY},
		{X: entryX, Y: dst.Point.Y},
	}, true
}
