package route

import (
	"math"
	"sort"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/geometry"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// Label box geometry, in mm.
const (
	labelCharWidth = 2.6
	labelPadding   = 4.0
	labelHeight    = 7.0
	labelMargin    = 10.0 // distance from the layout edge
	labelGap       = 4.0  // minimum gap between packed labels
)

// PlacedLabel is one annotation label with its resolved box.
type PlacedLabel struct {
	Text  string          `json:"text"`
	RefID string          `json:"ref_id"` // route or feed id
	Side  model.LabelSide `json:"side"`
	Box   model.Rect      `json:"box"`
}

// labelRequest is a label before side selection and packing.
type labelRequest struct {
	text    string
	refID   string
	pref    model.LabelSide
	force   bool   // force bottom
	firstID string // first cabinet of the chain, "" if none
	desired model.Point
}

// labelBoxWidth estimates the box width from the text length.
func labelBoxWidth(text string) float64 {
	return float64(len(text))*labelCharWidth + labelPadding
}

// PlaceLabels resolves a side and a collision-free box for every route
// and feed label and returns them with their combined bounding box, so
// callers can size drawing margins without clipping. The second return
// is false when nothing was placed.
func PlaceLabels(l model.Layout, routeTexts map[string]string, feedTexts map[string]string) ([]PlacedLabel, model.Rect, bool) {
	layoutBounds, ok := geometry.LayoutBounds(l)
	if !ok {
		return nil, model.Rect{}, false
	}

	var reqs []labelRequest
	for _, r := range l.Routes {
		text, ok := routeTexts[r.ID]
		if !ok || text == "" {
			continue
		}
		anchors := ResolveAnchors(l, r.Steps)
		if len(anchors) == 0 {
			continue
		}
		reqs = append(reqs, labelRequest{
			text:    text,
			refID:   r.ID,
			pref:    r.LabelSide,
			force:   r.ForceLabelBottom,
			firstID: firstCabinetID(r.Steps),
			desired: anchors[0].Point,
		})
	}
	for _, f := range l.Feeds {
		text, ok := feedTexts[f.ID]
		if !ok || text == "" {
			continue
		}
		anchors := ResolveAnchors(l, f.Steps)
		if len(anchors) == 0 {
			continue
		}
		reqs = append(reqs, labelRequest{
			text:    text,
			refID:   f.ID,
			pref:    f.LabelSide,
			firstID: firstCabinetID(f.Steps),
			desired: anchors[0].Point,
		})
	}
	if len(reqs) == 0 {
		return nil, model.Rect{}, false
	}

	lowRow := lowestRowY(l)
	bySide := make(map[model.LabelSide][]labelRequest)
	for _, req := range reqs {
		side := selectSide(l, req, layoutBounds, lowRow)
		bySide[side] = append(bySide[side], req)
	}

	var placed []PlacedLabel
	for _, side := range []model.LabelSide{model.SideBottom, model.SideTop, model.SideLeft, model.SideRight} {
		placed = append(placed, packSide(side, bySide[side], layoutBounds)...)
	}

	bbox := placed[0].Box
	for _, p := range placed[1:] {
		bbox = bbox.Union(p.Box)
	}
	return placed, bbox, true
}

func firstCabinetID(steps model.Steps) string {
	ids := steps.CabinetIDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// lowestRowY returns the origin Y of the lowest occupied cabinet row.
func lowestRowY(l model.Layout) float64 {
	types := l.TypeIndex()
	low := math.Inf(-1)
	for _, c := range l.Cabinets {
		if b, ok := geometry.Bounds(c, types, l.Settings.DefaultPitch); ok {
			low = math.Max(low, b.Y)
		}
	}
	return low
}

// selectSide picks the label side: explicit preference or force-bottom
// always win; chains starting above the lowest occupied row go left or
// right depending on which half of the layout they start in; everything
// else goes to the bottom.
func selectSide(l model.Layout, req labelRequest, layoutBounds model.Rect, lowRow float64) model.LabelSide {
	if req.force {
		return model.SideBottom
	}
	if req.pref != "" && req.pref != model.SideAuto {
		return req.pref
	}
	if req.firstID == "" {
		return model.SideBottom
	}
	c, ok := l.CabinetByID(req.firstID)
	if !ok {
		return model.SideBottom
	}
	b, ok := geometry.Bounds(c, l.TypeIndex(), l.Settings.DefaultPitch)
	if !ok {
		return model.SideBottom
	}
	if math.Abs(b.Y-lowRow) <= geometry.AdjacencyTolerance {
		return model.SideBottom
	}
	if b.Center().X < layoutBounds.X+layoutBounds.W/2 {
		return model.SideLeft
	}
	return model.SideRight
}

// packSide lays the labels of one side out along its packing axis:
// horizontal for top/bottom, vertical for left/right. Labels sort by
// desired center and shift forward only as far as needed to clear the
// previous label plus the fixed gap; a label with no collision stays at
// its natural position.
func packSide(side model.LabelSide, reqs []labelRequest, layoutBounds model.Rect) []PlacedLabel {
	if len(reqs) == 0 {
		return nil
	}
	horizontal := side == model.SideBottom || side == model.SideTop

	sort.SliceStable(reqs, func(i, j int) bool {
		if horizontal {
			return reqs[i].desired.X < reqs[j].desired.X
		}
		return reqs[i].desired.Y < reqs[j].desired.Y
	})

	centers := make([]float64, len(reqs))
	sizes := make([]float64, len(reqs))
	for i, req := range reqs {
		if horizontal {
			centers[i] = req.desired.X
			sizes[i] = labelBoxWidth(req.text)
		} else {
			centers[i] = req.desired.Y
			sizes[i] = labelHeight
		}
	}
	starts := packPositions(centers, sizes, labelGap)

	var out []PlacedLabel
	for i, req := range reqs {
		w := labelBoxWidth(req.text)
		start := starts[i]

		var box model.Rect
		switch side {
		case model.SideBottom:
			box = model.Rect{X: start, Y: layoutBounds.Bottom() + labelMargin, W: w, H: labelHeight}
		case model.SideTop:
			box = model.Rect{X: start, Y: layoutBounds.Y - labelMargin - labelHeight, W: w, H: labelHeight}
		case model.SideLeft:
			box = model.Rect{X: layoutBounds.X - labelMargin - w, Y: start, W: w, H: labelHeight}
		default: // SideRight
			box = model.Rect{X: layoutBounds.Right() + labelMargin, Y: start, W: w, H: labelHeight}
		}
		out = append(out, PlacedLabel{Text: req.text, RefID: req.refID, Side: side, Box: box})
	}
	return out
}

// packPositions runs the 1-D interval packing pass: interval i wants its
// center at centers[i] (ascending) and is shifted forward only as far as
// needed for its start to clear the previous interval's end plus the
// gap. Returns the packed start positions.
func packPositions(centers, sizes []float64, gap float64) []float64 {
	starts := make([]float64, len(centers))
	prevEnd := math.Inf(-1)
	for i := range centers {
		starts[i] = math.Max(centers[i]-sizes[i]/2, prevEnd+gap)
		prevEnd = starts[i] + sizes[i]
	}
	return starts
}
