// Package geometry resolves cabinet bounds under rotation and groups
// touching cabinets into connected components. It is the leaf the rest of
// the engine builds on; every function is a pure computation over a
// layout snapshot.
package geometry

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// AdjacencyTolerance is how close two cabinet edges may be (in mm) and
// still count as touching for grouping and isolation checks.
const AdjacencyTolerance = 1.0

// sizePattern matches a "WxH" size embedded in a type id, e.g. "500x500"
// or "600x337.5". Used as the fallback resolver for unregistered types.
var sizePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[xX]\s*(\d+(?:\.\d+)?)`)

// ParseSizeID extracts nominal width and height from a size pattern
// embedded in an id string.
func ParseSizeID(id string) (w, h float64, ok bool) {
	m := sizePattern.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, false
	}
	w, err1 := strconv.ParseFloat(m[1], 64)
	h, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// ResolveType resolves a cabinet's type: registered types first, then the
// size-pattern fallback on the type id itself. Fallback types carry the
// layout's default pitch, supplied by the caller.
func ResolveType(typeID string, types model.TypeIndex, defaultPitch float64) (model.CabinetType, bool) {
	if t, ok := types[typeID]; ok {
		return t, true
	}
	if w, h, ok := ParseSizeID(typeID); ok {
		return model.CabinetType{ID: typeID, Width: w, Height: h, Pitch: defaultPitch}, true
	}
	return model.CabinetType{}, false
}

// Bounds returns the axis-aligned rectangle a cabinet occupies. Rotation
// by 90 or 270 degrees swaps width and height. The second return is false
// when the cabinet type cannot be resolved.
func Bounds(c model.Cabinet, types model.TypeIndex, defaultPitch float64) (model.Rect, bool) {
	t, ok := ResolveType(c.TypeID, types, defaultPitch)
	if !ok {
		return model.Rect{}, false
	}
	w, h := t.Width, t.Height
	if c.Rotated() {
		w, h = h, w
	}
	return model.Rect{X: c.X, Y: c.Y, W: w, H: h}, true
}

// LayoutBounds returns the bounding box of all resolvable cabinets. The
// second return is false when no cabinet resolves.
func LayoutBounds(l model.Layout) (model.Rect, bool) {
	types := l.TypeIndex()
	var out model.Rect
	found := false
	for _, c := range l.Cabinets {
		b, ok := Bounds(c, types, l.Settings.DefaultPitch)
		if !ok {
			continue
		}
		if !found {
			out = b
			found = true
		} else {
			out = out.Union(b)
		}
	}
	return out, found
}

// Adjacent reports whether two rectangles overlap with positive area, or
// touch within AdjacencyTolerance along one axis while overlapping on the
// other.
func Adjacent(a, b model.Rect) bool {
	if a.Intersects(b) {
		return true
	}
	xGap := max(a.X, b.X) - min(a.Right(), b.Right())
	yGap := max(a.Y, b.Y) - min(a.Bottom(), b.Bottom())
	// Touching on one axis requires genuine overlap on the other.
	if xGap <= AdjacencyTolerance && yGap < 0 {
		return true
	}
	if yGap <= AdjacencyTolerance && xGap < 0 {
		return true
	}
	return false
}

// ConnectedGroups partitions the resolvable cabinets into connected
// components via flood fill over the pairwise adjacency test and returns
// each component's bounding box, sorted top-to-bottom then left-to-right.
// Quadratic in the cabinet count, which stays interactive for the
// tens-to-low-hundreds of cabinets a wall has.
func ConnectedGroups(l model.Layout) []model.Rect {
	types := l.TypeIndex()
	var rects []model.Rect
	for _, c := range l.Cabinets {
		if b, ok := Bounds(c, types, l.Settings.DefaultPitch); ok {
			rects = append(rects, b)
		}
	}
	if len(rects) == 0 {
		return nil
	}

	visited := make([]bool, len(rects))
	var groups []model.Rect
	for i := range rects {
		if visited[i] {
			continue
		}
		// Flood fill from rect i.
		queue := []int{i}
		visited[i] = true
		group := rects[i]
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for j := range rects {
				if !visited[j] && Adjacent(rects[cur], rects[j]) {
					visited[j] = true
					group = group.Union(rects[j])
					queue = append(queue, j)
				}
			}
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Y != groups[j].Y {
			return groups[i].Y < groups[j].Y
		}
		return groups[i].X < groups[j].X
	})
	return groups
}

// Neighbors reports, for each cabinet id, whether it has at least one
// adjacent or overlapping neighbor. Unresolvable cabinets are absent from
// the result.
func Neighbors(l model.Layout) map[string]bool {
	types := l.TypeIndex()
	type entry struct {
		id string
		b  model.Rect
	}
	var entries []entry
	for _, c := range l.Cabinets {
		if b, ok := Bounds(c, types, l.Settings.DefaultPitch); ok {
			entries = append(entries, entry{id: c.ID, b: b})
		}
	}
	out := make(map[string]bool, len(entries))
	for i := range entries {
		has := false
		for j := range entries {
			if i != j && Adjacent(entries[i].b, entries[j].b) {
				has = true
				break
			}
		}
		out[entries[i].id] = out[entries[i].id] || has
	}
	return out
}
