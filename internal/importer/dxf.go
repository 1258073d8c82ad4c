// Package importer reads wall drawings from DXF files. Closed
// axis-aligned rectangles become cabinets; everything else is reported
// as a warning so CAD noise does not silently disappear.
package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// sizeTolerance is the maximum deviation in mm between a drawn
// rectangle and a catalog cabinet size to still count as that type.
const sizeTolerance = 1.0

// chainTolerance is the maximum endpoint gap when stitching loose LINE
// entities into closed outlines.
const chainTolerance = 0.01

// ImportResult holds the results of a DXF import.
type ImportResult struct {
	Cabinets []model.Cabinet
	Types    []model.CabinetType
	Errors   []string
	Warnings []string
}

// segment is a line between two points, used for chaining LINE entities.
type segment struct {
	start model.Point
	end   model.Point
}

// ImportDXF reads a DXF drawing and converts every closed axis-aligned
// rectangle into a cabinet. Rectangle sizes are matched against the
// catalog for the given mode; unmatched sizes get a synthesized type so
// the import never loses geometry.
func ImportDXF(path, mode string, defaultPitch float64) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]model.Point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := make([]model.Point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, model.Point{X: v[0], Y: v[1]})
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Circles, arcs and text are drawing decoration here
		}
	}

	outlines = append(outlines, chainSegments(segments, chainTolerance)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	catalog := model.CatalogForMode(mode)
	synthesized := make(map[string]model.CabinetType)

	for _, outline := range outlines {
		rect, ok := outlineRect(outline)
		if !ok {
			result.Warnings = append(result.Warnings,
				"Skipped non-rectangular shape")
			continue
		}
		if rect.W < sizeTolerance || rect.H < sizeTolerance {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate rectangle (%.2f x %.2f mm)", rect.W, rect.H))
			continue
		}

		typeID, rotation, matched := matchCatalog(rect.W, rect.H, catalog)
		if !matched {
			w := math.Round(rect.W)
			h := math.Round(rect.H)
			typeID = fmt.Sprintf("%.0fx%.0f", w, h)
			if _, seen := synthesized[typeID]; !seen {
				synthesized[typeID] = model.CabinetType{
					ID:     typeID,
					Name:   fmt.Sprintf("Imported %.0f x %.0f", w, h),
					Width:  w,
					Height: h,
					Pitch:  defaultPitch,
				}
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("No catalog match for %.0f x %.0f mm, created type %q", w, h, typeID))
			}
		}

		result.Cabinets = append(result.Cabinets, model.Cabinet{
			ID:       uuid.New().String()[:8],
			TypeID:   typeID,
			X:        rect.X,
			Y:        rect.Y,
			Rotation: rotation,
		})
	}

	if len(result.Cabinets) == 0 {
		result.Errors = append(result.Errors, "No rectangular cabinets found in DXF file")
		return result
	}

	// Stable reading order, top row first
	sort.SliceStable(result.Cabinets, func(i, j int) bool {
		a, b := result.Cabinets[i], result.Cabinets[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	ids := make([]string, 0, len(synthesized))
	for id := range synthesized {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		result.Types = append(result.Types, synthesized[id])
	}

	return result
}

// matchCatalog finds a catalog type for the given rectangle size. A
// swapped match means the cabinet is drawn rotated 90 degrees.
func matchCatalog(w, h float64, catalog []model.CabinetType) (string, int, bool) {
	for _, t := range catalog {
		if math.Abs(t.Width-w) <= sizeTolerance && math.Abs(t.Height-h) <= sizeTolerance {
			return t.ID, 0, true
		}
	}
	for _, t := range catalog {
		if math.Abs(t.Width-h) <= sizeTolerance && math.Abs(t.Height-w) <= sizeTolerance {
			return t.ID, 90, true
		}
	}
	return "", 0, false
}

// outlineRect reports whether an outline is an axis-aligned rectangle
// and returns its bounding box. Collinear midpoints on the edges are
// tolerated, so a rectangle drawn as six line segments still imports.
func outlineRect(outline []model.Point) (model.Rect, bool) {
	if len(outline) < 3 {
		return model.Rect{}, false
	}

	minX, minY := outline[0].X, outline[0].Y
	maxX, maxY := minX, minY
	for _, p := range outline[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Every vertex must lie on the bounding box edge
	for _, p := range outline {
		onX := math.Abs(p.X-minX) <= chainTolerance || math.Abs(p.X-maxX) <= chainTolerance
		onY := math.Abs(p.Y-minY) <= chainTolerance || math.Abs(p.Y-maxY) <= chainTolerance
		if !onX && !onY {
			return model.Rect{}, false
		}
	}

	// All four corners must be present
	corners := []model.Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: minX, Y: maxY},
		{X: maxX, Y: maxY},
	}
	for _, corner := range corners {
		found := false
		for _, p := range outline {
			if pointsClose(p, corner, sizeTolerance) {
				found = true
				break
			}
		}
		if !found {
			return model.Rect{}, false
		}
	}

	return model.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// chainSegments connects individual segments into closed outlines.
func chainSegments(segs []segment, tolerance float64) [][]model.Point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]model.Point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			// Close as soon as the chain returns to its start, so
			// touching rectangles do not merge through shared corners.
			if len(chain) >= 4 && pointsClose(tail, chain[0], tolerance) {
				break
			}

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains count as outlines
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

func pointsClose(a, b model.Point, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}
