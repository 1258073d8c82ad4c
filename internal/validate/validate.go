// Package validate runs the structural checks on a layout and reports
// findings. Findings never block other engine computations; whether an
// error blocks export is the caller's policy.
package validate

import (
	"fmt"
	"math"
	"sort"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/geometry"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding codes.
const (
	CodeDuplicateID     = "DUPLICATE_ID"
	CodeMissingType     = "MISSING_TYPE"
	CodeOverlap         = "OVERLAP"
	CodeOutOfGrid       = "OUT_OF_GRID"
	CodeIsolatedCabinet = "ISOLATED_CABINET"
)

// Finding is one validation result.
type Finding struct {
	Severity   Severity `json:"severity"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	CabinetIDs []string `json:"cabinet_ids,omitempty"`
}

// gridEpsilon absorbs float noise when checking grid multiples.
const gridEpsilon = 0.001

// Layout runs all checks and returns findings in a deterministic order:
// duplicate ids, missing types, overlaps, grid misalignment, isolation.
// It never fails on malformed input; unresolvable cabinets are simply
// reported and skipped by the geometric checks.
func Layout(l model.Layout) []Finding {
	var findings []Finding
	findings = append(findings, duplicateIDs(l)...)
	findings = append(findings, missingTypes(l)...)
	findings = append(findings, overlaps(l)...)
	findings = append(findings, outOfGrid(l)...)
	findings = append(findings, isolated(l)...)
	return findings
}

func duplicateIDs(l model.Layout) []Finding {
	counts := make(map[string]int)
	for _, c := range l.Cabinets {
		counts[c.ID]++
	}
	var dup []string
	for id, n := range counts {
		if n > 1 {
			dup = append(dup, id)
		}
	}
	sort.Strings(dup)
	var out []Finding
	for _, id := range dup {
		out = append(out, Finding{
			Severity:   SeverityError,
			Code:       CodeDuplicateID,
			Message:    fmt.Sprintf("cabinet id %q is used %d times", id, counts[id]),
			CabinetIDs: []string{id},
		})
	}
	return out
}

func missingTypes(l model.Layout) []Finding {
	types := l.TypeIndex()
	var out []Finding
	for _, c := range l.Cabinets {
		if _, ok := geometry.ResolveType(c.TypeID, types, l.Settings.DefaultPitch); !ok {
			out = append(out, Finding{
				Severity:   SeverityError,
				Code:       CodeMissingType,
				Message:    fmt.Sprintf("cabinet %s references unknown type %q", c.ID, c.TypeID),
				CabinetIDs: []string{c.ID},
			})
		}
	}
	return out
}

// overlaps reports each positively-intersecting pair exactly once, in
// input order.
func overlaps(l model.Layout) []Finding {
	types := l.TypeIndex()
	type entry struct {
		id string
		b  model.Rect
	}
	var entries []entry
	for _, c := range l.Cabinets {
		if b, ok := geometry.Bounds(c, types, l.Settings.DefaultPitch); ok {
			entries = append(entries, entry{id: c.ID, b: b})
		}
	}
	var out []Finding
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].b.Intersects(entries[j].b) {
				out = append(out, Finding{
					Severity:   SeverityError,
					Code:       CodeOverlap,
					Message:    fmt.Sprintf("cabinets %s and %s overlap", entries[i].id, entries[j].id),
					CabinetIDs: []string{entries[i].id, entries[j].id},
				})
			}
		}
	}
	return out
}

func outOfGrid(l model.Layout) []Finding {
	if !l.Settings.GridSnap || l.Settings.GridStep <= 0 {
		return nil
	}
	step := l.Settings.GridStep
	var out []Finding
	for _, c := range l.Cabinets {
		if onGrid(c.X, step) && onGrid(c.Y, step) {
			continue
		}
		out = append(out, Finding{
			Severity:   SeverityWarning,
			Code:       CodeOutOfGrid,
			Message:    fmt.Sprintf("cabinet %s at (%.1f, %.1f) is off the %.0fmm grid", c.ID, c.X, c.Y, step),
			CabinetIDs: []string{c.ID},
		})
	}
	return out
}

func onGrid(v, step float64) bool {
	_, frac := math.Modf(math.Abs(v) / step)
	return frac < gridEpsilon || frac > 1-gridEpsilon
}

// isolated warns about cabinets with no neighbor. A single-cabinet layout
// is never isolated.
func isolated(l model.Layout) []Finding {
	if len(l.Cabinets) <= 1 {
		return nil
	}
	neighbors := geometry.Neighbors(l)
	var out []Finding
	for _, c := range l.Cabinets {
		has, resolved := neighbors[c.ID]
		if !resolved || has {
			continue
		}
		out = append(out, Finding{
			Severity:   SeverityWarning,
			Code:       CodeIsolatedCabinet,
			Message:    fmt.Sprintf("cabinet %s is not adjacent to any other cabinet", c.ID),
			CabinetIDs: []string{c.ID},
		})
	}
	return out
}
