// Package address derives the two labeling schemes of an installation:
// spreadsheet-style grid addresses from cabinet positions, and mapping
// numbers identifying which controller output group feeds each chain.
package address

import (
	"fmt"
	"math"
	"sort"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/geometry"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// clusterTolerance merges cabinet origins that differ by placement
// jitter into the same row or column.
const clusterTolerance = 1.0

// cluster merges sorted values whose gaps stay within tol and returns
// one center (running mean) per cluster, ascending.
func cluster(values []float64, tol float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var centers []float64
	sum, count := sorted[0], 1.0
	last := sorted[0]
	for _, v := range sorted[1:] {
		if v-last <= tol {
			sum += v
			count++
		} else {
			centers = append(centers, sum/count)
			sum, count = v, 1
		}
		last = v
	}
	centers = append(centers, sum/count)
	return centers
}

// nearest returns the index of the center closest to v. Assignment is by
// proximity, not exact match, so jittered cabinets still land in their
// row or column.
func nearest(centers []float64, v float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centers {
		if d := math.Abs(v - c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// letters renders a zero-based index as a base-26 letter code: A..Z,
// AA..AZ, and so on.
func letters(i int) string {
	s := ""
	for {
		s = string(rune('A'+i%26)) + s
		i = i/26 - 1
		if i < 0 {
			return s
		}
	}
}

// GridLabels computes the grid address of every cabinet, keyed by
// cabinet id. Columns render as letters and rows as 1-based numbers
// unless the layout swaps the axes. A manual per-cabinet label always
// wins. Unresolvable cabinets are skipped. Input order does not affect
// the result.
func GridLabels(l model.Layout) map[string]string {
	types := l.TypeIndex()
	type placed struct {
		c model.Cabinet
		b model.Rect
	}
	var entries []placed
	var xs, ys []float64
	for _, c := range l.Cabinets {
		b, ok := geometry.Bounds(c, types, l.Settings.DefaultPitch)
		if !ok {
			continue
		}
		entries = append(entries, placed{c: c, b: b})
		xs = append(xs, b.X)
		ys = append(ys, b.Y)
	}
	cols := cluster(xs, clusterTolerance)
	rows := cluster(ys, clusterTolerance)

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.c.GridLabel != "" {
			out[e.c.ID] = e.c.GridLabel
			continue
		}
		col := nearest(cols, e.b.X)
		row := nearest(rows, e.b.Y)
		if l.Settings.RowsAsLetters {
			out[e.c.ID] = fmt.Sprintf("%s%d", letters(row), col+1)
		} else {
			out[e.c.ID] = fmt.Sprintf("%s%d", letters(col), row+1)
		}
	}
	return out
}
