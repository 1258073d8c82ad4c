// Package export renders installation documents from a layout: the plan
// PDF, QR-coded cabinet labels, and the schedule workbook. It consumes
// engine outputs only; all layout math lives in the engine packages.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/address"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/capacity"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/geometry"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/route"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/validate"
)

// routeColor represents an RGB color for a drawn chain.
type routeColor struct {
	R, G, B int
}

// routeColors cycles per data route in the plan drawing.
var routeColors = []routeColor{
	{R: 33, G: 150, B: 243}, // blue
	{R: 76, G: 175, B: 80},  // green
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates the installation plan: one page with the wall
// drawing (cabinets, chains, feeds, grid addresses) followed by a
// capacity and validation summary page.
func ExportPDF(path string, l model.Layout) error {
	if len(l.Cabinets) == 0 {
		return fmt.Errorf("no cabinets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, l)

	pdf.AddPage()
	renderSummaryPage(pdf, l)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the wall with its chains and annotation labels.
func renderPlanPage(pdf *fpdf.Fpdf, l model.Layout) {
	bounds, ok := geometry.LayoutBounds(l)
	if !ok {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetXY(marginLeft, marginTop)
		pdf.CellFormat(0, 10, "No resolvable cabinets in this layout.", "", 0, "L", false, 0, "")
		return
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f mm)", l.Name, bounds.W, bounds.H)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Labels extend the drawing extents; scale to the combined box so
	// nothing clips.
	routeTexts, feedTexts := annotationTexts(l)
	labels, labelBounds, hasLabels := route.PlaceLabels(l, routeTexts, feedTexts)
	extents := bounds
	if hasLabels {
		extents = extents.Union(labelBounds)
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(drawWidth/extents.W, drawHeight/extents.H)

	offsetX := marginLeft + (drawWidth-extents.W*scale)/2 - extents.X*scale
	offsetY := drawAreaTop - extents.Y*scale
	tx := func(p model.Point) (float64, float64) {
		return offsetX + p.X*scale, offsetY + p.Y*scale
	}

	drawCabinets(pdf, l, scale, tx)
	drawChains(pdf, l, scale, tx)
	drawFeeds(pdf, l, tx)

	if hasLabels {
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(30, 30, 30)
		for _, lab := range labels {
			x, y := tx(model.Point{X: lab.Box.X, Y: lab.Box.Y})
			pdf.SetDrawColor(150, 150, 150)
			pdf.SetLineWidth(0.2)
			pdf.Rect(x, y, lab.Box.W*scale, lab.Box.H*scale, "D")
			pdf.SetXY(x, y)
			pdf.CellFormat(lab.Box.W*scale, lab.Box.H*scale, lab.Text, "", 0, "C", false, 0, "")
		}
	}
}

// drawCabinets fills each cabinet rectangle and writes its grid address.
func drawCabinets(pdf *fpdf.Fpdf, l model.Layout, scale float64, tx func(model.Point) (float64, float64)) {
	types := l.TypeIndex()
	gridLabels := address.GridLabels(l)

	for _, c := range l.Cabinets {
		b, ok := geometry.Bounds(c, types, l.Settings.DefaultPitch)
		if !ok {
			continue
		}
		x, y := tx(model.Point{X: b.X, Y: b.Y})
		w, h := b.W*scale, b.H*scale

		pdf.SetFillColor(235, 235, 235)
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, h, "FD")

		if label := gridLabels[c.ID]; label != "" && w > 8 && h > 5 {
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			pdf.SetTextColor(0, 0, 0)
			lw := pdf.GetStringWidth(label)
			pdf.SetXY(x+(w-lw)/2, y+h/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
	}
}

// drawChains draws each route's cable path and anchors, color-cycled.
func drawChains(pdf *fpdf.Fpdf, l model.Layout, scale float64, tx func(model.Point) (float64, float64)) {
	for i, r := range l.Routes {
		col := routeColors[i%len(routeColors)]
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.5)

		p := route.Synthesize(l, r)
		for _, line := range p.Lines {
			for j := 1; j < len(line); j++ {
				x1, y1 := tx(line[j-1])
				x2, y2 := tx(line[j])
				pdf.Line(x1, y1, x2, y2)
			}
		}
		for _, a := range p.Anchors {
			x, y := tx(a.Point)
			pdf.SetFillColor(col.R, col.G, col.B)
			if a.Virtual {
				pdf.Circle(x, y, 1.0, "D")
			} else {
				pdf.Circle(x, y, 1.0, "FD")
			}
		}
		if p.Terminal != nil {
			x, y := tx(*p.Terminal)
			pdf.SetLineWidth(0.5)
			pdf.Line(x-1.2, y-1.2, x+1.2, y+1.2)
			pdf.Line(x-1.2, y+1.2, x+1.2, y-1.2)
		}
	}
}

// drawFeeds draws power feed chains as dashed dark red lines so they
// read apart from the data routes.
func drawFeeds(pdf *fpdf.Fpdf, l model.Layout, tx func(model.Point) (float64, float64)) {
	pdf.SetDrawColor(150, 40, 40)
	pdf.SetLineWidth(0.4)
	pdf.SetDashPattern([]float64{1.5, 1.0}, 0)

	for _, f := range l.Feeds {
		p := route.SynthesizeFeed(l, f)
		for _, line := range p.Lines {
			for j := 1; j < len(line); j++ {
				x1, y1 := tx(line[j-1])
				x2, y2 := tx(line[j])
				pdf.Line(x1, y1, x2, y2)
			}
		}
	}

	pdf.SetDashPattern([]float64{}, 0)
}

// renderSummaryPage writes the capacity and validation tables.
func renderSummaryPage(pdf *fpdf.Fpdf, l model.Layout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(0, headerHeight, "Capacity & Validation Summary", "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 4

	ctrl := capacity.Controller(l)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 6, fmt.Sprintf("Controller %s: %d px total (%d x %d), over capacity: %v",
		ctrl.Model, ctrl.TotalPixels, ctrl.WidthPixels, ctrl.HeightPixels, ctrl.Over()), "", 0, "L", false, 0, "")
	y += 8

	for _, load := range capacity.RouteLoads(l) {
		pdf.SetXY(marginLeft, y)
		status := "ok"
		if load.Over {
			status = "OVER"
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("Port %d: %d px / %d (%s)",
			load.Port, load.Pixels, model.MaxPortPixels, status), "", 0, "L", false, 0, "")
		y += 5
	}
	y += 3

	for _, load := range capacity.FeedLoads(l) {
		pdf.SetXY(marginLeft, y)
		limit := "no limit"
		if load.SafeWatts > 0 {
			limit = fmt.Sprintf("%.0f W safe", load.SafeWatts)
		}
		status := "ok"
		if load.Over {
			status = "OVER"
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("Feed %s: %d W (%s, %s)",
			load.Label, load.Watts, limit, status), "", 0, "L", false, 0, "")
		y += 5
	}
	y += 3

	findings := validate.Layout(l)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 6, fmt.Sprintf("Findings: %d", len(findings)), "", 0, "L", false, 0, "")
	y += 7
	pdf.SetFont("Helvetica", "", 9)
	for _, f := range findings {
		if y > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(0, 5, fmt.Sprintf("[%s] %s: %s", f.Severity, f.Code, f.Message), "", 0, "L", false, 0, "")
		y += 5
	}
}

// annotationTexts builds the label texts: "P<port>" with the mapping
// number for routes, label plus breaker for feeds.
func annotationTexts(l model.Layout) (map[string]string, map[string]string) {
	mapping := address.MappingNumbers(l)
	routeTexts := make(map[string]string, len(l.Routes))
	for _, r := range l.Routes {
		text := fmt.Sprintf("P%d", r.Port)
		if l.Settings.MappingNumbers.Show {
			if m := mapping.ByRoute[r.ID]; m != "" {
				text = fmt.Sprintf("P%d #%s", r.Port, m)
			}
		}
		routeTexts[r.ID] = text
	}
	feedTexts := make(map[string]string, len(l.Feeds))
	for _, f := range l.Feeds {
		text := f.Label
		if f.Breaker != "" {
			text = fmt.Sprintf("%s %s", f.Label, f.Breaker)
		}
		feedTexts[f.ID] = text
	}
	return routeTexts, feedTexts
}

// labelFontSize picks a font size that fits the cabinet rectangle.
func labelFontSize(w, h float64) float64 {
	size := math.Min(w/6, h/2)
	if size < 5 {
		return 5
	}
	if size > 9 {
		return 9
	}
	return size
}
