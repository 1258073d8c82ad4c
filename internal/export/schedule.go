package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/address"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/capacity"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// ExportSchedule writes the wiring schedule workbook: one sheet listing
// every cabinet with its address and pixel dimensions, one per data
// route with its port load, and one for the power feeds.
func ExportSchedule(path string, l model.Layout) error {
	if len(l.Cabinets) == 0 {
		return fmt.Errorf("no cabinets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeCabinetSheet(f, l); err != nil {
		return err
	}
	if err := writeRouteSheet(f, l); err != nil {
		return err
	}
	if err := writeFeedSheet(f, l); err != nil {
		return err
	}

	// excelize starts with a default sheet named Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeCabinetSheet(f *excelize.File, l model.Layout) error {
	const sheet = "Cabinets"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"Address", "Cabinet ID", "Type", "X (mm)", "Y (mm)", "Rotation", "Cards", "Pixels W", "Pixels H"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return err
	}

	types := l.TypeIndex()
	for i, info := range CollectLabelInfos(l) {
		c, _ := l.CabinetByID(info.CabinetID)
		var pw, ph int
		if t, ok := types[c.TypeID]; ok {
			pw, ph = capacity.PixelDims(t, c.Rotation)
		}
		row := i + 2
		cells := []interface{}{info.GridAddress, c.ID, c.TypeID, c.X, c.Y, c.Rotation, c.CardCount(), pw, ph}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "C", 18)
}

func writeRouteSheet(f *excelize.File, l model.Layout) error {
	const sheet = "Data Routes"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"Port", "Route ID", "Step", "Cabinet", "Card", "Mapping", "Pixels", "Port Load", "Over"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return err
	}

	mapping := address.MappingNumbers(l)
	loads := make(map[string]capacity.RouteLoad)
	for _, load := range capacity.RouteLoads(l) {
		loads[load.RouteID] = load
	}

	row := 2
	for _, r := range l.Routes {
		load := loads[r.ID]
		labels := mapping.ByEndpoint[r.ID]
		step := 0
		for i, s := range r.Steps {
			cs, ok := s.(model.CabinetStep)
			if !ok {
				continue
			}
			c, found := l.CabinetByID(cs.CabinetID)
			if !found {
				continue
			}
			step++
			px := 0
			if t, ok := l.TypeIndex()[c.TypeID]; ok {
				w, h := capacity.PixelDims(t, c.Rotation)
				px = w * h
				if c.CardCount() == 2 {
					px /= 2
				}
			}
			label := ""
			if i < len(labels) {
				label = labels[i]
			}
			cells := []interface{}{r.Port, r.ID, step, cs.CabinetID, cardLabel(cs.Card), label, px, load.Pixels, load.Over}
			if err := writeRow(f, sheet, row, cells); err != nil {
				return err
			}
			row++
		}
	}

	return f.SetColWidth(sheet, "B", "D", 18)
}

func writeFeedSheet(f *excelize.File, l model.Layout) error {
	const sheet = "Power Feeds"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"Feed", "Breaker", "Connector", "Cabinets", "Load (W)", "Safe (W)", "Over"}
	if err := writeHeaderRow(f, sheet, headers); err != nil {
		return err
	}

	loads := capacity.FeedLoads(l)
	for i, load := range loads {
		feed, _ := feedByID(l, load.FeedID)
		cells := []interface{}{load.Label, feed.Breaker, feed.Connector, len(feed.Steps.CabinetIDs()), load.Watts, load.SafeWatts, load.Over}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "C", 14)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %s: %w", h, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

func cardLabel(card int) string {
	if card < 0 {
		return ""
	}
	return fmt.Sprintf("%d", card)
}

func feedByID(l model.Layout, id string) (model.PowerFeed, bool) {
	for _, f := range l.Feeds {
		if f.ID == id {
			return f, true
		}
	}
	return model.PowerFeed{}, false
}
