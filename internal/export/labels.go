package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/address"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// CabinetLabelInfo holds the data encoded into each cabinet label's QR code.
type CabinetLabelInfo struct {
	CabinetID   string  `json:"id"`
	TypeID      string  `json:"type"`
	GridAddress string  `json:"address"`
	X           float64 `json:"x_mm"`
	Y           float64 `json:"y_mm"`
	Rotation    int     `json:"rotation"`
	Port        int     `json:"port,omitempty"`
	Mapping     string  `json:"mapping,omitempty"`
	FeedLabel   string  `json:"feed,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelPageMarginTop  = 12.7 // mm
	labelPageMarginLeft = 4.8  // mm
	labelCellWidth      = 66.7 // mm per label
	labelCellHeight     = 25.4 // mm per label
	labelCols           = 3
	labelRows           = 10
	labelsPerPage       = labelCols * labelRows
	qrSize              = 20.0 // QR code size in mm
	labelCellPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per cabinet, on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on US
// Letter). Each QR code encodes the cabinet's identity, grid address,
// chain port and power feed as JSON so a scanner app can verify
// installation order on site.
func ExportLabels(path string, l model.Layout) error {
	if len(l.Cabinets) == 0 {
		return fmt.Errorf("no cabinets to generate labels for")
	}

	infos := CollectLabelInfos(l)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, info := range infos {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelPageMarginLeft + float64(col)*labelCellWidth
		y := labelPageMarginTop + float64(row)*labelCellHeight

		if err := renderCabinetLabel(pdf, x, y, info); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", info.CabinetID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// CollectLabelInfos builds the label data for every cabinet, sorted by
// grid address so the printed sheet follows installation order.
func CollectLabelInfos(l model.Layout) []CabinetLabelInfo {
	gridLabels := address.GridLabels(l)
	mappings := cabinetMappings(l, address.MappingNumbers(l))
	ports := cabinetPorts(l)
	feeds := cabinetFeeds(l)

	infos := make([]CabinetLabelInfo, 0, len(l.Cabinets))
	for _, c := range l.Cabinets {
		infos = append(infos, CabinetLabelInfo{
			CabinetID:   c.ID,
			TypeID:      c.TypeID,
			GridAddress: gridLabels[c.ID],
			X:           c.X,
			Y:           c.Y,
			Rotation:    c.Rotation,
			Port:        ports[c.ID],
			Mapping:     mappings[c.ID],
			FeedLabel:   feeds[c.ID],
		})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].GridAddress != infos[j].GridAddress {
			return infos[i].GridAddress < infos[j].GridAddress
		}
		return infos[i].CabinetID < infos[j].CabinetID
	})
	return infos
}

// cabinetPorts maps each cabinet to the port of the first route that
// chains through it.
func cabinetPorts(l model.Layout) map[string]int {
	out := make(map[string]int)
	for _, r := range l.Routes {
		for _, id := range r.Steps.CabinetIDs() {
			if _, seen := out[id]; !seen {
				out[id] = r.Port
			}
		}
	}
	return out
}

// cabinetMappings maps each cabinet to its mapping label from the first
// route endpoint landing on it. Mapping labels are stored per route,
// parallel to that route's step list.
func cabinetMappings(l model.Layout, m address.Mapping) map[string]string {
	out := make(map[string]string)
	for _, r := range l.Routes {
		labels := m.ByEndpoint[r.ID]
		for i, s := range r.Steps {
			cs, ok := s.(model.CabinetStep)
			if !ok || i >= len(labels) || labels[i] == "" {
				continue
			}
			if _, seen := out[cs.CabinetID]; !seen {
				out[cs.CabinetID] = labels[i]
			}
		}
	}
	return out
}

// cabinetFeeds maps each cabinet to the label of the first power feed
// that chains through it.
func cabinetFeeds(l model.Layout) map[string]string {
	out := make(map[string]string)
	for _, f := range l.Feeds {
		for _, id := range f.Steps.CabinetIDs() {
			if _, seen := out[id]; !seen {
				out[id] = f.Label
			}
		}
	}
	return out
}

// renderCabinetLabel draws a single label at the given position.
func renderCabinetLabel(pdf *fpdf.Fpdf, x, y float64, info CabinetLabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelCellWidth, labelCellHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.CabinetID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelCellWidth - qrSize - labelCellPadding
	qrY := y + (labelCellHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelCellPadding
	textW := labelCellWidth - qrSize - 3*labelCellPadding

	// Grid address, the thing the installer reads first
	heading := info.GridAddress
	if heading == "" {
		heading = info.CabinetID
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelCellPadding)
	pdf.CellFormat(textW, 5, heading, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelCellPadding+6)
	typeLine := info.TypeID
	if pdf.GetStringWidth(typeLine) > textW {
		for len(typeLine) > 0 && pdf.GetStringWidth(typeLine+"...") > textW {
			typeLine = typeLine[:len(typeLine)-1]
		}
		typeLine += "..."
	}
	pdf.CellFormat(textW, 3.5, typeLine, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelCellPadding+10)
	posInfo := fmt.Sprintf("@ (%.0f, %.0f) rot %d", info.X, info.Y, info.Rotation)
	pdf.CellFormat(textW, 3, posInfo, "", 1, "L", false, 0, "")

	if info.Port > 0 || info.FeedLabel != "" {
		pdf.SetXY(textX, y+labelCellPadding+13.5)
		wiring := ""
		if info.Port > 0 {
			wiring = fmt.Sprintf("Port %d", info.Port)
			if info.Mapping != "" {
				wiring += " #" + info.Mapping
			}
		}
		if info.FeedLabel != "" {
			if wiring != "" {
				wiring += " / "
			}
			wiring += info.FeedLabel
		}
		pdf.CellFormat(textW, 3, wiring, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
