package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

func buildExportTestLayout() model.Layout {
	one := 1
	return model.Layout{
		Name: "Lobby Wall",
		Mode: model.ModeIndoor,
		Cabinets: []model.Cabinet{
			{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0, Cards: &one},
			{ID: "b", TypeID: "IC-500x500-P2.6", X: 500, Y: 0, Cards: &one},
			{ID: "c", TypeID: "IC-500x500-P2.6", X: 0, Y: 500, Cards: &one},
			{ID: "d", TypeID: "IC-500x500-P2.6", X: 500, Y: 500, Cards: &one},
		},
		Routes: []model.DataRoute{
			{ID: "r1", Port: 1, Steps: model.Steps{
				model.CabinetStep{CabinetID: "a", Card: 0},
				model.CabinetStep{CabinetID: "b", Card: 0},
			}},
			{ID: "r2", Port: 2, Steps: model.Steps{
				model.CabinetStep{CabinetID: "c", Card: 0},
				model.CabinetStep{CabinetID: "d", Card: 0},
			}},
		},
		Feeds: []model.PowerFeed{
			{ID: "f1", Label: "F1", Breaker: "16A", Connector: "powerCON", Steps: model.Steps{
				model.CabinetStep{CabinetID: "a", Card: -1},
				model.CabinetStep{CabinetID: "c", Card: -1},
			}},
		},
		Settings: model.DefaultSettings(),
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.pdf")

	if err := ExportPDF(path, buildExportTestLayout()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, model.Layout{Settings: model.DefaultSettings()})
	if err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be created for an empty layout")
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	if err := ExportLabels(path, buildExportTestLayout()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_EmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportLabels(path, model.Layout{Settings: model.DefaultSettings()})
	if err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestCollectLabelInfos_SortedByAddress(t *testing.T) {
	infos := CollectLabelInfos(buildExportTestLayout())
	if len(infos) != 4 {
		t.Fatalf("expected 4 label infos, got %d", len(infos))
	}
	// Columns are lettered, rows numbered: a=A1, c=A2, b=B1, d=B2.
	want := []string{"A1", "A2", "B1", "B2"}
	for i, w := range want {
		if infos[i].GridAddress != w {
			t.Errorf("info[%d].GridAddress = %q, want %q", i, infos[i].GridAddress, w)
		}
	}
	if infos[0].Port != 1 {
		t.Errorf("cabinet a should carry port 1, got %d", infos[0].Port)
	}
	if infos[1].FeedLabel != "F1" {
		t.Errorf("cabinet c should carry feed F1, got %q", infos[1].FeedLabel)
	}
	// Auto numbering hands route r1 the label 1 and r2 the next odd, 3.
	if infos[0].Mapping != "1" {
		t.Errorf("cabinet a mapping = %q, want 1", infos[0].Mapping)
	}
	if infos[1].Mapping != "3" {
		t.Errorf("cabinet c mapping = %q, want 3", infos[1].Mapping)
	}
}

func TestExportSchedule_CreatesWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.xlsx")

	if err := ExportSchedule(path, buildExportTestLayout()); err != nil {
		t.Fatalf("ExportSchedule returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook was not readable: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Cabinets", "Data Routes", "Power Feeds"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	rows, err := f.GetRows("Cabinets")
	if err != nil {
		t.Fatalf("failed to read Cabinets sheet: %v", err)
	}
	// Header plus one row per cabinet
	if len(rows) != 5 {
		t.Errorf("expected 5 rows on Cabinets sheet, got %d", len(rows))
	}
	if len(rows) > 1 && rows[1][0] != "A1" {
		t.Errorf("first cabinet row address = %q, want A1", rows[1][0])
	}

	routeRows, err := f.GetRows("Data Routes")
	if err != nil {
		t.Fatalf("failed to read Data Routes sheet: %v", err)
	}
	if len(routeRows) != 5 {
		t.Fatalf("expected 5 rows on Data Routes sheet, got %d", len(routeRows))
	}
	// Mapping column carries the route's assigned number.
	if got := routeRows[1][5]; got != "1" {
		t.Errorf("route r1 step 1 mapping = %q, want 1", got)
	}
	if got := routeRows[3][5]; got != "3" {
		t.Errorf("route r2 step 1 mapping = %q, want 3", got)
	}
}

func TestExportSchedule_EmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xlsx")

	err := ExportSchedule(path, model.Layout{Settings: model.DefaultSettings()})
	if err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}
