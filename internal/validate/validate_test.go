package validate

import (
	"testing"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findByCode(findings []Finding, code string) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

func cleanLayout(cabinets ...model.Cabinet) model.Layout {
	l := model.NewLayout("test")
	l.Settings.GridSnap = false
	l.Cabinets = cabinets
	return l
}

func TestValidateCleanLayout(t *testing.T) {
	l := cleanLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 500, Y: 0},
	)
	assert.Empty(t, Layout(l))
}

func TestDuplicateIDReportedOncePerID(t *testing.T) {
	l := cleanLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 500, Y: 0},
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 1000, Y: 0},
	)
	dups := findByCode(Layout(l), CodeDuplicateID)
	require.Len(t, dups, 1)
	assert.Equal(t, SeverityError, dups[0].Severity)
	assert.Equal(t, []string{"a"}, dups[0].CabinetIDs)
}

func TestMissingTypeSkipsGeometricChecks(t *testing.T) {
	l := cleanLayout(
		model.Cabinet{ID: "a", TypeID: "mystery", X: 0, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "c", TypeID: "IC-500x500-P2.6", X: 250, Y: 0},
	)
	findings := Layout(l)
	require.Len(t, findByCode(findings, CodeMissingType), 1)
	// The unresolved cabinet takes part in no overlap pair.
	overlapping := findByCode(findings, CodeOverlap)
	require.Len(t, overlapping, 1)
	assert.Equal(t, []string{"b", "c"}, overlapping[0].CabinetIDs)
}

func TestOverlapOncePerPairNeverForTouching(t *testing.T) {
	l := cleanLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 400, Y: 0},
		model.Cabinet{ID: "c", TypeID: "IC-500x500-P2.6", X: 900, Y: 0}, // touches b exactly
	)
	overlapping := findByCode(Layout(l), CodeOverlap)
	require.Len(t, overlapping, 1)
	assert.Equal(t, []string{"a", "b"}, overlapping[0].CabinetIDs)
}

func TestOutOfGridWarnsOnlyWhenSnapping(t *testing.T) {
	l := cleanLayout(model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 13, Y: 0})
	assert.Empty(t, findByCode(Layout(l), CodeOutOfGrid))

	l.Settings.GridSnap = true
	l.Settings.GridStep = 50
	warnings := findByCode(Layout(l), CodeOutOfGrid)
	require.Len(t, warnings, 1)
	assert.Equal(t, SeverityWarning, warnings[0].Severity)

	l.Cabinets[0].X = 150
	assert.Empty(t, findByCode(Layout(l), CodeOutOfGrid))
}

func TestOutOfGridToleratesFloatNoise(t *testing.T) {
	l := cleanLayout(model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 149.99999999, Y: 0})
	l.Settings.GridSnap = true
	l.Settings.GridStep = 50
	assert.Empty(t, findByCode(Layout(l), CodeOutOfGrid))
}

func TestIsolatedCabinetNeedsCompany(t *testing.T) {
	solo := cleanLayout(model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0})
	assert.Empty(t, findByCode(Layout(solo), CodeIsolatedCabinet))

	l := cleanLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 500, Y: 0},
		model.Cabinet{ID: "far", TypeID: "IC-500x500-P2.6", X: 5000, Y: 0},
	)
	isolated := findByCode(Layout(l), CodeIsolatedCabinet)
	require.Len(t, isolated, 1)
	assert.Equal(t, []string{"far"}, isolated[0].CabinetIDs)
}

func TestValidateNeverMutatesInput(t *testing.T) {
	l := cleanLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "a", TypeID: "mystery", X: 0, Y: 0},
	)
	before := len(l.Cabinets)
	first := Layout(l)
	second := Layout(l)
	assert.Equal(t, first, second, "repeated calls must agree")
	assert.Equal(t, before, len(l.Cabinets))
}
