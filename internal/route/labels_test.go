package route

import (
	"math"
	"testing"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelFor(placed []PlacedLabel, refID string) (PlacedLabel, bool) {
	for _, p := range placed {
		if p.RefID == refID {
			return p, true
		}
	}
	return PlacedLabel{}, false
}

func TestPlaceLabelsBottomForLowestRow(t *testing.T) {
	l, r := wall2x2()
	placed, _, ok := PlaceLabels(l, map[string]string{r.ID: "P1"}, nil)
	require.True(t, ok)
	lbl, found := labelFor(placed, r.ID)
	require.True(t, found)
	// The chain starts in the top row of a two-row wall in the left
	// half, so the label goes to the left side.
	assert.Equal(t, model.SideLeft, lbl.Side)
}

func TestPlaceLabelsSideSelection(t *testing.T) {
	l := model.NewLayout("test")
	l.Cabinets = []model.Cabinet{
		{ID: "tl", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		{ID: "tr", TypeID: "IC-500x500-P2.6", X: 1500, Y: 0},
		{ID: "bl", TypeID: "IC-500x500-P2.6", X: 0, Y: 500},
	}
	l.Routes = []model.DataRoute{
		{ID: "left", Port: 1, Steps: model.Steps{model.CabinetStep{CabinetID: "tl", Card: -1}}},
		{ID: "right", Port: 2, Steps: model.Steps{model.CabinetStep{CabinetID: "tr", Card: -1}}},
		{ID: "low", Port: 3, Steps: model.Steps{model.CabinetStep{CabinetID: "bl", Card: -1}}},
	}
	texts := map[string]string{"left": "P1", "right": "P2", "low": "P3"}
	placed, _, ok := PlaceLabels(l, texts, nil)
	require.True(t, ok)

	lbl, _ := labelFor(placed, "left")
	assert.Equal(t, model.SideLeft, lbl.Side, "upper row, left half")
	lbl, _ = labelFor(placed, "right")
	assert.Equal(t, model.SideRight, lbl.Side, "upper row, right half")
	lbl, _ = labelFor(placed, "low")
	assert.Equal(t, model.SideBottom, lbl.Side, "lowest occupied row")
}

func TestPlaceLabelsOverridesWin(t *testing.T) {
	l, r := wall2x2()
	l.Routes[0].LabelSide = model.SideTop
	placed, _, ok := PlaceLabels(l, map[string]string{r.ID: "P1"}, nil)
	require.True(t, ok)
	lbl, _ := labelFor(placed, r.ID)
	assert.Equal(t, model.SideTop, lbl.Side)

	l.Routes[0].ForceLabelBottom = true
	placed, _, _ = PlaceLabels(l, map[string]string{r.ID: "P1"}, nil)
	lbl, _ = labelFor(placed, r.ID)
	assert.Equal(t, model.SideBottom, lbl.Side, "force bottom beats the explicit side")
}

func TestPackPositionsShiftsOnlyOnCollision(t *testing.T) {
	// Two labels with desired centers 0 and 10, each half-width 10,
	// gap 4: the first stays put, the second shifts until its center
	// reaches 24.
	starts := packPositions([]float64{0, 10}, []float64{20, 20}, 4)
	require.Len(t, starts, 2)
	assert.InDelta(t, -10.0, starts[0], 1e-9, "first label keeps its natural position")
	secondCenter := starts[1] + 10
	assert.GreaterOrEqual(t, secondCenter, 24.0)
	assert.InDelta(t, 24.0, secondCenter, 1e-9, "shifted only as far as needed")
}

func TestPackSideNoCollisionNoShift(t *testing.T) {
	reqs := []labelRequest{
		{text: "P1", refID: "a", desired: model.Point{X: 0, Y: 0}},
		{text: "P2", refID: "b", desired: model.Point{X: 500, Y: 0}},
	}
	placed := packSide(model.SideBottom, reqs, model.Rect{W: 1000, H: 500})
	secondCenter := placed[1].Box.X + placed[1].Box.W/2
	assert.InDelta(t, 500.0, secondCenter, 0.01)
}

func TestPlaceLabelsCombinedBounds(t *testing.T) {
	l, r := wall2x2()
	f := model.NewPowerFeed("F1", "16A")
	f.Steps = model.Steps{model.CabinetStep{CabinetID: "d", Card: -1}}
	l.Feeds = []model.PowerFeed{f}

	placed, bbox, ok := PlaceLabels(l,
		map[string]string{r.ID: "P1"},
		map[string]string{f.ID: "F1 16A"},
	)
	require.True(t, ok)
	require.Len(t, placed, 2)
	for _, p := range placed {
		assert.GreaterOrEqual(t, p.Box.X, bbox.X-1e-9)
		assert.LessOrEqual(t, p.Box.Right(), bbox.Right()+1e-9)
		assert.GreaterOrEqual(t, p.Box.Y, bbox.Y-1e-9)
		assert.LessOrEqual(t, p.Box.Bottom(), bbox.Bottom()+1e-9)
	}
}

func TestPlaceLabelsEmptyLayout(t *testing.T) {
	l := model.NewLayout("empty")
	_, _, ok := PlaceLabels(l, nil, nil)
	assert.False(t, ok)
}

func TestLabelBoxWidthScalesWithText(t *testing.T) {
	short := labelBoxWidth("P1")
	long := labelBoxWidth("P1 (chain 12)")
	assert.Greater(t, long, short)
	assert.True(t, math.Abs(short-(2*labelCharWidth+labelPadding)) < 1e-9)
}
