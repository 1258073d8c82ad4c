package geometry

import (
	"testing"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(cabinets ...model.Cabinet) model.Layout {
	l := model.NewLayout("test")
	l.Cabinets = cabinets
	return l
}

func TestBoundsSwapsDimensionsUnderRotation(t *testing.T) {
	l := testLayout()
	types := l.TypeIndex()

	c := model.Cabinet{ID: "a", TypeID: "IC-500x1000-P2.6", X: 100, Y: 200}
	for _, rot := range []int{0, 90, 180, 270} {
		c.Rotation = rot
		b, ok := Bounds(c, types, l.Settings.DefaultPitch)
		require.True(t, ok, "rotation %d", rot)
		if rot == 90 || rot == 270 {
			assert.Equal(t, 1000.0, b.W, "rotation %d", rot)
			assert.Equal(t, 500.0, b.H, "rotation %d", rot)
		} else {
			assert.Equal(t, 500.0, b.W, "rotation %d", rot)
			assert.Equal(t, 1000.0, b.H, "rotation %d", rot)
		}
		assert.Equal(t, 100.0, b.X)
		assert.Equal(t, 200.0, b.Y)
	}
}

func TestBoundsFallsBackToSizePattern(t *testing.T) {
	l := testLayout()
	b, ok := Bounds(model.Cabinet{ID: "a", TypeID: "CUSTOM-640x480-rev2"}, l.TypeIndex(), 2.6)
	require.True(t, ok)
	assert.Equal(t, 640.0, b.W)
	assert.Equal(t, 480.0, b.H)
}

func TestBoundsUnresolvedType(t *testing.T) {
	l := testLayout()
	_, ok := Bounds(model.Cabinet{ID: "a", TypeID: "mystery"}, l.TypeIndex(), 2.6)
	assert.False(t, ok)
}

func TestParseSizeID(t *testing.T) {
	w, h, ok := ParseSizeID("P2-600x337.5")
	require.True(t, ok)
	assert.Equal(t, 600.0, w)
	assert.Equal(t, 337.5, h)

	_, _, ok = ParseSizeID("no-size-here")
	assert.False(t, ok)
}

func TestLayoutBoundsEmpty(t *testing.T) {
	_, ok := LayoutBounds(testLayout())
	assert.False(t, ok)
}

func TestLayoutBoundsUnion(t *testing.T) {
	l := testLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 500, Y: 500},
	)
	b, ok := LayoutBounds(l)
	require.True(t, ok)
	assert.Equal(t, model.Rect{X: 0, Y: 0, W: 1000, H: 1000}, b)
}

func TestAdjacentToleratesSmallGap(t *testing.T) {
	a := model.Rect{X: 0, Y: 0, W: 500, H: 500}
	b := model.Rect{X: 500.5, Y: 0, W: 500, H: 500} // 0.5mm seam
	c := model.Rect{X: 505, Y: 0, W: 500, H: 500}   // 5mm gap
	d := model.Rect{X: 500.5, Y: 500.5, W: 500, H: 500}

	assert.True(t, Adjacent(a, b))
	assert.False(t, Adjacent(a, c))
	// Corner proximity without overlap on either axis is not adjacency.
	assert.False(t, Adjacent(a, d))
}

func TestConnectedGroupsSortedAndMerged(t *testing.T) {
	// Two separate walls: a 2x1 pair at the top right and a single
	// cabinet at the bottom left.
	l := testLayout(
		model.Cabinet{ID: "c", TypeID: "IC-500x500-P2.6", X: 0, Y: 2000},
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 3000, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 3500, Y: 0},
	)
	groups := ConnectedGroups(l)
	require.Len(t, groups, 2)
	// Top-to-bottom ordering.
	assert.Equal(t, model.Rect{X: 3000, Y: 0, W: 1000, H: 500}, groups[0])
	assert.Equal(t, model.Rect{X: 0, Y: 2000, W: 500, H: 500}, groups[1])
}

func TestConnectedGroupsEmptyLayout(t *testing.T) {
	assert.Nil(t, ConnectedGroups(testLayout()))
}

func TestNeighborsIgnoresUnresolvable(t *testing.T) {
	l := testLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 500, Y: 0},
		model.Cabinet{ID: "x", TypeID: "mystery", X: 0, Y: 0},
	)
	n := Neighbors(l)
	assert.True(t, n["a"])
	assert.True(t, n["b"])
	_, present := n["x"]
	assert.False(t, present)
}
