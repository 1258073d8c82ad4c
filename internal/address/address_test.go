package address

import (
	"testing"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridLayout(cabinets ...model.Cabinet) model.Layout {
	l := model.NewLayout("test")
	l.Cabinets = cabinets
	return l
}

func TestGridLabelsRegularGrid(t *testing.T) {
	// 2 columns x 3 rows, deliberately shuffled input order.
	l := gridLayout(
		model.Cabinet{ID: "c5", TypeID: "IC-500x500-P2.6", X: 500, Y: 1000},
		model.Cabinet{ID: "c0", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "c3", TypeID: "IC-500x500-P2.6", X: 500, Y: 0},
		model.Cabinet{ID: "c2", TypeID: "IC-500x500-P2.6", X: 0, Y: 1000},
		model.Cabinet{ID: "c1", TypeID: "IC-500x500-P2.6", X: 0, Y: 500},
		model.Cabinet{ID: "c4", TypeID: "IC-500x500-P2.6", X: 500, Y: 500},
	)
	labels := GridLabels(l)
	assert.Equal(t, map[string]string{
		"c0": "A1", "c1": "A2", "c2": "A3",
		"c3": "B1", "c4": "B2", "c5": "B3",
	}, labels)
}

func TestGridLabelsAxisSwap(t *testing.T) {
	l := gridLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 500, Y: 500},
	)
	l.Settings.RowsAsLetters = true
	labels := GridLabels(l)
	assert.Equal(t, "A1", labels["a"])
	assert.Equal(t, "B2", labels["b"])
}

func TestGridLabelsToleratesJitter(t *testing.T) {
	// Sub-millimetre jitter must not split a column.
	l := gridLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0},
		model.Cabinet{ID: "b", TypeID: "IC-500x500-P2.6", X: 0.4, Y: 500},
	)
	labels := GridLabels(l)
	assert.Equal(t, "A1", labels["a"])
	assert.Equal(t, "A2", labels["b"])
}

func TestGridLabelsManualOverrideWins(t *testing.T) {
	l := gridLayout(
		model.Cabinet{ID: "a", TypeID: "IC-500x500-P2.6", X: 0, Y: 0, GridLabel: "SPARE"},
	)
	assert.Equal(t, "SPARE", GridLabels(l)["a"])
}

func TestLettersBase26(t *testing.T) {
	assert.Equal(t, "A", letters(0))
	assert.Equal(t, "Z", letters(25))
	assert.Equal(t, "AA", letters(26))
	assert.Equal(t, "AZ", letters(51))
	assert.Equal(t, "BA", letters(52))
}

func TestBuildSequenceDefaults(t *testing.T) {
	assert.Equal(t, []int{1, 3, 5, 7, 9}, BuildSequence(5, nil))
}

func TestBuildSequenceCustomFirst(t *testing.T) {
	// Supplied values first, then the odd sequence resumes from where
	// the supplied count left off.
	assert.Equal(t, []int{10, 20, 5, 7, 9}, BuildSequence(5, []int{10, 20}))
	assert.Equal(t, []int{10, 20}, BuildSequence(2, []int{10, 20, 30}))
}

func chainedRoute(id string, port int, steps ...model.RouteStep) model.DataRoute {
	return model.DataRoute{ID: id, Port: port, Steps: steps}
}

func TestMappingAutoOrdersByPortThenID(t *testing.T) {
	l := model.NewLayout("test")
	l.Routes = []model.DataRoute{
		chainedRoute("zz", 2, model.CabinetStep{CabinetID: "a", Card: -1}),
		chainedRoute("bb", 1, model.CabinetStep{CabinetID: "b", Card: -1}),
		chainedRoute("aa", 1, model.CabinetStep{CabinetID: "c", Card: -1}),
		chainedRoute("empty", 0), // no endpoints: does not participate
	}
	m := MappingNumbers(l)
	assert.Equal(t, "1", m.ByRoute["aa"])
	assert.Equal(t, "3", m.ByRoute["bb"])
	assert.Equal(t, "5", m.ByRoute["zz"])
	_, has := m.ByRoute["empty"]
	assert.False(t, has)
}

func TestMappingEndpointsInheritRouteLabel(t *testing.T) {
	l := model.NewLayout("test")
	l.Routes = []model.DataRoute{
		chainedRoute("r", 1,
			model.CabinetStep{CabinetID: "a", Card: -1},
			model.CabinetStep{CabinetID: "b", Card: -1},
		),
	}
	m := MappingNumbers(l)
	assert.Equal(t, []string{"1", "1"}, m.ByEndpoint["r"])
}

func TestMappingRestartPerCardGroupsByDominantIndex(t *testing.T) {
	l := model.NewLayout("test")
	l.Settings.MappingNumbers.RestartPerCard = true
	l.Routes = []model.DataRoute{
		chainedRoute("r0", 1,
			model.CabinetStep{CabinetID: "a", Card: 0},
			model.CabinetStep{CabinetID: "b", Card: 0},
			model.CabinetStep{CabinetID: "c", Card: 1},
		),
		chainedRoute("r1", 2,
			model.CabinetStep{CabinetID: "d", Card: 1},
			model.CabinetStep{CabinetID: "e", Card: 1},
		),
		chainedRoute("r2", 3,
			// Split evenly: the tie favors the lower card index.
			model.CabinetStep{CabinetID: "f", Card: 0},
			model.CabinetStep{CabinetID: "g", Card: 1},
		),
	}
	m := MappingNumbers(l)
	// Card-0 group: r0, r2 in port order. Card-1 group: r1 restarts at 1.
	assert.Equal(t, "1", m.ByRoute["r0"])
	assert.Equal(t, "3", m.ByRoute["r2"])
	assert.Equal(t, "1", m.ByRoute["r1"])
}

func TestMappingManualOverridePriority(t *testing.T) {
	l := model.NewLayout("test")
	l.Settings.MappingNumbers.Mode = model.MappingManual
	l.Settings.MappingNumbers.ChainOverrides = map[string]string{"r": "7"}
	l.Settings.MappingNumbers.EndpointOverrides = map[string][]string{"r": {"", "42"}}
	l.Routes = []model.DataRoute{
		chainedRoute("r", 1,
			model.CabinetStep{CabinetID: "a", Card: -1},
			model.CabinetStep{CabinetID: "b", Card: -1},
			model.CabinetStep{CabinetID: "c", Card: -1},
		),
		chainedRoute("bare", 2, model.CabinetStep{CabinetID: "d", Card: -1}),
	}
	m := MappingNumbers(l)
	// Endpoint override beats the chain override; the chain override
	// fills the rest; routes with neither stay unlabeled.
	assert.Equal(t, []string{"7", "42", "7"}, m.ByEndpoint["r"])
	assert.Equal(t, []string{""}, m.ByEndpoint["bare"])
}

func TestMappingCustomSequenceFeedsAuto(t *testing.T) {
	l := model.NewLayout("test")
	l.Settings.MappingNumbers.CustomSequence = []int{10, 20}
	l.Routes = []model.DataRoute{
		chainedRoute("a", 1, model.CabinetStep{CabinetID: "x", Card: -1}),
		chainedRoute("b", 2, model.CabinetStep{CabinetID: "y", Card: -1}),
		chainedRoute("c", 3, model.CabinetStep{CabinetID: "z", Card: -1}),
	}
	m := MappingNumbers(l)
	assert.Equal(t, "10", m.ByRoute["a"])
	assert.Equal(t, "20", m.ByRoute["b"])
	assert.Equal(t, "5", m.ByRoute["c"])
}

func TestMappingDeterministicAcrossCalls(t *testing.T) {
	l := model.NewLayout("test")
	l.Routes = []model.DataRoute{
		chainedRoute("a", 1, model.CabinetStep{CabinetID: "x", Card: -1}),
		chainedRoute("b", 2, model.CabinetStep{CabinetID: "y", Card: -1}),
	}
	first := MappingNumbers(l)
	second := MappingNumbers(l)
	require.Equal(t, first.ByRoute, second.ByRoute)
	require.Equal(t, first.ByEndpoint, second.ByEndpoint)
}
