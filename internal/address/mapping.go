package address

import (
	"sort"
	"strconv"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// Mapping holds the assigned mapping numbers of a layout's routes.
type Mapping struct {
	// ByRoute is the label shared by a whole chain; empty when the
	// route received none.
	ByRoute map[string]string
	// ByEndpoint gives one label per route step, parallel to the
	// route's step list. "" marks an unlabeled endpoint.
	ByEndpoint map[string][]string
}

// BuildSequence builds n labels: any custom values first, then the odd
// sequence 1,3,5,... continuing from where the supplied count left off.
// BuildSequence(5, nil) is [1 3 5 7 9]; BuildSequence(5, []int{10, 20})
// is [10 20 5 7 9].
func BuildSequence(n int, custom []int) []int {
	out := make([]int, 0, n)
	for _, v := range custom {
		if len(out) == n {
			return out
		}
		out = append(out, v)
	}
	for k := len(custom); len(out) < n; k++ {
		out = append(out, 2*k+1)
	}
	return out
}

// dominantCard returns the card index with the most cabinet endpoints in
// the route; ties favor the lower index. Steps without an explicit card
// count as card 0.
func dominantCard(r model.DataRoute) int {
	counts := [2]int{}
	for _, step := range r.Steps {
		cs, ok := step.(model.CabinetStep)
		if !ok {
			continue
		}
		card := cs.Card
		if card < 0 || card > 1 {
			card = 0
		}
		counts[card]++
	}
	if counts[1] > counts[0] {
		return 1
	}
	return 0
}

// MappingNumbers assigns mapping numbers to the layout's routes per its
// settings.
//
// Manual mode: a per-endpoint override beats a per-chain override;
// endpoints with neither stay unlabeled.
//
// Auto mode: only routes with at least one step participate. Routes are
// sorted by port then id. With restart-per-card enabled, routes are
// grouped by dominant card index and each group numbers from its own
// sequence; otherwise one sequence spans all active routes. Every
// endpoint inherits its route's label.
func MappingNumbers(l model.Layout) Mapping {
	s := l.Settings.MappingNumbers
	out := Mapping{
		ByRoute:    make(map[string]string),
		ByEndpoint: make(map[string][]string),
	}

	if s.Mode == model.MappingManual {
		for _, r := range l.Routes {
			chain := s.ChainOverrides[r.ID]
			perStep := s.EndpointOverrides[r.ID]
			labels := make([]string, len(r.Steps))
			for i := range r.Steps {
				switch {
				case i < len(perStep) && perStep[i] != "":
					labels[i] = perStep[i]
				case chain != "":
					labels[i] = chain
				}
			}
			if chain != "" {
				out.ByRoute[r.ID] = chain
			}
			out.ByEndpoint[r.ID] = labels
		}
		return out
	}

	// Auto mode.
	active := make([]model.DataRoute, 0, len(l.Routes))
	for _, r := range l.Routes {
		if len(r.Steps) > 0 {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Port != active[j].Port {
			return active[i].Port < active[j].Port
		}
		return active[i].ID < active[j].ID
	})

	groups := [][]model.DataRoute{active}
	if s.RestartPerCard {
		byCard := [2][]model.DataRoute{}
		for _, r := range active {
			card := dominantCard(r)
			byCard[card] = append(byCard[card], r)
		}
		groups = [][]model.DataRoute{byCard[0], byCard[1]}
	}

	for _, group := range groups {
		seq := BuildSequence(len(group), s.CustomSequence)
		for i, r := range group {
			label := strconv.Itoa(seq[i])
			out.ByRoute[r.ID] = label
			labels := make([]string, len(r.Steps))
			for j := range labels {
				labels[j] = label
			}
			out.ByEndpoint[r.ID] = labels
		}
	}
	return out
}
