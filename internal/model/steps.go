package model

import (
	"encoding/json"
	"fmt"
)

// RouteStep is one entry in a route or feed: either a cabinet endpoint or
// a literal free point placed by the user.
type RouteStep interface {
	isRouteStep()
}

// CabinetStep references a cabinet, optionally pinned to one of its
// receiver cards. Card is the card index (0 or 1); -1 leaves the card
// unspecified, which resolves as card 0 on carded cabinets.
type CabinetStep struct {
	CabinetID string
	Card      int
}

func (CabinetStep) isRouteStep() {}

// PointStep is an explicit waypoint in layout coordinates.
type PointStep struct {
	At Point
}

func (PointStep) isRouteStep() {}

// Steps is an ordered list of route steps with a stable JSON encoding.
type Steps []RouteStep

// CabinetIDs returns the ids of all cabinet steps, in order.
func (s Steps) CabinetIDs() []string {
	var ids []string
	for _, st := range s {
		if cs, ok := st.(CabinetStep); ok {
			ids = append(ids, cs.CabinetID)
		}
	}
	return ids
}

// HasFreePoint reports whether any step is a literal point.
func (s Steps) HasFreePoint() bool {
	for _, st := range s {
		if _, ok := st.(PointStep); ok {
			return true
		}
	}
	return false
}

// stepJSON is the wire envelope for the RouteStep sum type.
type stepJSON struct {
	Kind      string `json:"kind"` // "cabinet" or "point"
	CabinetID string `json:"cabinet_id,omitempty"`
	Card      *int   `json:"card,omitempty"`
	Point     *Point `json:"point,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s Steps) MarshalJSON() ([]byte, error) {
	out := make([]stepJSON, 0, len(s))
	for _, st := range s {
		switch v := st.(type) {
		case CabinetStep:
			e := stepJSON{Kind: "cabinet", CabinetID: v.CabinetID}
			if v.Card >= 0 {
				card := v.Card
				e.Card = &card
			}
			out = append(out, e)
		case PointStep:
			p := v.At
			out = append(out, stepJSON{Kind: "point", Point: &p})
		default:
			return nil, fmt.Errorf("unknown route step type %T", st)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Steps) UnmarshalJSON(data []byte) error {
	var raw []stepJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Steps, 0, len(raw))
	for _, e := range raw {
		switch e.Kind {
		case "cabinet":
			card := -1
			if e.Card != nil {
				card = *e.Card
			}
			out = append(out, CabinetStep{CabinetID: e.CabinetID, Card: card})
		case "point":
			if e.Point == nil {
				return fmt.Errorf("point step without coordinates")
			}
			out = append(out, PointStep{At: *e.Point})
		default:
			return fmt.Errorf("unknown route step kind %q", e.Kind)
		}
	}
	*s = out
	return nil
}
