// Package route turns chain and feed memberships into drawable geometry:
// resolved anchor points, collision-free orthogonal cable paths, and
// packed annotation labels. Identical inputs always produce identical
// geometry; there is no randomness and no retained state.
package route

import (
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/geometry"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// Receiver-card body proportions relative to the cabinet bounds. The
// card sits on the cabinet back with its cable connector at the bottom
// center; side-ported variants expose a data-in port on the left edge.
const (
	cardWidthRatio  = 0.28
	cardHeightRatio = 0.22
)

// Anchor is a resolved chain attachment point.
type Anchor struct {
	Point     model.Point `json:"point"`
	CabinetID string      `json:"cabinet_id,omitempty"` // empty for free points
	Card      int         `json:"card"`                 // resolved card index, -1 when none applies
	// Virtual marks a cardless attachment (normalized override or
	// cabinet center) for distinct rendering.
	Virtual bool `json:"virtual,omitempty"`
	// OnConnector marks anchors that land on a real receiver-card
	// connector, which is its own visual terminus.
	OnConnector bool `json:"on_connector,omitempty"`
}

// CardRect returns the body of card idx on a cabinet with the given
// bounds and card count. A single card sits centered; dual cards sit
// side by side at the quarter points.
func CardRect(bounds model.Rect, idx, count int) model.Rect {
	w := bounds.W * cardWidthRatio
	h := bounds.H * cardHeightRatio
	cx := bounds.X + bounds.W/2
	if count == 2 {
		cx = bounds.X + bounds.W*(2*float64(idx)+1)/4
	}
	return model.Rect{X: cx - w/2, Y: bounds.Y + bounds.H/2 - h/2, W: w, H: h}
}

// connectorPoint is the cable connector at the card's bottom center.
func connectorPoint(card model.Rect) model.Point {
	return model.Point{X: card.X + card.W/2, Y: card.Bottom()}
}

// dataInPoint is the lateral data-in port of a side-ported card.
func dataInPoint(card model.Rect) model.Point {
	return model.Point{X: card.X, Y: card.Y + card.H/2}
}

// ResolveAnchors resolves each step of a chain to a concrete point.
// Steps referencing cabinets that no longer exist, or whose type cannot
// be resolved, are silently skipped.
func ResolveAnchors(l model.Layout, steps model.Steps) []Anchor {
	types := l.TypeIndex()
	sidePort := l.Settings.ChainMode == model.ChainSidePort

	var out []Anchor
	for _, step := range steps {
		switch s := step.(type) {
		case model.PointStep:
			out = append(out, Anchor{Point: s.At, Card: -1})
		case model.CabinetStep:
			c, ok := l.CabinetByID(s.CabinetID)
			if !ok {
				continue
			}
			b, ok := geometry.Bounds(c, types, l.Settings.DefaultPitch)
			if !ok {
				continue
			}
			cards := c.CardCount()
			if cards == 0 {
				p := b.Center()
				if c.Anchor != nil {
					p = model.Point{X: b.X + c.Anchor.X*b.W, Y: b.Y + c.Anchor.Y*b.H}
				}
				out = append(out, Anchor{Point: p, CabinetID: c.ID, Card: -1, Virtual: true})
				continue
			}
			card := s.Card
			if card < 0 {
				card = 0
			}
			if card >= cards {
				card = cards - 1
			}
			body := CardRect(b, card, cards)
			p := connectorPoint(body)
			if sidePort {
				p = dataInPoint(body)
			}
			out = append(out, Anchor{Point: p, CabinetID: c.ID, Card: card, OnConnector: true})
		}
	}
	return out
}
