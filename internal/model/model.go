// Package model defines the layout document for LED video-wall
// installations: cabinets placed on a 2D plane in millimetres, the data
// daisy-chains and power feeds wired through them, and the settings that
// control addressing and labeling.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Point represents a 2D coordinate in mm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in mm, origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Intersects reports whether two rectangles overlap with positive area.
// Rectangles that merely share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.Right(), o.Right()) - x,
		H: max(r.Bottom(), o.Bottom()) - y,
	}
}

// CabinetType describes one cabinet model: its unrotated physical size and
// the pixel pitch of its LED surface.
type CabinetType struct {
	ID     string  `json:"id"`
	Name   string  `json:"name,omitempty"`
	Width  float64 `json:"width"`  // mm, unrotated
	Height float64 `json:"height"` // mm, unrotated
	Pitch  float64 `json:"pitch"`  // mm between pixels
}

// TypeIndex resolves cabinet type ids to their definitions.
type TypeIndex map[string]CabinetType

// Cabinet is one rectangular panel unit placed in the layout.
//
// Cards overrides the receiver-card count (0, 1 or 2); nil means the
// default of one card. CardLabel overrides the receiver-card label text:
// nil inherits the layout default, an explicit empty string hides the
// label. Anchor is a normalized (0..1) point used as the chain attachment
// when the cabinet carries no receiver card; nil means the geometric
// center. GridLabel, when set, replaces the computed grid address.
type Cabinet struct {
	ID        string  `json:"id"`
	TypeID    string  `json:"type_id"`
	X         float64 `json:"x"` // top-left, mm
	Y         float64 `json:"y"` // top-left, mm
	Rotation  int     `json:"rotation"` // degrees, one of 0/90/180/270
	Cards     *int    `json:"cards,omitempty"`
	CardLabel *string `json:"card_label,omitempty"`
	Anchor    *Point  `json:"anchor,omitempty"`
	GridLabel string  `json:"grid_label,omitempty"`
}

// NewCabinet creates a cabinet of the given type at the given position.
func NewCabinet(typeID string, x, y float64) Cabinet {
	return Cabinet{
		ID:     uuid.New().String()[:8],
		TypeID: typeID,
		X:      x,
		Y:      y,
	}
}

// CardCount returns the effective receiver-card count (0, 1 or 2).
func (c Cabinet) CardCount() int {
	if c.Cards == nil {
		return 1
	}
	n := *c.Cards
	if n < 0 {
		return 0
	}
	if n > 2 {
		return 2
	}
	return n
}

// Rotated reports whether the cabinet's width and height are swapped.
func (c Cabinet) Rotated() bool {
	return c.Rotation == 90 || c.Rotation == 270
}

// LabelSide is a label placement preference for a route or feed.
type LabelSide string

const (
	SideAuto   LabelSide = "auto"
	SideTop    LabelSide = "top"
	SideBottom LabelSide = "bottom"
	SideLeft   LabelSide = "left"
	SideRight  LabelSide = "right"
)

// DataRoute is an ordered daisy-chain of receiver-card endpoints fed by
// one controller output port.
type DataRoute struct {
	ID               string    `json:"id"`
	Port             int       `json:"port"`
	Steps            Steps     `json:"steps"`
	LabelSide        LabelSide `json:"label_side,omitempty"`
	ForceLabelBottom bool      `json:"force_label_bottom,omitempty"`
}

// NewDataRoute creates an empty route on the given port.
func NewDataRoute(port int) DataRoute {
	return DataRoute{
		ID:        uuid.New().String()[:8],
		Port:      port,
		LabelSide: SideAuto,
	}
}

// PowerFeed groups cabinets onto one breaker circuit.
type PowerFeed struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Breaker     string    `json:"breaker"`   // e.g. "16A"
	Connector   string    `json:"connector"` // e.g. "CEE 16-3"
	Steps       Steps     `json:"steps"`
	Consumption float64   `json:"consumption,omitempty"` // declared W, informational
	LabelSide   LabelSide `json:"label_side,omitempty"`
}

// NewPowerFeed creates an empty feed with the given label and breaker.
func NewPowerFeed(label, breaker string) PowerFeed {
	return PowerFeed{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Breaker:   breaker,
		LabelSide: SideAuto,
	}
}

// MappingMode selects how chain mapping numbers are assigned.
type MappingMode string

const (
	MappingAuto   MappingMode = "auto"
	MappingManual MappingMode = "manual"
)

// MappingNumberSettings controls mapping-number assignment on data routes.
//
// In manual mode EndpointOverrides takes priority over ChainOverrides;
// endpoints with neither receive no label. In auto mode CustomSequence
// values are consumed first, then the odd sequence 1,3,5,... continues
// from where the supplied count left off.
type MappingNumberSettings struct {
	Mode              MappingMode         `json:"mode"`
	RestartPerCard    bool                `json:"restart_per_card,omitempty"`
	CustomSequence    []int               `json:"custom_sequence,omitempty"`
	ChainOverrides    map[string]string   `json:"chain_overrides,omitempty"`    // route id -> label
	EndpointOverrides map[string][]string `json:"endpoint_overrides,omitempty"` // route id -> per-step labels, "" = none
	Show              bool                `json:"show"`
}

// ChainMode selects how consecutive cabinets in a chain are wired.
type ChainMode string

const (
	ChainStandard ChainMode = "standard" // bottom-center card connectors
	ChainSidePort ChainMode = "sideport" // lateral data-in ports with lane routing
)

// LayoutSettings holds layout-wide options consumed by the engine.
type LayoutSettings struct {
	GridSnap         bool                  `json:"grid_snap"`
	GridStep         float64               `json:"grid_step,omitempty"` // mm
	Controller       string                `json:"controller,omitempty"`
	ChainMode        ChainMode             `json:"chain_mode,omitempty"`
	DefaultPitch     float64               `json:"default_pitch,omitempty"` // mm, for size-pattern fallback types
	DefaultCardLabel string                `json:"default_card_label,omitempty"`
	RowsAsLetters    bool                  `json:"rows_as_letters,omitempty"` // swap grid-address axes
	MappingNumbers   MappingNumberSettings `json:"mapping_numbers"`
}

// DefaultSettings returns the settings a new layout starts with.
func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		GridSnap:     true,
		GridStep:     50,
		Controller:   "VX400",
		ChainMode:    ChainStandard,
		DefaultPitch: 2.6,
		MappingNumbers: MappingNumberSettings{
			Mode: MappingAuto,
			Show: true,
		},
	}
}

// Layout is the full document the engine operates on. Every engine call
// takes a snapshot of it and returns freshly derived values; nothing in
// the engine mutates it.
type Layout struct {
	Name     string         `json:"name"`
	Mode     string         `json:"mode"` // "indoor" or "outdoor", selects the catalog
	Types    []CabinetType  `json:"types,omitempty"`
	Cabinets []Cabinet      `json:"cabinets"`
	Routes   []DataRoute    `json:"routes,omitempty"`
	Feeds    []PowerFeed    `json:"feeds,omitempty"`
	Settings LayoutSettings `json:"settings"`
}

// NewLayout creates an empty indoor layout with default settings.
func NewLayout(name string) Layout {
	return Layout{
		Name:     name,
		Mode:     ModeIndoor,
		Cabinets: []Cabinet{},
		Settings: DefaultSettings(),
	}
}

// TypeIndex builds the type lookup for this layout: the mode catalog
// first, then layout-local types, which shadow catalog entries.
func (l Layout) TypeIndex() TypeIndex {
	idx := make(TypeIndex)
	for _, t := range CatalogForMode(l.Mode) {
		idx[t.ID] = t
	}
	for _, t := range l.Types {
		idx[t.ID] = t
	}
	return idx
}

// CabinetByID returns the cabinet with the given id.
func (l Layout) CabinetByID(id string) (Cabinet, bool) {
	for _, c := range l.Cabinets {
		if c.ID == id {
			return c, true
		}
	}
	return Cabinet{}, false
}

// RouteByID returns the data route with the given id.
func (l Layout) RouteByID(id string) (DataRoute, bool) {
	for _, r := range l.Routes {
		if r.ID == id {
			return r, true
		}
	}
	return DataRoute{}, false
}

// DuplicateCabinet clones the cabinet with the given id under a fresh id,
// offset by dx and dy. The clone is appended to the returned layout copy;
// the receiver is untouched.
func (l Layout) DuplicateCabinet(id string, dx, dy float64) (Layout, error) {
	src, ok := l.CabinetByID(id)
	if !ok {
		return l, fmt.Errorf("no cabinet with id %q", id)
	}
	clone := src
	clone.ID = uuid.New().String()[:8]
	clone.X += dx
	clone.Y += dy
	out := l
	out.Cabinets = make([]Cabinet, len(l.Cabinets), len(l.Cabinets)+1)
	copy(out.Cabinets, l.Cabinets)
	out.Cabinets = append(out.Cabinets, clone)
	return out, nil
}

// RemoveCabinet deletes the cabinet with the given id from the returned
// copy. Route and feed steps referencing it are left in place; anchor
// resolution skips stale references.
func (l Layout) RemoveCabinet(id string) Layout {
	out := l
	out.Cabinets = make([]Cabinet, 0, len(l.Cabinets))
	for _, c := range l.Cabinets {
		if c.ID != id {
			out.Cabinets = append(out.Cabinets, c)
		}
	}
	return out
}
