package model

import (
	"time"

	"github.com/google/uuid"
)

// WallTemplate is a reusable preset that generates a rectangular wall of
// one cabinet type, pre-chained on a single data route.
type WallTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	TypeID      string `json:"type_id"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	Serpentine  bool   `json:"serpentine"` // alternate chain direction per row
}

// NewWallTemplate creates a template for a columns x rows wall.
func NewWallTemplate(name, typeID string, columns, rows int) WallTemplate {
	return WallTemplate{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		TypeID:    typeID,
		Columns:   columns,
		Rows:      rows,
	}
}

// Build generates a layout from the template: a grid of cabinets at the
// type's nominal spacing starting at the origin, chained row by row on
// port 1. Serpentine templates reverse the chain direction on every
// other row so consecutive cabinets stay adjacent.
func (t WallTemplate) Build(name string) Layout {
	l := NewLayout(name)
	ct, ok := CatalogType(t.TypeID)
	if !ok {
		ct = CabinetType{ID: t.TypeID, Width: 500, Height: 500}
	}

	route := NewDataRoute(1)
	for row := 0; row < t.Rows; row++ {
		cols := make([]int, 0, t.Columns)
		for col := 0; col < t.Columns; col++ {
			cols = append(cols, col)
		}
		if t.Serpentine && row%2 == 1 {
			for i, j := 0, len(cols)-1; i < j; i, j = i+1, j-1 {
				cols[i], cols[j] = cols[j], cols[i]
			}
		}
		for _, col := range cols {
			c := NewCabinet(ct.ID, float64(col)*ct.Width, float64(row)*ct.Height)
			l.Cabinets = append(l.Cabinets, c)
			route.Steps = append(route.Steps, CabinetStep{CabinetID: c.ID, Card: -1})
		}
	}
	if len(route.Steps) > 0 {
		l.Routes = append(l.Routes, route)
	}
	return l
}

// TemplateStore holds a collection of wall templates for persistence.
type TemplateStore struct {
	Templates []WallTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []WallTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t WallTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *WallTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *WallTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}
