package pafv

import "fmt"

// Slot names a grid axis position a facet can be assigned to.
type Slot string

const (
	SlotX Slot = "x"
	SlotY Slot = "y"
	SlotZ Slot = "z"
)

// Slots lists the assignable slots in canonical order.
var Slots = []Slot{SlotX, SlotY, SlotZ}

// Assignment binds one facet to a slot.
type Assignment struct {
	LatchDimension string `json:"latchDimension"`
	Facet          string `json:"facet"`
	Label          string `json:"label"`
	Depth          int    `json:"depth,omitempty"`
}

// Mapping is the full axis configuration of a view: at most one assignment
// per slot. The zero value is an empty mapping.
type Mapping struct {
	X *Assignment `json:"xAxis,omitempty"`
	Y *Assignment `json:"yAxis,omitempty"`
	Z *Assignment `json:"zAxis,omitempty"`
}

// Get returns the assignment in a slot, or nil.
func (m Mapping) Get(s Slot) *Assignment {
	switch s {
	case SlotX:
		return m.X
	case SlotY:
		return m.Y
	case SlotZ:
		return m.Z
	}
	return nil
}

// Set writes an assignment into a slot. Unknown slots are ignored.
func (m *Mapping) Set(s Slot, a *Assignment) {
	switch s {
	case SlotX:
		m.X = a
	case SlotY:
		m.Y = a
	case SlotZ:
		m.Z = a
	}
}

// SlotOf returns the slot currently holding the given facet, or "" if the
// facet is unassigned.
func (m Mapping) SlotOf(facet string) Slot {
	for _, s := range Slots {
		if a := m.Get(s); a != nil && a.Facet == facet {
			return s
		}
	}
	return ""
}

// Clone returns a deep copy of the mapping.
func (m Mapping) Clone() Mapping {
	var out Mapping
	for _, s := range Slots {
		if a := m.Get(s); a != nil {
			cp := *a
			out.Set(s, &cp)
		}
	}
	return out
}

// Validation is the outcome of [Mapping.Validate].
type Validation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate checks the mapping for structural problems. Duplicate facets
// across slots are flagged as "Duplicate axis assignment: <facet>"; an
// assignment with an empty facet is also reported. Validate never panics
// and never mutates the mapping.
func (m Mapping) Validate() Validation {
	var errs []string
	seen := map[string]bool{}
	flagged := map[string]bool{}

	for _, s := range Slots {
		a := m.Get(s)
		if a == nil {
			continue
		}
		if a.Facet == "" {
			errs = append(errs, fmt.Sprintf("Missing facet in %s slot", s))
			continue
		}
		if seen[a.Facet] && !flagged[a.Facet] {
			errs = append(errs, fmt.Sprintf("Duplicate axis assignment: %s", a.Facet))
			flagged[a.Facet] = true
		}
		seen[a.Facet] = true
	}

	return Validation{IsValid: len(errs) == 0, Errors: errs}
}
