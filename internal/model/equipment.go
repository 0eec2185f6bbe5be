package model

import (
	"sort"

	"github.com/udisondev/soma/internal/data"
)

// Equipment holds one body part per slot (the part's Type).
type Equipment struct {
	slots map[string]*data.BodyPart
}

// NewEquipment creates empty equipment.
func NewEquipment() *Equipment {
	return &Equipment{slots: make(map[string]*data.BodyPart)}
}

// Equip puts part into its slot and returns the part it replaced, if any.
func (e *Equipment) Equip(part *data.BodyPart) *data.BodyPart {
	if part == nil {
		return nil
	}
	prev := e.slots[part.Type]
	e.slots[part.Type] = part
	return prev
}

// Unequip empties slot and returns the removed part.
func (e *Equipment) Unequip(slot string) *data.BodyPart {
	slot = data.NormalizeSlot(slot)
	prev := e.slots[slot]
	delete(e.slots, slot)
	return prev
}

// Slot returns the part equipped in slot.
func (e *Equipment) Slot(slot string) (*data.BodyPart, bool) {
	p, ok := e.slots[data.NormalizeSlot(slot)]
	return p, ok
}

// Parts returns equipped parts ordered by slot name.
func (e *Equipment) Parts() []*data.BodyPart {
	slots := make([]string, 0, len(e.slots))
	for s := range e.slots {
		slots = append(slots, s)
	}
	sort.Strings(slots)

	out := make([]*data.BodyPart, 0, len(slots))
	for _, s := range slots {
		out = append(out, e.slots[s])
	}
	return out
}

// GearTotals sums the stat contributions of all equipped parts. This is the
// full gear layer, recomputed from scratch on every equipment change.
func (e *Equipment) GearTotals() map[string]float64 {
	totals := make(map[string]float64)
	for _, p := range e.Parts() {
		for k, v := range p.Stats {
			totals[k] += v
		}
	}
	return totals
}
