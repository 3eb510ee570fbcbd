// Package party derives party-wide modifiers from a job lineup.
package party

import (
	"sort"

	"github.com/cory-johannsen/dpscalc/internal/game/ruleset"
)

// Composition is the derived view of a party: its distinct roles and the
// distinct raid buffs its members bring. Duplicates collapse.
type Composition struct {
	jobs  []*ruleset.Job
	roles map[ruleset.Role]struct{}
	buffs []*ruleset.Buff
}

// Build derives a Composition from jobs. Order and duplicates in jobs do not
// affect the result; nil entries are ignored.
//
// Postcondition: an empty jobs slice yields NRoles() == 0 and no raid buffs.
func Build(jobs []*ruleset.Job) Composition {
	roles := make(map[ruleset.Role]struct{})
	byID := make(map[ruleset.BuffID]*ruleset.Buff)
	kept := make([]*ruleset.Job, 0, len(jobs))
	for _, j := range jobs {
		if j == nil {
			continue
		}
		kept = append(kept, j)
		roles[j.Role] = struct{}{}
		for _, b := range j.RaidBuffs {
			byID[b.ID] = b
		}
	}
	buffs := make([]*ruleset.Buff, 0, len(byID))
	for _, b := range byID {
		buffs = append(buffs, b)
	}
	sort.Slice(buffs, func(i, k int) bool { return buffs[i].ID < buffs[k].ID })
	return Composition{jobs: kept, roles: roles, buffs: buffs}
}

// NRoles returns the number of distinct roles present.
func (c Composition) NRoles() int {
	return len(c.roles)
}

// HasRole reports whether any member fills r.
func (c Composition) HasRole(r ruleset.Role) bool {
	_, ok := c.roles[r]
	return ok
}

// RaidBuffs returns the distinct raid buffs in ascending ID order.
func (c Composition) RaidBuffs() []*ruleset.Buff {
	out := make([]*ruleset.Buff, len(c.buffs))
	copy(out, c.buffs)
	return out
}

// HasBuff reports whether a buff with id is present.
func (c Composition) HasBuff(id ruleset.BuffID) bool {
	for _, b := range c.buffs {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Size returns the number of members, counting duplicates.
func (c Composition) Size() int {
	return len(c.jobs)
}
