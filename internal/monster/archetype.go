package monster

import "monster_tower/internal/stats"

// Archetype is the static description a Creature is spawned from.
type Archetype struct {
	Name      string
	Element   Element
	Stats     stats.Source
	Spawnable bool

	// EvolvesTo is nil for final forms.
	EvolvesTo   *Archetype
	EvolveLevel int
}

// Spawn returns a fresh level-1 creature at full HP.
func (a *Archetype) Spawn() *Creature {
	return NewCreature(a, 1)
}

func (a *Archetype) CanEvolve(level int) bool {
	return a.EvolvesTo != nil && level >= a.EvolveLevel
}
