// Package monster holds the creature entity that teams hold and battles fight with.
package monster

import "fmt"

// SortKey names the stat used to order an OPTIMISE team.
type SortKey int

const (
	SortHP SortKey = iota + 1
	SortAttack
	SortDefense
	SortSpeed
	SortLevel
)

var sortKeyNames = map[SortKey]string{
	SortHP:      "hp",
	SortAttack:  "attack",
	SortDefense: "defense",
	SortSpeed:   "speed",
	SortLevel:   "level",
}

func (k SortKey) String() string {
	if s, ok := sortKeyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

func (k SortKey) Valid() bool {
	_, ok := sortKeyNames[k]
	return ok
}

func ParseSortKey(s string) (SortKey, error) {
	for k, name := range sortKeyNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown sort key %q", s)
}

// Creature is a mutable combatant. HP may drop to zero or below before the
// fainted check runs.
type Creature struct {
	archetype *Archetype
	hp        int
	level     int

	// levels earned this turn, applied by CheckForLevelUpOrEvolution.
	pending int
}

func NewCreature(a *Archetype, level int) *Creature {
	if level < 1 {
		level = 1
	}
	c := &Creature{archetype: a, level: level}
	c.hp = c.MaxHP()
	return c
}

func (c *Creature) Archetype() *Archetype { return c.archetype }
func (c *Creature) Name() string          { return c.archetype.Name }
func (c *Creature) Element() Element      { return c.archetype.Element }
func (c *Creature) Level() int            { return c.level }
func (c *Creature) HP() int               { return c.hp }

func (c *Creature) Attack() int  { return c.archetype.Stats.Attack(c.level) }
func (c *Creature) Defense() int { return c.archetype.Stats.Defense(c.level) }
func (c *Creature) Speed() int   { return c.archetype.Stats.Speed(c.level) }
func (c *Creature) MaxHP() int   { return c.archetype.Stats.MaxHP(c.level) }

// Stat returns the value ordered on by an OPTIMISE team.
func (c *Creature) Stat(k SortKey) int {
	switch k {
	case SortHP:
		return c.hp
	case SortAttack:
		return c.Attack()
	case SortDefense:
		return c.Defense()
	case SortSpeed:
		return c.Speed()
	case SortLevel:
		return c.level
	default:
		panic(fmt.Sprintf("monster: unknown sort key %d", int(k)))
	}
}

// ReduceHP subtracts dmg. A negative dmg heals, uncapped.
func (c *Creature) ReduceHP(dmg int) { c.hp -= dmg }

func (c *Creature) SetHP(hp int) { c.hp = hp }

func (c *Creature) IsFainted() bool { return c.hp <= 0 }

// AwardLevel queues a level-up for the next CheckForLevelUpOrEvolution.
func (c *Creature) AwardLevel() { c.pending++ }

func (c *Creature) PendingLevels() int { return c.pending }

// Growth reports what CheckForLevelUpOrEvolution changed.
type Growth struct {
	FromLevel int
	ToLevel   int
	// EvolvedFrom is empty unless the creature changed form.
	EvolvedFrom string
}

func (g Growth) LeveledUp() bool { return g.ToLevel > g.FromLevel }
func (g Growth) Evolved() bool   { return g.EvolvedFrom != "" }

// CheckForLevelUpOrEvolution applies pending levels, then evolves when the
// archetype allows it. The HP deficit against max HP is preserved across both.
// A fainted creature keeps its pending levels untouched.
func (c *Creature) CheckForLevelUpOrEvolution() Growth {
	g := Growth{FromLevel: c.level, ToLevel: c.level}
	if c.IsFainted() {
		return g
	}
	for ; c.pending > 0; c.pending-- {
		deficit := c.MaxHP() - c.hp
		c.level++
		c.hp = c.MaxHP() - deficit
	}
	g.ToLevel = c.level

	if c.archetype.CanEvolve(c.level) {
		deficit := c.MaxHP() - c.hp
		g.EvolvedFrom = c.archetype.Name
		c.archetype = c.archetype.EvolvesTo
		c.hp = c.MaxHP() - deficit
	}
	return g
}

func (c *Creature) String() string {
	return fmt.Sprintf("LV.%d %s, %d/%d HP", c.level, c.archetype.Name, c.hp, c.MaxHP())
}
