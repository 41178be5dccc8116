// Package team implements the fixed-capacity roster a side brings to a battle.
// Where creatures enter, where they leave and how Reorder permutes them all
// depend on the Mode chosen at construction.
package team

import (
	"errors"
	"fmt"
	"strings"

	"monster_tower/internal/monster"
)

// Capacity is the maximum number of creatures a team holds.
const Capacity = 6

var (
	ErrTeamFull             = errors.New("team is already full")
	ErrTeamEmpty            = errors.New("team is empty")
	ErrUnsupportedMode      = errors.New("team mode not supported")
	ErrUnsupportedSelection = errors.New("selection mode not supported")
	ErrMissingSortKey       = errors.New("optimise mode requires a sort key")
	ErrNoProvidedCreatures  = errors.New("provided creature list is required")
)

type Mode int

const (
	Front Mode = iota + 1
	Back
	Optimise
)

var modeNames = map[Mode]string{
	Front:    "front",
	Back:     "back",
	Optimise: "optimise",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// Team is an ordered roster of at most Capacity creatures. Slots at or beyond
// Size are unused.
type Team struct {
	mode    Mode
	sortKey monster.SortKey
	policy  placement

	slots [Capacity]*monster.Creature
	size  int

	// archetypes in insertion order, replayed by Restock.
	lineup []*monster.Archetype
}

// New creates an empty team. sortKey is only consulted in Optimise mode.
func New(mode Mode, sortKey monster.SortKey) (*Team, error) {
	var p placement
	switch mode {
	case Front:
		p = frontPlacement{}
	case Back:
		p = backPlacement{}
	case Optimise:
		if !sortKey.Valid() {
			return nil, ErrMissingSortKey
		}
		p = optimisePlacement{key: sortKey}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
	return &Team{mode: mode, sortKey: sortKey, policy: p}, nil
}

func (t *Team) Mode() Mode                { return t.mode }
func (t *Team) SortKey() monster.SortKey { return t.sortKey }
func (t *Team) Size() int                { return t.size }
func (t *Team) IsEmpty() bool            { return t.size == 0 }
func (t *Team) IsFull() bool             { return t.size == Capacity }

// IsDefeated reports whether the side has no reserves left and its active
// creature, held outside the team, is fainted.
func (t *Team) IsDefeated(active *monster.Creature) bool {
	return t.IsEmpty() && (active == nil || active.IsFainted())
}

// Add inserts c where the team's mode dictates.
func (t *Team) Add(c *monster.Creature) error {
	if t.size >= Capacity {
		return ErrTeamFull
	}
	t.policy.insert(t, c)
	t.size++
	t.lineup = append(t.lineup, c.Archetype())
	return nil
}

// Retrieve removes and returns the creature the team's mode sends out next.
func (t *Team) Retrieve() (*monster.Creature, error) {
	if t.size == 0 {
		return nil, ErrTeamEmpty
	}
	c := t.policy.remove(t)
	t.size--
	t.slots[t.size] = nil
	return c, nil
}

// Reorder applies the mode's in-place permutation. Size is unchanged.
func (t *Team) Reorder() {
	t.policy.reorder(t)
}

// Regenerate empties the team, keeping its mode and sort key.
func (t *Team) Regenerate() {
	t.slots = [Capacity]*monster.Creature{}
	t.size = 0
	t.lineup = nil
}

// Restock regenerates the team and refills it with fresh creatures of the
// archetypes it was built from, in insertion order.
func (t *Team) Restock() error {
	lineup := t.lineup
	t.Regenerate()
	for _, a := range lineup {
		if err := t.Add(a.Spawn()); err != nil {
			return fmt.Errorf("restocking %s: %w", a.Name, err)
		}
	}
	return nil
}

// Lineup returns the archetypes added since the last Regenerate.
func (t *Team) Lineup() []*monster.Archetype {
	return append([]*monster.Archetype(nil), t.lineup...)
}

// Creatures returns the occupied slots head to tail.
func (t *Team) Creatures() []*monster.Creature {
	return append([]*monster.Creature(nil), t.slots[:t.size]...)
}

func (t *Team) String() string {
	names := make([]string, t.size)
	for i, c := range t.slots[:t.size] {
		names[i] = c.Name()
	}
	return fmt.Sprintf("%s[%s]", t.mode, strings.Join(names, ", "))
}
