package team

import "monster_tower/internal/monster"

// placement is the per-mode policy chosen once in New. insert and remove run
// before the size counter is adjusted.
type placement interface {
	insert(t *Team, c *monster.Creature)
	remove(t *Team) *monster.Creature
	reorder(t *Team)
}

// frontPlacement: add at the head, send out the head, reorder flips the first three.
type frontPlacement struct{}

func (frontPlacement) insert(t *Team, c *monster.Creature) {
	copy(t.slots[1:t.size+1], t.slots[:t.size])
	t.slots[0] = c
}

func (frontPlacement) remove(t *Team) *monster.Creature {
	c := t.slots[0]
	copy(t.slots[:t.size-1], t.slots[1:t.size])
	return c
}

func (frontPlacement) reorder(t *Team) {
	reverse(t.slots[:min(3, t.size)])
}

// backPlacement: add at the tail, send out the tail.
type backPlacement struct{}

func (backPlacement) insert(t *Team, c *monster.Creature) {
	t.slots[t.size] = c
}

func (backPlacement) remove(t *Team) *monster.Creature {
	return t.slots[t.size-1]
}

// reorder swaps the front ⌊n/2⌋ slots with the remaining ones, then reverses
// the last ⌊n/2⌋. With an odd size the middle creature travels with the back
// half: [a b c d e] -> [c d e a b] -> [c d e b a].
func (backPlacement) reorder(t *Team) {
	half := t.size / 2
	if half == 0 {
		return
	}
	occupied := t.slots[:t.size]
	front := append([]*monster.Creature(nil), occupied[:half]...)
	n := copy(occupied, occupied[half:])
	copy(occupied[n:], front)
	reverse(occupied[t.size-half:])
}

// optimisePlacement keeps the sort key non-increasing from head to tail and
// sends out the tail, so the weakest by key fights first.
type optimisePlacement struct {
	key monster.SortKey
}

func (p optimisePlacement) insert(t *Team, c *monster.Creature) {
	v := c.Stat(p.key)
	i := t.size
	for i > 0 && t.slots[i-1].Stat(p.key) < v {
		t.slots[i] = t.slots[i-1]
		i--
	}
	t.slots[i] = c
}

func (optimisePlacement) remove(t *Team) *monster.Creature {
	return t.slots[t.size-1]
}

func (optimisePlacement) reorder(t *Team) {
	reverse(t.slots[:t.size])
}

func reverse(s []*monster.Creature) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
