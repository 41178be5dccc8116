package team

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"monster_tower/internal/monster"
	"monster_tower/internal/util"
)

// Selection picks how Build fills a new team.
type Selection int

const (
	SelectRandom Selection = iota + 1
	SelectManual
	SelectProvided
)

var selectionNames = map[Selection]string{
	SelectRandom:   "random",
	SelectManual:   "manual",
	SelectProvided: "provided",
}

func (s Selection) String() string {
	if n, ok := selectionNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Selection(%d)", int(s))
}

// BuildOptions carries what each selection mode needs. Unused fields are ignored.
type BuildOptions struct {
	SortKey monster.SortKey

	// Pool is the ordered catalog for random and manual selection.
	Pool []*monster.Archetype
	Rng  *rand.Rand

	Input  io.Reader
	Output io.Writer

	// Provided must be non-nil for SelectProvided.
	Provided []*monster.Archetype
}

// Build creates a team in the given mode and fills it by the selection mode.
func Build(mode Mode, sel Selection, opts BuildOptions) (*Team, error) {
	t, err := New(mode, opts.SortKey)
	if err != nil {
		return nil, err
	}
	switch sel {
	case SelectRandom:
		err = t.SelectRandomly(opts.Pool, opts.Rng)
	case SelectManual:
		err = t.SelectManually(opts.Pool, opts.Input, opts.Output)
	case SelectProvided:
		err = t.SelectProvided(opts.Provided)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSelection, sel)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting %s team: %w", sel, err)
	}
	return t, nil
}

func spawnable(pool []*monster.Archetype) []*monster.Archetype {
	var out []*monster.Archetype
	for _, a := range pool {
		if a.Spawnable {
			out = append(out, a)
		}
	}
	return out
}

// SelectRandomly adds between 1 and Capacity creatures drawn uniformly from the
// spawnable part of pool.
func (t *Team) SelectRandomly(pool []*monster.Archetype, rng *rand.Rand) error {
	if rng == nil {
		return errors.New("random selection needs an rng")
	}
	candidates := spawnable(pool)
	if len(candidates) == 0 {
		return errors.New("no spawnable archetypes")
	}
	n := util.RandInt(rng, 1, Capacity)
	for i := 0; i < n; i++ {
		a := candidates[util.RandInt(rng, 0, len(candidates)-1)]
		if err := t.Add(a.Spawn()); err != nil {
			return err
		}
	}
	return nil
}

// SelectProvided adds one fresh creature per archetype, in the given order.
func (t *Team) SelectProvided(provided []*monster.Archetype) error {
	if provided == nil {
		return ErrNoProvidedCreatures
	}
	for _, a := range provided {
		if err := t.Add(a.Spawn()); err != nil {
			return err
		}
	}
	return nil
}

// SelectManually prompts on out for a team size and then one spawnable
// archetype per slot (1-indexed). Invalid answers are reprompted; only a read
// failure or end of input is returned.
func (t *Team) SelectManually(pool []*monster.Archetype, in io.Reader, out io.Writer) error {
	if in == nil || out == nil {
		return errors.New("manual selection needs input and output")
	}
	if t.IsFull() {
		return ErrTeamFull
	}
	candidates := spawnable(pool)
	if len(candidates) == 0 {
		return errors.New("no spawnable archetypes")
	}
	p := prompter{sc: bufio.NewScanner(in), out: out}

	size, err := p.intInRange("How many monsters are there? ", 1, Capacity-t.size,
		fmt.Sprintf("Please enter a team size between 1 and %d.", Capacity-t.size))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "MONSTERS Are:")
	for i, a := range candidates {
		fmt.Fprintf(out, "%d: %s [%s]\n", i+1, a.Name, a.Element)
	}

	for i := 0; i < size; i++ {
		idx, err := p.intInRange("Which monster are you spawning? ", 1, len(candidates),
			"Invalid selection. Please choose a valid monster.")
		if err != nil {
			return err
		}
		if err := t.Add(candidates[idx-1].Spawn()); err != nil {
			return err
		}
	}
	return nil
}

type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (p prompter) intInRange(prompt string, lo, hi int, rangeMsg string) (int, error) {
	for {
		fmt.Fprint(p.out, prompt)
		if !p.sc.Scan() {
			if err := p.sc.Err(); err != nil {
				return 0, fmt.Errorf("reading input: %w", err)
			}
			return 0, io.ErrUnexpectedEOF
		}
		v, err := strconv.Atoi(strings.TrimSpace(p.sc.Text()))
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a valid integer.")
			continue
		}
		if v < lo || v > hi {
			fmt.Fprintln(p.out, rangeMsg)
			continue
		}
		return v, nil
	}
}
