// Package stats provides the four combat stats of a creature, either as fixed
// values or as postfix formulas evaluated against the creature's level.
package stats

import "fmt"

// Source is the four-stat query contract every creature goes through.
// Implementations: Simple and Formula.
type Source interface {
	Attack(level int) int
	Defense(level int) int
	Speed(level int) int
	MaxHP(level int) int
}

// Simple holds constant stats; the level is ignored.
type Simple struct {
	AttackValue  int
	DefenseValue int
	SpeedValue   int
	MaxHPValue   int
}

func NewSimple(attack, defense, speed, maxHP int) *Simple {
	return &Simple{AttackValue: attack, DefenseValue: defense, SpeedValue: speed, MaxHPValue: maxHP}
}

func (s *Simple) Attack(int) int  { return s.AttackValue }
func (s *Simple) Defense(int) int { return s.DefenseValue }
func (s *Simple) Speed(int) int   { return s.SpeedValue }
func (s *Simple) MaxHP(int) int   { return s.MaxHPValue }

// Formula re-evaluates one token sequence per stat on every query.
type Formula struct {
	attack  []string
	defense []string
	speed   []string
	maxHP   []string
}

func NewFormula(attack, defense, speed, maxHP []string) *Formula {
	return &Formula{
		attack:  append([]string(nil), attack...),
		defense: append([]string(nil), defense...),
		speed:   append([]string(nil), speed...),
		maxHP:   append([]string(nil), maxHP...),
	}
}

// A malformed formula is a data error; the getters panic with the evaluation error.
func (f *Formula) Attack(level int) int  { return mustEvaluate("attack", f.attack, level) }
func (f *Formula) Defense(level int) int { return mustEvaluate("defense", f.defense, level) }
func (f *Formula) Speed(level int) int   { return mustEvaluate("speed", f.speed, level) }
func (f *Formula) MaxHP(level int) int   { return mustEvaluate("max_hp", f.maxHP, level) }

// Check dry-runs all four formulas at the given level and reports the first failure.
func (f *Formula) Check(level int) error {
	for _, e := range []struct {
		name   string
		tokens []string
	}{
		{"attack", f.attack},
		{"defense", f.defense},
		{"speed", f.speed},
		{"max_hp", f.maxHP},
	} {
		if _, err := Evaluate(e.tokens, level); err != nil {
			return fmt.Errorf("%s formula: %w", e.name, err)
		}
	}
	return nil
}

func mustEvaluate(stat string, tokens []string, level int) int {
	v, err := Evaluate(tokens, level)
	if err != nil {
		panic(fmt.Errorf("evaluating %s formula %v at level %d: %w", stat, tokens, level, err))
	}
	return v
}
