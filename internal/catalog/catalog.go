// Package catalog is the ordered registry of creature archetypes teams are
// built from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"monster_tower/internal/monster"
	"monster_tower/internal/stats"
)

//go:embed monsters.yaml
var defaultCatalog []byte

type File struct {
	Monsters []MonsterDef `yaml:"monsters"`
}

type MonsterDef struct {
	Name        string      `yaml:"name"`
	Element     string      `yaml:"element"`
	Spawnable   bool        `yaml:"spawnable"`
	EvolvesTo   string      `yaml:"evolves_to"`
	EvolveLevel int         `yaml:"evolve_level"`
	Stats       *SimpleDef  `yaml:"stats"`
	Formula     *FormulaDef `yaml:"formula"`
}

type SimpleDef struct {
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	Speed   int `yaml:"speed"`
	MaxHP   int `yaml:"max_hp"`
}

// FormulaDef holds one space-separated postfix expression per stat.
type FormulaDef struct {
	Attack  string `yaml:"attack"`
	Defense string `yaml:"defense"`
	Speed   string `yaml:"speed"`
	MaxHP   string `yaml:"max_hp"`
}

// Formulas are dry-run at every level from 1 to at least this one when a
// catalog is built.
const checkedLevels = 100

type Catalog struct {
	archetypes []*monster.Archetype
	byName     map[string]*monster.Archetype
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file; an empty path yields Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return build(f.Monsters)
}

func build(defs []MonsterDef) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*monster.Archetype, len(defs))}
	maxLevel := checkedLevels
	for _, d := range defs {
		maxLevel = max(maxLevel, d.EvolveLevel+checkedLevels)
	}
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("monster #%d has no name", len(c.archetypes)+1)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate monster %q", d.Name)
		}
		elem, err := monster.ParseElement(d.Element)
		if err != nil {
			return nil, fmt.Errorf("monster %q: %w", d.Name, err)
		}
		src, err := d.source(maxLevel)
		if err != nil {
			return nil, fmt.Errorf("monster %q: %w", d.Name, err)
		}
		a := &monster.Archetype{
			Name:        d.Name,
			Element:     elem,
			Stats:       src,
			Spawnable:   d.Spawnable,
			EvolveLevel: d.EvolveLevel,
		}
		c.archetypes = append(c.archetypes, a)
		c.byName[d.Name] = a
	}

	// evolution targets may be declared after their base form
	for i, d := range defs {
		if d.EvolvesTo == "" {
			continue
		}
		next, ok := c.byName[d.EvolvesTo]
		if !ok {
			return nil, fmt.Errorf("monster %q evolves to unknown %q", d.Name, d.EvolvesTo)
		}
		if d.EvolveLevel < 1 {
			return nil, fmt.Errorf("monster %q: evolve_level must be at least 1", d.Name)
		}
		c.archetypes[i].EvolvesTo = next
	}
	return c, nil
}

// source builds the stats, dry-running formulas at levels 1 through maxLevel.
func (d MonsterDef) source(maxLevel int) (stats.Source, error) {
	switch {
	case d.Stats != nil && d.Formula != nil:
		return nil, fmt.Errorf("both stats and formula set")
	case d.Stats != nil:
		return stats.NewSimple(d.Stats.Attack, d.Stats.Defense, d.Stats.Speed, d.Stats.MaxHP), nil
	case d.Formula != nil:
		f := stats.NewFormula(
			strings.Fields(d.Formula.Attack),
			strings.Fields(d.Formula.Defense),
			strings.Fields(d.Formula.Speed),
			strings.Fields(d.Formula.MaxHP),
		)
		for lvl := 1; lvl <= maxLevel; lvl++ {
			if err := f.Check(lvl); err != nil {
				return nil, fmt.Errorf("level %d: %w", lvl, err)
			}
		}
		return f, nil
	default:
		return nil, fmt.Errorf("neither stats nor formula set")
	}
}

func (c *Catalog) Len() int { return len(c.archetypes) }

// All returns every archetype in registry order.
func (c *Catalog) All() []*monster.Archetype {
	return append([]*monster.Archetype(nil), c.archetypes...)
}

// Spawnable returns the archetypes teams may be built from, in registry order.
func (c *Catalog) Spawnable() []*monster.Archetype {
	var out []*monster.Archetype
	for _, a := range c.archetypes {
		if a.Spawnable {
			out = append(out, a)
		}
	}
	return out
}

func (c *Catalog) Get(i int) (*monster.Archetype, error) {
	if i < 0 || i >= len(c.archetypes) {
		return nil, fmt.Errorf("catalog index %d out of range [0,%d)", i, len(c.archetypes))
	}
	return c.archetypes[i], nil
}

func (c *Catalog) Lookup(name string) (*monster.Archetype, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// Resolve maps names to archetypes, failing on the first unknown one.
func (c *Catalog) Resolve(names []string) ([]*monster.Archetype, error) {
	out := make([]*monster.Archetype, 0, len(names))
	for _, n := range names {
		a, ok := c.byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown monster %q", n)
		}
		out = append(out, a)
	}
	return out, nil
}
