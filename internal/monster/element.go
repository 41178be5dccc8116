package monster

import (
	"fmt"
	"strings"
)

type Element int

const (
	Fire Element = iota + 1
	Water
	Grass
	Bug
	Dragon
	Electric
	Fighting
	Flying
	Ghost
	Ground
	Ice
	Normal
	Poison
	Psychic
	Rock
	Fairy
	Dark
	Steel
)

var elementNames = [...]string{
	Fire:     "Fire",
	Water:    "Water",
	Grass:    "Grass",
	Bug:      "Bug",
	Dragon:   "Dragon",
	Electric: "Electric",
	Fighting: "Fighting",
	Flying:   "Flying",
	Ghost:    "Ghost",
	Ground:   "Ground",
	Ice:      "Ice",
	Normal:   "Normal",
	Poison:   "Poison",
	Psychic:  "Psychic",
	Rock:     "Rock",
	Fairy:    "Fairy",
	Dark:     "Dark",
	Steel:    "Steel",
}

// Elements lists every element in declaration order.
func Elements() []Element {
	out := make([]Element, 0, len(elementNames)-1)
	for e := Fire; e <= Steel; e++ {
		out = append(out, e)
	}
	return out
}

func (e Element) String() string {
	if e < Fire || e > Steel {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// ParseElement matches an element name case-insensitively.
func ParseElement(s string) (Element, error) {
	for e := Fire; e <= Steel; e++ {
		if strings.EqualFold(elementNames[e], s) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unexpected element %q", s)
}

func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
