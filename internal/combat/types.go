package combat

import "encoding/json"

// Event is one entry in a battle's event stream. T is the turn number.
type Event struct {
	T       int            `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventStart   = "Start"
	EventAction  = "Action"
	EventHit     = "Hit"
	EventFaint   = "Faint"
	EventSendOut = "SendOut"
	EventLevelUp = "LevelUp"
	EventEvolve  = "Evolve"
	EventChip    = "Chip"
	EventResult  = "Result"
)

type Action int

const (
	ActionAttack Action = iota + 1
	ActionSwap
	// ActionSpecial is part of the vocabulary but ChooseAction never picks it
	// and the engine gives it no effect.
	ActionSpecial
)

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionSwap:
		return "swap"
	case ActionSpecial:
		return "special"
	}
	return "unknown"
}

type Result int

const (
	// NoResult means the battle is still in progress.
	NoResult Result = iota
	Team1
	Team2
	Draw
)

func (r Result) String() string {
	switch r {
	case Team1:
		return "team1"
	case Team2:
		return "team2"
	case Draw:
		return "draw"
	}
	return "in_progress"
}

func (r Result) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Report is what Run hands back to callers that want more than the Result.
type Report struct {
	ID     string  `json:"id"`
	Result Result  `json:"result"`
	Turns  int     `json:"turns"`
	Events []Event `json:"events,omitempty"`
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
