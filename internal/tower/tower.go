// Package tower runs a player team against a queue of random opponent teams,
// each side carrying a lives counter.
package tower

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"monster_tower/internal/combat"
	"monster_tower/internal/monster"
	"monster_tower/internal/team"
	"monster_tower/internal/util"
)

const (
	MinLives = 2
	MaxLives = 10
)

var ErrNoPlayer = errors.New("player team not set")

// Entrant is a team plus the lives it has left in the tower.
type Entrant struct {
	Team  *team.Team
	Lives int
}

// Round is the outcome of one tower battle. Lives are the values before the
// battle was fought.
type Round struct {
	Result        combat.Result `json:"result"`
	Player        *Entrant      `json:"-"`
	Opponent      *Entrant      `json:"-"`
	PlayerLives   int           `json:"player_lives"`
	OpponentLives int           `json:"opponent_lives"`
	OpponentTeam  string        `json:"opponent"`
	Turns         int           `json:"turns"`
}

type Options struct {
	OpponentMode team.Mode
	MinLives     int
	MaxLives     int
	MaxTurns     int
}

func DefaultOptions() Options {
	return Options{OpponentMode: team.Back, MinLives: MinLives, MaxLives: MaxLives}
}

type Tower struct {
	opts   Options
	rng    *rand.Rand
	pool   []*monster.Archetype
	battle *combat.Battle

	player    *Entrant
	opponents []*Entrant
}

// New creates an empty tower drawing opponents from pool.
func New(rng *rand.Rand, pool []*monster.Archetype, opts Options) *Tower {
	if opts.OpponentMode == 0 {
		opts.OpponentMode = team.Back
	}
	if opts.MinLives == 0 && opts.MaxLives == 0 {
		opts.MinLives, opts.MaxLives = MinLives, MaxLives
	}
	return &Tower{
		opts:   opts,
		rng:    rng,
		pool:   pool,
		battle: &combat.Battle{MaxTurns: opts.MaxTurns},
	}
}

// Lives are drawn from [MinLives, MaxLives+1] inclusive.
func (t *Tower) rollLives() int {
	return util.RandInt(t.rng, t.opts.MinLives, t.opts.MaxLives+1)
}

func (t *Tower) SetPlayerTeam(tm *team.Team) *Entrant {
	t.player = &Entrant{Team: tm, Lives: t.rollLives()}
	return t.player
}

func (t *Tower) Player() *Entrant { return t.player }

// Opponents returns the queue, next opponent first.
func (t *Tower) Opponents() []*Entrant {
	return append([]*Entrant(nil), t.opponents...)
}

// AddOpponent queues tm with a rolled lives counter.
func (t *Tower) AddOpponent(tm *team.Team) *Entrant {
	e := &Entrant{Team: tm, Lives: t.rollLives()}
	t.opponents = append(t.opponents, e)
	return e
}

// GenerateTeams appends n random opponents to the queue.
func (t *Tower) GenerateTeams(n int) error {
	for i := 0; i < n; i++ {
		tm, err := team.Build(t.opts.OpponentMode, team.SelectRandom, team.BuildOptions{
			Pool: t.pool,
			Rng:  t.rng,
		})
		if err != nil {
			return fmt.Errorf("generating opponent %d: %w", i+1, err)
		}
		t.AddOpponent(tm)
	}
	return nil
}

// BattlesRemaining reports whether the player is alive and any opponent is.
func (t *Tower) BattlesRemaining() bool {
	if t.player == nil || t.player.Lives <= 0 {
		return false
	}
	for _, o := range t.opponents {
		if o.Lives > 0 {
			return true
		}
	}
	return false
}

// Next fights the opponent at the head of the queue. ok is false once no
// battles remain. An opponent with lives left goes back to the tail.
func (t *Tower) Next() (r Round, ok bool, err error) {
	if t.player == nil {
		return Round{}, false, ErrNoPlayer
	}
	if !t.BattlesRemaining() {
		return Round{}, false, nil
	}

	opp := t.opponents[0]
	t.opponents = t.opponents[1:]
	for opp.Lives <= 0 {
		opp, t.opponents = t.opponents[0], t.opponents[1:]
	}

	if err := t.player.Team.Restock(); err != nil {
		return Round{}, false, fmt.Errorf("restocking player: %w", err)
	}
	if err := opp.Team.Restock(); err != nil {
		return Round{}, false, fmt.Errorf("restocking opponent: %w", err)
	}

	r = Round{
		Player:        t.player,
		Opponent:      opp,
		PlayerLives:   t.player.Lives,
		OpponentLives: opp.Lives,
		OpponentTeam:  opp.Team.String(),
	}
	r.Result, err = t.battle.Run(t.player.Team, opp.Team)
	if err != nil {
		return Round{}, false, err
	}
	r.Turns = t.battle.Turn()

	switch r.Result {
	case combat.Team1:
		opp.Lives--
	case combat.Team2:
		t.player.Lives--
	default:
		t.player.Lives--
		opp.Lives--
	}
	if opp.Lives > 0 {
		t.opponents = append(t.opponents, opp)
	}

	slog.Info("tower round",
		"result", r.Result,
		"opponent", r.OpponentTeam,
		"player_lives", t.player.Lives,
		"opponent_lives", opp.Lives,
		"turns", r.Turns)
	return r, true, nil
}

// OutOfMeta lists the elements absent from every queued opponent's lineup.
func (t *Tower) OutOfMeta() []monster.Element {
	present := map[monster.Element]bool{}
	for _, o := range t.opponents {
		for _, a := range o.Team.Lineup() {
			present[a.Element] = true
		}
	}
	var out []monster.Element
	for _, e := range monster.Elements() {
		if !present[e] {
			out = append(out, e)
		}
	}
	return out
}

// Summary is the record of a complete tower run.
type Summary struct {
	ID          string            `json:"id"`
	Player      string            `json:"player"`
	Rounds      []Round           `json:"rounds"`
	Wins        int               `json:"wins"`
	Losses      int               `json:"losses"`
	Draws       int               `json:"draws"`
	PlayerLives int               `json:"player_lives"`
	Cleared     bool              `json:"cleared"`
	OutOfMeta   []monster.Element `json:"out_of_meta,omitempty"`
}

// Run calls Next until no battles remain or ctx is done.
func (t *Tower) Run(ctx context.Context) (Summary, error) {
	if t.player == nil {
		return Summary{}, ErrNoPlayer
	}
	s := Summary{ID: uuid.NewString(), Player: t.player.Team.String(), OutOfMeta: t.OutOfMeta()}
	for {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		r, ok, err := t.Next()
		if err != nil {
			return s, err
		}
		if !ok {
			break
		}
		s.Rounds = append(s.Rounds, r)
		switch r.Result {
		case combat.Team1:
			s.Wins++
		case combat.Team2:
			s.Losses++
		default:
			s.Draws++
		}
	}
	s.PlayerLives = t.player.Lives
	s.Cleared = t.player.Lives > 0
	return s, nil
}
