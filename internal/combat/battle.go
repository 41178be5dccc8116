package combat

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"monster_tower/internal/monster"
	"monster_tower/internal/team"
)

// Battle resolves a fight between two teams one turn at a time. It holds no
// state across battles; Start resets it.
type Battle struct {
	// Emit receives the event stream when set.
	Emit func(Event)
	// MaxTurns ends a battle in a Draw once reached. Zero means no limit.
	MaxTurns int

	turn         int
	team1, team2 *team.Team
	out1, out2   *monster.Creature
}

func New() *Battle { return &Battle{} }

func (b *Battle) Turn() int { return b.turn }

// Active returns the creature each side currently has out.
func (b *Battle) Active() (*monster.Creature, *monster.Creature) { return b.out1, b.out2 }

// ChooseAction attacks when self is at least as fast as enemy or has at least
// as much HP; otherwise it swaps.
func ChooseAction(self, enemy *monster.Creature) Action {
	if self.Speed() >= enemy.Speed() || self.HP() >= enemy.HP() {
		return ActionAttack
	}
	return ActionSwap
}

func (b *Battle) emit(typ string, payload map[string]any) {
	if b.Emit == nil {
		return
	}
	b.Emit(Event{T: b.turn, Type: typ, Payload: payload})
}

// Start binds the teams and sends out the first creature of each side. An empty
// side loses immediately, team 1 checked first.
func (b *Battle) Start(team1, team2 *team.Team) (Result, error) {
	b.turn = 0
	b.team1, b.team2 = team1, team2
	b.out1, b.out2 = nil, nil

	b.emit(EventStart, map[string]any{"team1": team1.String(), "team2": team2.String()})
	if team1.IsEmpty() {
		slog.Warn("team 1 has no monsters")
		return Team2, nil
	}
	if team2.IsEmpty() {
		slog.Warn("team 2 has no monsters")
		return Team1, nil
	}

	var err error
	if b.out1, err = b.sendOut(1, team1); err != nil {
		return NoResult, err
	}
	if b.out2, err = b.sendOut(2, team2); err != nil {
		return NoResult, err
	}
	return NoResult, nil
}

func (b *Battle) sendOut(side int, t *team.Team) (*monster.Creature, error) {
	c, err := t.Retrieve()
	if err != nil {
		return nil, fmt.Errorf("sending out for team %d: %w", side, err)
	}
	b.emit(EventSendOut, map[string]any{"side": side, "name": c.Name(), "hp": c.HP(), "level": c.Level()})
	return c, nil
}

// Run plays the battle to a terminal result.
func (b *Battle) Run(team1, team2 *team.Team) (Result, error) {
	res, err := b.Start(team1, team2)
	for err == nil && res == NoResult {
		res, err = b.ProcessTurn()
	}
	if err != nil {
		return NoResult, err
	}
	b.emit(EventResult, map[string]any{"result": res.String(), "turns": b.turn})
	slog.Debug("battle finished", "result", res, "turns", b.turn)
	return res, nil
}

// ProcessTurn advances the battle by one turn. It returns NoResult while the
// battle continues.
func (b *Battle) ProcessTurn() (Result, error) {
	if b.out1 == nil || b.out2 == nil {
		return NoResult, fmt.Errorf("battle not started")
	}
	b.turn++

	act1 := ChooseAction(b.out1, b.out2)
	act2 := ChooseAction(b.out2, b.out1)
	b.emit(EventAction, map[string]any{"side": 1, "action": act1.String()})
	b.emit(EventAction, map[string]any{"side": 2, "action": act2.String()})

	// A level is earned only by the hit that takes the target from above 0.
	standing1, standing2 := !b.out1.IsFainted(), !b.out2.IsFainted()
	b.resolve(1, act1, b.out1, b.out2)
	b.resolve(2, act2, b.out2, b.out1)

	fainted1, fainted2 := b.out1.IsFainted(), b.out2.IsFainted()
	if fainted1 && fainted2 && b.team1.IsEmpty() && b.team2.IsEmpty() {
		b.emit(EventFaint, map[string]any{"side": 1, "name": b.out1.Name()})
		b.emit(EventFaint, map[string]any{"side": 2, "name": b.out2.Name()})
		return Draw, nil
	}
	if fainted2 && standing2 && !fainted1 && act1 == ActionAttack {
		b.out1.AwardLevel()
	}
	if fainted1 && standing1 && !fainted2 && act2 == ActionAttack {
		b.out2.AwardLevel()
	}

	if fainted1 {
		b.emit(EventFaint, map[string]any{"side": 1, "name": b.out1.Name()})
		if b.team1.IsEmpty() {
			return Team2, nil
		}
		var err error
		if b.out1, err = b.sendOut(1, b.team1); err != nil {
			return NoResult, err
		}
	}
	if fainted2 {
		b.emit(EventFaint, map[string]any{"side": 2, "name": b.out2.Name()})
		if b.team2.IsEmpty() {
			return Team1, nil
		}
		var err error
		if b.out2, err = b.sendOut(2, b.team2); err != nil {
			return NoResult, err
		}
	}

	b.grow(1, b.out1)
	b.grow(2, b.out2)

	if !b.out1.IsFainted() && !b.out2.IsFainted() {
		b.out1.ReduceHP(1)
		b.out2.ReduceHP(1)
		b.emit(EventChip, map[string]any{"hp1": b.out1.HP(), "hp2": b.out2.HP()})
	}

	slog.Debug("turn resolved",
		"turn", b.turn,
		"action1", act1, "action2", act2,
		"active1", b.out1.String(), "active2", b.out2.String(),
		"reserve1", b.team1.Size(), "reserve2", b.team2.Size())

	defeated1, defeated2 := b.team1.IsDefeated(b.out1), b.team2.IsDefeated(b.out2)
	switch {
	case defeated1 && defeated2:
		return Draw, nil
	case defeated1:
		return Team2, nil
	case defeated2:
		return Team1, nil
	}
	if b.MaxTurns > 0 && b.turn >= b.MaxTurns {
		slog.Warn("battle hit turn limit", "turns", b.turn)
		return Draw, nil
	}
	return NoResult, nil
}

// resolve applies one side's action. Damage may be negative, which heals.
func (b *Battle) resolve(side int, act Action, self, enemy *monster.Creature) {
	switch act {
	case ActionAttack:
		dmg := self.Attack() - enemy.Defense()
		enemy.ReduceHP(dmg)
		b.emit(EventHit, map[string]any{
			"side": side, "attacker": self.Name(), "target": enemy.Name(), "dmg": dmg, "hp": enemy.HP(),
		})
	case ActionSwap:
		// A swap keeps the active creature in place and skips its attack.
	case ActionSpecial:
		// No effect is defined.
	}
}

func (b *Battle) grow(side int, c *monster.Creature) {
	g := c.CheckForLevelUpOrEvolution()
	if g.LeveledUp() {
		b.emit(EventLevelUp, map[string]any{"side": side, "name": c.Name(), "from": g.FromLevel, "to": g.ToLevel})
	}
	if g.Evolved() {
		b.emit(EventEvolve, map[string]any{"side": side, "from": g.EvolvedFrom, "to": c.Name()})
	}
}

// RunReport plays a battle on a fresh engine and returns its report. Events are
// kept only when record is true.
func RunReport(team1, team2 *team.Team, maxTurns int, record bool) (Report, error) {
	rep := Report{ID: uuid.NewString()}
	b := &Battle{MaxTurns: maxTurns}
	if record {
		b.Emit = func(ev Event) { rep.Events = append(rep.Events, ev) }
	}
	res, err := b.Run(team1, team2)
	if err != nil {
		return rep, err
	}
	rep.Result = res
	rep.Turns = b.turn
	return rep, nil
}
