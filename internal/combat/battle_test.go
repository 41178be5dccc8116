package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monster_tower/internal/monster"
	"monster_tower/internal/stats"
	"monster_tower/internal/team"
)

func fighter(name string, attack, defense, speed, hp int) *monster.Archetype {
	return &monster.Archetype{
		Name:      name,
		Element:   monster.Normal,
		Stats:     stats.NewSimple(attack, defense, speed, hp),
		Spawnable: true,
	}
}

func backTeam(t *testing.T, lineup ...*monster.Archetype) *team.Team {
	t.Helper()
	tm, err := team.Build(team.Back, team.SelectProvided, team.BuildOptions{Provided: lineup})
	require.NoError(t, err)
	return tm
}

func TestChooseAction(t *testing.T) {
	tests := []struct {
		name        string
		self, enemy *monster.Archetype
		selfDamage  int
		want        Action
	}{
		{name: "faster attacks", self: fighter("a", 1, 1, 5, 10), enemy: fighter("b", 1, 1, 4, 50), want: ActionAttack},
		{name: "equal speed attacks", self: fighter("a", 1, 1, 5, 10), enemy: fighter("b", 1, 1, 5, 50), want: ActionAttack},
		{name: "slower but healthier attacks", self: fighter("a", 1, 1, 1, 50), enemy: fighter("b", 1, 1, 5, 50), want: ActionAttack},
		{name: "slower and weaker swaps", self: fighter("a", 1, 1, 1, 50), enemy: fighter("b", 1, 1, 5, 50), selfDamage: 1, want: ActionSwap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self, enemy := tt.self.Spawn(), tt.enemy.Spawn()
			self.ReduceHP(tt.selfDamage)
			assert.Equal(t, tt.want, ChooseAction(self, enemy))
		})
	}
}

func TestRun_FasterAttackerWins(t *testing.T) {
	a := backTeam(t, fighter("A", 10, 0, 10, 20))
	b := backTeam(t, fighter("B", 5, 0, 1, 20))

	battle := New()
	res, err := battle.Run(a, b)
	require.NoError(t, err)

	assert.Equal(t, Team1, res)
	// Turn 1: B 20->10, A 20->15, chip to 14/9. Turn 2: B is slower and
	// weaker so it swaps, A hits for 10 and B faints with no reserves.
	assert.Equal(t, 2, battle.Turn())
	out1, out2 := battle.Active()
	assert.Equal(t, 14, out1.HP())
	assert.Equal(t, -1, out2.HP())
}

func TestProcessTurn_StepByStep(t *testing.T) {
	a := backTeam(t, fighter("A", 10, 0, 10, 20))
	b := backTeam(t, fighter("B", 5, 0, 1, 20))

	battle := New()
	res, err := battle.Start(a, b)
	require.NoError(t, err)
	require.Equal(t, NoResult, res)

	res, err = battle.ProcessTurn()
	require.NoError(t, err)
	assert.Equal(t, NoResult, res)
	out1, out2 := battle.Active()
	assert.Equal(t, 14, out1.HP())
	assert.Equal(t, 9, out2.HP())

	res, err = battle.ProcessTurn()
	require.NoError(t, err)
	assert.Equal(t, Team1, res)
	assert.Equal(t, 14, out1.HP(), "a swapping side does not attack")
}

func TestRun_EmptyTeams(t *testing.T) {
	empty := func() *team.Team { return backTeam(t) }

	battle := New()
	res, err := battle.Run(empty(), backTeam(t, fighter("B", 1, 1, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, Team2, res)
	assert.Equal(t, 0, battle.Turn())

	res, err = battle.Run(backTeam(t, fighter("A", 1, 1, 1, 1)), empty())
	require.NoError(t, err)
	assert.Equal(t, Team1, res)
	assert.Equal(t, 0, battle.Turn())

	res, err = battle.Run(empty(), empty())
	require.NoError(t, err)
	assert.Equal(t, Team2, res, "team 1 is checked first")
}

func TestProcessTurn_NotStarted(t *testing.T) {
	_, err := New().ProcessTurn()
	assert.Error(t, err)
}

func TestRun_SimultaneousKnockoutIsDraw(t *testing.T) {
	a := backTeam(t, fighter("A", 20, 0, 5, 10))
	b := backTeam(t, fighter("B", 20, 0, 5, 10))

	battle := New()
	res, err := battle.Run(a, b)
	require.NoError(t, err)
	assert.Equal(t, Draw, res)
	assert.Equal(t, 1, battle.Turn())
}

func TestRun_ChipDamageDoubleDefeatIsDraw(t *testing.T) {
	a := backTeam(t, fighter("A", 0, 0, 5, 1))
	b := backTeam(t, fighter("B", 0, 0, 5, 1))

	battle := New()
	res, err := battle.Run(a, b)
	require.NoError(t, err)
	assert.Equal(t, Draw, res)
	assert.Equal(t, 1, battle.Turn())
}

func TestRun_SimultaneousKnockoutWithReserves(t *testing.T) {
	a := backTeam(t, fighter("A2", 50, 0, 9, 100), fighter("A1", 20, 0, 5, 10))
	b := backTeam(t, fighter("B1", 20, 0, 5, 10))

	battle := New()
	res, err := battle.Start(a, b)
	require.NoError(t, err)
	require.Equal(t, NoResult, res)

	res, err = battle.ProcessTurn()
	require.NoError(t, err)
	assert.Equal(t, Team1, res, "side 1 replaces, side 2 has nothing left")
	out1, _ := battle.Active()
	assert.Equal(t, "A2", out1.Name())
}

func TestRun_NegativeDamageHeals(t *testing.T) {
	a := backTeam(t, fighter("A", 1, 0, 10, 20))
	b := backTeam(t, fighter("B", 0, 5, 1, 30))

	battle := New()
	_, err := battle.Start(a, b)
	require.NoError(t, err)
	_, err = battle.ProcessTurn()
	require.NoError(t, err)

	_, out2 := battle.Active()
	// A hits for 1-5 = -4, then chip damage.
	assert.Equal(t, 33, out2.HP())
}

func TestRun_TurnLimit(t *testing.T) {
	a := backTeam(t, fighter("A", 0, 5, 5, 20))
	b := backTeam(t, fighter("B", 0, 5, 5, 20))

	battle := &Battle{MaxTurns: 40}
	res, err := battle.Run(a, b)
	require.NoError(t, err)
	assert.Equal(t, Draw, res)
	assert.Equal(t, 40, battle.Turn())
}

func TestRun_ReplacementFollowsTeamMode(t *testing.T) {
	strong := fighter("Strong", 100, 0, 50, 500)
	weak := fighter("Weak", 1, 0, 1, 1)
	mid := fighter("Mid", 1, 0, 1, 2)

	opp, err := team.Build(team.Optimise, team.SelectProvided, team.BuildOptions{
		SortKey:  monster.SortHP,
		Provided: []*monster.Archetype{mid, weak},
	})
	require.NoError(t, err)

	var sent []string
	battle := &Battle{Emit: func(ev Event) {
		if ev.Type == EventSendOut && ev.Payload["side"] == 2 {
			sent = append(sent, ev.Payload["name"].(string))
		}
	}}
	res, err := battle.Run(backTeam(t, strong), opp)
	require.NoError(t, err)

	assert.Equal(t, Team1, res)
	assert.Equal(t, []string{"Weak", "Mid"}, sent, "optimise sends the lowest key first")
}

func TestRun_KnockoutAwardsLevel(t *testing.T) {
	hero := &monster.Archetype{
		Name:    "Hero",
		Element: monster.Fire,
		Stats: stats.NewFormula(
			[]string{"level", "10", "*"},
			[]string{"0"},
			[]string{"10"},
			[]string{"level", "100", "*"},
		),
	}
	a := backTeam(t, hero)
	b := backTeam(t, fighter("B2", 0, 0, 1, 50), fighter("B1", 0, 0, 1, 5))

	var events []Event
	battle := &Battle{Emit: func(ev Event) { events = append(events, ev) }}
	_, err := battle.Start(a, b)
	require.NoError(t, err)

	res, err := battle.ProcessTurn()
	require.NoError(t, err)
	require.Equal(t, NoResult, res)

	out1, out2 := battle.Active()
	assert.Equal(t, 2, out1.Level())
	assert.Equal(t, 200, out1.MaxHP())
	assert.Equal(t, 199, out1.HP(), "level-up keeps the deficit, then chip")
	assert.Equal(t, "B2", out2.Name())
	assert.Equal(t, 49, out2.HP())

	var levelUps int
	for _, ev := range events {
		if ev.Type == EventLevelUp {
			levelUps++
			assert.Equal(t, 1, ev.T)
		}
	}
	assert.Equal(t, 1, levelUps)
}

func TestRun_NoLevelForTargetAlreadyAtZero(t *testing.T) {
	a := backTeam(t, fighter("Pacifist", 0, 0, 5, 10))
	b := backTeam(t, fighter("B2", 0, 0, 1, 50), fighter("B1", 0, 0, 1, 1))

	battle := New()
	_, err := battle.Start(a, b)
	require.NoError(t, err)

	res, err := battle.ProcessTurn()
	require.NoError(t, err)
	require.Equal(t, NoResult, res)
	_, out2 := battle.Active()
	require.Equal(t, "B1", out2.Name())
	require.Equal(t, 0, out2.HP(), "chip leaves B1 at zero with a reserve behind it")

	res, err = battle.ProcessTurn()
	require.NoError(t, err)
	require.Equal(t, NoResult, res)

	out1, out2 := battle.Active()
	assert.Equal(t, "B2", out2.Name())
	assert.Equal(t, 1, out1.Level(), "a zero-damage hit on a downed target earns nothing")
	assert.Zero(t, out1.PendingLevels())
}

func TestRun_TerminatesWithReserves(t *testing.T) {
	a := backTeam(t,
		fighter("A1", 3, 1, 2, 12),
		fighter("A2", 4, 2, 3, 15),
		fighter("A3", 2, 2, 9, 9),
	)
	b := backTeam(t,
		fighter("B1", 3, 3, 3, 14),
		fighter("B2", 5, 0, 1, 10),
	)

	battle := &Battle{MaxTurns: 1000}
	res, err := battle.Run(a, b)
	require.NoError(t, err)
	assert.Equal(t, Team1, res)
	assert.Equal(t, 11, battle.Turn())
}

func TestRunReport(t *testing.T) {
	a := backTeam(t, fighter("A", 10, 0, 10, 20))
	b := backTeam(t, fighter("B", 5, 0, 1, 20))

	rep, err := RunReport(a, b, 0, true)
	require.NoError(t, err)

	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, Team1, rep.Result)
	assert.Equal(t, 2, rep.Turns)
	require.NotEmpty(t, rep.Events)
	assert.Equal(t, EventStart, rep.Events[0].Type)
	assert.Equal(t, EventResult, rep.Events[len(rep.Events)-1].Type)

	quiet, err := RunReport(backTeam(t, fighter("A", 10, 0, 10, 20)), backTeam(t, fighter("B", 5, 0, 1, 20)), 0, false)
	require.NoError(t, err)
	assert.Empty(t, quiet.Events)
	assert.NotEqual(t, rep.ID, quiet.ID)
}
