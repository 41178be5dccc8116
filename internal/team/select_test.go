package team

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monster_tower/internal/monster"
	"monster_tower/internal/util"
)

func pool() []*monster.Archetype {
	locked := archetype("Locked", 99)
	locked.Spawnable = false
	return []*monster.Archetype{
		archetype("Alpha", 1),
		locked,
		archetype("Beta", 2),
		archetype("Gamma", 3),
	}
}

func TestBuild_ProvidedBackRoundTrip(t *testing.T) {
	x, y, z := archetype("X", 1), archetype("Y", 2), archetype("Z", 3)

	tm, err := Build(Back, SelectProvided, BuildOptions{Provided: []*monster.Archetype{x, y, z}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Z", "Y", "X"}, drain(t, tm))
}

func TestBuild_ProvidedFrontLayout(t *testing.T) {
	x, y, z := archetype("Flamikin", 1), archetype("Aquariuma", 2), archetype("Gustwing", 3)

	tm, err := Build(Front, SelectProvided, BuildOptions{Provided: []*monster.Archetype{x, y, z}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Gustwing", "Aquariuma", "Flamikin"}, names(tm.Creatures()))
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(Back, SelectProvided, BuildOptions{})
	assert.ErrorIs(t, err, ErrNoProvidedCreatures)

	_, err = Build(Back, Selection(9), BuildOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedSelection)

	_, err = Build(Optimise, SelectProvided, BuildOptions{Provided: []*monster.Archetype{}})
	assert.ErrorIs(t, err, ErrMissingSortKey)

	seven := make([]*monster.Archetype, Capacity+1)
	for i := range seven {
		seven[i] = archetype("m", i)
	}
	_, err = Build(Back, SelectProvided, BuildOptions{Provided: seven})
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestSelectRandomly(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		tm, err := Build(Back, SelectRandom, BuildOptions{Pool: pool(), Rng: util.New(seed)})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, tm.Size(), 1)
		assert.LessOrEqual(t, tm.Size(), Capacity)
		for _, c := range tm.Creatures() {
			assert.NotEqual(t, "Locked", c.Name(), "seed %d spawned a locked archetype", seed)
		}
	}

	a, err := Build(Back, SelectRandom, BuildOptions{Pool: pool(), Rng: util.New(11)})
	require.NoError(t, err)
	b, err := Build(Back, SelectRandom, BuildOptions{Pool: pool(), Rng: util.New(11)})
	require.NoError(t, err)
	assert.Equal(t, names(a.Creatures()), names(b.Creatures()), "same seed, same team")
}

func TestSelectRandomly_NoSpawnable(t *testing.T) {
	locked := archetype("Locked", 1)
	locked.Spawnable = false

	_, err := Build(Back, SelectRandom, BuildOptions{Pool: []*monster.Archetype{locked}, Rng: util.New(1)})
	assert.Error(t, err)
}

func TestSelectManually(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"zero", // not an integer
		"9",    // too many
		"2",
		"4", // out of range: only three spawnable
		"x",
		"2", // Beta
		"3", // Gamma
	}, "\n"))
	var out bytes.Buffer

	tm, err := Build(Back, SelectManual, BuildOptions{Pool: pool(), Input: in, Output: &out})
	require.NoError(t, err)

	assert.Equal(t, []string{"Beta", "Gamma"}, names(tm.Creatures()))
	text := out.String()
	assert.Contains(t, text, "MONSTERS Are:")
	assert.Contains(t, text, "1: Alpha [Normal]")
	assert.NotContains(t, text, "Locked")
	assert.Equal(t, 2, strings.Count(text, "Invalid input. Please enter a valid integer."))
	assert.Equal(t, 1, strings.Count(text, "Invalid selection. Please choose a valid monster."))
}

func TestSelectManually_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := Build(Front, SelectManual, BuildOptions{Pool: pool(), Input: strings.NewReader("3\n1\n"), Output: &out})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
