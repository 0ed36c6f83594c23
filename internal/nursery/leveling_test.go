package nursery

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/nursery/internal/component"
	"github.com/l1jgo/nursery/internal/core/event"
)

func TestGainExpInvariant(t *testing.T) {
	amounts := []uint32{0, 1, 30, 99, 100, 101, 250, 1000, 12345, math.MaxUint32}
	for oldExp := uint32(0); oldExp < 100; oldExp += 7 {
		for _, amount := range amounts {
			c := &component.Creature{Level: 3, Exp: oldExp}
			gained := GainExp(c, amount, 100)

			wantGain := uint32((uint64(oldExp) + uint64(amount)) / 100)
			require.Equal(t, wantGain, gained, "old=%d amount=%d", oldExp, amount)
			require.Equal(t, 3+wantGain, c.Level)
			require.Less(t, c.Exp, uint32(100))
			require.Equal(t, uint32((uint64(oldExp)+uint64(amount))%100), c.Exp)
		}
	}
}

func TestGainExpZeroIsNoop(t *testing.T) {
	c := &component.Creature{Level: 4, Exp: 99}
	assert.Zero(t, GainExp(c, 0, 100))
	assert.Equal(t, uint32(4), c.Level)
	assert.Equal(t, uint32(99), c.Exp)
}

func TestGainExpSaturatesLevel(t *testing.T) {
	c := &component.Creature{Level: math.MaxUint32, Exp: 10}
	gained := GainExp(c, 100, 100)
	assert.Equal(t, uint32(0), gained)
	assert.Equal(t, uint32(math.MaxUint32), c.Level)
	assert.Equal(t, uint32(10), c.Exp)

	c = &component.Creature{Level: math.MaxUint32 - 1}
	gained = GainExp(c, 500, 100)
	assert.Equal(t, uint32(1), gained)
	assert.Equal(t, uint32(math.MaxUint32), c.Level)
	assert.Equal(t, uint32(0), c.Exp)
}

func TestGainExpCustomStep(t *testing.T) {
	c := &component.Creature{Level: 1}
	assert.Equal(t, uint32(2), GainExp(c, 520, 250))
	assert.Equal(t, uint32(3), c.Level)
	assert.Equal(t, uint32(20), c.Exp)
}

func TestTrainAllEmpty(t *testing.T) {
	n, _ := newTestNursery()
	res, err := n.TrainAll(50)
	require.ErrorIs(t, err, ErrEmpty)
	assert.Zero(t, res.Trained)
}

func TestTrainAll(t *testing.T) {
	bus := event.NewBus()
	var leveled []event.CreatureLeveled
	event.Subscribe(bus, func(ev event.CreatureLeveled) { leveled = append(leveled, ev) })

	n := New(Options{Rand: &seqRand{}, NewID: seqIDs(), Bus: bus})
	a := n.Create("Goupix", component.KindFeu, component.GenderMale)
	b := n.Create("Caninos", component.KindFeu, component.GenderFemelle)
	b.Exp = 80

	res, err := n.TrainAll(30)
	require.NoError(t, err)
	assert.Equal(t, TrainResult{Trained: 2, LevelsGained: 1}, res)
	assert.Equal(t, uint32(1), a.Level)
	assert.Equal(t, uint32(30), a.Exp)
	assert.Equal(t, uint32(2), b.Level)
	assert.Equal(t, uint32(10), b.Exp)

	bus.Flush()
	require.Len(t, leveled, 1)
	assert.Equal(t, "Caninos", leveled[0].Name)
	assert.Equal(t, uint32(1), leveled[0].OldLevel)
	assert.Equal(t, uint32(2), leveled[0].NewLevel)
}

func TestTrainAllUsesRules(t *testing.T) {
	n := New(Options{Rules: Rules{ExpPerLevel: 10}, Rand: &seqRand{}, NewID: seqIDs()})
	c := n.Create("Rattata", component.KindEau, component.GenderMale)
	_, err := n.TrainAll(35)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), c.Level)
	assert.Equal(t, uint32(5), c.Exp)
	assert.Equal(t, DefaultMinBreedLevel, n.Rules().MinBreedLevel)
}
