package nursery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/nursery/internal/component"
	"github.com/l1jgo/nursery/internal/core/event"
	"github.com/l1jgo/nursery/internal/data"
)

func names(list []component.Creature) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name
	}
	return out
}

func TestCreateAndList(t *testing.T) {
	bus := event.NewBus()
	var added []string
	event.Subscribe(bus, func(ev event.CreatureAdded) { added = append(added, ev.Name) })

	n := New(Options{Rand: &seqRand{}, NewID: seqIDs(), Bus: bus})
	assert.Empty(t, n.List())
	assert.Zero(t, n.Len())

	c := n.Create("Pikachu", component.KindElectrik, component.GenderFemelle)
	assert.Equal(t, uint32(1), c.Level)
	assert.Zero(t, c.Exp)
	n.Add(component.NewCreature(uuid.New(), "Evoli", component.KindTenebre, component.GenderMale))

	list := n.List()
	require.Len(t, list, 2)
	assert.Equal(t, []string{"Pikachu", "Evoli"}, names(list))

	// List is a snapshot
	list[0].Name = "changed"
	assert.Equal(t, "Pikachu", n.List()[0].Name)

	bus.Flush()
	assert.Equal(t, []string{"Pikachu", "Evoli"}, added)
}

func TestCreateUniqueIDs(t *testing.T) {
	n := New(Options{})
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 50; i++ {
		c := n.CreateRandom(component.KindFeu, n.RandomGender())
		require.False(t, seen[c.ID])
		seen[c.ID] = true
		require.Contains(t, data.DefaultNameTable().Creation(), c.Name)
	}
}

func TestCreateRandomUsesCreationList(t *testing.T) {
	n, _ := newTestNursery(3)
	c := n.CreateRandom(component.KindEau, component.GenderMale)
	assert.Equal(t, data.DefaultNameTable().Creation()[3], c.Name)
}

func TestRandomGender(t *testing.T) {
	n, _ := newTestNursery(0, 1)
	assert.Equal(t, component.GenderMale, n.RandomGender())
	assert.Equal(t, component.GenderFemelle, n.RandomGender())
}

func TestFindByID(t *testing.T) {
	n, _ := newTestNursery()
	a := n.Create("A", component.KindFeu, component.GenderMale)
	got, ok := n.FindByID(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = n.FindByID(uuid.New())
	assert.False(t, ok)
}

func TestSortByLevelDescStable(t *testing.T) {
	n, _ := newTestNursery()
	atLevel(n, "a", component.KindFeu, component.GenderMale, 3)
	atLevel(n, "b", component.KindFeu, component.GenderMale, 7)
	atLevel(n, "c", component.KindFeu, component.GenderMale, 3)
	atLevel(n, "d", component.KindFeu, component.GenderMale, 10)
	atLevel(n, "e", component.KindFeu, component.GenderMale, 7)

	n.SortByLevelDesc()
	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, names(n.List()))
}

func TestSortByKindNameStable(t *testing.T) {
	n, _ := newTestNursery()
	n.Create("t1", component.KindTenebre, component.GenderMale)
	n.Create("f1", component.KindFeu, component.GenderMale)
	n.Create("e1", component.KindEau, component.GenderMale)
	n.Create("p1", component.KindPlante, component.GenderMale)
	n.Create("f2", component.KindFeu, component.GenderFemelle)
	n.Create("el", component.KindElectrik, component.GenderMale)
	n.Create("e2", component.KindEau, component.GenderFemelle)

	n.SortByKindName()
	assert.Equal(t, []string{"e1", "e2", "el", "f1", "f2", "p1", "t1"}, names(n.List()))
}

func TestSortEmpty(t *testing.T) {
	n, _ := newTestNursery()
	n.SortByLevelDesc()
	n.SortByKindName()
	assert.Zero(t, n.Len())
}
