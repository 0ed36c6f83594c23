// Package nursery owns the creature population: creation, training,
// breeding, sorting and save/load orchestration. A Nursery is accessed
// from the command loop goroutine only, without locks.
package nursery

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/component"
	"github.com/l1jgo/nursery/internal/core/event"
	"github.com/l1jgo/nursery/internal/data"
)

const (
	DefaultExpPerLevel   uint32 = 100
	DefaultMinBreedLevel uint32 = 5
)

// Rules are the numeric thresholds of levelling and breeding.
type Rules struct {
	ExpPerLevel   uint32
	MinBreedLevel uint32
}

// DefaultRules returns 100 exp per level and breeding from level 5.
func DefaultRules() Rules {
	return Rules{ExpPerLevel: DefaultExpPerLevel, MinBreedLevel: DefaultMinBreedLevel}
}

// Options configures a Nursery. Zero fields get working defaults.
type Options struct {
	Rules   Rules
	Names   *data.NameTable
	Rand    Rand
	NewID   IDGen
	Storage Storage
	Bus     *event.Bus
	Log     *zap.Logger
}

// Nursery is the ordered creature population.
type Nursery struct {
	creatures []*component.Creature

	rules   Rules
	names   *data.NameTable
	rng     Rand
	newID   IDGen
	storage Storage
	bus     *event.Bus
	log     *zap.Logger
}

// New creates an empty nursery.
func New(opts Options) *Nursery {
	n := &Nursery{
		rules:   opts.Rules,
		names:   opts.Names,
		rng:     opts.Rand,
		newID:   opts.NewID,
		storage: opts.Storage,
		bus:     opts.Bus,
		log:     opts.Log,
	}
	if n.rules.ExpPerLevel == 0 {
		n.rules.ExpPerLevel = DefaultExpPerLevel
	}
	if n.rules.MinBreedLevel == 0 {
		n.rules.MinBreedLevel = DefaultMinBreedLevel
	}
	if n.names == nil {
		n.names = data.DefaultNameTable()
	}
	if n.rng == nil {
		n.rng = defaultRand()
	}
	if n.newID == nil {
		n.newID = uuid.New
	}
	if n.log == nil {
		n.log = zap.NewNop()
	}
	return n
}

// Rules returns the thresholds in effect.
func (n *Nursery) Rules() Rules {
	return n.rules
}

// Len returns the number of creatures.
func (n *Nursery) Len() int {
	return len(n.creatures)
}

// Add appends a creature. Always succeeds.
func (n *Nursery) Add(c *component.Creature) {
	n.creatures = append(n.creatures, c)
	event.Emit(n.bus, event.CreatureAdded{ID: c.ID, Name: c.Name})
}

// Create builds a level 1 creature with a fresh id and adds it.
func (n *Nursery) Create(name string, kind component.Kind, gender component.Gender) *component.Creature {
	c := component.NewCreature(n.newID(), name, kind, gender)
	n.Add(c)
	n.log.Debug("creature created",
		zap.Stringer("id", c.ID), zap.String("name", c.Name),
		zap.Stringer("kind", c.Kind), zap.Stringer("gender", c.Gender))
	return c
}

// RandomName draws a name from the creation list.
func (n *Nursery) RandomName() string {
	return pick(n.rng, n.names.Creation())
}

// RandomGender draws one of the two genders uniformly.
func (n *Nursery) RandomGender() component.Gender {
	return pick(n.rng, component.Genders)
}

// CreateRandom is Create with a name drawn from the creation list.
func (n *Nursery) CreateRandom(kind component.Kind, gender component.Gender) *component.Creature {
	return n.Create(n.RandomName(), kind, gender)
}

// List returns a copy of the population in its current order.
// An empty result means the nursery has no creatures yet.
func (n *Nursery) List() []component.Creature {
	out := make([]component.Creature, len(n.creatures))
	for i, c := range n.creatures {
		out[i] = *c
	}
	return out
}

// FindByID returns the creature with the given id.
func (n *Nursery) FindByID(id uuid.UUID) (*component.Creature, bool) {
	for _, c := range n.creatures {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// SortByLevelDesc orders by level, highest first. Equal levels keep their
// relative order.
func (n *Nursery) SortByLevelDesc() {
	sort.SliceStable(n.creatures, func(i, j int) bool {
		return n.creatures[i].Level > n.creatures[j].Level
	})
}

// SortByKindName orders by the symbolic kind name (Eau < Electrik < Feu <
// Plante < Tenebre), keeping relative order within a kind.
func (n *Nursery) SortByKindName() {
	sort.SliceStable(n.creatures, func(i, j int) bool {
		return n.creatures[i].Kind.String() < n.creatures[j].Kind.String()
	})
}
