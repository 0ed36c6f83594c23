package nursery

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/component"
	"github.com/l1jgo/nursery/internal/core/event"
)

// CanPair reports whether a and b may breed: same kind, different genders,
// and both at or above the minimum breeding level.
func (n *Nursery) CanPair(a, b *component.Creature) bool {
	return a.Kind == b.Kind &&
		a.Gender != b.Gender &&
		a.Level >= n.rules.MinBreedLevel &&
		b.Level >= n.rules.MinBreedLevel
}

// Pair breeds a with b. The offspring takes a's kind (never b's), a random
// gender and a random name from the offspring list, starts at level 1 and is
// appended to the nursery. Parents are left untouched.
// Returns ErrPairNotAllowed without any state change when CanPair is false.
func (n *Nursery) Pair(a, b *component.Creature) (*component.Creature, error) {
	if !n.CanPair(a, b) {
		return nil, ErrPairNotAllowed
	}

	gender := n.RandomGender()
	name := pick(n.rng, n.names.Offspring())
	baby := component.NewCreature(n.newID(), name, a.Kind, gender)
	n.Add(baby)

	event.Emit(n.bus, event.OffspringBorn{
		ID:      baby.ID,
		Name:    baby.Name,
		Kind:    baby.Kind.String(),
		Parents: [2]uuid.UUID{a.ID, b.ID},
	})
	n.log.Debug("offspring born",
		zap.Stringer("id", baby.ID), zap.String("name", baby.Name),
		zap.Stringer("parent1", a.ID), zap.Stringer("parent2", b.ID))
	return baby, nil
}

// PairByID looks both parents up before pairing them.
func (n *Nursery) PairByID(first, second uuid.UUID) (*component.Creature, error) {
	a, ok := n.FindByID(first)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, first)
	}
	b, ok := n.FindByID(second)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, second)
	}
	return n.Pair(a, b)
}
