package component

import "github.com/google/uuid"

// Creature stores all data for one nursery resident.
// Pure data, zero behavior. All mutations happen in the nursery package.
type Creature struct {
	ID     uuid.UUID
	Name   string
	Level  uint32 // >= 1
	Kind   Kind
	Exp    uint32 // progress toward next level
	Gender Gender
}

// NewCreature returns a level 1 creature with no experience.
func NewCreature(id uuid.UUID, name string, kind Kind, gender Gender) *Creature {
	return &Creature{
		ID:     id,
		Name:   name,
		Level:  1,
		Kind:   kind,
		Exp:    0,
		Gender: gender,
	}
}
