package persist

import (
	"github.com/google/uuid"

	"github.com/l1jgo/nursery/internal/component"
)

// CreatureRow is one persisted creature in the SQL backends.
// Kind and gender are stored by symbolic name, as in the text format.
type CreatureRow struct {
	Position int
	ID       string
	Name     string
	Level    int64
	Kind     string
	Exp      int64
	Gender   string
}

func toRow(pos int, c *component.Creature) CreatureRow {
	return CreatureRow{
		Position: pos,
		ID:       c.ID.String(),
		Name:     c.Name,
		Level:    int64(c.Level),
		Kind:     c.Kind.String(),
		Exp:      int64(c.Exp),
		Gender:   c.Gender.String(),
	}
}

// toCreature applies the same lenient recovery as the text decoder:
// bad ids are regenerated, out-of-range numbers fall back, unknown names
// map to the first kind/gender.
func (r CreatureRow) toCreature(newID func() uuid.UUID) *component.Creature {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		id = newID()
	}
	level := uint32(1)
	if r.Level >= 0 && r.Level <= int64(^uint32(0)) {
		level = uint32(r.Level)
	}
	exp := uint32(0)
	if r.Exp >= 0 && r.Exp <= int64(^uint32(0)) {
		exp = uint32(r.Exp)
	}
	return &component.Creature{
		ID:     id,
		Name:   r.Name,
		Level:  level,
		Kind:   component.ParseKind(r.Kind),
		Exp:    exp,
		Gender: component.ParseGender(r.Gender),
	}
}
