package nursery

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/l1jgo/nursery/internal/component"
)

// seqRand replays a fixed sequence of picks, each reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// seqIDs hands out 00000000-0000-0000-0000-0000000000NN ids in order.
func seqIDs() IDGen {
	var next byte
	return func() uuid.UUID {
		next++
		var id uuid.UUID
		id[15] = next
		return id
	}
}

// memStorage is an in-memory Storage keyed by location.
type memStorage struct {
	slots    map[string][]*component.Creature
	writeErr error
	readErr  error
	existErr error
}

func newMemStorage() *memStorage {
	return &memStorage{slots: make(map[string][]*component.Creature)}
}

func (m *memStorage) Exists(_ context.Context, src string) (bool, error) {
	if m.existErr != nil {
		return false, m.existErr
	}
	_, ok := m.slots[src]
	return ok, nil
}

func (m *memStorage) Read(_ context.Context, src string) ([]*component.Creature, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []*component.Creature
	for _, c := range m.slots[src] {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStorage) Write(_ context.Context, dst string, creatures []*component.Creature) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	var out []*component.Creature
	for _, c := range creatures {
		cp := *c
		out = append(out, &cp)
	}
	m.slots[dst] = out
	return nil
}

var errDisk = errors.New("disk full")

func newTestNursery(vals ...int) (*Nursery, *memStorage) {
	st := newMemStorage()
	n := New(Options{
		Rand:    &seqRand{vals: vals},
		NewID:   seqIDs(),
		Storage: st,
	})
	return n, st
}

// atLevel creates a creature and sets its level directly.
func atLevel(n *Nursery, name string, kind component.Kind, gender component.Gender, level uint32) *component.Creature {
	c := n.Create(name, kind, gender)
	c.Level = level
	return c
}
