package nursery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/component"
	"github.com/l1jgo/nursery/internal/core/event"
)

// Storage reads and writes whole populations at a named location.
// Location syntax is up to the implementation (file path, sqlite:..., pg:...).
type Storage interface {
	Exists(ctx context.Context, src string) (bool, error)
	Read(ctx context.Context, src string) ([]*component.Creature, error)
	Write(ctx context.Context, dst string, creatures []*component.Creature) error
}

// ErrNoStorage is returned by Save/Load when the nursery has no Storage.
var ErrNoStorage = errors.New("no storage configured")

// SaveResult echoes where the population was written.
type SaveResult struct {
	Destination string
	Count       int
}

// Save writes the whole population to dst, replacing what was there.
// A failed write may leave dst partially written.
func (n *Nursery) Save(ctx context.Context, dst string) (SaveResult, error) {
	if n.storage == nil {
		return SaveResult{}, ErrNoStorage
	}
	if err := n.storage.Write(ctx, dst, n.creatures); err != nil {
		return SaveResult{}, fmt.Errorf("%w: %s: %w", ErrWrite, dst, err)
	}
	res := SaveResult{Destination: dst, Count: len(n.creatures)}
	event.Emit(n.bus, event.NurserySaved{Destination: dst, Count: res.Count})
	n.log.Info("nursery saved", zap.String("destination", dst), zap.Int("count", res.Count))
	return res, nil
}

// LoadOutcome tells the caller what Load did.
type LoadOutcome int

const (
	LoadImported LoadOutcome = iota // contents replaced
	LoadNotFound                    // source absent, nothing changed
	LoadNotEmpty                    // nursery already populated, nothing changed
)

func (o LoadOutcome) String() string {
	switch o {
	case LoadImported:
		return "imported"
	case LoadNotFound:
		return "not found"
	case LoadNotEmpty:
		return "not empty"
	default:
		return fmt.Sprintf("LoadOutcome(%d)", int(o))
	}
}

// LoadResult reports the outcome and, when imported, the count.
type LoadResult struct {
	Outcome LoadOutcome
	Source  string
	Count   int
}

// Load replaces the population with the contents of src. It never merges:
// a populated nursery is left alone. The existence check comes first.
// Ids read back are not checked against each other or against ids handed
// out earlier in the process; duplicates are only logged.
func (n *Nursery) Load(ctx context.Context, src string) (LoadResult, error) {
	if n.storage == nil {
		return LoadResult{}, ErrNoStorage
	}
	res := LoadResult{Source: src}

	ok, err := n.storage.Exists(ctx, src)
	if err != nil {
		return res, fmt.Errorf("%w: %s: %w", ErrRead, src, err)
	}
	if !ok {
		res.Outcome = LoadNotFound
		return res, nil
	}
	if len(n.creatures) > 0 {
		res.Outcome = LoadNotEmpty
		return res, nil
	}

	loaded, err := n.storage.Read(ctx, src)
	if err != nil {
		return res, fmt.Errorf("%w: %s: %w", ErrRead, src, err)
	}
	n.creatures = loaded
	res.Outcome = LoadImported
	res.Count = len(loaded)

	if dup := countDuplicateIDs(loaded); dup > 0 {
		n.log.Warn("duplicate creature ids loaded", zap.String("source", src), zap.Int("duplicates", dup))
	}
	event.Emit(n.bus, event.NurseryLoaded{Source: src, Count: res.Count})
	n.log.Info("nursery loaded", zap.String("source", src), zap.Int("count", res.Count))
	return res, nil
}

func countDuplicateIDs(creatures []*component.Creature) int {
	seen := make(map[uuid.UUID]struct{}, len(creatures))
	dup := 0
	for _, c := range creatures {
		if _, ok := seen[c.ID]; ok {
			dup++
			continue
		}
		seen[c.ID] = struct{}{}
	}
	return dup
}
