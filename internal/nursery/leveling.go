package nursery

import (
	"math"

	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/component"
	"github.com/l1jgo/nursery/internal/core/event"
)

// GainExp adds amount to c.Exp and rolls every full perLevel into one
// level. Afterwards 0 <= c.Exp < perLevel. Returns the levels gained.
// amount == 0 is a no-op. perLevel must be positive. Level saturates at
// math.MaxUint32.
func GainExp(c *component.Creature, amount, perLevel uint32) uint32 {
	// closed form of the subtract-perLevel loop, in uint64 so nothing wraps
	total := uint64(c.Exp) + uint64(amount)
	level := uint64(c.Level) + total/uint64(perLevel)
	if level > math.MaxUint32 {
		level = math.MaxUint32
	}
	gained := uint32(level - uint64(c.Level))
	c.Level = uint32(level)
	c.Exp = uint32(total % uint64(perLevel))
	return gained
}

// TrainResult summarizes a TrainAll call.
type TrainResult struct {
	Trained      int
	LevelsGained uint32
}

// TrainAll gives amount exp to every creature. On an empty nursery nothing
// is mutated and ErrEmpty is returned.
func (n *Nursery) TrainAll(amount uint32) (TrainResult, error) {
	if len(n.creatures) == 0 {
		return TrainResult{}, ErrEmpty
	}
	var res TrainResult
	for _, c := range n.creatures {
		old := c.Level
		gained := GainExp(c, amount, n.rules.ExpPerLevel)
		res.Trained++
		res.LevelsGained += gained
		if gained > 0 {
			event.Emit(n.bus, event.CreatureLeveled{ID: c.ID, Name: c.Name, OldLevel: old, NewLevel: c.Level})
		}
	}
	n.log.Debug("training done",
		zap.Uint32("exp", amount), zap.Int("trained", res.Trained), zap.Uint32("levels", res.LevelsGained))
	return res, nil
}
