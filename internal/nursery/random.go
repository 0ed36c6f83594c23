package nursery

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Rand is the single source of randomness for name, gender and offspring
// choices. *math/rand.Rand satisfies it; tests inject fixed sequences.
type Rand interface {
	Intn(n int) int
}

// IDGen produces fresh creature ids.
type IDGen func() uuid.UUID

func defaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// pick returns a uniformly chosen element of list. list must not be empty.
func pick[T any](r Rand, list []T) T {
	return list[r.Intn(len(list))]
}
