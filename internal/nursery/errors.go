package nursery

import "errors"

var (
	// ErrEmpty is returned by bulk operations on a nursery with no creatures.
	ErrEmpty = errors.New("nursery is empty")
	// ErrNotFound is returned when an id does not match any creature.
	ErrNotFound = errors.New("creature not found")
	// ErrPairNotAllowed is returned when two creatures fail the breeding rules.
	ErrPairNotAllowed = errors.New("pairing not permitted")
	// ErrWrite wraps storage failures during Save.
	ErrWrite = errors.New("save failed")
	// ErrRead wraps storage failures during Load.
	ErrRead = errors.New("load failed")
)
