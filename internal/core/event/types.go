package event

import "github.com/google/uuid"

// Nursery domain events.

type CreatureAdded struct {
	ID   uuid.UUID
	Name string
}

type CreatureLeveled struct {
	ID       uuid.UUID
	Name     string
	OldLevel uint32
	NewLevel uint32
}

type OffspringBorn struct {
	ID      uuid.UUID
	Name    string
	Kind    string
	Parents [2]uuid.UUID
}

type NurseryLoaded struct {
	Source string
	Count  int
}

type NurserySaved struct {
	Destination string
	Count       int
}
