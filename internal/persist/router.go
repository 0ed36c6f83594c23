package persist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/l1jgo/nursery/internal/component"
)

// Location prefixes understood by Router. Anything else is a file path.
const (
	SQLitePrefix   = "sqlite:"
	PostgresPrefix = "pg:"
)

// ErrBadLocation is returned for a prefixed location with nothing after it.
var ErrBadLocation = errors.New("empty location")

// ErrBackendDisabled is returned when a prefix names a backend the router
// was built without.
var ErrBackendDisabled = errors.New("backend not configured")

// Backend is one storage medium. It mirrors nursery.Storage.
type Backend interface {
	Exists(ctx context.Context, loc string) (bool, error)
	Read(ctx context.Context, loc string) ([]*component.Creature, error)
	Write(ctx context.Context, loc string, creatures []*component.Creature) error
}

// Router dispatches a location to the backend its prefix selects:
//
//	nursery.csv           text file
//	sqlite:nursery.db     SQLite file
//	pg:main               PostgreSQL nursery named "main"
type Router struct {
	File     Backend
	SQLite   Backend
	Postgres Backend
}

func (r *Router) route(loc string) (Backend, string, error) {
	var (
		b      Backend
		target string
		name   string
	)
	switch {
	case strings.HasPrefix(loc, SQLitePrefix):
		b, target, name = r.SQLite, strings.TrimPrefix(loc, SQLitePrefix), "sqlite"
	case strings.HasPrefix(loc, PostgresPrefix):
		b, target, name = r.Postgres, strings.TrimPrefix(loc, PostgresPrefix), "postgres"
	default:
		b, target, name = r.File, loc, "file"
	}
	if target == "" {
		return nil, "", fmt.Errorf("%w: %q", ErrBadLocation, loc)
	}
	if b == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrBackendDisabled, name)
	}
	return b, target, nil
}

func (r *Router) Exists(ctx context.Context, loc string) (bool, error) {
	b, target, err := r.route(loc)
	if err != nil {
		return false, err
	}
	return b.Exists(ctx, target)
}

func (r *Router) Read(ctx context.Context, loc string) ([]*component.Creature, error) {
	b, target, err := r.route(loc)
	if err != nil {
		return nil, err
	}
	return b.Read(ctx, target)
}

func (r *Router) Write(ctx context.Context, loc string, creatures []*component.Creature) error {
	b, target, err := r.route(loc)
	if err != nil {
		return err
	}
	return b.Write(ctx, target, creatures)
}
