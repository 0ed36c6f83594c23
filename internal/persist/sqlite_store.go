package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/l1jgo/nursery/internal/component"
)

// ErrNoSnapshot is returned when reading a SQLite file with no creatures table.
var ErrNoSnapshot = errors.New("no nursery snapshot in sqlite file")

// SQLiteStore keeps a population in a standalone SQLite file, one row per
// creature. A save replaces the whole table in a single transaction.
type SQLiteStore struct {
	newID func() uuid.UUID
	log   *zap.Logger
}

func NewSQLiteStore(newID func() uuid.UUID, log *zap.Logger) *SQLiteStore {
	if newID == nil {
		newID = uuid.New
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteStore{newID: newID, log: log}
}

// openMigrated opens path for writing, creating the schema when needed.
func (s *SQLiteStore) openMigrated(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := RunSQLiteMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Exists reports whether path is a SQLite file holding a creatures table.
// An empty file or a database without the table counts as absent. Nothing
// is written to the file.
func (s *SQLiteStore) Exists(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return false, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()
	return hasCreaturesTable(ctx, db)
}

func hasCreaturesTable(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'creatures'`,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect sqlite file: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Read(ctx context.Context, path string) ([]*component.Creature, error) {
	// reads never migrate: the source file is left as found
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	ok, err := hasCreaturesTable(ctx, db)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSnapshot)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT position, id, name, level, kind, exp, gender
		 FROM creatures ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select creatures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*component.Creature
	for rows.Next() {
		var r CreatureRow
		if err := rows.Scan(&r.Position, &r.ID, &r.Name, &r.Level, &r.Kind, &r.Exp, &r.Gender); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		result = append(result, r.toCreature(s.newID))
	}
	return result, rows.Err()
}

func (s *SQLiteStore) Write(ctx context.Context, path string, creatures []*component.Creature) (retErr error) {
	db, err := s.openMigrated(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM creatures`); err != nil {
		return fmt.Errorf("clear creatures: %w", err)
	}
	for i, c := range creatures {
		r := toRow(i, c)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO creatures (position, id, name, level, kind, exp, gender)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Position, r.ID, r.Name, r.Level, r.Kind, r.Exp, r.Gender,
		); err != nil {
			return fmt.Errorf("insert creature %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Debug("sqlite snapshot written", zap.String("path", path), zap.Int("count", len(creatures)))
	return nil
}
