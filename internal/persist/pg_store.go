package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/component"
	"github.com/l1jgo/nursery/internal/config"
)

// PGStore keeps named nurseries in PostgreSQL. The pool is opened and
// migrated on first use so that file-only sessions never need a server.
type PGStore struct {
	cfg   config.DatabaseConfig
	newID func() uuid.UUID
	log   *zap.Logger
	pool  *pgxpool.Pool
}

func NewPGStore(cfg config.DatabaseConfig, newID func() uuid.UUID, log *zap.Logger) *PGStore {
	if newID == nil {
		newID = uuid.New
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PGStore{cfg: cfg, newID: newID, log: log}
}

// openPool builds a pool from the [database] section and pings it.
func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 && cfg.MaxIdleConns <= int(poolCfg.MaxConns) {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "nursery"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

func (s *PGStore) conn(ctx context.Context) (*pgxpool.Pool, error) {
	if s.pool != nil {
		return s.pool, nil
	}
	pool, err := openPool(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	s.pool = pool
	s.log.Info("postgres connected",
		zap.String("host", pool.Config().ConnConfig.Host),
		zap.String("database", pool.Config().ConnConfig.Database))
	return pool, nil
}

func (s *PGStore) Exists(ctx context.Context, name string) (bool, error) {
	pool, err := s.conn(ctx)
	if err != nil {
		return false, err
	}
	var ok bool
	err = pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM nurseries WHERE name = $1)`, name,
	).Scan(&ok)
	return ok, err
}

func (s *PGStore) Read(ctx context.Context, name string) ([]*component.Creature, error) {
	pool, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx,
		`SELECT position, id, name, level, kind, exp, gender
		 FROM creatures
		 WHERE nursery = $1
		 ORDER BY position`, name,
	)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByPos[CreatureRow])
	if err != nil {
		return nil, err
	}

	result := make([]*component.Creature, len(list))
	for i, r := range list {
		result[i] = r.toCreature(s.newID)
	}
	return result, nil
}

// Write replaces all creatures of a nursery in one transaction.
func (s *PGStore) Write(ctx context.Context, name string, creatures []*component.Creature) error {
	pool, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(`INSERT INTO nurseries (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET saved_at = now()`, name)
		batch.Queue(`DELETE FROM creatures WHERE nursery = $1`, name)
		for i, c := range creatures {
			r := toRow(i, c)
			batch.Queue(`INSERT INTO creatures (nursery, position, id, name, level, kind, exp, gender)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				name, r.Position, r.ID, r.Name, r.Level, r.Kind, r.Exp, r.Gender)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

// Close releases the pool if one was opened.
func (s *PGStore) Close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}
