package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StorageConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLife     time.Duration
	MaxConnIdleTime time.Duration
}

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, cfg *StorageConfig) (*Storage, error) {
	pgConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.MaxConns > 0 {
		pgConfig.MaxConns = cfg.MaxConns
	}
	pgConfig.MinConns = cfg.MinConns
	if cfg.MaxConnLife > 0 {
		pgConfig.MaxConnLifetime = cfg.MaxConnLife
	}
	if cfg.MaxConnIdleTime > 0 {
		pgConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() {
	s.pool.Close()
}

type txKey struct{}

// querier is the part of pgx shared by the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// RunInTx runs fn inside a transaction carried by ctx. Queries issued through
// conn(ctx) inside fn join that transaction.
func (s *Storage) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *Storage) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// validID reports whether id can address a UUID primary key. Other ids
// cannot match any row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
