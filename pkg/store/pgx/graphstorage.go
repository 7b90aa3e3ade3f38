package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/paperkg/pkg/logger"
	"github.com/OFFIS-RIT/paperkg/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
}

// GraphDBStorage implements store.GraphStorage on PostgreSQL. All
// get-or-create operations are single statements guarded by the schema's
// unique constraints, so one instance can be shared by concurrent workers.
type GraphDBStorage struct {
	conn  pgxIConn
	close func()
}

// NewGraphDBStorageWithConnection creates a new GraphDBStorage using an
// existing connection or pool. The caller keeps ownership of conn.
func NewGraphDBStorageWithConnection(conn pgxIConn) *GraphDBStorage {
	return &GraphDBStorage{conn: conn}
}

// NewGraphDBStorage opens a pgx pool for databaseURL and verifies it is
// reachable. Connection failures are reported as store.ErrStoreUnavailable.
func NewGraphDBStorage(ctx context.Context, databaseURL string) (*GraphDBStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w: %w", store.ErrStoreUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w: %w", store.ErrStoreUnavailable, err)
	}

	logger.Debug("[Store] Connected to PostgreSQL")
	return &GraphDBStorage{conn: pool, close: pool.Close}, nil
}

// Close releases the pool when it was opened by NewGraphDBStorage.
func (s *GraphDBStorage) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}

// classify maps driver errors onto the store sentinels. Server-side errors
// other than constraint and connection classes are returned wrapped as-is.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23503", pgErr.Code == "22P02":
			return fmt.Errorf("%s: %w: %w", op, store.ErrConstraintViolation, err)
		case len(pgErr.Code) >= 2 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "53" || pgErr.Code[:2] == "57"):
			return fmt.Errorf("%s: %w: %w", op, store.ErrStoreUnavailable, err)
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return fmt.Errorf("%s: %w: %w", op, store.ErrStoreUnavailable, err)
}
