// Package sqlite implements store.GraphStorage on an embedded SQLite file.
// It mirrors the PostgreSQL schema with TEXT ids generated in the
// application and JSON properties stored as TEXT.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/common"
	"github.com/OFFIS-RIT/paperkg/pkg/store"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database holding the paper graph.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at dbPath and creates the graph
// schema when missing.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w: %w", store.ErrStoreUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w: %w", store.ErrStoreUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w: %w", store.ErrStoreUnavailable, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s: %w: %w", op, store.ErrConstraintViolation, err)
		case sqliteErr.Code == sqlite3.ErrBusy,
			sqliteErr.Code == sqlite3.ErrLocked,
			sqliteErr.Code == sqlite3.ErrCantOpen,
			sqliteErr.Code == sqlite3.ErrIoErr,
			sqliteErr.Code == sqlite3.ErrFull,
			sqliteErr.Code == sqlite3.ErrReadonly:
			return fmt.Errorf("%s: %w: %w", op, store.ErrStoreUnavailable, err)
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return fmt.Errorf("%s: %w: %w", op, store.ErrStoreUnavailable, err)
}

// GetOrCreateNode returns the id of (name, nodeType), inserting it with a
// fresh UUID when missing.
func (s *Store) GetOrCreateNode(ctx context.Context, name, nodeType string, props common.NodeProperties) (string, error) {
	name = util.SanitizeText(name)
	nodeType = util.SanitizeText(nodeType)

	id, err := s.selectNode(ctx, name, nodeType)
	if err != nil || id != "" {
		return id, err
	}

	raw, err := json.Marshal(store.SanitizeNodeProperties(props))
	if err != nil {
		return "", err
	}

	newID := uuid.NewString()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO nodes (id, name, type, properties, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name, type) DO NOTHING
	`, newID, name, nodeType, string(raw), time.Now().UTC())
	if err != nil {
		return "", classify("insert node", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		return newID, nil
	}

	id, err = s.selectNode(ctx, name, nodeType)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("insert node %q (%s): row vanished after conflicting insert", name, nodeType)
	}
	return id, nil
}

func (s *Store) selectNode(ctx context.Context, name, nodeType string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM nodes WHERE name = ? AND type = ?`, name, nodeType,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", classify("select node", err)
	}
	return id, nil
}

// GetOrCreateEdge inserts the edge unless (sourceID, targetID, relation)
// already exists.
func (s *Store) GetOrCreateEdge(ctx context.Context, sourceID, targetID, relation, citationContext string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO edges (id, source_id, target_id, type, citation_context, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_id, target_id, type) DO NOTHING
	`, uuid.NewString(), sourceID, targetID,
		util.SanitizeText(relation),
		util.SanitizeText(citationContext),
		time.Now().UTC(),
	)
	return classify("insert edge", err)
}

// Stats counts nodes and edges and samples the oldest of each.
func (s *Store) Stats(ctx context.Context, sampleSize int) (*store.GraphStats, error) {
	stats := &store.GraphStats{}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes`).Scan(&stats.NodeCount); err != nil {
		return nil, classify("count nodes", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM edges`).Scan(&stats.EdgeCount); err != nil {
		return nil, classify("count edges", err)
	}
	if sampleSize <= 0 {
		return stats, nil
	}

	nodes, err := s.sampleNodes(ctx, sampleSize)
	if err != nil {
		return nil, err
	}
	stats.SampleNodes = nodes

	edges, err := s.sampleEdges(ctx, sampleSize)
	if err != nil {
		return nil, err
	}
	stats.SampleEdges = edges

	return stats, nil
}

func (s *Store) sampleNodes(ctx context.Context, limit int) ([]common.Node, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, properties, created_at
		FROM nodes
		ORDER BY created_at, name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, classify("sample nodes", err)
	}
	defer rows.Close()

	var out []common.Node
	for rows.Next() {
		var (
			n   common.Node
			raw string
		)
		if err := rows.Scan(&n.ID, &n.Name, &n.Type, &raw, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan node sample: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &n.Properties); err != nil {
			return nil, fmt.Errorf("decode properties of %s: %w", n.ID, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("sample nodes", err)
	}
	return out, nil
}

func (s *Store) sampleEdges(ctx context.Context, limit int) ([]store.EdgeSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT src.name, e.type, tgt.name
		FROM edges e
		JOIN nodes src ON src.id = e.source_id
		JOIN nodes tgt ON tgt.id = e.target_id
		ORDER BY e.created_at, src.name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, classify("sample edges", err)
	}
	defer rows.Close()

	var out []store.EdgeSample
	for rows.Next() {
		var e store.EdgeSample
		if err := rows.Scan(&e.Source, &e.Relation, &e.Target); err != nil {
			return nil, fmt.Errorf("scan edge sample: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("sample edges", err)
	}
	return out, nil
}
