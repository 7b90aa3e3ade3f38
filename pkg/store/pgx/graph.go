package pgx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/common"
	"github.com/OFFIS-RIT/paperkg/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
)

const (
	selectNodeSQL = `SELECT id::text FROM nodes WHERE name = $1 AND type = $2`
	insertNodeSQL = `
INSERT INTO nodes (name, type, properties)
VALUES ($1, $2, $3::jsonb)
ON CONFLICT (name, type) DO NOTHING
RETURNING id::text`
	insertEdgeSQL = `
INSERT INTO edges (source_id, target_id, type, citation_context)
VALUES ($1::uuid, $2::uuid, $3, $4)
ON CONFLICT (source_id, target_id, type) DO NOTHING`
	countNodesSQL  = `SELECT count(*) FROM nodes`
	countEdgesSQL  = `SELECT count(*) FROM edges`
	sampleNodesSQL = `
SELECT id::text, name, type, properties, created_at
FROM nodes
ORDER BY created_at, name
LIMIT $1`
	sampleEdgesSQL = `
SELECT s.name, e.type, t.name
FROM edges e
JOIN nodes s ON s.id = e.source_id
JOIN nodes t ON t.id = e.target_id
ORDER BY e.created_at, s.name
LIMIT $1`
)

// GetOrCreateNode looks the node up, inserts it when missing and looks it up
// again when a concurrent insert won the conflict.
func (s *GraphDBStorage) GetOrCreateNode(
	ctx context.Context,
	name, nodeType string,
	props common.NodeProperties,
) (string, error) {
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

	err = s.conn.QueryRow(ctx, insertNodeSQL, name, nodeType, string(raw)).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgxv5.ErrNoRows) {
		return "", classify("insert node", err)
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

func (s *GraphDBStorage) selectNode(ctx context.Context, name, nodeType string) (string, error) {
	var id string
	err := s.conn.QueryRow(ctx, selectNodeSQL, name, nodeType).Scan(&id)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", classify("select node", err)
	}
	return id, nil
}

// GetOrCreateEdge inserts the edge unless the triple already exists.
func (s *GraphDBStorage) GetOrCreateEdge(
	ctx context.Context,
	sourceID, targetID, relation, citationContext string,
) error {
	_, err := s.conn.Exec(
		ctx,
		insertEdgeSQL,
		sourceID,
		targetID,
		util.SanitizeText(relation),
		util.SanitizeText(citationContext),
	)
	return classify("insert edge", err)
}

// Stats counts nodes and edges and samples the oldest of each.
func (s *GraphDBStorage) Stats(ctx context.Context, sampleSize int) (*store.GraphStats, error) {
	stats := &store.GraphStats{}
	if err := s.conn.QueryRow(ctx, countNodesSQL).Scan(&stats.NodeCount); err != nil {
		return nil, classify("count nodes", err)
	}
	if err := s.conn.QueryRow(ctx, countEdgesSQL).Scan(&stats.EdgeCount); err != nil {
		return nil, classify("count edges", err)
	}
	if sampleSize <= 0 {
		return stats, nil
	}

	rows, err := s.conn.Query(ctx, sampleNodesSQL, sampleSize)
	if err != nil {
		return nil, classify("sample nodes", err)
	}
	for rows.Next() {
		var (
			n   common.Node
			raw []byte
		)
		if err := rows.Scan(&n.ID, &n.Name, &n.Type, &raw, &n.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan node sample: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &n.Properties); err != nil {
				rows.Close()
				return nil, err
			}
		}
		stats.SampleNodes = append(stats.SampleNodes, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, classify("sample nodes", err)
	}

	rows, err = s.conn.Query(ctx, sampleEdgesSQL, sampleSize)
	if err != nil {
		return nil, classify("sample edges", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e store.EdgeSample
		if err := rows.Scan(&e.Source, &e.Relation, &e.Target); err != nil {
			return nil, fmt.Errorf("scan edge sample: %w", err)
		}
		stats.SampleEdges = append(stats.SampleEdges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("sample edges", err)
	}

	return stats, nil
}
