package store

import (
	"context"

	"github.com/OFFIS-RIT/paperkg/pkg/common"
)

// GraphStorage persists the paper knowledge graph. Implementations must be
// safe for concurrent use: get-or-create semantics are enforced by database
// uniqueness constraints, not by in-process locking.
type GraphStorage interface {
	// GetOrCreateNode returns the id of the node identified by (name,
	// nodeType), inserting it with props when absent. Properties of an
	// existing node are never updated.
	GetOrCreateNode(ctx context.Context, name, nodeType string, props common.NodeProperties) (string, error)

	// GetOrCreateEdge inserts the edge (sourceID, targetID, relation) with
	// the citation context unless it already exists. Existing edges keep
	// their original context.
	GetOrCreateEdge(ctx context.Context, sourceID, targetID, relation, citationContext string) error

	// Stats returns node and edge counts and up to sampleSize example nodes
	// and relationships.
	Stats(ctx context.Context, sampleSize int) (*GraphStats, error)

	Close() error
}

// GraphStats summarizes the stored graph.
type GraphStats struct {
	NodeCount   int64
	EdgeCount   int64
	SampleNodes []common.Node
	SampleEdges []EdgeSample
}

// EdgeSample is a relationship with both endpoints resolved to names.
type EdgeSample struct {
	Source   string
	Relation string
	Target   string
}
