package common

import "time"

// Node is a persisted entity of the knowledge graph: a paper, method,
// concept, metric, author, dataset and so on.
//
// The pair (Name, Type) is unique across the graph and fixed at creation.
// Properties are written once, by whichever document created the node.
type Node struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Properties NodeProperties `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Edge is a persisted, directed and typed relationship between two nodes.
// The triple (SourceID, TargetID, Type) is unique; asserting it again is a
// no-op. Context holds the verbatim sentence that justified the edge.
type Edge struct {
	ID         string      `json:"id"`
	SourceID   string      `json:"source_id"`
	TargetID   string      `json:"target_id"`
	Type       string      `json:"type"`
	Context    string      `json:"citation_context,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CandidateNode is an entity as produced by the extraction step, before it is
// resolved against the store.
type CandidateNode struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description,omitempty"`
}

// CandidateEdge references its endpoints by display name. The names may differ
// in casing or separators from the CandidateNode they mean.
type CandidateEdge struct {
	Source   string `json:"source" validate:"required"`
	Target   string `json:"target" validate:"required"`
	Relation string `json:"relation" validate:"required"`
	Context  string `json:"context"`
}

// ExtractionResult is the candidate graph extracted from one document.
type ExtractionResult struct {
	Nodes []CandidateNode `json:"nodes" validate:"dive"`
	Edges []CandidateEdge `json:"edges" validate:"dive"`
}

// DocumentSummary reports what happened to one document's candidates.
//
// EdgesCreated counts resolved edges handed to the store, whether they were
// inserted or already present. EdgesSkipped counts dangling references.
// InvalidNodes and InvalidEdges count candidates rejected by validation.
type DocumentSummary struct {
	Label          string `json:"label"`
	NodesProcessed int    `json:"nodes_processed"`
	EdgesCreated   int    `json:"edges_created"`
	EdgesSkipped   int    `json:"edges_skipped"`
	InvalidNodes   int    `json:"invalid_nodes"`
	InvalidEdges   int    `json:"invalid_edges"`
}
