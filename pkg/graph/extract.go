package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/paperkg/pkg/ai"
	"github.com/OFFIS-RIT/paperkg/pkg/common"
)

// Extractor turns the prepared text of one document into candidate nodes and
// edges.
type Extractor interface {
	Extract(ctx context.Context, text, label string) (*common.ExtractionResult, error)
}

type extractNode struct {
	Name        string `json:"name" jsonschema_description:"Entity name, e.g. 'Gaussian Splatting' or 'NeRF'. Use canonical naming."`
	Type        string `json:"type" jsonschema_description:"Classification: Paper, Concept, Metric, Author, Method."`
	Description string `json:"description" jsonschema_description:"Brief description or definition. May be empty."`
}

type extractEdge struct {
	Source   string `json:"source" jsonschema_description:"Source entity name. Must match a node name exactly."`
	Target   string `json:"target" jsonschema_description:"Target entity name. Must match a node name exactly."`
	Relation string `json:"relation" jsonschema_description:"Relationship: IMPROVES_ON, INTRODUCES, USES, EVALUATED_ON, ALTERNATIVE_TO."`
	Context  string `json:"context" jsonschema_description:"Verbatim sentence from the text proving this relationship."`
}

type extractResponse struct {
	Nodes []extractNode `json:"nodes" jsonschema_description:"Entities identified in the paper"`
	Edges []extractEdge `json:"edges" jsonschema_description:"Semantic relationships between the identified entities"`
}

func (r *extractResponse) toResult() *common.ExtractionResult {
	res := &common.ExtractionResult{
		Nodes: make([]common.CandidateNode, 0, len(r.Nodes)),
		Edges: make([]common.CandidateEdge, 0, len(r.Edges)),
	}
	for _, n := range r.Nodes {
		res.Nodes = append(res.Nodes, common.CandidateNode{
			Name:        n.Name,
			Type:        n.Type,
			Description: n.Description,
		})
	}
	for _, e := range r.Edges {
		res.Edges = append(res.Edges, common.CandidateEdge{
			Source:   e.Source,
			Target:   e.Target,
			Relation: e.Relation,
			Context:  e.Context,
		})
	}
	return res
}

// AIExtractor extracts candidates with a structured completion call.
type AIExtractor struct {
	client ai.GraphAIClient
	opts   []ai.GenerateOption
}

// NewAIExtractor creates an AIExtractor. Requests run at temperature 0 with
// the paper extraction system prompt; opts are applied on top.
func NewAIExtractor(client ai.GraphAIClient, opts ...ai.GenerateOption) *AIExtractor {
	base := []ai.GenerateOption{
		ai.WithTemperature(0),
		ai.WithSystemPrompts(ai.ExtractPaperSystemPrompt),
	}
	return &AIExtractor{
		client: client,
		opts:   append(base, opts...),
	}
}

// Extract implements Extractor. Errors other than context cancellation are
// wrapped in ErrExtractionFailure.
func (e *AIExtractor) Extract(ctx context.Context, text, label string) (*common.ExtractionResult, error) {
	var res extractResponse
	err := e.client.GenerateCompletionWithFormat(
		ctx,
		"paper_knowledge_graph",
		"Entities and semantic relationships extracted from a research paper.",
		fmt.Sprintf(ai.ExtractPaperPrompt, label, text),
		&res,
		e.opts...,
	)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrExtractionFailure, label, err)
	}
	return res.toResult(), nil
}

// GetMetrics exposes the token usage of the underlying client.
func (e *AIExtractor) GetMetrics() ai.ModelMetrics {
	return e.client.GetMetrics()
}
