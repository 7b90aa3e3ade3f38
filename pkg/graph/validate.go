package graph

import (
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/common"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// ValidateExtraction cleans candidate fields and drops candidates missing a
// required field. It returns the valid subset and the number of dropped
// nodes and edges.
//
// Every field goes through util.SanitizeText and then loses its surrounding
// whitespace. The cleaned name is the display name the store persists;
// inner whitespace and case are kept as extracted.
//
// A nil result, or a non-empty result with nothing valid left, is an
// ErrExtractionFailure.
func ValidateExtraction(res *common.ExtractionResult) (*common.ExtractionResult, int, int, error) {
	if res == nil {
		return nil, 0, 0, fmt.Errorf("%w: no result", ErrExtractionFailure)
	}

	out := &common.ExtractionResult{
		Nodes: make([]common.CandidateNode, 0, len(res.Nodes)),
		Edges: make([]common.CandidateEdge, 0, len(res.Edges)),
	}
	invalidNodes, invalidEdges := 0, 0

	for _, n := range res.Nodes {
		n.Name = cleanField(n.Name)
		n.Type = cleanField(n.Type)
		n.Description = cleanField(n.Description)
		if err := validate.Struct(n); err != nil {
			invalidNodes++
			continue
		}
		out.Nodes = append(out.Nodes, n)
	}

	for _, e := range res.Edges {
		e.Source = cleanField(e.Source)
		e.Target = cleanField(e.Target)
		e.Relation = cleanField(e.Relation)
		e.Context = cleanField(e.Context)
		if err := validate.Struct(e); err != nil {
			invalidEdges++
			continue
		}
		out.Edges = append(out.Edges, e)
	}

	total := len(res.Nodes) + len(res.Edges)
	if total > 0 && len(out.Nodes)+len(out.Edges) == 0 {
		return nil, invalidNodes, invalidEdges, fmt.Errorf(
			"%w: all %d candidates invalid", ErrExtractionFailure, total,
		)
	}

	return out, invalidNodes, invalidEdges, nil
}

func cleanField(s string) string {
	return strings.TrimSpace(util.SanitizeText(s))
}
