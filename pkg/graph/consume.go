package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/common"
	"github.com/OFFIS-RIT/paperkg/pkg/logger"
	"github.com/OFFIS-RIT/paperkg/pkg/store"
)

// ConsumeExtraction merges one document's candidates into st.
//
// Nodes are created first and recorded in a resolution map keyed by the
// NormalizeKey of the sanitized name the store receives; a later candidate with the same key replaces the earlier
// mapping. Edges whose endpoints are not in the map are skipped and counted.
// The first store error aborts the document and is returned with the
// partial summary.
func ConsumeExtraction(
	ctx context.Context,
	st store.GraphStorage,
	label string,
	res *common.ExtractionResult,
) (*common.DocumentSummary, error) {
	summary := &common.DocumentSummary{Label: label}
	if res == nil {
		return summary, nil
	}

	resolved := make(map[string]string, len(res.Nodes))
	for _, n := range res.Nodes {
		n.Name = util.SanitizeText(n.Name)
		n.Type = util.SanitizeText(n.Type)
		id, err := st.GetOrCreateNode(ctx, n.Name, n.Type, common.NodeProperties{
			Description:    n.Description,
			SourceDocument: label,
		})
		if err != nil {
			if errors.Is(err, store.ErrConstraintViolation) {
				logger.Error("[Graph] Node rejected by store", "label", label, "name", n.Name, "type", n.Type, "err", err)
			}
			return summary, fmt.Errorf("failed to store node %q (%s): %w", n.Name, n.Type, err)
		}
		resolved[resolutionKey(n.Name)] = id
		summary.NodesProcessed++
	}

	for _, e := range res.Edges {
		sourceID, okSource := resolved[resolutionKey(e.Source)]
		targetID, okTarget := resolved[resolutionKey(e.Target)]
		if !okSource || !okTarget {
			summary.EdgesSkipped++
			logger.Debug("[Graph] Skipping edge with unknown endpoint",
				"label", label,
				"source", e.Source,
				"target", e.Target,
				"relation", e.Relation,
			)
			continue
		}

		if err := st.GetOrCreateEdge(ctx, sourceID, targetID, e.Relation, e.Context); err != nil {
			if errors.Is(err, store.ErrConstraintViolation) {
				logger.Error("[Graph] Edge rejected by store",
					"label", label,
					"source_id", sourceID,
					"target_id", targetID,
					"relation", e.Relation,
					"err", err,
				)
			}
			return summary, fmt.Errorf("failed to store edge %s -[%s]-> %s: %w", e.Source, e.Relation, e.Target, err)
		}
		summary.EdgesCreated++
	}

	return summary, nil
}

func resolutionKey(name string) string {
	return NormalizeKey(util.SanitizeText(name))
}
