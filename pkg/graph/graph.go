package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/ai"
	"github.com/OFFIS-RIT/paperkg/pkg/common"
	"github.com/OFFIS-RIT/paperkg/pkg/loader"
	"github.com/OFFIS-RIT/paperkg/pkg/logger"
	"github.com/OFFIS-RIT/paperkg/pkg/store"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"
)

// FailureKind classifies a document that could not be merged.
type FailureKind string

const (
	FailureLoad       FailureKind = "load"
	FailureUnreadable FailureKind = "unreadable"
	FailureExtraction FailureKind = "extraction"
	FailureConstraint FailureKind = "constraint_violation"
	FailureStore      FailureKind = "store"
)

// DocumentFailure records a document skipped during a run.
type DocumentFailure struct {
	Label    string
	FilePath string
	Kind     FailureKind
	Err      error
}

// RunReport summarizes a ProcessCorpus run. Summaries and Failures follow
// the input order of the files.
type RunReport struct {
	RunID     string
	Documents int
	Summaries []common.DocumentSummary
	Failures  []DocumentFailure

	NodesProcessed int
	EdgesCreated   int
	EdgesSkipped   int
	InvalidNodes   int
	InvalidEdges   int

	Metrics  ai.ModelMetrics
	Duration time.Duration
}

// Succeeded returns the number of documents merged into the graph.
func (r *RunReport) Succeeded() int {
	return len(r.Summaries)
}

type metricsSource interface {
	GetMetrics() ai.ModelMetrics
}

type documentResult struct {
	summary *common.DocumentSummary
	failure *DocumentFailure
}

// isFatal reports whether err must end the whole run: the store is gone or
// the run itself was cancelled.
func isFatal(ctx context.Context, err error) bool {
	return errors.Is(err, store.ErrStoreUnavailable) || ctx.Err() != nil
}

// ProcessCorpus builds the graph from files. Per-document failures are
// logged, recorded in the report and skipped. An unavailable store or a
// cancelled context stops the run; the partial report is returned together
// with the error.
func (g *GraphClient) ProcessCorpus(
	ctx context.Context,
	files []loader.GraphFile,
	extractor Extractor,
	st store.GraphStorage,
) (*RunReport, error) {
	runID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	start := time.Now()
	report := &RunReport{RunID: runID, Documents: len(files)}
	results := make([]documentResult, len(files))

	logger.Info("[Graph] Processing corpus", "run", runID, "total_files", len(files), "parallel", g.parallelFiles)

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.parallelFiles)
	var progressMu sync.Mutex
	done := 0

	for i, file := range files {
		eg.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}

			summary, kind, err := g.processDocument(gCtx, file, extractor, st)
			if err != nil && isFatal(gCtx, err) {
				if ctxErr := gCtx.Err(); ctxErr != nil && !errors.Is(err, store.ErrStoreUnavailable) {
					return ctxErr
				}
				return err
			}

			progressMu.Lock()
			done++
			n := done
			progressMu.Unlock()

			if err != nil {
				results[i].failure = &DocumentFailure{
					Label:    file.Label,
					FilePath: file.FilePath,
					Kind:     kind,
					Err:      err,
				}
				logFailure(runID, file, kind, err)
				return nil
			}

			results[i].summary = summary
			logger.Info("[Graph] Document processed",
				"run", runID,
				"progress", fmt.Sprintf("%d/%d", n, len(files)),
				"label", summary.Label,
				"nodes", summary.NodesProcessed,
				"edges", summary.EdgesCreated,
				"skipped_edges", summary.EdgesSkipped,
			)
			return nil
		})
	}

	runErr := eg.Wait()

	for _, res := range results {
		if res.failure != nil {
			report.Failures = append(report.Failures, *res.failure)
		}
		if s := res.summary; s != nil {
			report.Summaries = append(report.Summaries, *s)
			report.NodesProcessed += s.NodesProcessed
			report.EdgesCreated += s.EdgesCreated
			report.EdgesSkipped += s.EdgesSkipped
			report.InvalidNodes += s.InvalidNodes
			report.InvalidEdges += s.InvalidEdges
		}
	}
	if m, ok := extractor.(metricsSource); ok {
		report.Metrics = m.GetMetrics()
	}
	report.Duration = time.Since(start)

	if runErr != nil {
		logger.Error("[Graph] Knowledge graph construction aborted",
			"run", runID,
			"succeeded", report.Succeeded(),
			"failed", len(report.Failures),
			"err", runErr,
		)
		return report, runErr
	}

	logger.Info("[Graph] Knowledge graph construction complete",
		"run", runID,
		"documents", report.Documents,
		"succeeded", report.Succeeded(),
		"failed", len(report.Failures),
		"nodes", report.NodesProcessed,
		"edges", report.EdgesCreated,
		"skipped_edges", report.EdgesSkipped,
		"total_tokens", report.Metrics.TotalTokens,
		"duration", report.Duration.Round(time.Millisecond),
	)
	return report, nil
}

func logFailure(runID string, file loader.GraphFile, kind FailureKind, err error) {
	switch kind {
	case FailureConstraint, FailureStore:
		logger.Error("[Graph] Document failed", "run", runID, "label", file.Label, "kind", kind, "err", err)
	default:
		logger.Warn("[Graph] Document skipped", "run", runID, "label", file.Label, "kind", kind, "err", err)
	}
}

// processDocument runs one document through load, preparation, extraction
// and consumption. The returned kind is only meaningful with a non-nil error.
func (g *GraphClient) processDocument(
	ctx context.Context,
	file loader.GraphFile,
	extractor Extractor,
	st store.GraphStorage,
) (*common.DocumentSummary, FailureKind, error) {
	if file.Loader == nil {
		return nil, FailureLoad, fmt.Errorf("no loader for %s", file.FilePath)
	}
	defer file.Release()

	raw, err := file.GetText(ctx)
	if err != nil {
		if errors.Is(err, loader.ErrUnreadableDocument) {
			return nil, FailureUnreadable, err
		}
		return nil, FailureLoad, fmt.Errorf("failed to load %s: %w", file.FilePath, err)
	}

	text, err := loader.PrepareText(string(raw), g.minTextLength)
	if err != nil {
		return nil, FailureUnreadable, fmt.Errorf("%s: %w", file.FilePath, err)
	}
	if g.textLimit > 0 {
		text = loader.Truncate(text, g.textLimit)
	}

	type extraction struct {
		result       *common.ExtractionResult
		invalidNodes int
		invalidEdges int
	}
	ex, err := util.RetryWithContext(ctx, g.maxRetries, func(ctx context.Context) (extraction, error) {
		res, err := extractor.Extract(ctx, text, file.Label)
		if err != nil {
			logger.Debug("[Graph] Extraction attempt failed", "label", file.Label, "err", err)
			return extraction{}, err
		}
		valid, invalidNodes, invalidEdges, err := ValidateExtraction(res)
		if err != nil {
			return extraction{}, err
		}
		return extraction{result: valid, invalidNodes: invalidNodes, invalidEdges: invalidEdges}, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, FailureExtraction, ctx.Err()
		}
		if !errors.Is(err, ErrExtractionFailure) {
			err = fmt.Errorf("%w: %s: %w", ErrExtractionFailure, file.Label, err)
		}
		return nil, FailureExtraction, err
	}

	summary, err := ConsumeExtraction(ctx, st, file.Label, ex.result)
	if err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return nil, FailureConstraint, err
		}
		return nil, FailureStore, err
	}
	summary.InvalidNodes = ex.invalidNodes
	summary.InvalidEdges = ex.invalidEdges

	return summary, "", nil
}
