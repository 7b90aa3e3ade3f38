package graph

import "github.com/OFFIS-RIT/paperkg/pkg/loader"

// GraphClient drives the construction of the paper graph. It owns the text
// preparation limits and the document-level parallelism of a run.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	textLimit     int // 0 disables truncation
	minTextLength int
	parallelFiles int
	maxRetries    int
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// TextLimit is the truncation limit in characters; 0 selects
// loader.DefaultTextLimit and a negative value disables truncation.
// MinTextLength is the unreadable-document threshold; 0 selects
// loader.DefaultMinTextLength.
// ParallelFiles controls how many documents are processed at once.
// MaxRetries bounds the extraction attempts per document.
type NewGraphClientParams struct {
	TextLimit     int
	MinTextLength int
	ParallelFiles int
	MaxRetries    int
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	client, err := graph.NewGraphClient(graph.NewGraphClientParams{
//		TextLimit:     40000,
//		ParallelFiles: 2,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := client.ProcessCorpus(ctx, files, extractor, st)
func NewGraphClient(params NewGraphClientParams) (*GraphClient, error) {
	g := &GraphClient{
		textLimit:     params.TextLimit,
		minTextLength: params.MinTextLength,
		parallelFiles: params.ParallelFiles,
		maxRetries:    params.MaxRetries,
	}
	switch {
	case g.textLimit == 0:
		g.textLimit = loader.DefaultTextLimit
	case g.textLimit < 0:
		g.textLimit = 0
	}
	if g.minTextLength <= 0 {
		g.minTextLength = loader.DefaultMinTextLength
	}
	if g.parallelFiles <= 0 {
		g.parallelFiles = 1
	}
	if g.maxRetries <= 0 {
		g.maxRetries = 3
	}

	return g, nil
}
