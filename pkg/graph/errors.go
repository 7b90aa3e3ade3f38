package graph

import "errors"

// ErrExtractionFailure marks a document whose extraction call failed or
// returned no usable candidates. The document is skipped and the run
// continues.
var ErrExtractionFailure = errors.New("extraction failed")
