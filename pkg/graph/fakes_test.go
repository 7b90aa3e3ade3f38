package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/OFFIS-RIT/paperkg/pkg/common"
	"github.com/OFFIS-RIT/paperkg/pkg/loader"
	"github.com/OFFIS-RIT/paperkg/pkg/logger"
	"github.com/OFFIS-RIT/paperkg/pkg/logger/memory"
	"github.com/OFFIS-RIT/paperkg/pkg/store"
)

type storedEdge struct {
	source, target, relation, context string
}

// fakeStore keys nodes on the exact (name, type) pair like the real stores.
type fakeStore struct {
	mu        sync.Mutex
	nodes     map[string]string
	props     map[string]common.NodeProperties
	names     map[string]string
	edges     map[string]storedEdge
	nodeCalls []string
	edgeCalls int

	nodeErr func(name string) error
	edgeErr func(sourceID, targetID string) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nodes: map[string]string{},
		props: map[string]common.NodeProperties{},
		names: map[string]string{},
		edges: map[string]storedEdge{},
	}
}

func (s *fakeStore) GetOrCreateNode(ctx context.Context, name, nodeType string, props common.NodeProperties) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodeCalls = append(s.nodeCalls, name)
	if s.nodeErr != nil {
		if err := s.nodeErr(name); err != nil {
			return "", err
		}
	}
	key := name + "\x00" + nodeType
	if id, ok := s.nodes[key]; ok {
		return id, nil
	}
	id := fmt.Sprintf("n%d", len(s.nodes)+1)
	s.nodes[key] = id
	s.props[id] = props
	s.names[id] = name
	return id, nil
}

func (s *fakeStore) GetOrCreateEdge(ctx context.Context, sourceID, targetID, relation, citationContext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edgeCalls++
	if s.edgeErr != nil {
		if err := s.edgeErr(sourceID, targetID); err != nil {
			return err
		}
	}
	if _, ok := s.names[sourceID]; !ok {
		return fmt.Errorf("source %s: %w", sourceID, store.ErrConstraintViolation)
	}
	if _, ok := s.names[targetID]; !ok {
		return fmt.Errorf("target %s: %w", targetID, store.ErrConstraintViolation)
	}
	key := sourceID + "|" + targetID + "|" + relation
	if _, ok := s.edges[key]; !ok {
		s.edges[key] = storedEdge{sourceID, targetID, relation, citationContext}
	}
	return nil
}

func (s *fakeStore) Stats(ctx context.Context, sampleSize int) (*store.GraphStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &store.GraphStats{NodeCount: int64(len(s.nodes)), EdgeCount: int64(len(s.edges))}, nil
}

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) nodeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

func (s *fakeStore) edgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edges)
}

// textLoader serves fixed text per file path.
type textLoader struct {
	texts map[string]string
	errs  map[string]error
}

func (l *textLoader) GetFileText(ctx context.Context, file loader.GraphFile) ([]byte, error) {
	if err := l.errs[file.FilePath]; err != nil {
		return nil, err
	}
	return []byte(l.texts[file.FilePath]), nil
}

// fakeExtractor returns a canned result per label and counts calls.
type fakeExtractor struct {
	mu       sync.Mutex
	results  map[string]*common.ExtractionResult
	errs     map[string][]error
	calls    map[string]int
	lastText map[string]string
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		results:  map[string]*common.ExtractionResult{},
		errs:     map[string][]error{},
		calls:    map[string]int{},
		lastText: map[string]string{},
	}
}

func (e *fakeExtractor) Extract(ctx context.Context, text, label string) (*common.ExtractionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls[label]++
	e.lastText[label] = text
	if errs := e.errs[label]; len(errs) > 0 {
		err := errs[0]
		e.errs[label] = errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return e.results[label], nil
}

func (e *fakeExtractor) callCount(label string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[label]
}

func captureLogs() *memory.MemoryLogger {
	mem := memory.NewMemoryLogger()
	logger.Init(mem)
	return mem
}
