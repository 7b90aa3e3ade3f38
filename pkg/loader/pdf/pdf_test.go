package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/OFFIS-RIT/paperkg/pkg/loader"
)

type staticLoader struct {
	content []byte
	err     error
	calls   int
}

func (s *staticLoader) GetFileText(ctx context.Context, file loader.GraphFile) ([]byte, error) {
	s.calls++
	return s.content, s.err
}

func TestGetFileTextPropagatesSourceError(t *testing.T) {
	boom := errors.New("object missing")
	l := NewPDFGraphLoader(&staticLoader{err: boom})

	_, err := l.GetFileText(context.Background(), loader.GraphFile{ID: "1", FilePath: "a.pdf"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestGetFileTextRejectsNonPDF(t *testing.T) {
	src := &staticLoader{content: []byte("this is not a pdf")}
	l := NewPDFGraphLoader(src)

	_, err := l.GetFileText(context.Background(), loader.GraphFile{ID: "1", FilePath: "broken.pdf"})
	if !errors.Is(err, loader.ErrUnreadableDocument) {
		t.Fatalf("expected unreadable document error, got %v", err)
	}

	_, _ = l.GetFileText(context.Background(), loader.GraphFile{ID: "1", FilePath: "broken.pdf"})
	if src.calls != 2 {
		t.Fatalf("failed parses must not be cached, source called %d times", src.calls)
	}
}
