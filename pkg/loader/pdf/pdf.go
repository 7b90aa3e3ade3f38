package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/paperkg/pkg/loader"
	"github.com/OFFIS-RIT/paperkg/pkg/logger"

	"github.com/ledongthuc/pdf"
)

// PDFGraphLoader wraps another loader that yields raw PDF bytes and turns them
// into plain text. Extracted text is cached per file until Release, so
// concurrent reads of one file parse it once.
type PDFGraphLoader struct {
	loader loader.GraphFileLoader
	cache  *loader.Cache
}

// NewPDFGraphLoader creates a PDF loader that extracts text directly from PDF content.
func NewPDFGraphLoader(source loader.GraphFileLoader) *PDFGraphLoader {
	return &PDFGraphLoader{
		loader: source,
		cache:  loader.NewCache(),
	}
}

// Release drops the cached text of file.
func (l *PDFGraphLoader) Release(file loader.GraphFile) {
	l.cache.Forget(loader.CacheKey(file))
}

// GetFileText extracts text from a PDF file. Pages that fail to decode are
// skipped with a warning.
func (l *PDFGraphLoader) GetFileText(ctx context.Context, file loader.GraphFile) ([]byte, error) {
	return l.cache.Get(loader.CacheKey(file), func() ([]byte, error) {
		content, err := l.loader.GetFileText(ctx, file)
		if err != nil {
			return nil, err
		}
		text, err := parsePDF(ctx, content, file.FilePath)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	})
}

func parsePDF(ctx context.Context, content []byte, name string) (text string, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: failed to parse PDF %s: %v", loader.ErrUnreadableDocument, name, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF %s: %w", loader.ErrUnreadableDocument, name, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := readPage(page)
		if err != nil {
			logger.Warn("[Loader] Could not read page", "file", name, "page", i, "err", err)
			continue
		}
		if pageText == "" {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}

	return b.String(), nil
}

func readPage(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page decode panic: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
