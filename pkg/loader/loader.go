package loader

import (
	"context"
	"path"
	"strings"
)

// GraphFile is one document of the corpus. Its content is retrieved through
// the associated GraphFileLoader, which may read from disk, S3 or wrap another
// loader to turn bytes into text.
type GraphFile struct {
	ID       string
	FilePath string
	Label    string
	Loader   GraphFileLoader
}

// NewGraphFileParams defines the input parameters for NewGraphDocumentFile.
// Label is optional; when empty it is derived from FilePath.
type NewGraphFileParams struct {
	ID       string
	FilePath string
	Label    string
	Loader   GraphFileLoader
}

// NewGraphDocumentFile creates a GraphFile for a text-bearing document such
// as a PDF.
func NewGraphDocumentFile(params NewGraphFileParams) GraphFile {
	label := params.Label
	if label == "" {
		label = LabelFromPath(params.FilePath)
	}
	id := params.ID
	if id == "" {
		id = params.FilePath
	}
	return GraphFile{
		ID:       id,
		FilePath: params.FilePath,
		Label:    label,
		Loader:   params.Loader,
	}
}

// GetText retrieves the raw text content of the file using its Loader.
//
// Example:
//
//	text, err := file.GetText(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Println(string(text))
func (f *GraphFile) GetText(ctx context.Context) ([]byte, error) {
	return f.Loader.GetFileText(ctx, *f)
}

// GraphFileLoader defines the interface for loading the contents of a GraphFile.
// Implementations may load files from disk, cloud storage, or other sources.
type GraphFileLoader interface {
	GetFileText(ctx context.Context, file GraphFile) ([]byte, error)
}

// Releaser is implemented by loaders that hold per-file state, such as
// cached text, which the caller drops once it is done with the file.
type Releaser interface {
	Release(file GraphFile)
}

// Release frees what f's loader keeps for f, if it keeps anything.
func (f *GraphFile) Release() {
	if r, ok := f.Loader.(Releaser); ok {
		r.Release(*f)
	}
}

// CacheKey identifies a file for loader-level caching.
func CacheKey(file GraphFile) string {
	return file.ID + ":" + file.FilePath
}

// LabelFromPath turns "papers/3D_Gaussian_Splatting.pdf" into
// "3D Gaussian Splatting". The label doubles as the source reference stored
// on every node the document creates.
func LabelFromPath(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	ext := path.Ext(base)
	if strings.EqualFold(ext, ".pdf") {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.ReplaceAll(base, "_", " ")
}
