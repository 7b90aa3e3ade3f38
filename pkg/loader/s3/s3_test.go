package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/paperkg/pkg/loader"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects  map[string]string
	pages    [][]string
	getCalls int
	failures int
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.getCalls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("connection reset")
	}
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := 0
	if in.ContinuationToken != nil {
		page = int(aws.ToString(in.ContinuationToken)[0] - '0')
	}
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(page < len(f.pages)-1)}
	for _, key := range f.pages[page] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if page < len(f.pages)-1 {
		out.NextContinuationToken = aws.String(string(rune('0' + page + 1)))
	}
	return out, nil
}

func TestGetFileTextRetriesTransientErrors(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"papers/NeRF.pdf": "%PDF"}, failures: 2}
	l := &S3GraphFileLoader{bucket: "b", client: fake}

	got, err := l.GetFileText(context.Background(), loader.GraphFile{FilePath: "papers/NeRF.pdf"})
	if err != nil {
		t.Fatalf("GetFileText() error = %v", err)
	}
	if string(got) != "%PDF" {
		t.Fatalf("GetFileText() = %q", got)
	}
	if fake.getCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fake.getCalls)
	}
}

func TestGetFileTextMissingKeyIsNotRetried(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}}
	l := &S3GraphFileLoader{bucket: "b", client: fake}

	_, err := l.GetFileText(context.Background(), loader.GraphFile{FilePath: "missing.pdf"})
	var noKey *types.NoSuchKey
	if !errors.As(err, &noKey) {
		t.Fatalf("expected NoSuchKey, got %v", err)
	}
	if fake.getCalls != 1 {
		t.Fatalf("expected 1 attempt, got %d", fake.getCalls)
	}
}

func TestDiscoverPaginatesAndFilters(t *testing.T) {
	fake := &fakeS3{pages: [][]string{
		{"papers/b_NeRF.pdf", "papers/notes.txt"},
		{"papers/a_3D_Gaussian_Splatting.PDF"},
	}}
	l := &S3GraphFileLoader{bucket: "corpus", client: fake}

	files, err := l.Discover(context.Background(), "papers/", nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].FilePath != "papers/a_3D_Gaussian_Splatting.PDF" || files[0].Label != "a 3D Gaussian Splatting" {
		t.Fatalf("unexpected first file: %+v", files[0])
	}
	if files[1].ID != "s3://corpus/papers/b_NeRF.pdf" {
		t.Fatalf("unexpected id %q", files[1].ID)
	}
}
