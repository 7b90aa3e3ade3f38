package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/loader"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const maxGetAttempts = 3

// objectAPI is the subset of the S3 client used by the loader.
type objectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3GraphFileLoader is a GraphFileLoader implementation that loads file
// contents from an S3 bucket. It is used when the paper corpus lives in
// object storage instead of a local directory.
type S3GraphFileLoader struct {
	bucket string
	client objectAPI
}

// NewS3GraphFileLoaderWithClient creates a new S3GraphFileLoader using an
// existing s3.Client.
func NewS3GraphFileLoaderWithClient(bucket string, client *s3.Client) *S3GraphFileLoader {
	return &S3GraphFileLoader{
		bucket: bucket,
		client: client,
	}
}

// NewS3GraphFileLoaderParams defines the configuration parameters for
// creating a new S3GraphFileLoader.
//
// Endpoint allows overriding the S3 endpoint (useful for S3-compatible
// storage like MinIO). AccessKey and SecretKey provide static credentials;
// when both are empty the default AWS credential chain is used.
type NewS3GraphFileLoaderParams struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3GraphFileLoader creates a new S3GraphFileLoader using the provided
// parameters.
//
// Example:
//
//	l, err := s3.NewS3GraphFileLoader(ctx, s3.NewS3GraphFileLoaderParams{
//		Bucket:    "papers",
//		Endpoint:  "http://localhost:9000",
//		Region:    "us-east-1",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
//		SecretKey: os.Getenv("AWS_SECRET_KEY"),
//	})
//	if err != nil {
//		return err
//	}
//	files, err := l.Discover(ctx, "gaussian-splatting/", pdf.NewPDFGraphLoader(l))
func NewS3GraphFileLoader(ctx context.Context, params NewS3GraphFileLoaderParams) (*S3GraphFileLoader, error) {
	if params.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(params.Region),
	}
	if params.Endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(params.Endpoint))
	}
	if params.AccessKey != "" || params.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return NewS3GraphFileLoaderWithClient(params.Bucket, client), nil
}

// GetFileText downloads the object named by file.FilePath. Transient failures
// are retried; a missing key is not.
func (l *S3GraphFileLoader) GetFileText(ctx context.Context, file loader.GraphFile) ([]byte, error) {
	return util.RetryWithContext(ctx, maxGetAttempts, func(ctx context.Context) ([]byte, error) {
		out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(l.bucket),
			Key:    aws.String(file.FilePath),
		})
		if err != nil {
			var noKey *types.NoSuchKey
			if errors.As(err, &noKey) {
				return nil, util.Permanent(fmt.Errorf("s3 object %s not found: %w", file.FilePath, err))
			}
			return nil, fmt.Errorf("failed to get s3 object %s: %w", file.FilePath, err)
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, fmt.Errorf("failed to read s3 object %s: %w", file.FilePath, err)
		}
		return buf.Bytes(), nil
	})
}

// Discover lists the PDF objects under prefix and wraps each in a GraphFile
// that reads through textLoader, which normally decodes the bytes fetched by
// this loader. Keys are returned in lexical order.
func (l *S3GraphFileLoader) Discover(ctx context.Context, prefix string, textLoader loader.GraphFileLoader) ([]loader.GraphFile, error) {
	var keys []string
	var token *string
	for {
		out, err := l.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(l.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list s3 prefix %q: %w", prefix, err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if loader.IsPDF(key) {
				keys = append(keys, key)
			}
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	sort.Strings(keys)

	files := make([]loader.GraphFile, 0, len(keys))
	for _, key := range keys {
		files = append(files, loader.NewGraphDocumentFile(loader.NewGraphFileParams{
			ID:       "s3://" + l.bucket + "/" + key,
			FilePath: key,
			Loader:   textLoader,
		}))
	}
	return files, nil
}
