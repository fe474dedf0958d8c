// Package deploy uploads build output to S3-compatible storage.
package deploy

import (
	"context"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/errors"
)

// S3API is the subset of the S3 client the Syncer uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Result summarizes a sync.
type Result struct {
	// Uploaded is the number of files uploaded.
	Uploaded int

	// Bytes is the total number of bytes uploaded.
	Bytes int64

	// Keys are the object keys written, sorted.
	Keys []string

	// Pruned is the number of remote objects deleted (prune only).
	Pruned int
}

// Syncer uploads a directory tree to an S3 bucket.
type Syncer struct {
	client S3API
	bucket string
	prefix string

	// OnProgress is called once per uploaded file.
	OnProgress func(key string, size int64)
}

// New creates a Syncer with an existing client.
func New(client S3API, bucket, prefix string) *Syncer {
	return &Syncer{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(prefix),
	}
}

// NewFromConfig builds a Syncer from the project configuration using the
// default AWS credential chain.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Syncer, error) {
	if cfg.Deploy.Bucket == "" {
		return nil, errors.New("E161").
			WithSuggestion("Set deploy.bucket in stencil.json")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Deploy.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Deploy.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("E160").Wrap(err)
	}

	return New(s3.NewFromConfig(awsCfg), cfg.Deploy.Bucket, cfg.Deploy.Prefix), nil
}

// Sync uploads every file under dir to the bucket. Keys mirror the relative
// paths under dir, below the configured prefix.
func (s *Syncer) Sync(ctx context.Context, dir string) (*Result, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, errors.New("E162").
			WithDetail("No build output at " + dir)
	}

	result := &Result{}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := s.keyFor(rel)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          f,
			ContentType:   aws.String(ContentTypeFor(path)),
			CacheControl:  aws.String(CacheControlFor(key)),
			ContentLength: aws.Int64(info.Size()),
		})
		if err != nil {
			return errors.New("E160").
				WithDetail("Could not upload " + key + ": " + err.Error())
		}

		result.Uploaded++
		result.Bytes += info.Size()
		result.Keys = append(result.Keys, key)

		if s.OnProgress != nil {
			s.OnProgress(key, info.Size())
		}
		return nil
	})
	if err != nil {
		return nil, errors.FromError(err, "E160")
	}

	sort.Strings(result.Keys)
	return result, nil
}

// Prune deletes remote objects under the prefix whose keys are not in keep.
// It returns the number of deleted objects.
func (s *Syncer) Prune(ctx context.Context, keep []string) (int, error) {
	keepSet := make(map[string]bool, len(keep))
	for _, k := range keep {
		keepSet[k] = true
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var toDelete []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, errors.New("E160").Wrap(err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil && !keepSet[*obj.Key] {
				toDelete = append(toDelete, *obj.Key)
			}
		}
	}

	deleted := 0
	for _, key := range toDelete {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return deleted, errors.New("E160").
				WithDetail("Could not delete " + key + ": " + err.Error())
		}
		deleted++
	}

	return deleted, nil
}

// keyFor maps a relative file path to an object key.
func (s *Syncer) keyFor(rel string) string {
	return s.prefix + filepath.ToSlash(rel)
}

// normalizePrefix ensures a non-empty prefix ends with exactly one slash.
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// ContentTypeFor returns the MIME type for a file path.
func ContentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	// mime.TypeByExtension consults the host's mime tables, which miss a
	// few types common in web builds.
	switch ext {
	case ".js", ".mjs":
		return "text/javascript; charset=utf-8"
	case ".json", ".map":
		return "application/json"
	case ".wasm":
		return "application/wasm"
	case ".woff2":
		return "font/woff2"
	}

	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// CacheControlFor returns the Cache-Control header for an object key.
// HTML documents revalidate on every request so deploys show up
// immediately; everything else gets a modest shared cache lifetime.
func CacheControlFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".html", ".htm", "":
		return "no-cache"
	default:
		return "public, max-age=3600"
	}
}
