package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"field-comparator/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrBucketNotFound is returned when the report bucket does not exist.
var ErrBucketNotFound = errors.New("report bucket not found")

// Exporter writes reports to object storage.
type Exporter struct {
	client     storage.Client
	bucket     string
	prefix     string
	create     bool
	compressor compressor
	logger     *zap.Logger
}

// NewExporter creates an exporter writing to bucket. cfg.Bucket, when set,
// takes precedence over bucket.
func NewExporter(client storage.Client, bucket string, cfg Config, logger *zap.Logger) (*Exporter, error) {
	c, err := newCompressor(cfg.Compression)
	if err != nil {
		return nil, err
	}
	if cfg.Bucket != "" {
		bucket = cfg.Bucket
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		client:     client,
		bucket:     bucket,
		prefix:     cfg.Prefix,
		create:     cfg.CreateBucket,
		compressor: c,
		logger:     logger,
	}, nil
}

// ObjectName returns the key a report with runID is written to.
func (e *Exporter) ObjectName(runID string) string {
	return path.Join(e.prefix, runID+".json"+e.compressor.Extension())
}

// Export uploads r and returns the object key.
func (e *Exporter) Export(ctx context.Context, r Report) (string, error) {
	exists, err := e.client.BucketExists(ctx, e.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket %s: %w", e.bucket, err)
	}
	if !exists {
		if !e.create {
			return "", fmt.Errorf("%w: %s", ErrBucketNotFound, e.bucket)
		}
		if err := e.client.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket %s: %w", e.bucket, err)
		}
		e.logger.Info("Report bucket created", zap.String("bucket", e.bucket))
	}

	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	data, err := e.compressor.Compress(body)
	if err != nil {
		return "", err
	}

	name := e.ObjectName(r.RunID)
	opts := minio.PutObjectOptions{
		ContentType:     "application/json",
		ContentEncoding: e.compressor.ContentEncoding(),
	}
	if _, err := e.client.PutObject(ctx, e.bucket, name, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", name, err)
	}

	e.logger.Info("Report exported",
		zap.String("bucket", e.bucket),
		zap.String("object", name),
		zap.Int("bytes", len(data)),
		zap.Int("rules", r.Summary.Rules))
	return name, nil
}

// Object describes an exported report.
type Object struct {
	RunID        string    `json:"run_id"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// List returns the reports stored under the configured prefix, newest first.
func (e *Exporter) List(ctx context.Context) ([]Object, error) {
	prefix := e.prefix
	if prefix != "" {
		prefix += "/"
	}

	var out []Object
	for obj := range e.client.ListObjects(ctx, e.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		base := path.Base(obj.Key)
		i := strings.Index(base, ".json")
		if i <= 0 {
			continue
		}
		out = append(out, Object{
			RunID:        base[:i],
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return out, nil
}
