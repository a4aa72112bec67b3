package report

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

// compressor encodes a finished report body.
type compressor interface {
	Compress(data []byte) ([]byte, error)
	Extension() string
	ContentEncoding() string
}

func newCompressor(name string) (compressor, error) {
	switch name {
	case "", CompressionNone:
		return noneCompressor{}, nil
	case CompressionGzip:
		return gzipCompressor{}, nil
	case CompressionZstd:
		return zstdCompressor{}, nil
	default:
		return nil, fmt.Errorf("unsupported report compression %q", name)
	}
}

type noneCompressor struct{}

func (noneCompressor) Compress(data []byte) ([]byte, error) { return data, nil }
func (noneCompressor) Extension() string                    { return "" }
func (noneCompressor) ContentEncoding() string              { return "" }

type gzipCompressor struct{}

func (gzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress report: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}

func (gzipCompressor) Extension() string       { return ".gz" }
func (gzipCompressor) ContentEncoding() string { return "gzip" }

type zstdCompressor struct{}

func (zstdCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return nil, fmt.Errorf("failed to compress report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func (zstdCompressor) Extension() string       { return ".zst" }
func (zstdCompressor) ContentEncoding() string { return "zstd" }
