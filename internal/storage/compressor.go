package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"tracespace/internal/storage/interfaces"
)

const bundleCompressionLevel = gzip.DefaultCompression

// GzipCompression compresses warm bundles. Gzip keeps the bundles readable
// with stock tooling, which matters when digging through old data by hand.
type GzipCompression struct {
	level int
}

func (g *GzipCompression) Compress(val []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := gzip.NewWriterLevel(&buf, g.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	if _, err := writer.Write(val); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish compression: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *GzipCompression) Decompress(val []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(val))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress data: %w", err)
	}
	return data, nil
}

func (g *GzipCompression) Close() {}

func NewGzipCompressor() (interfaces.CompressorInterface, error) {
	if _, err := gzip.NewWriterLevel(io.Discard, bundleCompressionLevel); err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	return &GzipCompression{level: bundleCompressionLevel}, nil
}
