package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGzipCompressor(t *testing.T) {
	c, err := NewGzipCompressor()
	require.NoError(t, err)
	assert.NotNil(t, c)
	c.Close()
}

func TestGzipCompression_Roundtrip(t *testing.T) {
	c, err := NewGzipCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := []byte(`{"source":"bluesky","snapshots":[1,2,3]}`)
	compressed, err := c.Compress(original)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestGzipCompression_EmptyData(t *testing.T) {
	c, err := NewGzipCompressor()
	require.NoError(t, err)
	defer c.Close()

	compressed, err := c.Compress([]byte{})
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestGzipCompression_LargeData(t *testing.T) {
	c, err := NewGzipCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := bytes.Repeat([]byte("snapshot payload "), 64*1024)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original)/2, "repetitive data should compress well")

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestGzipCompression_DecompressInvalidData(t *testing.T) {
	c, err := NewGzipCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("this is not gzip data"))
	assert.Error(t, err)
}
