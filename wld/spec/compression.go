package spec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectCompression sniffs the container of a save file or backup.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	}
	return CompressionNone
}

// Compress wraps data in the given container.
func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionGzip:
		var buf bytes.Buffer
		writer, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
		if err != nil {
			return nil, fmt.Errorf("failed to compress: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("failed to compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("failed to compress: %w", err)
		}
		return buf.Bytes(), nil

	case CompressionZstd:
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to compress: %w", err)
		}
		defer encoder.Close()
		return encoder.EncodeAll(data, nil), nil
	}
	return data, nil
}

// Decompress unwraps gzip or zstd containers and returns other data unchanged.
func Decompress(data []byte) ([]byte, error) {
	switch DetectCompression(data) {
	case CompressionGzip:
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		defer reader.Close()

		result, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		return result, nil

	case CompressionZstd:
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		defer decoder.Close()

		result, err := decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		return result, nil
	}
	return data, nil
}

// InflateRaw decompresses a headerless deflate stream.
func InflateRaw(data []byte) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()

	result, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to inflate: %w", err)
	}
	return result, nil
}
