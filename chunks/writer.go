package chunks

import (
	"os"
	"path/filepath"

	"github.com/eak1mov/go-libworld/wld/spec"
)

// Writer stores chunks as individual files. Distinct chunks may be written
// concurrently.
type Writer struct {
	filePattern string
	compression spec.Compression
}

type WriterOption func(*Writer)

// WithCompression wraps every chunk file in the given container.
func WithCompression(compression spec.Compression) WriterOption {
	return func(w *Writer) { w.compression = compression }
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/chunks/{x}/{y}.bin").
func NewWriter(filePattern string, opts ...WriterOption) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	w := &Writer{filePattern: filePattern}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Writer) WriteChunk(id ID, chunkData []byte) error {
	filePath := formatPattern(w.filePattern, id)

	dirPath := filepath.Dir(filePath)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	data, err := spec.Compress(chunkData, w.compression)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

func (w *Writer) Finalize() error {
	return nil
}
