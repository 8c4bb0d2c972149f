package chunks

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/eak1mov/go-libworld/uvindex"
	"github.com/eak1mov/go-libworld/wld/spec"
)

// Reader reads chunk files written by Writer, unwrapping compressed files.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/chunks/{x}/{y}.bin").
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	regexPattern := regexp.QuoteMeta(filePattern)
	regexPattern = strings.ReplaceAll(regexPattern, regexp.QuoteMeta("{x}"), `(?P<x>\d+)`)
	regexPattern = strings.ReplaceAll(regexPattern, regexp.QuoteMeta("{y}"), `(?P<y>\d+)`)
	pathRegex, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	path0 := formatPattern(filePattern, ID{X: 0, Y: 0})
	path1 := formatPattern(filePattern, ID{X: 1, Y: 1})
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}

	return &Reader{filePattern: filePattern, rootDir: path0, pathRegexp: pathRegex}, nil
}

func readChunkFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return spec.Decompress(data)
}

// ReadChunk returns the chunk data, or empty data if the chunk was never written.
func (r *Reader) ReadChunk(id ID) ([]byte, error) {
	chunkData, err := readChunkFile(formatPattern(r.filePattern, id))
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return chunkData, nil
}

// ReadItems decodes a chunk written by Export.
func (r *Reader) ReadItems(id ID) ([]uvindex.Item, error) {
	chunkData, err := r.ReadChunk(id)
	if err != nil {
		return nil, err
	}
	return uvindex.ReadAll(chunkData)
}

func (r *Reader) VisitChunks(visitor func(ID, []byte) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filePath)
		if matches == nil {
			return nil
		}

		x, _ := strconv.Atoi(matches[r.pathRegexp.SubexpIndex("x")])
		y, _ := strconv.Atoi(matches[r.pathRegexp.SubexpIndex("y")])

		chunkData, err := readChunkFile(filePath)
		if err != nil {
			return err
		}

		return visitor(ID{X: x, Y: y}, chunkData)
	})
}
