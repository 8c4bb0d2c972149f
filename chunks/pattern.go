// Package chunks stores a world as a directory of square chunk files with
// paths like "/x/y.bin", where x and y are chunk coordinates.
package chunks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPattern = errors.New("libworld: invalid file pattern")

// ID is the position of a chunk in chunk units.
type ID struct {
	X int
	Y int
}

func validatePattern(pattern string) error {
	for _, p := range []string{"{x}", "{y}"} {
		if !strings.Contains(pattern, p) {
			return fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, p)
		}
	}
	return nil
}

func formatPattern(pattern string, id ID) string {
	result := pattern
	result = strings.ReplaceAll(result, "{x}", strconv.Itoa(id.X))
	result = strings.ReplaceAll(result, "{y}", strconv.Itoa(id.Y))
	return result
}
