package main

import (
	"fmt"
	"strings"

	"github.com/eak1mov/go-libworld/wld/spec"
)

func deduceFormat(format, filePath string) string {
	if format == "" && (strings.HasSuffix(filePath, ".db") || strings.HasSuffix(filePath, ".sqlite")) {
		return "sqlite"
	}
	if format == "" && strings.Contains(filePath, "{x}") {
		return "chunks"
	}
	return format
}

func parseCompression(name string) (spec.Compression, error) {
	switch name {
	case "", "none":
		return spec.CompressionNone, nil
	case "gzip":
		return spec.CompressionGzip, nil
	case "zstd":
		return spec.CompressionZstd, nil
	}
	return 0, fmt.Errorf("invalid compression: %q", name)
}
