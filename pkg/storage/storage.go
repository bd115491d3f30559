package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// StdoutPath selects standard output as the output file.
const StdoutPath = "-"

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := ensureDir(filePath); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// HasFile reports whether fn exists. Paths that exist but cannot be
// inspected count as present so the caller's open reports the real error.
func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil || !os.IsNotExist(err)
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// CreateOutput truncates or creates filePath for writing. An empty path or
// StdoutPath writes to standard output, which is never closed.
func (s *Storage) CreateOutput(filePath string) (io.WriteCloser, error) {
	if filePath == "" || filePath == StdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if err := ensureDir(filePath); err != nil {
		return nil, err
	}
	f, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("error creating output: %w", err)
	}
	return f, nil
}

func ensureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
