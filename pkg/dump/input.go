package dump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
)

// StdinPath makes Open read the dump from standard input.
const StdinPath = "-"

// multiCloser closes the decompressor before the file under it.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Open opens a dump for reading. Files ending in .bz2, .gz or .zst are
// decompressed while reading; anything else is read as plain XML.
func Open(path string) (io.ReadCloser, error) {
	var f io.ReadCloser
	if path == StdinPath {
		f = io.NopCloser(os.Stdin)
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dump: %w", err)
		}
		f = file
	}

	rc, err := decompress(strings.ToLower(filepath.Ext(path)), f)
	if err != nil {
		_ = f.Close() // Close error less important than decompressor error
		return nil, err
	}
	return rc, nil
}

func decompress(ext string, f io.ReadCloser) (io.ReadCloser, error) {
	switch ext {
	case ".bz2":
		r, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, fmt.Errorf("failed to open bzip2 stream: %w", err)
		}
		return &multiCloser{Reader: r, closers: []io.Closer{r, f}}, nil
	case ".gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return &multiCloser{Reader: r, closers: []io.Closer{r, f}}, nil
	case ".zst":
		r, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		rc := r.IOReadCloser()
		return &multiCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}
