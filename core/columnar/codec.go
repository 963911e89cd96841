package columnar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// Extension is the file suffix of objects written by the codec.
const Extension = ".parquet"

// ContentType is the media type used when uploading encoded tables.
const ContentType = "application/vnd.apache.parquet"

// ErrDecode is returned when bytes cannot be read as a Parquet table.
var ErrDecode = errors.New("columnar: invalid parquet data")

// Codec reads and writes Parquet files as in-memory Arrow tables.
type Codec struct {
	mem          memory.Allocator
	compression  compress.Compression
	rowGroupSize int64
}

// NewCodec creates a codec from configuration.
func NewCodec(cfg Config) (*Codec, error) {
	codec, err := parseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}

	rowGroupSize := cfg.RowGroupSize
	if rowGroupSize <= 0 {
		rowGroupSize = 128 * 1024
	}

	return &Codec{
		mem:          memory.DefaultAllocator,
		compression:  codec,
		rowGroupSize: rowGroupSize,
	}, nil
}

// Decode reads a whole Parquet file into an Arrow table. r is never closed.
// The caller owns the returned table and must Release it.
func (c *Codec) Decode(ctx context.Context, r parquet.ReaderAtSeeker) (arrow.Table, error) {
	tbl, err := pqarrow.ReadTable(ctx, readerOnly{r}, parquet.NewReaderProperties(c.mem), pqarrow.ArrowReadProperties{}, c.mem)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return tbl, nil
}

// Encode writes tbl to w as a single Parquet file. w is never closed.
// The Arrow schema is stored in the file metadata so column types round-trip exactly.
func (c *Codec) Encode(w io.Writer, tbl arrow.Table) error {
	props := parquet.NewWriterProperties(
		parquet.WithCompression(c.compression),
		parquet.WithAllocator(c.mem),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	if err := pqarrow.WriteTable(tbl, writerOnly{w}, c.rowGroupSize, props, arrowProps); err != nil {
		return fmt.Errorf("columnar: failed to write parquet: %w", err)
	}
	return nil
}

func parseCompression(name string) (compress.Compression, error) {
	switch strings.ToLower(name) {
	case "", "snappy":
		return compress.Codecs.Snappy, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	default:
		return compress.Codecs.Uncompressed, fmt.Errorf("columnar: unsupported compression %q", name)
	}
}

// The parquet reader and writer close their source or sink when it implements
// io.Closer; these wrappers hide Close so callers keep ownership.
type readerOnly struct {
	parquet.ReaderAtSeeker
}

type writerOnly struct {
	io.Writer
}
