package columnar

// Config holds configuration for the Parquet codec.
type Config struct {
	// Compression is the column chunk codec (snappy, zstd, gzip, none).
	Compression string `mapstructure:"compression" default:"snappy"`
	// RowGroupSize is the maximum number of rows per written row group.
	RowGroupSize int64 `mapstructure:"row_group_size" default:"131072"`
}
