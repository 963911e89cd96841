package compaction

import (
	"bytes"
	"context"
	"testing"

	"parquet-compactor/core/columnar"
	"parquet-compactor/core/storage/mocks"
	"parquet-compactor/core/workspace"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
)

const testBucket = "test-bucket"

// col describes one column of a test table: values is []int64 or []string.
type col struct {
	name   string
	values any
}

func buildTable(t *testing.T, cols ...col) arrow.Table {
	t.Helper()
	mem := memory.NewGoAllocator()

	fields := make([]arrow.Field, 0, len(cols))
	arrays := make([][]arrow.Array, 0, len(cols))
	for _, c := range cols {
		switch v := c.values.(type) {
		case []int64:
			b := array.NewInt64Builder(mem)
			b.AppendValues(v, nil)
			arr := b.NewArray()
			b.Release()
			fields = append(fields, arrow.Field{Name: c.name, Type: arrow.PrimitiveTypes.Int64})
			arrays = append(arrays, []arrow.Array{arr})
		case []string:
			b := array.NewStringBuilder(mem)
			b.AppendValues(v, nil)
			arr := b.NewArray()
			b.Release()
			fields = append(fields, arrow.Field{Name: c.name, Type: arrow.BinaryTypes.String})
			arrays = append(arrays, []arrow.Array{arr})
		default:
			t.Fatalf("unsupported column type %T", c.values)
		}
	}

	tbl := array.NewTableFromSlice(arrow.NewSchema(fields, nil), arrays)
	for _, chunks := range arrays {
		for _, arr := range chunks {
			arr.Release()
		}
	}
	t.Cleanup(tbl.Release)
	return tbl
}

func columnNames(tbl arrow.Table) []string {
	names := make([]string, 0, tbl.NumCols())
	for _, f := range tbl.Schema().Fields() {
		names = append(names, f.Name)
	}
	return names
}

func int64Column(t *testing.T, tbl arrow.Table, name string) []int64 {
	t.Helper()
	idx := tbl.Schema().FieldIndices(name)
	require.NotEmpty(t, idx, "column %s", name)

	var out []int64
	for _, chunk := range tbl.Column(idx[0]).Data().Chunks() {
		out = append(out, chunk.(*array.Int64).Int64Values()...)
	}
	return out
}

func testCodec(t *testing.T) *columnar.Codec {
	t.Helper()
	codec, err := columnar.NewCodec(columnar.Config{Compression: "snappy", RowGroupSize: 1024})
	require.NoError(t, err)
	return codec
}

func encode(t *testing.T, tbl arrow.Table) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, testCodec(t).Encode(&buf, tbl))
	return buf.Bytes()
}

// putTable stores tbl, encoded, at key.
func putTable(t *testing.T, store *mocks.Memory, key string, cols ...col) {
	t.Helper()
	store.Set(key, encode(t, buildTable(t, cols...)))
}

// readTable decodes the object at key.
func readTable(t *testing.T, store *mocks.Memory, key string) arrow.Table {
	t.Helper()
	data, ok := store.Get(key)
	require.True(t, ok, "object %s does not exist", key)

	tbl, err := testCodec(t).Decode(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(tbl.Release)
	return tbl
}

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(t.TempDir(), "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func mustPlan(t *testing.T, g, start, end string) Plan {
	t.Helper()
	plan, err := Request{
		Username:    "u",
		Database:    "db",
		Table:       "events",
		StartDate:   start,
		EndDate:     end,
		Granularity: g,
	}.Validate()
	require.NoError(t, err)
	return plan
}
