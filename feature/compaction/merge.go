package compaction

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Concat appends the rows of tables, in order, into one table.
//
// All inputs must share an identical schema (run Reconcile first); otherwise a
// SCHEMA_MISMATCH error is returned. No sort and no de-duplication happen here.
// A column is nullable in the output if it is nullable in any input.
// The returned table must be released by the caller.
func Concat(tables []arrow.Table) (arrow.Table, error) {
	if len(tables) == 0 {
		return nil, newError(KindInvalidInput, "", "no tables to merge", nil)
	}

	schema := tables[0].Schema()
	fields := make([]arrow.Field, schema.NumFields())
	copy(fields, schema.Fields())

	var rows int64
	for i, tbl := range tables {
		if i > 0 {
			if err := sameColumns(schema, tbl.Schema()); err != nil {
				return nil, newError(KindSchemaMismatch, "", "merge input does not match the reconciled schema", err)
			}
		}
		for j, f := range tbl.Schema().Fields() {
			fields[j].Nullable = fields[j].Nullable || f.Nullable
		}
		rows += tbl.NumRows()
	}

	cols := make([]arrow.Column, len(fields))
	for i := range fields {
		var chunks []arrow.Array
		for _, tbl := range tables {
			chunks = append(chunks, tbl.Column(i).Data().Chunks()...)
		}
		chunked := arrow.NewChunked(fields[i].Type, chunks)
		cols[i] = *arrow.NewColumn(fields[i], chunked)
		chunked.Release()
	}

	out := array.NewTable(arrow.NewSchema(fields, nil), cols, rows)
	for i := range cols {
		cols[i].Release()
	}
	return out, nil
}

func releaseAll(tables []arrow.Table) {
	for _, tbl := range tables {
		if tbl != nil {
			tbl.Release()
		}
	}
}
