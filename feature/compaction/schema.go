package compaction

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// CommonColumns returns the column names present in every table, in the order they
// appear in the first table. Duplicate names count once.
func CommonColumns(tables []arrow.Table) []string {
	if len(tables) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, tbl := range tables {
		seen := make(map[string]struct{})
		for _, f := range tbl.Schema().Fields() {
			if _, dup := seen[f.Name]; dup {
				continue
			}
			seen[f.Name] = struct{}{}
			counts[f.Name]++
		}
	}

	var names []string
	emitted := make(map[string]struct{})
	for _, f := range tables[0].Schema().Fields() {
		if _, dup := emitted[f.Name]; dup {
			continue
		}
		if counts[f.Name] == len(tables) {
			names = append(names, f.Name)
			emitted[f.Name] = struct{}{}
		}
	}
	return names
}

// Reconcile narrows every table to the columns they all share, in the first table's order.
//
// Columns missing from any input are dropped from all of them, so merged output
// never carries a column that some contributing file lacks.
// Row data is untouched. Inputs remain owned by the caller; the returned tables are
// new references that must be released.
func Reconcile(tables []arrow.Table) ([]arrow.Table, error) {
	if len(tables) == 0 {
		return nil, newError(KindInvalidInput, "", "no tables to reconcile", nil)
	}

	common := CommonColumns(tables)
	if len(common) == 0 {
		return nil, newError(KindSchemaMismatch, "", "inputs share no columns", nil)
	}

	out := make([]arrow.Table, 0, len(tables))
	for _, tbl := range tables {
		out = append(out, project(tbl, common))
	}
	return out, nil
}

// project selects names from tbl, first match wins for duplicated names.
func project(tbl arrow.Table, names []string) arrow.Table {
	schema := tbl.Schema()
	fields := make([]arrow.Field, 0, len(names))
	cols := make([]arrow.Column, 0, len(names))

	for _, name := range names {
		idx := schema.FieldIndices(name)[0]
		fields = append(fields, schema.Field(idx))
		cols = append(cols, *tbl.Column(idx))
	}

	return array.NewTable(arrow.NewSchema(fields, nil), cols, tbl.NumRows())
}

// sameColumns checks that b has a's column names and types in a's order.
func sameColumns(a, b *arrow.Schema) error {
	if a.NumFields() != b.NumFields() {
		return fmt.Errorf("expected %d columns, got %d", a.NumFields(), b.NumFields())
	}
	for i := 0; i < a.NumFields(); i++ {
		fa, fb := a.Field(i), b.Field(i)
		if fa.Name != fb.Name {
			return fmt.Errorf("column %d: expected %q, got %q", i, fa.Name, fb.Name)
		}
		if !arrow.TypeEqual(fa.Type, fb.Type) {
			return fmt.Errorf("column %q: expected type %s, got %s", fa.Name, fa.Type, fb.Type)
		}
	}
	return nil
}
