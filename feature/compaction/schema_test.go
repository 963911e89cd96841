package compaction

import (
	"errors"
	"sort"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonColumns(t *testing.T) {
	ab := buildTable(t, col{"a", []int64{1}}, col{"b", []int64{2}})
	ba := buildTable(t, col{"b", []int64{3}}, col{"a", []int64{4}})
	bc := buildTable(t, col{"b", []int64{5}}, col{"c", []int64{6}})

	assert.Equal(t, []string{"a", "b"}, CommonColumns([]arrow.Table{ab, ba}))
	assert.Equal(t, []string{"b", "a"}, CommonColumns([]arrow.Table{ba, ab}))
	assert.Equal(t, []string{"b"}, CommonColumns([]arrow.Table{ab, bc}))
	assert.Equal(t, []string{"a", "b"}, CommonColumns([]arrow.Table{ab}))
	assert.Empty(t, CommonColumns(nil))
}

func TestReconcile(t *testing.T) {
	t1 := buildTable(t, col{"a", []int64{1, 2}}, col{"b", []int64{10, 20}})
	t2 := buildTable(t, col{"b", []int64{30}}, col{"c", []int64{40}})

	out, err := Reconcile([]arrow.Table{t1, t2})
	require.NoError(t, err)
	defer releaseAll(out)

	require.Len(t, out, 2)
	assert.Equal(t, []string{"b"}, columnNames(out[0]))
	assert.Equal(t, []string{"b"}, columnNames(out[1]))
	assert.Equal(t, []int64{10, 20}, int64Column(t, out[0], "b"))
	assert.Equal(t, []int64{30}, int64Column(t, out[1], "b"))
	assert.Equal(t, int64(2), out[0].NumRows())

	// Inputs are untouched.
	assert.Equal(t, []string{"a", "b"}, columnNames(t1))
}

func TestReconcile_Errors(t *testing.T) {
	_, err := Reconcile(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	left := buildTable(t, col{"a", []int64{1}})
	right := buildTable(t, col{"z", []int64{1}})
	_, err = Reconcile([]arrow.Table{left, right})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindSchemaMismatch, e.Kind)
}

func TestProperty_CommonColumnsCommutative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	names := []string{"a", "b", "c", "d", "e", "f"}
	pick := func(mask uint8) []col {
		var cols []col
		for i, name := range names {
			if mask&(1<<i) != 0 {
				cols = append(cols, col{name, []int64{int64(i)}})
			}
		}
		if len(cols) == 0 {
			cols = append(cols, col{"z", []int64{0}})
		}
		return cols
	}
	sorted := func(s []string) []string {
		out := append([]string(nil), s...)
		sort.Strings(out)
		return out
	}

	properties.Property("[A, B] and [B, A] keep the same set of columns", prop.ForAll(
		func(ma, mb uint8) bool {
			a := buildTable(t, pick(ma)...)
			b := buildTable(t, pick(mb)...)

			ab := CommonColumns([]arrow.Table{a, b})
			ba := CommonColumns([]arrow.Table{b, a})
			if len(ab) != len(ba) {
				return false
			}
			sab, sba := sorted(ab), sorted(ba)
			for i := range sab {
				if sab[i] != sba[i] {
					return false
				}
			}
			return true
		},
		gen.UInt8(),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
