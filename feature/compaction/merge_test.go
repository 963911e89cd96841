package compaction

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcat(t *testing.T) {
	t1 := buildTable(t, col{"id", []int64{1, 2}}, col{"v", []string{"a", "b"}})
	t2 := buildTable(t, col{"id", []int64{3}}, col{"v", []string{"c"}})
	t3 := buildTable(t, col{"id", []int64{4, 5, 6}}, col{"v", []string{"d", "e", "f"}})

	merged, err := Concat([]arrow.Table{t1, t2, t3})
	require.NoError(t, err)
	defer merged.Release()

	assert.Equal(t, int64(6), merged.NumRows())
	assert.Equal(t, []string{"id", "v"}, columnNames(merged))
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, int64Column(t, merged, "id"))
}

func TestConcat_Single(t *testing.T) {
	t1 := buildTable(t, col{"id", []int64{7}})

	merged, err := Concat([]arrow.Table{t1})
	require.NoError(t, err)
	defer merged.Release()

	assert.Equal(t, []int64{7}, int64Column(t, merged, "id"))
}

func TestConcat_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		a, b arrow.Table
	}{
		{
			"different names",
			buildTable(t, col{"id", []int64{1}}),
			buildTable(t, col{"other", []int64{1}}),
		},
		{
			"different order",
			buildTable(t, col{"a", []int64{1}}, col{"b", []int64{1}}),
			buildTable(t, col{"b", []int64{1}}, col{"a", []int64{1}}),
		},
		{
			"different types",
			buildTable(t, col{"id", []int64{1}}),
			buildTable(t, col{"id", []string{"1"}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Concat([]arrow.Table{tt.a, tt.b})
			assert.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}

	_, err := Concat(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
