package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDefaultsAndBounds(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: DefaultLimit}, Parse("", ""))
	assert.Equal(t, Params{Page: 1, Limit: DefaultLimit}, Parse("-3", "abc"))
	assert.Equal(t, Params{Page: 4, Limit: MaxLimit}, Parse("4", "500"))
	assert.Equal(t, 30, Parse("4", "10").Offset())
}

func TestParseHugePageStaysPastTheEnd(t *testing.T) {
	p := Parse("461168601842738792", "20")
	assert.Equal(t, MaxPage, p.Page)
	assert.Positive(t, p.Offset())

	p = Parse("9223372036854775807", "100")
	assert.Positive(t, p.Offset())
	assert.False(t, NewMeta(p, 1).HasNextPage)

	assert.Equal(t, math.MaxInt, Params{Page: math.MaxInt, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	cases := []struct {
		params     Params
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{Params{Page: 1, Limit: 10}, 0, 0, false, false},
		{Params{Page: 1, Limit: 10}, 10, 1, false, false},
		{Params{Page: 1, Limit: 10}, 11, 2, true, false},
		{Params{Page: 2, Limit: 10}, 11, 2, false, true},
		{Params{Page: 5, Limit: 10}, 11, 2, false, true},
	}

	for _, tc := range cases {
		m := NewMeta(tc.params, tc.total)
		assert.Equal(t, tc.totalPages, m.TotalPages)
		assert.Equal(t, tc.hasNext, m.HasNextPage)
		assert.Equal(t, tc.hasPrev, m.HasPrevPage)
		assert.Equal(t, tc.total, m.Total)
	}
}
