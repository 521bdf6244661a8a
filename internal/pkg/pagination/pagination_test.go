package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 7, ParsePage("7"))
}

func TestPaginateFullAndPartialPages(t *testing.T) {
	// 13 items: page 1 holds 10, page 2 holds the remaining 3
	p := Paginate(13, 1)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, 2, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)
	assert.Equal(t, 2, p.NextPage())

	p = Paginate(13, 2)
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, 10, p.Offset)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 1, p.PrevPage())
}

func TestPaginateClampsPastTheEnd(t *testing.T) {
	// A page beyond the last valid one returns the same slice as the last page
	last := Paginate(13, 2)
	beyond := Paginate(13, 99)
	assert.Equal(t, last, beyond)
}

func TestPaginateEmptyCollection(t *testing.T) {
	p := Paginate(0, 5)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestPaginateExactMultiple(t *testing.T) {
	p := Paginate(20, 2)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 10, p.Offset)
	assert.False(t, p.HasNext)
}
