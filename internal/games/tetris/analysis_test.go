package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmptyBoard(t *testing.T) {
	a := AnalyzeColumns(NewBoard(10, 20))
	require.Len(t, a.Columns, 10)
	assert.Equal(t, 0, a.MaxHeight)
	assert.Equal(t, 0, a.Holes)
	assert.Equal(t, "O", a.Hint)
}

func TestAnalyzeHeightsAndHoles(t *testing.T) {
	b := NewBoard(4, 10)
	b.Set(5, 0, 1)
	b.Set(9, 0, 1)
	b.Set(9, 1, 2)
	b.Set(7, 2, 3)

	a := AnalyzeColumns(b)
	assert.Equal(t, ColumnStats{Height: 5, Holes: 3}, a.Columns[0])
	assert.Equal(t, ColumnStats{Height: 1, Holes: 0}, a.Columns[1])
	assert.Equal(t, ColumnStats{Height: 3, Holes: 2}, a.Columns[2])
	assert.Equal(t, ColumnStats{}, a.Columns[3])
	assert.Equal(t, 5, a.MaxHeight)
	assert.Equal(t, 5, a.Holes)
	assert.Equal(t, "I", a.Hint, "a column with more than two holes wants an I piece")
}

func TestAnalyzeTallStackHint(t *testing.T) {
	b := NewBoard(4, 8)
	for row := 1; row < 8; row++ {
		fillRow(b, row, 1)
	}
	a := AnalyzeColumns(b)
	assert.Equal(t, 7, a.MaxHeight)
	assert.Equal(t, 0, a.Holes)
	assert.Equal(t, "T", a.Hint)
}
