package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offsets(chunks []Chunk) []int {
	out := make([]int, len(chunks))
	for i := range chunks {
		out[i] = chunks[i].Offset
	}
	return out
}

func TestSplit_FixedWindows(t *testing.T) {
	text := strings.Repeat("abcdefghij", 240) // 2400 characters

	chunks := Split(text, DefaultSize, DefaultOverlap)

	require.Len(t, chunks, 3)
	assert.Equal(t, []int{0, 800, 1600}, offsets(chunks))
	assert.Equal(t, 1000, chunks[0].Len())
	assert.Equal(t, 1000, chunks[1].Len())
	assert.Equal(t, 800, chunks[2].Len())
	assert.Equal(t, text[800:1000], chunks[1].Text[:200], "overlap with previous chunk")
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, text[c.Offset:c.Offset+c.Len()], c.Text)
	}
}

func TestSplit_Boundaries(t *testing.T) {
	testCases := []struct {
		name    string
		length  int
		offsets []int
		lastLen int
	}{
		{"empty", 0, []int{}, 0},
		{"shorter than size", 10, []int{0}, 10},
		{"exactly size", 1000, []int{0}, 1000},
		{"one past size", 1001, []int{0, 800}, 201},
		{"exactly two windows", 1800, []int{0, 800}, 1000},
		{"long", 4000, []int{0, 800, 1600, 2400, 3200}, 800},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chunks := Split(strings.Repeat("x", tc.length), DefaultSize, DefaultOverlap)
			assert.Equal(t, tc.offsets, append([]int{}, offsets(chunks)...))
			if len(chunks) > 0 {
				last := chunks[len(chunks)-1]
				assert.Equal(t, tc.lastLen, last.Len())
				assert.LessOrEqual(t, last.Len(), DefaultSize)
				assert.Equal(t, tc.length, last.Offset+last.Len())
			}
		})
	}
}

func TestSplit_CountsCharactersNotBytes(t *testing.T) {
	text := strings.Repeat("é", 1200)

	chunks := Split(text, DefaultSize, DefaultOverlap)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1000, chunks[0].Len())
	assert.Equal(t, 400, chunks[1].Len())
}

func TestSplit_InvalidOverlapFallsBack(t *testing.T) {
	chunks := Split(strings.Repeat("x", 30), 10, 10)
	assert.Equal(t, []int{0, 8, 16, 24}, offsets(chunks))

	chunks = Split(strings.Repeat("x", 2400), DefaultSize, -1)
	assert.Equal(t, []int{0, 800, 1600}, offsets(chunks))
}

func TestNormalizeOverlap(t *testing.T) {
	testCases := []struct {
		size, overlap, want int
	}{
		{1000, 200, 200},
		{1000, 0, 0},
		{1000, 1000, DefaultOverlap},
		{1000, -5, DefaultOverlap},
		{500, 600, DefaultOverlap},
		{100, 100, 20},
		{10, 10, 2},
		{1, 1, 0},
	}
	for _, tc := range testCases {
		got := NormalizeOverlap(tc.size, tc.overlap)
		assert.Equal(t, tc.want, got, "size=%d overlap=%d", tc.size, tc.overlap)
		assert.Less(t, got, tc.size)
	}
}

func TestSplit_DropsWhitespaceOnlyWindows(t *testing.T) {
	assert.Empty(t, Split(" ", DefaultSize, DefaultOverlap))
	assert.Empty(t, Split("   \n\t  ", 4, 1))

	chunks := Split("abc"+strings.Repeat(" ", 10)+"xyz", 4, 0)
	assert.Equal(t, []string{"abc ", " xyz"}, Texts(chunks))
	assert.Equal(t, []int{0, 12}, offsets(chunks))
	assert.Equal(t, 1, chunks[1].Index)
}

func TestTexts(t *testing.T) {
	chunks := Split("hello world", 5, 0)
	assert.Equal(t, []string{"hello", " worl", "d"}, Texts(chunks))
}
