// Package chunker splits corpus text into fixed-size overlapping windows.
package chunker

import "strings"

const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// Chunk is one window of the corpus. Offset and Len are measured in characters (runes).
type Chunk struct {
	Index  int
	Offset int
	Text   string
}

// Len returns the chunk length in characters.
func (c Chunk) Len() int {
	return len([]rune(c.Text))
}

// NormalizeOverlap returns overlap when it lies in [0, size). Otherwise it falls back to
// DefaultOverlap, scaled down to the 1000/200 ratio when size is not larger than it.
func NormalizeOverlap(size, overlap int) int {
	if overlap >= 0 && overlap < size {
		return overlap
	}
	if DefaultOverlap < size {
		return DefaultOverlap
	}
	return size * DefaultOverlap / DefaultSize
}

// Split cuts text into windows of size characters. Each window starts size-overlap
// characters after the previous one; splitting stops once a window reaches the end of
// the text, so the final chunk may be shorter than size. Windows holding only
// whitespace are dropped.
func Split(text string, size, overlap int) []Chunk {
	if size <= 0 {
		size = DefaultSize
	}
	overlap = NormalizeOverlap(size, overlap)

	runes := []rune(text)
	var chunks []Chunk
	for start := 0; start < len(runes); start += size - overlap {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		window := string(runes[start:end])
		if strings.TrimSpace(window) != "" {
			chunks = append(chunks, Chunk{
				Index:  len(chunks),
				Offset: start,
				Text:   window,
			})
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// Texts returns the chunk texts in order.
func Texts(chunks []Chunk) []string {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	return texts
}
