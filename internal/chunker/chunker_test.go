package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordList builds "word1 word2 ... wordN".
func wordList(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i+1)
	}
	return strings.Join(words, " ")
}

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultMaxWords, c.maxWords)
	assert.Equal(t, DefaultOverlap, c.overlap)
}

func TestNew_OverlapClampedToWindow(t *testing.T) {
	c := New(WithMaxWords(100), WithOverlap(100))
	assert.Equal(t, 25, c.overlap)
}

func TestChunk_EmptyText_SingleEmptyChunk(t *testing.T) {
	c := New()
	chunks := c.Chunk("", "doc1")

	require.Len(t, chunks, 1)
	assert.Equal(t, "doc1_chunk_0", chunks[0].ID)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Empty(t, chunks[0].Content)
}

func TestChunk_SmallText_Verbatim(t *testing.T) {
	c := New()
	text := "hello  world\nwith   odd whitespace"
	chunks := c.Chunk(text, "doc1")

	require.Len(t, chunks, 1)
	// A single window keeps the original text untouched.
	assert.Equal(t, text, chunks[0].Content)
}

func TestChunk_OverlapScenario(t *testing.T) {
	// 4500 words with a 4000-word window and 200-word overlap:
	// chunk 0 holds words 1-4000, chunk 1 starts at word 3801.
	c := New(WithMaxWords(4000), WithOverlap(200))
	chunks := c.Chunk(wordList(4500), "doc1")

	require.Len(t, chunks, 2)

	first := strings.Fields(chunks[0].Content)
	require.Len(t, first, 4000)
	assert.Equal(t, "word1", first[0])
	assert.Equal(t, "word4000", first[3999])

	second := strings.Fields(chunks[1].Content)
	require.Len(t, second, 700)
	assert.Equal(t, "word3801", second[0])
	assert.Equal(t, "word4500", second[699])
}

func TestChunk_IndicesDense(t *testing.T) {
	c := New(WithMaxWords(50), WithOverlap(10))
	chunks := c.Chunk(wordList(500), "doc1")

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, fmt.Sprintf("doc1_chunk_%d", i), chunk.ID)
		assert.Equal(t, "doc1", chunk.DocumentID)
	}
}

func TestChunk_OverlapReconstructsText(t *testing.T) {
	const maxWords, overlap = 50, 10
	c := New(WithMaxWords(maxWords), WithOverlap(overlap))

	original := strings.Fields(wordList(437))
	chunks := c.Chunk(strings.Join(original, " "), "doc1")
	require.Greater(t, len(chunks), 1)

	// Dropping the leading overlap words of every chunk after the
	// first reconstructs the original word sequence.
	var rebuilt []string
	for k, chunk := range chunks {
		words := strings.Fields(chunk.Content)
		if k > 0 {
			words = words[overlap:]
		}
		rebuilt = append(rebuilt, words...)
	}
	assert.Equal(t, original, rebuilt)

	// The overlap region appears in both neighbouring chunks.
	for k := 1; k < len(chunks); k++ {
		prev := strings.Fields(chunks[k-1].Content)
		cur := strings.Fields(chunks[k].Content)
		assert.Equal(t, prev[len(prev)-overlap:], cur[:overlap])
	}
}

func TestChunk_PreviewTruncated(t *testing.T) {
	c := New(WithMaxWords(10), WithOverlap(2))
	chunks := c.Chunk(wordList(30), "doc1")

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk.Preview)), 203) // 200 + "..."
	}
}
