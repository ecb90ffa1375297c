// Package chunker splits extracted text into overlapping word windows.
package chunker

import (
	"strings"

	"github.com/arkiv-labs/arkiv-cli/internal/core/domain"
	"github.com/arkiv-labs/arkiv-cli/internal/core/ports/driven"
)

// DefaultMaxWords is the default window size in words.
const DefaultMaxWords = 4000

// DefaultOverlap is the default number of words shared between
// consecutive windows.
const DefaultOverlap = 200

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker produces fixed-size overlapping chunks. Word splitting uses
// whitespace as the sole delimiter; no punctuation-aware segmentation.
type Chunker struct {
	maxWords int
	overlap  int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxWords sets the window size in words.
func WithMaxWords(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxWords = n
		}
	}
}

// WithOverlap sets the overlap between windows in words.
func WithOverlap(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.overlap = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxWords: DefaultMaxWords,
		overlap:  DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave the window some forward progress.
	if c.overlap >= c.maxWords {
		c.overlap = c.maxWords / 4
	}

	return c
}

// Chunk splits text into ordered chunks owned by documentID.
//
// Text at or under the window size becomes a single chunk holding the
// verbatim text; empty text still yields one empty chunk, so a processed
// document never has zero chunks. Larger text is windowed: each window
// holds maxWords words rejoined with single spaces, and consecutive
// windows share the trailing overlap words of the previous one.
func (c *Chunker) Chunk(text, documentID string) []domain.Chunk {
	words := strings.Fields(text)

	if len(words) <= c.maxWords {
		return []domain.Chunk{newChunk(documentID, 0, text)}
	}

	step := c.maxWords - c.overlap
	estimated := len(words)/step + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start := 0; start < len(words); start += step {
		end := start + c.maxWords
		if end > len(words) {
			end = len(words)
		}

		content := strings.Join(words[start:end], " ")
		chunks = append(chunks, newChunk(documentID, len(chunks), content))

		// The window that reaches the end is the last chunk.
		if start+c.maxWords >= len(words) {
			break
		}
	}

	return chunks
}

func newChunk(documentID string, index int, content string) domain.Chunk {
	return domain.Chunk{
		ID:         domain.ChunkID(documentID, index),
		DocumentID: documentID,
		Index:      index,
		Content:    content,
		Preview:    domain.Preview(content),
	}
}
