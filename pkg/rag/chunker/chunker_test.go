package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestSplit_EmptyText(t *testing.T) {
	assert.Nil(t, Split("", 300, 60))
	assert.Nil(t, Split("   \n\t  ", 300, 60))
}

func TestSplit_ShorterThanWindow(t *testing.T) {
	text := makeWords(50)
	chunks := Split(text, 300, 60)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplit_ExactWindow(t *testing.T) {
	text := makeWords(300)
	chunks := Split(text, 300, 60)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplit_OverlapBetweenConsecutiveChunks(t *testing.T) {
	chunks := Split(makeWords(540), 300, 60)

	require.Len(t, chunks, 2)

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	require.Len(t, first, 300)
	require.Len(t, second, 300)

	// Last 60 words of chunk 0 are the first 60 words of chunk 1
	assert.Equal(t, first[240:], second[:60])
}

func TestSplit_CoversEveryWord(t *testing.T) {
	const total = 1000
	chunks := Split(makeWords(total), 300, 60)

	seen := make(map[string]bool)
	for _, c := range chunks {
		for _, w := range strings.Fields(c) {
			seen[w] = true
		}
	}
	assert.Len(t, seen, total)
	assert.True(t, seen["w0"])
	assert.True(t, seen[fmt.Sprintf("w%d", total-1)])
}

func TestSplit_StepGuardWhenOverlapTooLarge(t *testing.T) {
	// overlap >= window would otherwise never advance
	chunks := Split(makeWords(20), 5, 5)

	require.Len(t, chunks, 4)
	for _, c := range chunks {
		assert.Len(t, strings.Fields(c), 5)
	}
}
