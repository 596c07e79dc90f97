package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Builder accumulates context blocks under a character budget. Each
// block is trimmed to perBlockLimit characters, and once a block would
// push the total past totalLimit it and everything after it is dropped.
type Builder struct {
	perBlockLimit int
	totalLimit    int
	blocks        []string
	totalChars    int
	full          bool
}

func NewBuilder(perBlockLimit, totalLimit int) *Builder {
	return &Builder{
		perBlockLimit: perBlockLimit,
		totalLimit:    totalLimit,
	}
}

// Add appends a labeled block if it fits the remaining budget. It
// returns false once the budget is exhausted; callers can stop feeding
// blocks at that point.
func (b *Builder) Add(label, text string) bool {
	if b.full {
		return false
	}

	// Limits count characters, not bytes, and trimming stays on rune
	// boundaries so multi-byte text is never cut mid-rune
	trimmed := text
	if runes := []rune(trimmed); len(runes) > b.perBlockLimit {
		trimmed = string(runes[:b.perBlockLimit])
	}
	block := fmt.Sprintf("[%s]\n%s", label, trimmed)

	size := utf8.RuneCountInString(block)
	if b.totalChars+size > b.totalLimit {
		b.full = true
		return false
	}

	b.blocks = append(b.blocks, block)
	b.totalChars += size
	return true
}

// Context returns the accumulated blocks separated by blank lines.
func (b *Builder) Context() string {
	return strings.Join(b.blocks, "\n\n")
}

// Len reports how many blocks made it under the budget.
func (b *Builder) Len() int {
	return len(b.blocks)
}

const answerTemplate = `You are a helpful assistant that answers questions ONLY using the provided document context.
Conversation history is provided ONLY to understand the question, not as a source of facts.
If the answer is not in the document context, say "I do not know".

CONVERSATION HISTORY:
%s

DOCUMENT CONTEXT:
%s

QUESTION:
%s

INSTRUCTIONS:
- Answer concisely
- Do not add external knowledge
- Cite sources using chunk_index`

// BuildAnswerPrompt renders the grounded answering prompt. History may
// be empty, in which case the model is told there is none.
func BuildAnswerPrompt(query, history, context string) string {
	if history == "" {
		history = "None"
	}
	return fmt.Sprintf(answerTemplate, history, context, query)
}
