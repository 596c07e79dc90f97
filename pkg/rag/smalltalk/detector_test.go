package smalltalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSmallTalk(t *testing.T) {
	smallTalk := []string{
		"hi", "Hi", "HELLO", "hey", "how are you", "how are you?",
		"thank", "thanks", "thank you", "ok", "okay", "cool",
		"  hi  ", "\tthanks\n",
	}
	for _, q := range smallTalk {
		assert.True(t, IsSmallTalk(q), "expected small talk: %q", q)
	}

	questions := []string{
		"hi, what does the contract say",
		"what is the termination clause?",
		"hello world program in the document",
		"okay but what about section 3",
		"",
		"   ",
	}
	for _, q := range questions {
		assert.False(t, IsSmallTalk(q), "expected real query: %q", q)
	}
}
