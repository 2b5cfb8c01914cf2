package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"history-term", "appears", "again"}, Tokenize("History-term appears again."))
	assert.Equal(t, []string{"don't", "stop"}, Tokenize("Don't stop"))
	assert.Empty(t, Tokenize("!!! ..."))
}

func TestNormalizeTerm(t *testing.T) {
	assert.Equal(t, "history term", NormalizeTerm("  History   Term  "))
	assert.Equal(t, "history-term", NormalizeTerm("History-Term"))
	assert.Equal(t, "", NormalizeTerm("   "))
	assert.Equal(t, "!!!", NormalizeTerm("!!!"))
}

func TestTokenSequenceContains(t *testing.T) {
	tokens := Tokenize("you are such an example of this")
	assert.True(t, TokenSequenceContains(tokens, []string{"such", "an", "example"}))
	assert.False(t, TokenSequenceContains(tokens, []string{"example", "such"}))
	assert.False(t, TokenSequenceContains(tokens, nil))
	assert.False(t, TokenSequenceContains(tokens, []string{"missing"}))
}

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("This is one. This is two! Is this three? Yes.")
	assert.Equal(t, []string{"This is one.", "This is two!", "Is this three?", "Yes."}, sentences)
}

func TestSplitSentencesDropsEmptyChunks(t *testing.T) {
	sentences := SplitSentences("One.   Two.")
	assert.Equal(t, []string{"One.", "Two."}, sentences)
}

func TestSplitSentencesNoTerminators(t *testing.T) {
	assert.Equal(t, []string{"no terminators here"}, SplitSentences("no terminators here"))
}
