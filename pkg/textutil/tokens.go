package textutil

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// TruncateTokens keeps the tail of text within maxTokens. The most recent
// part of a transcript matters most, so the head is dropped.
func TruncateTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	// A cl100k token is never shorter than one byte.
	if len(text) <= maxTokens {
		return text
	}

	enc, err := getTokenizer()
	if err != nil {
		// Roughly four bytes per token without the encoder
		limit := maxTokens * 4
		if len(text) <= limit {
			return text
		}
		return strings.ToValidUTF8(text[len(text)-limit:], "")
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[len(tokens)-maxTokens:])
}
