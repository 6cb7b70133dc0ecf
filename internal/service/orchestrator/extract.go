package orchestrator

import (
	"slices"
	"strings"
	"unicode"

	"github.com/sandevgo/edagent/internal/core"
)

// goalPatterns are tried in order; longer phrases precede their prefixes.
var goalPatterns = []string{
	"becoming an", "becoming a", "become an", "become a",
	"learn to be", "want to be", "career in", "work as", "job as",
	"learn", "study",
}

// Requests that name no goal by themselves.
var genericPathRequests = []string{
	"learning path", "roadmap", "study plan", "career path", "curriculum", "plan",
}

const minGoalLen = 3

// ExtractGoal pulls the learning goal out of a learning-path request, or
// returns "" when the user still has to name one.
func ExtractGoal(message string) string {
	msg := strings.TrimSpace(message)
	lower := strings.ToLower(msg)
	if msg == "" || strings.HasSuffix(msg, "?") || strings.HasPrefix(lower, "how") {
		return ""
	}
	// Offsets are only shared when lowering kept the byte layout.
	src := msg
	if len(lower) != len(msg) {
		src = lower
	}

	matched := false
	for _, p := range goalPatterns {
		idx := indexWord(lower, p)
		if idx < 0 {
			continue
		}
		matched = true
		if goal := cleanGoal(src[idx+len(p):]); len(goal) > minGoalLen {
			return goal
		}
	}
	if matched {
		return ""
	}

	for _, p := range genericPathRequests {
		if strings.Contains(lower, p) {
			return ""
		}
	}
	if len(msg) > 5 {
		return cleanGoal(msg)
	}
	return ""
}

func cleanGoal(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!,;: ")
	lower := strings.ToLower(s)
	for _, prefix := range []string{"how to ", "to ", "an ", "a "} {
		if strings.HasPrefix(lower, prefix) && len(s) > len(prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			lower = strings.ToLower(s)
		}
	}
	if len(s) < minGoalLen {
		return ""
	}
	return s
}

// indexWord finds phrase in text at word boundaries.
func indexWord(text, phrase string) int {
	offset := 0
	for {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return start
		}
		offset = start + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(text[i-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r := rune(text[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// topicNoise are request verbs, content nouns and filler dropped from a
// content request to leave the subject.
var topicNoise = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		recommend recommendations recommendation suggest suggestions find show help me
		course courses tutorial tutorials video videos resource resources material materials
		book books article articles podcast podcasts about learn can could would you please some any good great best
		i want need like looking for get give a an the on to with of is are there my`) {
		topicNoise[w] = struct{}{}
	}
}

const minTopicLen = 2

// requestedTypes maps the media nouns of a content request to a content type.
// "tutorial" is left out since users say it of any format.
var requestedTypes = map[string]core.ContentType{
	"video":    core.TypeVideo,
	"videos":   core.TypeVideo,
	"course":   core.TypeCourse,
	"courses":  core.TypeCourse,
	"book":     core.TypeBook,
	"books":    core.TypeBook,
	"article":  core.TypeArticle,
	"articles": core.TypeArticle,
	"podcast":  core.TypePodcast,
	"podcasts": core.TypePodcast,
}

// ExtractContentTypes returns the content types a request names explicitly,
// in order of first mention.
func ExtractContentTypes(message string) []core.ContentType {
	var types []core.ContentType
	for _, tok := range strings.Fields(strings.ToLower(message)) {
		ct, ok := requestedTypes[strings.Trim(tok, `?!.,;:"'()[]`)]
		if ok && !slices.Contains(types, ct) {
			types = append(types, ct)
		}
	}
	return types
}

// ExtractTopic returns the subject of a content request, or "" if none is named.
func ExtractTopic(message string) string {
	var kept []string
	for _, tok := range strings.Fields(strings.ToLower(message)) {
		tok = strings.Trim(tok, `?!.,;:"'()[]`)
		if tok == "" {
			continue
		}
		if _, noise := topicNoise[tok]; noise {
			continue
		}
		kept = append(kept, tok)
	}
	topic := strings.Join(kept, " ")
	if len(topic) <= minTopicLen {
		return ""
	}
	return topic
}
