// Package screen decides locally whether a message looks recruiter-related.
package screen

import (
	"strings"

	"github.com/amishk599/replydraft/internal/model"
)

// DefaultHeadlineKeywords match typical recruiter headlines.
var DefaultHeadlineKeywords = []string{"recruiter", "talent", "hiring", "hr", "people partner"}

// DefaultMessageKeywords match hiring vocabulary in the message body.
var DefaultMessageKeywords = []string{
	"opportunity", "role", "position", "opening", "hiring", "recruiter",
	"cv", "resume", "total exp", "relevant exp", "current ctc", "expected ctc",
	"notice period",
}

// KeywordScreen matches a request when the sender headline contains any
// headline keyword or the message contains any message keyword.
// Matching is case-insensitive substring. If both keyword lists are empty
// every request matches.
type KeywordScreen struct {
	headlineKeywords []string
	messageKeywords  []string
}

// NewKeywordScreen lowercases the keywords once so Match does not have to.
func NewKeywordScreen(headlineKeywords, messageKeywords []string) *KeywordScreen {
	return &KeywordScreen{
		headlineKeywords: lowerAll(headlineKeywords),
		messageKeywords:  lowerAll(messageKeywords),
	}
}

// Match reports whether req is worth sending upstream.
func (s *KeywordScreen) Match(req model.GenerateRequest) bool {
	if len(s.headlineKeywords) == 0 && len(s.messageKeywords) == 0 {
		return true
	}
	if containsAny(strings.ToLower(req.Headline()), s.headlineKeywords) {
		return true
	}
	return containsAny(strings.ToLower(req.Message), s.messageKeywords)
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
