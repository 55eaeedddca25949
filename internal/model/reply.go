package model

import "strings"

// SkipSentinel is the exact model output meaning "do not reply".
const SkipSentinel = "SKIP_AUTOREPLY"

// Classification tags returned alongside every reply.
const (
	ReasonRecruiter = "recruiter_message"
	ReasonSkipped   = "non_recruiter_or_unclear"
)

// Profile is the user's identity and source-of-truth text. It is built once
// at startup and only ever read afterwards.
type Profile struct {
	UserName    string
	PhoneNumber string
	ResumeLink  string
	ResumeText  string // resume summary, verbatim
	ProfileText string // LinkedIn about section, verbatim
	HomeRegion  string // region the relocation rule is scoped to
}

// GenerateRequest is the inbound body of POST /generate_reply.
type GenerateRequest struct {
	Message        string  `json:"message"`
	ThreadContext  *string `json:"thread_context,omitempty"`
	SenderHeadline *string `json:"sender_headline,omitempty"`
}

// Thread returns the thread context, or "" when absent.
func (r GenerateRequest) Thread() string {
	if r.ThreadContext == nil {
		return ""
	}
	return *r.ThreadContext
}

// Headline returns the sender headline, or "" when absent.
func (r GenerateRequest) Headline() string {
	if r.SenderHeadline == nil {
		return ""
	}
	return *r.SenderHeadline
}

// GenerateResponse is the JSON result of a successful draft.
type GenerateResponse struct {
	Reply  string `json:"reply"`
	Reason string `json:"reason"`
}

// ReasonFor classifies a reply: skipped iff the trimmed text is exactly the sentinel.
func ReasonFor(reply string) string {
	if strings.TrimSpace(reply) == SkipSentinel {
		return ReasonSkipped
	}
	return ReasonRecruiter
}

// NewResponse trims the raw generated text and derives its reason.
func NewResponse(raw string) GenerateResponse {
	reply := strings.TrimSpace(raw)
	return GenerateResponse{Reply: reply, Reason: ReasonFor(reply)}
}
