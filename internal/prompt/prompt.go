// Package prompt renders the instruction text sent to the generation service.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/amishk599/replydraft/internal/model"
)

// Version identifies the wording of the embedded template. Bump it whenever
// the instruction text changes.
const Version = "recruiter_reply_v1"

//go:embed templates/recruiter_reply_v1.tmpl
var recruiterReplyRaw string

// RecruiterReplyTemplate is parsed once at package init and reused on every Build call.
var RecruiterReplyTemplate = template.Must(template.New(Version).Parse(recruiterReplyRaw))

// fields is the data the template renders. Optional request fields are
// already flattened to "".
type fields struct {
	UserName       string
	PhoneNumber    string
	ResumeLink     string
	HomeRegion     string
	ResumeText     string
	ProfileText    string
	SenderHeadline string
	ThreadContext  string
	Message        string
}

// Build composes the full prompt for one request. It has no side effects.
func Build(p model.Profile, req model.GenerateRequest) (string, error) {
	var buf bytes.Buffer
	err := RecruiterReplyTemplate.Execute(&buf, fields{
		UserName:       p.UserName,
		PhoneNumber:    p.PhoneNumber,
		ResumeLink:     p.ResumeLink,
		HomeRegion:     p.HomeRegion,
		ResumeText:     p.ResumeText,
		ProfileText:    p.ProfileText,
		SenderHeadline: req.Headline(),
		ThreadContext:  req.Thread(),
		Message:        req.Message,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
