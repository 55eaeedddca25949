package resume

import (
	"html"
	"regexp"
	"strings"
)

var (
	xmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	wordParaEndRe  = regexp.MustCompile(`</w:p>`)
	wordLineBreak  = regexp.MustCompile(`<w:(br|cr)\s*/>`)
	wordTabElement = regexp.MustCompile(`<w:tab\s*/>`)
)

// wordXMLToText converts WordprocessingML (document.xml) to plain text:
// paragraphs become lines, tags are stripped and entities unescaped.
func wordXMLToText(content string) string {
	content = wordParaEndRe.ReplaceAllString(content, "\n")
	content = wordLineBreak.ReplaceAllString(content, "\n")
	content = wordTabElement.ReplaceAllString(content, "\t")
	plain := html.UnescapeString(xmlTagRegex.ReplaceAllString(content, ""))
	return collapseLines(plain)
}

// collapseLines squeezes runs of spaces inside each line and drops blank
// lines, keeping one line per paragraph.
func collapseLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
