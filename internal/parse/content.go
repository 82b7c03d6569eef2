package parse

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMediaPrefix is prepended to detected attachment filenames.
const DefaultMediaPrefix = "media/"

var (
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>`)
	vcardNameRe = regexp.MustCompile(`vcard_name="([^"]+)"`)
	uriTextRe   = regexp.MustCompile(`(?i)>([^<]+)</URI>`)
)

var mediaExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".mp4", ".mov"}

// Payload is the sanitized form of a raw message body.
type Payload struct {
	Content   string
	MediaPath *string
}

// StripTags removes markup tags without touching entities or whitespace.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// Sanitize turns line-break tags into newlines, strips remaining tags,
// decodes HTML entities and trims the result. Entities are decoded after tags
// are stripped, so escaped markup comes out as literal text.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	s := lineBreakRe.ReplaceAllString(raw, "\n")
	s = StripTags(s)
	s = html.UnescapeString(s)
	s = norm.NFC.String(s)
	return strings.TrimSpace(s)
}

// MediaFilename finds an attachment filename in raw content.
// A vcard_name attribute wins over a URI element's text.
func MediaFilename(raw string) (string, bool) {
	if m := vcardNameRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	for _, m := range uriTextRe.FindAllStringSubmatch(raw, -1) {
		name := strings.TrimSpace(m[1])
		if hasMediaExtension(name) {
			return name, true
		}
	}
	return "", false
}

func hasMediaExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ExtractPayload sanitizes raw content and resolves its media reference.
func ExtractPayload(raw, mediaPrefix string) Payload {
	var p Payload
	if name, ok := MediaFilename(raw); ok {
		path := mediaPrefix + name
		p.MediaPath = &path
	}
	p.Content = Sanitize(raw)
	return p
}
