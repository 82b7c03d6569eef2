package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/skype-archive/internal/archive"
	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

const (
	colorReset   = "\033[0m"
	colorOwner   = "\033[1;34m" // bold blue
	colorPeer    = "\033[1;32m" // bold green
	colorMedia   = "\033[2;35m" // dim magenta
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// OwnerLabel is shown instead of the owner's name.
const OwnerLabel = "You"

type Options struct {
	HitSeq  int    // position of the hit message in the chat, -1 = none
	Context int    // messages before/after hit to show, <0 = all
	Width   int    // wrap width (0 = no wrap)
	Query   string // search query for keyword highlighting
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	terms := strings.Fields(query)
	var filtered []string
	for _, t := range terms {
		if !fts5Operators[t] {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return text
	}
	// longest first, so "pizza" wins over "pi" at the same position
	sort.SliceStable(filtered, func(i, j int) bool { return len(filtered[i]) > len(filtered[j]) })
	quoted := make([]string, len(filtered))
	for i, t := range filtered {
		quoted[i] = regexp.QuoteMeta(t)
	}
	re := regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
	return re.ReplaceAllStringFunc(text, func(match string) string {
		return colorBoldRed + match + colorReset
	})
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// Header returns the chat title line: the chat name, the raw id after an
// "8:" prefix, and the date of the first message.
func Header(a *archive.Archive, key string) string {
	msgs := a.Chats[key]
	date := ""
	if len(msgs) > 0 {
		date = msgs[0].Timestamp
		if len(date) >= 10 {
			date = date[:10]
		}
	}
	h := fmt.Sprintf("%s (%s%s)", a.ChatName(key), parse.SenderPrefix, key)
	if date != "" {
		h += " since " + date
	}
	return h
}

// SenderLabel names the author of m as the chat view shows it.
func SenderLabel(a *archive.Archive, from string) string {
	if from == a.OwnerID {
		return OwnerLabel
	}
	return a.Contacts.Lookup(from)
}

// window picks the slice of messages to show around hit.
func window(total, hit, context int) (start, end int) {
	if context < 0 || total <= 2*context+1 {
		return 0, total
	}
	if hit < 0 || hit >= total {
		return 0, 2*context + 1
	}
	start = hit - context
	if start < 0 {
		start = 0
	}
	end = hit + context + 1
	if end > total {
		end = total
	}
	return start, end
}

// RenderChat renders a chat and returns the content, the 0-based line number
// of the hit message header (-1 if no hit), and any error.
func RenderChat(a *archive.Archive, key string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}

	msgs, ok := a.Chats[key]
	if !ok {
		return "", -1, fmt.Errorf("%w: %s", archive.ErrChatNotFound, key)
	}
	if len(msgs) == 0 {
		return "(empty chat)", -1, nil
	}

	start, end := window(len(msgs), opts.HitSeq, opts.Context)
	skipAfter := len(msgs) - end

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	separator := colorDim + "--------------------------------------------------" + colorReset
	wrapW := opts.Width

	// helper to track line count; wraps long lines if Width is set
	writeLine := func(s string) {
		wrapped := wrapLine(s, wrapW)
		for _, wl := range wrapped {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	writeLine(fmt.Sprintf("%s--- %s ---%s", colorDim, Header(a, key), colorReset))

	if start > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages before) ...%s", colorDim, start, colorReset))
	}

	for i := start; i < end; i++ {
		m := msgs[i]
		isHit := i == opts.HitSeq

		if i > start {
			writeLine(separator)
		}
		if isHit {
			hitLine = lineCount
		}

		label := SenderLabel(a, m.From)
		color := colorPeer
		if m.From == a.OwnerID {
			color = colorOwner
		}

		if isHit {
			writeLine(fmt.Sprintf("%s>> %s > %s <<%s", colorHit, label, m.Timestamp, colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", color, label, colorReset, colorDim, m.Timestamp, colorReset))
		}

		if m.Content != "" {
			text := highlightKeywords(m.Content, opts.Query)
			for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
				writeLine(tl)
			}
		}
		if m.MediaPath != nil {
			writeLine(fmt.Sprintf("  %s[media] %s%s", colorMedia, *m.MediaPath, colorReset))
		}
		writeLine("") // blank line after message
	}

	if skipAfter > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages after) ...%s", colorDim, skipAfter, colorReset))
	}

	return b.String(), hitLine, nil
}
