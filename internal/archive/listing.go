package archive

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ChatSummary is one row of the chat list.
type ChatSummary struct {
	Key      string
	Name     string
	Messages int
	First    string
	Last     string
}

// ChatName returns the chat's contact entry, or the key.
func (a *Archive) ChatName(key string) string {
	return a.Contacts.Lookup(key)
}

// ListChats returns non-empty chats whose name contains filter (case-insensitive),
// Latin names first, then Cyrillic, then the rest, each alphabetically.
func (a *Archive) ListChats(filter string) []ChatSummary {
	filter = strings.ToLower(strings.TrimSpace(filter))

	var out []ChatSummary
	for key, msgs := range a.Chats {
		if len(msgs) == 0 {
			continue
		}
		name := a.ChatName(key)
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		out = append(out, ChatSummary{
			Key:      key,
			Name:     name,
			Messages: len(msgs),
			First:    msgs[0].Timestamp,
			Last:     msgs[len(msgs)-1].Timestamp,
		})
	}

	col := collate.New(language.Russian, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.Slice(out, func(i, j int) bool {
		gi, gj := scriptGroup(out[i].Name), scriptGroup(out[j].Name)
		if gi != gj {
			return gi < gj
		}
		if c := col.CompareString(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func scriptGroup(name string) int {
	r, _ := utf8.DecodeRuneInString(name)
	switch {
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return 1
	case (r >= 'а' && r <= 'я') || (r >= 'А' && r <= 'Я') || r == 'ё' || r == 'Ё':
		return 2
	default:
		return 3
	}
}
