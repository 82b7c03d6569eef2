package archive

import (
	"strings"

	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

// DisplayName renders a readable label for a canonical key.
func DisplayName(key, ownerID string, contacts parse.Contacts) string {
	participants := Participants(key)

	if len(participants) == 2 {
		for _, p := range participants {
			if p != ownerID {
				return "Chat with " + contacts.Lookup(p)
			}
		}
	}

	var others []string
	for _, p := range participants {
		if p != ownerID {
			others = append(others, contacts.Lookup(p))
		}
	}
	if len(others) > 0 {
		return strings.Join(others, ", ")
	}
	return key
}

// NameChats returns a copy of contacts extended with a display name for every
// chat key. User entries resolve names and are never replaced.
func NameChats(keys []string, ownerID string, contacts parse.Contacts) parse.Contacts {
	out := contacts.Clone()
	for _, key := range keys {
		out.Observe(key, DisplayName(key, ownerID, contacts))
	}
	return out
}
