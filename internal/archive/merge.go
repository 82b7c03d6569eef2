package archive

import (
	"sort"

	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

// Groups maps a chat key to its messages.
type Groups map[string][]parse.Message

// Add appends msgs to the group for key.
func (g Groups) Add(key string, msgs ...parse.Message) {
	g[key] = append(g[key], msgs...)
}

// Finalize sorts every group by timestamp and drops empty ones.
func (g Groups) Finalize() Groups {
	for key, msgs := range g {
		if len(msgs) == 0 {
			delete(g, key)
			continue
		}
		SortMessages(msgs)
	}
	return g
}

// Keys returns the group keys in sorted order.
func (g Groups) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortMessages orders msgs by timestamp string, keeping export order for equal
// timestamps. Missing timestamps are empty and sort first.
func SortMessages(msgs []parse.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp < msgs[j].Timestamp
	})
}

// GroupByCanonicalKey merges text-export entries whose raw ids name the same participants.
func GroupByCanonicalKey(entries []parse.ChatEntry) Groups {
	g := make(Groups)
	for _, e := range entries {
		g.Add(CanonicalKey(e.ConversationID), e.Message)
	}
	return g.Finalize()
}

// GroupByConversation keeps the JSON export's conversation ids as keys.
func GroupByConversation(convs []parse.Conversation) Groups {
	g := make(Groups)
	for _, c := range convs {
		g.Add(c.ID, c.Messages...)
	}
	return g.Finalize()
}
