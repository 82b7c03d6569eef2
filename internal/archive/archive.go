package archive

import (
	"fmt"
	"log/slog"

	"github.com/Zuo-Peng/skype-archive/internal/logutil"
	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

// Archive is the canonical chat archive written to processed_data.json.
type Archive struct {
	OwnerID  string                     `json:"ownerId"`
	Contacts parse.Contacts             `json:"contacts"`
	Chats    map[string][]parse.Message `json:"chats"`
}

// Stats summarizes a pipeline run.
type Stats struct {
	Messages int
	Chats    int
	Dropped  int // records or messages that produced no output
	Empty    int // conversations with no surviving message
}

func (s Stats) String() string {
	return fmt.Sprintf("messages=%d chats=%d dropped=%d empty=%d",
		s.Messages, s.Chats, s.Dropped, s.Empty)
}

// FromText builds an archive from a parsed text export. Raw conversation ids
// naming the same participants are merged under one canonical key.
func FromText(corpus *parse.TextCorpus, logger *slog.Logger) (*Archive, Stats, error) {
	logger = logutil.OrDiscard(logger)
	stats := Stats{Dropped: corpus.Rejected}

	owner, err := InferOwner(corpus.Messages())
	if err != nil {
		return nil, stats, err
	}
	logger.Info("archive owner inferred", "owner", owner)

	groups := GroupByCanonicalKey(corpus.Entries)
	keys := groups.Keys()
	logger.Info("messages merged", "messages", len(corpus.Entries), "chats", len(keys))
	for _, k := range keys {
		logger.Debug("chat processed", "chat", k, "messages", len(groups[k]))
	}

	a := &Archive{
		OwnerID:  owner,
		Contacts: NameChats(keys, owner, corpus.Contacts),
		Chats:    groups,
	}
	stats.Messages = len(corpus.Entries)
	stats.Chats = len(keys)
	return a, stats, nil
}

// FromJSON builds an archive from a structured export. Conversation ids are
// used as chat keys and the export's contact map is kept as is.
func FromJSON(corpus *parse.JSONCorpus, logger *slog.Logger) (*Archive, Stats, error) {
	logger = logutil.OrDiscard(logger)
	var stats Stats

	msgs := corpus.Messages()
	owner, err := InferOwner(msgs)
	if err != nil {
		return nil, stats, err
	}
	logger.Info("archive owner inferred", "owner", owner)

	for _, c := range corpus.Conversations {
		stats.Dropped += c.Skipped
		name := corpus.Contacts.Lookup(c.ID)
		if len(c.Messages) == 0 {
			stats.Empty++
			logger.Warn("all messages filtered out", "chat", name)
			continue
		}
		logger.Debug("chat processed", "chat", name, "messages", len(c.Messages))
	}

	groups := GroupByConversation(corpus.Conversations)
	stats.Messages = len(msgs)
	stats.Chats = len(groups)

	return &Archive{
		OwnerID:  owner,
		Contacts: corpus.Contacts,
		Chats:    groups,
	}, stats, nil
}
