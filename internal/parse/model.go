package parse

// Message is one sanitized chat message.
type Message struct {
	From      string  `json:"from"`
	Timestamp string  `json:"timestamp"` // ISO-8601 or the export's raw arrival time
	Content   string  `json:"content"`
	MediaPath *string `json:"media_path"`
}

// Contacts maps a user id or conversation key to a display name.
type Contacts map[string]string

// Observe records name for id unless id already has a name.
func (c Contacts) Observe(id, name string) {
	if id == "" || name == "" {
		return
	}
	if _, ok := c[id]; ok {
		return
	}
	c[id] = name
}

// Lookup returns the display name for id, or id itself.
func (c Contacts) Lookup(id string) string {
	if name, ok := c[id]; ok && name != "" {
		return name
	}
	return id
}

func (c Contacts) Clone() Contacts {
	out := make(Contacts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ChatEntry is a message tagged with the raw conversation id it was exported under.
type ChatEntry struct {
	ConversationID string
	Message        Message
}

// TextCorpus is the result of parsing a delimited text export.
type TextCorpus struct {
	Entries  []ChatEntry
	Contacts Contacts
	Records  int // blocks seen
	Rejected int
}

// Conversation is one conversation of a structured JSON export.
type Conversation struct {
	ID          string
	DisplayName string
	Messages    []Message
	Skipped     int // call events and empty text messages
}

// JSONCorpus is the result of loading a structured JSON export.
type JSONCorpus struct {
	Conversations []Conversation
	Contacts      Contacts
}

// Messages returns every message of the corpus in export order.
func (c *JSONCorpus) Messages() []Message {
	var out []Message
	for _, conv := range c.Conversations {
		out = append(out, conv.Messages...)
	}
	return out
}

// Messages returns every message of the corpus in export order.
func (c *TextCorpus) Messages() []Message {
	out := make([]Message, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Message
	}
	return out
}
