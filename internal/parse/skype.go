package parse

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	MessageTypeText = "Text"
	MessageTypeCall = "Event/Call"

	SenderPrefix       = "8:"
	UnknownSender      = "unknown"
	unknownContact     = "Unknown contact"
	systemMessageLabel = "System message"
)

// JSONOptions controls ParseSkypeJSON.
type JSONOptions struct {
	// MediaPrefix is prepended to detected media filenames (defaults to "media/").
	MediaPrefix string
	Logger      *slog.Logger
}

// ParseSkypeJSON loads a structured export. endpoints may be nil.
// Entries with unexpected shapes are skipped rather than failing the load.
func ParseSkypeJSON(messages, endpoints []byte, opts JSONOptions) (*JSONCorpus, error) {
	if !gjson.ValidBytes(messages) {
		return nil, errors.New("messages export is not valid JSON")
	}
	if opts.MediaPrefix == "" {
		opts.MediaPrefix = DefaultMediaPrefix
	}

	corpus := &JSONCorpus{Contacts: make(Contacts)}

	if len(endpoints) > 0 {
		if !gjson.ValidBytes(endpoints) {
			return nil, errors.New("endpoints export is not valid JSON")
		}
		gjson.GetBytes(endpoints, "contacts").ForEach(func(_, c gjson.Result) bool {
			id := c.Get("id").String()
			if id == "" {
				return true
			}
			name := c.Get("displayname").String()
			if name == "" {
				name = unknownContact
			}
			corpus.Contacts[id] = name
			return true
		})
	}

	gjson.GetBytes(messages, "conversations").ForEach(func(_, c gjson.Result) bool {
		id := c.Get("id")
		list := c.Get("MessageList")
		if id.String() == "" || !list.IsArray() {
			if opts.Logger != nil {
				opts.Logger.Debug("conversation skipped", "id", id.String())
			}
			return true
		}

		conv := Conversation{
			ID:          id.String(),
			DisplayName: c.Get("displayName").String(),
		}
		if conv.DisplayName != "" {
			corpus.Contacts[conv.ID] = conv.DisplayName
		}

		list.ForEach(func(_, m gjson.Result) bool {
			if !m.IsObject() {
				conv.Skipped++
				return true
			}
			msg, ok := convertMessage(m, opts.MediaPrefix)
			if !ok {
				conv.Skipped++
				return true
			}
			conv.Messages = append(conv.Messages, msg)
			return true
		})

		corpus.Conversations = append(corpus.Conversations, conv)
		return true
	})

	return corpus, nil
}

// convertMessage reports false for entries that produce no message.
func convertMessage(m gjson.Result, mediaPrefix string) (Message, bool) {
	msgType := m.Get("messagetype").String()
	if msgType == MessageTypeCall {
		return Message{}, false
	}

	p := ExtractPayload(m.Get("content").String(), mediaPrefix)
	if p.Content == "" && p.MediaPath == nil {
		if msgType == MessageTypeText {
			return Message{}, false
		}
		p.Content = FallbackLabel(msgType)
	}

	return Message{
		From:      NormalizeSender(m.Get("from").String()),
		Timestamp: m.Get("originalarrivaltime").String(),
		Content:   p.Content,
		MediaPath: p.MediaPath,
	}, true
}

// FallbackLabel is the content used for empty non-text messages.
func FallbackLabel(msgType string) string {
	if msgType == "" {
		msgType = systemMessageLabel
	}
	return "[" + msgType + "]"
}

// NormalizeSender strips the transport prefix from a sender id.
func NormalizeSender(from string) string {
	if from == "" {
		return UnknownSender
	}
	return strings.TrimPrefix(from, SenderPrefix)
}
