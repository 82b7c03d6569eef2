package parse

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Field names and sentinels of the legacy text export.
const (
	FieldActionType  = "Action Type"
	FieldChatID      = "ChatID"
	FieldUserName    = "User Name"
	FieldDisplayName = "Display Name"
	FieldActionTime  = "Action Time"
	FieldChatMessage = "Chat Message"

	ActionChatMessage = "Chat Message"
)

// actionTimeLayout accepts both padded and unpadded day/month.
const actionTimeLayout = "2.1.2006 15:04:05"

const isoLayout = "2006-01-02T15:04:05"

var recordDelimRe = regexp.MustCompile(`(?m)^[ \t]*={5,}[ \t]*\r?$`)

var requiredFields = []string{FieldChatID, FieldUserName, FieldActionTime, FieldChatMessage}

// Record is either a *ChatRecord or a *RejectedRecord.
type Record interface {
	isRecord()
}

// ChatRecord is a block that converted to a message.
type ChatRecord struct {
	Entry ChatEntry
}

type RejectReason string

const (
	RejectNotChatMessage RejectReason = "not a chat message"
	RejectMissingField   RejectReason = "missing field"
	RejectBadTime        RejectReason = "unparseable action time"
)

// RejectedRecord is a block that was dropped.
type RejectedRecord struct {
	Reason RejectReason
	Detail string
}

func (*ChatRecord) isRecord()     {}
func (*RejectedRecord) isRecord() {}

// SplitRecords splits a text export into trimmed, non-blank blocks.
func SplitRecords(content string) []string {
	var blocks []string
	for _, part := range recordDelimRe.Split(content, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			blocks = append(blocks, part)
		}
	}
	return blocks
}

// ParseFields reads "key: value" lines of one block. Lines without a colon
// are ignored; later duplicates overwrite earlier ones.
func ParseFields(block string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields
}

// Classify decides once whether a block's fields form a chat message.
func Classify(fields map[string]string) Record {
	if fields[FieldActionType] != ActionChatMessage {
		return &RejectedRecord{Reason: RejectNotChatMessage, Detail: fields[FieldActionType]}
	}
	for _, k := range requiredFields {
		if _, ok := fields[k]; !ok {
			return &RejectedRecord{Reason: RejectMissingField, Detail: k}
		}
	}

	ts, err := time.Parse(actionTimeLayout, fields[FieldActionTime])
	if err != nil {
		return &RejectedRecord{Reason: RejectBadTime, Detail: fields[FieldActionTime]}
	}

	return &ChatRecord{Entry: ChatEntry{
		ConversationID: fields[FieldChatID],
		Message: Message{
			From:      fields[FieldUserName],
			Timestamp: ts.Format(isoLayout),
			Content:   strings.TrimSpace(StripTags(fields[FieldChatMessage])),
		},
	}}
}

// ParseText parses a whole text export. Sender display names are collected
// from every block that names a user, whether or not it becomes a message.
func ParseText(content string, logger *slog.Logger) *TextCorpus {
	corpus := &TextCorpus{Contacts: make(Contacts)}

	for _, block := range SplitRecords(content) {
		corpus.Records++
		fields := ParseFields(block)

		if user := fields[FieldUserName]; user != "" {
			display := fields[FieldDisplayName]
			if display == "" {
				display = user
			}
			corpus.Contacts.Observe(user, display)
		}

		switch r := Classify(fields).(type) {
		case *ChatRecord:
			corpus.Entries = append(corpus.Entries, r.Entry)
		case *RejectedRecord:
			corpus.Rejected++
			if logger != nil && r.Reason != RejectNotChatMessage {
				logger.Debug("record dropped", "reason", string(r.Reason), "detail", r.Detail)
			}
		}
	}
	return corpus
}
