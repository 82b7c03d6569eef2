package parse

import (
	"strings"
	"testing"
)

const delim = "=================================================="

func block(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestSplitRecords(t *testing.T) {
	content := "\n" + delim + "\nA: 1\n" + delim + "\n   \n" + delim + "\r\nB: 2\r\n" + delim + "\n"
	blocks := SplitRecords(content)
	if len(blocks) != 2 {
		t.Fatalf("len(blocks)=%d, want 2: %q", len(blocks), blocks)
	}
	if blocks[0] != "A: 1" || blocks[1] != "B: 2" {
		t.Fatalf("blocks=%q", blocks)
	}
}

func TestParseFields(t *testing.T) {
	fields := ParseFields(block(
		"Action Time: 01.02.2020 10:11:12",
		"no colon here",
		"  Chat Message :  see http://x  ",
	))
	if fields["Action Time"] != "01.02.2020 10:11:12" {
		t.Fatalf("Action Time=%q", fields["Action Time"])
	}
	if fields["Chat Message"] != "see http://x" {
		t.Fatalf("Chat Message=%q", fields["Chat Message"])
	}
	if len(fields) != 2 {
		t.Fatalf("len(fields)=%d, want 2", len(fields))
	}
}

func TestClassify(t *testing.T) {
	valid := map[string]string{
		FieldActionType:  ActionChatMessage,
		FieldChatID:      "#a/$b;1",
		FieldUserName:    "a",
		FieldActionTime:  "3.4.2015 09:08:07",
		FieldChatMessage: "<b>hi</b> there ",
	}

	rec, ok := Classify(valid).(*ChatRecord)
	if !ok {
		t.Fatalf("expected *ChatRecord, got %T", Classify(valid))
	}
	if rec.Entry.ConversationID != "#a/$b;1" {
		t.Fatalf("ConversationID=%q", rec.Entry.ConversationID)
	}
	msg := rec.Entry.Message
	if msg.From != "a" || msg.Timestamp != "2015-04-03T09:08:07" || msg.Content != "hi there" {
		t.Fatalf("msg=%+v", msg)
	}
	if msg.MediaPath != nil {
		t.Fatalf("MediaPath=%v, want nil", msg.MediaPath)
	}

	tests := []struct {
		name   string
		mutate func(map[string]string)
		reason RejectReason
	}{
		{"wrong action type", func(f map[string]string) { f[FieldActionType] = "Call" }, RejectNotChatMessage},
		{"missing chat id", func(f map[string]string) { delete(f, FieldChatID) }, RejectMissingField},
		{"missing text", func(f map[string]string) { delete(f, FieldChatMessage) }, RejectMissingField},
		{"bad time", func(f map[string]string) { f[FieldActionTime] = "2015-04-03 09:08:07" }, RejectBadTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := make(map[string]string)
			for k, v := range valid {
				f[k] = v
			}
			tt.mutate(f)
			rej, ok := Classify(f).(*RejectedRecord)
			if !ok {
				t.Fatalf("expected *RejectedRecord, got %T", Classify(f))
			}
			if rej.Reason != tt.reason {
				t.Fatalf("Reason=%q, want %q", rej.Reason, tt.reason)
			}
		})
	}
}

func TestParseText_ContactsAndDrops(t *testing.T) {
	content := strings.Join([]string{
		block(
			"Action Type: Chat Message",
			"ChatID: #alice/$bob;111",
			"User Name: alice",
			"Display Name: Alice A.",
			"Action Time: 01.02.2020 10:00:00",
			"Chat Message: hello",
		),
		delim,
		block(
			"Action Type: Call",
			"User Name: carol",
			"Display Name: Carol",
		),
		delim,
		block(
			"Action Type: Chat Message",
			"ChatID: #bob/$alice;222",
			"User Name: alice",
			"Display Name: Alice Renamed",
			"Action Time: not a time",
			"Chat Message: dropped",
		),
		delim,
		block(
			"Action Type: Chat Message",
			"ChatID: #bob/$alice;222",
			"User Name: bob",
			"Action Time: 01.02.2020 09:00:00",
			"Chat Message: hi",
		),
	}, "\n")

	corpus := ParseText(content, nil)

	if corpus.Records != 4 || corpus.Rejected != 2 {
		t.Fatalf("Records=%d Rejected=%d, want 4 and 2", corpus.Records, corpus.Rejected)
	}
	if len(corpus.Entries) != 2 {
		t.Fatalf("len(Entries)=%d, want 2", len(corpus.Entries))
	}

	want := Contacts{"alice": "Alice A.", "carol": "Carol", "bob": "bob"}
	if len(corpus.Contacts) != len(want) {
		t.Fatalf("Contacts=%v, want %v", corpus.Contacts, want)
	}
	for k, v := range want {
		if corpus.Contacts[k] != v {
			t.Fatalf("Contacts[%q]=%q, want %q", k, corpus.Contacts[k], v)
		}
	}

	msgs := corpus.Messages()
	if msgs[0].Content != "hello" || msgs[1].From != "bob" {
		t.Fatalf("messages=%+v", msgs)
	}
}

func TestContacts(t *testing.T) {
	c := make(Contacts)
	c.Observe("a", "First")
	c.Observe("a", "Second")
	c.Observe("", "ignored")
	if c["a"] != "First" || len(c) != 1 {
		t.Fatalf("contacts=%v", c)
	}
	if c.Lookup("a") != "First" || c.Lookup("zz") != "zz" {
		t.Fatalf("Lookup fallback broken: %v", c)
	}

	clone := c.Clone()
	clone["b"] = "B"
	if _, ok := c["b"]; ok {
		t.Fatal("Clone shares storage")
	}
}
