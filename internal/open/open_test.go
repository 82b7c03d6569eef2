package open

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Zuo-Peng/skype-archive/internal/archive"
	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

func encoded(t *testing.T) []byte {
	t.Helper()
	a := &archive.Archive{
		OwnerID:  "me",
		Contacts: parse.Contacts{"anna|me": "Chat with Anna", "b<c|me": "Tags"},
		Chats: map[string][]parse.Message{
			"anna|me": {
				{From: "anna", Timestamp: "2019-01-01T00:00:00", Content: "one"},
				{From: "me", Timestamp: "2019-01-01T00:01:00", Content: "two"},
			},
			"b<c|me": {
				{From: "me", Timestamp: "2019-01-02T00:00:00", Content: "three"},
			},
		},
	}
	var buf bytes.Buffer
	if err := archive.Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

func lineAt(data []byte, n int) string {
	return strings.TrimSpace(strings.Split(string(data), "\n")[n-1])
}

func TestChatLine(t *testing.T) {
	data := encoded(t)

	n, err := ChatLine(data, "anna|me", -1)
	if err != nil {
		t.Fatalf("ChatLine: %v", err)
	}
	if got := lineAt(data, n); got != `"anna|me": [` {
		t.Fatalf("line %d=%q", n, got)
	}

	n, err = ChatLine(data, "anna|me", 1)
	if err != nil {
		t.Fatalf("ChatLine: %v", err)
	}
	if got := lineAt(data, n); got != `"from": "me",` {
		t.Fatalf("line %d=%q", n, got)
	}

	n, err = ChatLine(data, "b<c|me", -1)
	if err != nil {
		t.Fatalf("ChatLine: %v", err)
	}
	if got := lineAt(data, n); got != `"b<c|me": [` {
		t.Fatalf("line %d=%q", n, got)
	}
}

func TestChatLine_SeqPastEnd(t *testing.T) {
	data := encoded(t)
	chat, _ := ChatLine(data, "anna|me", -1)
	n, err := ChatLine(data, "anna|me", 9)
	if err != nil || n != chat {
		t.Fatalf("n=%d err=%v, want %d", n, err, chat)
	}
}

func TestChatLine_Missing(t *testing.T) {
	if _, err := ChatLine(encoded(t), "nobody", -1); err == nil {
		t.Fatal("expected error for missing chat")
	}
}

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   string
	}{
		{"nvim", "nvim +7 a.json"},
		{"code", "code --goto a.json:7"},
		{"less", "less +7 a.json"},
		{"nano", "nano a.json"},
	}
	for _, tt := range tests {
		cmd := editorCommand(tt.editor, "a.json", 7)
		if got := strings.Join(cmd.Args, " "); got != tt.want {
			t.Fatalf("args=%q, want %q", got, tt.want)
		}
	}
}
