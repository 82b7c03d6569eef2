package archive

import (
	"testing"

	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

func entry(rawID, from, ts, content string) parse.ChatEntry {
	return parse.ChatEntry{
		ConversationID: rawID,
		Message:        parse.Message{From: from, Timestamp: ts, Content: content},
	}
}

func assertSorted(t *testing.T, key string, msgs []parse.Message) {
	t.Helper()
	for i := 1; i < len(msgs); i++ {
		if msgs[i-1].Timestamp > msgs[i].Timestamp {
			t.Fatalf("chat %q not sorted at %d: %q > %q", key, i, msgs[i-1].Timestamp, msgs[i].Timestamp)
		}
	}
}

func TestGroupByCanonicalKey_MergesReissuedChats(t *testing.T) {
	entries := []parse.ChatEntry{
		entry("#a/$b;111", "a", "2020-01-01T10:00:03", "three"),
		entry("#a/$b;111", "b", "2020-01-01T10:00:01", "one"),
		entry("#b/$a;222", "a", "2020-01-01T10:00:02", "two"),
		entry("#b/$a;222", "b", "2020-01-01T10:00:04", "four"),
		entry("#a/$c;333", "c", "2020-01-01T09:00:00", "other"),
	}

	groups := GroupByCanonicalKey(entries)

	if len(groups) != 2 {
		t.Fatalf("len(groups)=%d, want 2: %v", len(groups), groups.Keys())
	}
	ab := groups["a|b"]
	if len(ab) != 4 {
		t.Fatalf("len(a|b)=%d, want 4", len(ab))
	}
	for i, want := range []string{"one", "two", "three", "four"} {
		if ab[i].Content != want {
			t.Fatalf("a|b[%d]=%q, want %q", i, ab[i].Content, want)
		}
	}
	for key, msgs := range groups {
		assertSorted(t, key, msgs)
	}
}

func TestGroupByConversation_DropsEmptyAndSorts(t *testing.T) {
	convs := []parse.Conversation{
		{ID: "8:bob", Messages: []parse.Message{
			{From: "bob", Timestamp: "2020-01-02T00:00:00Z", Content: "late"},
			{From: "bob", Content: "no time"},
			{From: "me", Timestamp: "2020-01-01T00:00:00Z", Content: "early"},
		}},
		{ID: "19:empty@thread.skype"},
		{ID: "8:bob", Messages: []parse.Message{
			{From: "me", Timestamp: "2020-01-01T12:00:00Z", Content: "middle"},
		}},
	}

	groups := GroupByConversation(convs)

	if _, ok := groups["19:empty@thread.skype"]; ok {
		t.Fatal("empty conversation kept")
	}
	bob := groups["8:bob"]
	want := []string{"no time", "early", "middle", "late"}
	if len(bob) != len(want) {
		t.Fatalf("len(8:bob)=%d, want %d", len(bob), len(want))
	}
	for i, w := range want {
		if bob[i].Content != w {
			t.Fatalf("8:bob[%d]=%q, want %q", i, bob[i].Content, w)
		}
	}
}

func TestSortMessages_Stable(t *testing.T) {
	msgs := []parse.Message{
		{Timestamp: "t", Content: "first"},
		{Timestamp: "t", Content: "second"},
		{Timestamp: "", Content: "blank"},
	}
	SortMessages(msgs)
	if msgs[0].Content != "blank" || msgs[1].Content != "first" || msgs[2].Content != "second" {
		t.Fatalf("order=%+v", msgs)
	}
}
