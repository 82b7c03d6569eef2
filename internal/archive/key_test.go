package archive

import (
	"reflect"
	"testing"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#alice/$bob;a1b2c3", "alice|bob"},
		{"#bob/$alice;ffff", "alice|bob"},
		{"a/b", "a|b"},
		{"b/a", "a|b"},
		{"#carol/$alice/$bob;1", "alice|bob|carol"},
		{"#alice;42", "alice"},
		{"19:group@thread.skype", "19:group@thread.skype"},
		{"#a//$b", "a|b"},
		{";only-suffix", ""},
		{"#;h1", ""},
	}
	for _, tt := range tests {
		if got := CanonicalKey(tt.in); got != tt.want {
			t.Fatalf("CanonicalKey(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalKey_Symmetric(t *testing.T) {
	pairs := [][2]string{{"x", "y"}, {"live:bob", "alice"}, {"Zed", "adam"}}
	for _, p := range pairs {
		ab := CanonicalKey(p[0] + "/" + p[1])
		ba := CanonicalKey(p[1] + "/" + p[0])
		if ab != ba {
			t.Fatalf("key not symmetric: %q vs %q", ab, ba)
		}
	}
}

func TestCanonicalKey_DisambiguatorInvariant(t *testing.T) {
	pairs := [][2]string{
		{"#a/$b;hash1", "#a/$b;hash2"},
		{"#;h1", "#;h2"},
		{";h1", ";h2"},
		{"19:group@thread.skype;1", "19:group@thread.skype;2"},
	}
	for _, p := range pairs {
		if a, b := CanonicalKey(p[0]), CanonicalKey(p[1]); a != b {
			t.Fatalf("disambiguator changed the key: %q=%q, %q=%q", p[0], a, p[1], b)
		}
	}
}

func TestParticipants(t *testing.T) {
	if got := Participants("a|b|c"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Participants=%v", got)
	}
	if got := Participants(""); got != nil {
		t.Fatalf("Participants(\"\")=%v, want nil", got)
	}
}
