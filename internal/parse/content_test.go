package parse

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "  hello  ", "hello"},
		{"line breaks", "one<br>two<br/>three<BR />four", "one\ntwo\nthree\nfour"},
		{"tags stripped", `<b>bold</b> and <a href="x">link</a>`, "bold and link"},
		{"entities decoded", "&quot;quoted&quot; &amp; &lt;3", `"quoted" & <3`},
		{"only markup", "<ss type=\"smile\"></ss>", ""},
		{"decomposed to NFC", "e\u0301te", "\u00e9te"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Fatalf("Sanitize(%q)=%q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Sanitize is idempotent for content without escaped markup. Tags are stripped
// before entities are decoded, so "&lt;b&gt;" survives one pass as "<b>" and
// is stripped by the next; see TestSanitize_EscapedMarkup.
func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"Hi <b>there</b>&nbsp;friend",
		"line<br/>break &amp; more",
		"  already clean  ",
		"Привет, &quot;мир&quot;",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSanitize_EscapedMarkup(t *testing.T) {
	in := "a &lt;b&gt;x&lt;/b&gt; c"
	once := Sanitize(in)
	if once != "a <b>x</b> c" {
		t.Fatalf("first pass=%q, want escaped markup decoded as text", once)
	}
	if twice := Sanitize(once); twice != "a x c" {
		t.Fatalf("second pass=%q, want decoded tags stripped", twice)
	}
}

func TestMediaFilename(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{
			name:   "vcard wins over uri",
			in:     `<URIObject uri="x"><OriginalName v="a.jpg"/>photo.png</URIObject><a vcard_name="card.vcf"></a><URI>other.jpg</URI>`,
			want:   "card.vcf",
			wantOK: true,
		},
		{
			name:   "uri element with image",
			in:     `<uri type="x">holiday.JPG</uri>`,
			want:   "holiday.JPG",
			wantOK: true,
		},
		{
			name:   "uri element with video",
			in:     `text <URI>clip.mov</URI>`,
			want:   "clip.mov",
			wantOK: true,
		},
		{
			name: "uri element without media extension",
			in:   `<URI>document.pdf</URI>`,
		},
		{
			name: "extension must be a suffix",
			in:   `<URI>photo.jpg.exe</URI>`,
		},
		{
			name: "no markup",
			in:   "just text about a.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MediaFilename(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("MediaFilename=%q,%v want %q,%v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractPayload(t *testing.T) {
	p := ExtractPayload(`<URI>cat.gif</URI>`, "media/")
	if p.MediaPath == nil || *p.MediaPath != "media/cat.gif" {
		t.Fatalf("MediaPath=%v, want media/cat.gif", p.MediaPath)
	}
	if p.Content != "cat.gif" {
		t.Fatalf("Content=%q, want cat.gif", p.Content)
	}

	p = ExtractPayload("hello", "files/")
	if p.MediaPath != nil {
		t.Fatalf("unexpected MediaPath %q", *p.MediaPath)
	}
}
