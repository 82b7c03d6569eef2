package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

// Encode writes a as indented JSON without HTML escaping.
func Encode(w io.Writer, a *Archive) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

func Decode(r io.Reader) (*Archive, error) {
	var a Archive
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, err
	}
	if a.Contacts == nil {
		a.Contacts = make(parse.Contacts)
	}
	if a.Chats == nil {
		a.Chats = make(map[string][]parse.Message)
	}
	return &a, nil
}

func Load(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode archive %s: %w", path, err)
	}
	return a, nil
}

// Save writes the archive next to path and renames it into place.
func Save(path string, a *Archive) error {
	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp_archive_*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
