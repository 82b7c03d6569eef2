package archive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

var ErrChatNotFound = errors.New("chat not found")

// Rename sets the display name of a chat.
func (a *Archive) Rename(key, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("rename: empty name")
	}
	if _, ok := a.Chats[key]; !ok {
		return fmt.Errorf("rename %s: %w", key, ErrChatNotFound)
	}
	a.Contacts[key] = name
	return nil
}

// MergeChats moves every message of source into target, re-sorts target and
// removes source along with its display name.
func (a *Archive) MergeChats(source, target string) error {
	if source == target {
		return fmt.Errorf("merge: %s into itself", source)
	}
	src, ok := a.Chats[source]
	if !ok {
		return fmt.Errorf("merge source %s: %w", source, ErrChatNotFound)
	}
	dst, ok := a.Chats[target]
	if !ok {
		return fmt.Errorf("merge target %s: %w", target, ErrChatNotFound)
	}

	merged := make([]parse.Message, 0, len(src)+len(dst))
	merged = append(merged, src...)
	merged = append(merged, dst...)
	SortMessages(merged)

	a.Chats[target] = merged
	delete(a.Chats, source)
	delete(a.Contacts, source)
	return nil
}
