package index

import (
	"fmt"

	"github.com/Zuo-Peng/skype-archive/internal/archive"
)

type Stats struct {
	Chats    int
	Messages int
}

func (s Stats) String() string {
	return fmt.Sprintf("chats=%d messages=%d", s.Chats, s.Messages)
}

// Build opens a fresh in-memory index and loads a into it.
func Build(a *archive.Archive) (*DB, Stats, error) {
	db, err := OpenMemory()
	if err != nil {
		return nil, Stats{}, err
	}
	stats, err := IndexArchive(db, a)
	if err != nil {
		db.Close()
		return nil, Stats{}, err
	}
	return db, stats, nil
}

// IndexArchive inserts every non-empty chat of a in one transaction.
func IndexArchive(db *DB, a *archive.Archive) (Stats, error) {
	var stats Stats

	tx, err := db.Raw().Begin()
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	chatStmt, err := tx.Prepare(
		`INSERT INTO chats (chat_key, name, first_ts, last_ts, msg_count, list_order) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return stats, err
	}
	defer chatStmt.Close()

	msgStmt, err := tx.Prepare(
		`INSERT INTO messages (chat_key, seq, ts, sender, content, media_path) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return stats, err
	}
	defer msgStmt.Close()

	for i, c := range a.ListChats("") {
		if _, err := chatStmt.Exec(c.Key, c.Name, c.First, c.Last, c.Messages, i); err != nil {
			return stats, fmt.Errorf("index chat %s: %w", c.Key, err)
		}
		for seq, m := range a.Chats[c.Key] {
			media := ""
			if m.MediaPath != nil {
				media = *m.MediaPath
			}
			if _, err := msgStmt.Exec(c.Key, seq, m.Timestamp, m.From, m.Content, media); err != nil {
				return stats, fmt.Errorf("index message %s/%d: %w", c.Key, seq, err)
			}
			stats.Messages++
		}
		stats.Chats++
	}

	return stats, tx.Commit()
}
