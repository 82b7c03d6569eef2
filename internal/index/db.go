package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE chats (
    chat_key   TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    first_ts   TEXT NOT NULL DEFAULT '',
    last_ts    TEXT NOT NULL DEFAULT '',
    msg_count  INTEGER NOT NULL DEFAULT 0,
    list_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE messages (
    chat_key   TEXT NOT NULL,
    seq        INTEGER NOT NULL,
    ts         TEXT NOT NULL DEFAULT '',
    sender     TEXT NOT NULL,
    content    TEXT NOT NULL,
    media_path TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (chat_key, seq)
);

CREATE VIRTUAL TABLE messages_fts USING fts5(
    content,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

CREATE TRIGGER messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, content) VALUES (new.rowid, new.content);
END;
`

// DB is an in-memory full-text index over one archive. It is rebuilt on
// every run and never written to disk.
type DB struct {
	db *sql.DB
}

func OpenMemory() (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// each connection of a :memory: database is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

func (d *DB) ChatCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM chats").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&n)
	return n, err
}

type ChatRow struct {
	ChatKey  string
	Name     string
	FirstTs  string
	LastTs   string
	MsgCount int
}

func (d *DB) GetChat(chatKey string) (*ChatRow, error) {
	var c ChatRow
	err := d.db.QueryRow(
		"SELECT chat_key, name, first_ts, last_ts, msg_count FROM chats WHERE chat_key = ?",
		chatKey,
	).Scan(&c.ChatKey, &c.Name, &c.FirstTs, &c.LastTs, &c.MsgCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
