// Package sqlite is the durable sink: one row per consumed message in
// a local SQLite database.
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"buzzline/internal/event"
	"buzzline/internal/logging"
	"buzzline/sink"
)

/* ────────── public YAML config ────────── */
type Config struct {
	Path string `yaml:"path"` // database file, e.g. data/buzzline.db
}

const defaultPath = "data/buzzline.db"

// createTable is the fixed destination schema. Deliberately not
// CREATE TABLE IF NOT EXISTS: the conflict on an existing table is an
// expected condition and handled in EnsureSchema.
const createTable = `
CREATE TABLE messages (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	message            TEXT NOT NULL,
	author             TEXT NOT NULL,
	timestamp          TEXT NOT NULL,
	category           TEXT,
	sentiment          REAL,
	keyword_mentioned  TEXT,
	message_length     INTEGER
)`

const insertRow = `
INSERT INTO messages (message, author, timestamp, category, sentiment, keyword_mentioned, message_length)
VALUES (?, ?, ?, ?, ?, ?, ?)`

/* ────────── driver ────────── */
type driver struct {
	cfg Config
	db  *sqlx.DB
}

/* ────────── sink.Adapter ────────── */

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("sqlite-sink: expected Config, got %T", raw)
	}
	if c.Path == "" {
		c.Path = defaultPath
	}
	d.cfg = c

	if dir := filepath.Dir(c.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sqlite-sink: mkdir %s: %w", dir, err)
		}
	}
	db, err := sqlx.Open("sqlite", c.Path)
	if err != nil {
		return fmt.Errorf("sqlite-sink: open %s: %w", c.Path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("sqlite-sink: ping %s: %w", c.Path, err)
	}
	d.db = db
	return d.EnsureSchema()
}

// EnsureSchema creates the messages table. A second call against the
// same database hits the existing table and is a logged no-op.
func (d *driver) EnsureSchema() error {
	if _, err := d.db.Exec(createTable); err != nil {
		var n int
		if qerr := d.db.Get(&n,
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'messages'`,
		); qerr == nil && n == 1 {
			logging.L().Info("sqlite-sink: messages table already exists", "path", d.cfg.Path)
			return nil
		}
		return fmt.Errorf("sqlite-sink: create schema: %w", err)
	}
	return nil
}

// Append inserts one row and returns its id. Fields absent from the
// original payload are stored as the string "unknown" — this sink's
// policy, distinct from the chart defaults. SQLite's dynamic typing
// accepts the string in the numeric columns.
func (d *driver) Append(e *event.Event) (int64, error) {
	res, err := d.db.Exec(insertRow,
		e.Column(event.FieldMessage, "unknown"),
		e.Column(event.FieldAuthor, "unknown"),
		e.Column(event.FieldTimestamp, "unknown"),
		e.Column(event.FieldCategory, "unknown"),
		e.Column(event.FieldSentiment, "unknown"),
		e.Column(event.FieldKeywordMentioned, "unknown"),
		e.Column(event.FieldMessageLength, "unknown"),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", sink.ErrWriteFailed, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", sink.ErrWriteFailed, err)
	}
	return id, nil
}

func (d *driver) Record(e *event.Event) error {
	_, err := d.Append(e)
	return err
}

func (d *driver) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

/* ────────── auto-register ────────── */
func init() {
	sink.Register("sqlite", func() sink.Adapter { return &driver{} })
}
