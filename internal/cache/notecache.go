package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/didi/gendry/builder"
	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"

	"github.com/notewind/notewind/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS note_lists (
	scope_key TEXT PRIMARY KEY,
	user_id   TEXT NOT NULL,
	payload   TEXT NOT NULL,
	mtime     INTEGER NOT NULL
);
`

// Scope identifies one cached list: the page-1 result for a given owner,
// filter and settled search term.
type Scope struct {
	UserID string
	Filter string
	Search string
}

func (s Scope) key() string {
	return strings.Join([]string{s.UserID, s.Filter, s.Search}, "\x1f")
}

// NoteCache keeps the last successfully fetched first page per scope, so a
// cold start or a failed fetch can still show something.
type NoteCache struct {
	db  *sqlx.DB
	now func() time.Time
}

func Open(path string) (*NoteCache, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &NoteCache{db: db, now: time.Now}, nil
}

func (c *NoteCache) Put(ctx context.Context, scope Scope, notes []model.Note) error {
	payload, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	delSQL, delArgs, err := builder.BuildDelete("note_lists", map[string]interface{}{
		"scope_key": scope.key(),
	})
	if err != nil {
		return err
	}
	insSQL, insArgs, err := builder.BuildInsert("note_lists", []map[string]interface{}{{
		"scope_key": scope.key(),
		"user_id":   scope.UserID,
		"payload":   string(payload),
		"mtime":     c.now().Unix(),
	}})
	if err != nil {
		return err
	}
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, delSQL, delArgs...); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insSQL, insArgs...); err != nil {
		return err
	}
	return tx.Commit()
}

// Get returns the cached list for the scope; the bool reports presence.
func (c *NoteCache) Get(ctx context.Context, scope Scope) ([]model.Note, bool, error) {
	querySQL, args, err := builder.BuildSelect("note_lists", map[string]interface{}{
		"scope_key": scope.key(),
	}, []string{"payload"})
	if err != nil {
		return nil, false, err
	}
	var payload string
	if err := c.db.GetContext(ctx, &payload, querySQL, args...); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var notes []model.Note
	if err := json.Unmarshal([]byte(payload), &notes); err != nil {
		return nil, false, fmt.Errorf("decode cached notes: %w", err)
	}
	return notes, true, nil
}

// Prune drops entries older than the given age.
func (c *NoteCache) Prune(ctx context.Context, olderThan time.Duration) error {
	cutoff := c.now().Add(-olderThan).Unix()
	delSQL, args, err := builder.BuildDelete("note_lists", map[string]interface{}{
		"mtime <": cutoff,
	})
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, delSQL, args...)
	return err
}

func (c *NoteCache) Close() error {
	return c.db.Close()
}
