// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package journal keeps a queryable history of ledger invocations in a
// sqlite database.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/ledger"
	"github.com/gongde/countervm/runtime"

	_ "modernc.org/sqlite"
)

// Memory is the path of a journal that is discarded when closed.
const Memory = ":memory:"

var ErrNilReceipt = errors.New("nil receipt")

var schema = []string{
	`PRAGMA foreign_keys = ON;`,
	`CREATE TABLE IF NOT EXISTS invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		programs TEXT NOT NULL,
		code INTEGER NOT NULL,
		error TEXT NOT NULL,
		logs TEXT NOT NULL,
		created INTEGER NOT NULL,
		closed INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS signers (
		invocation_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		signer TEXT NOT NULL,

		PRIMARY KEY(invocation_id, position),
		FOREIGN KEY(invocation_id) REFERENCES invocations(id) ON DELETE CASCADE
	);`,
	`CREATE INDEX IF NOT EXISTS signers_by_key ON signers(signer, invocation_id);`,
}

// Entry is a journaled invocation.
type Entry struct {
	ID        int64
	Timestamp time.Time
	Duration  time.Duration
	Programs  []solana.PublicKey
	Signers   []solana.PublicKey
	Code      runtime.Code
	Error     string
	Logs      []string
	Created   int
	Closed    int
}

func (e *Entry) Success() bool {
	return e.Code == runtime.CodeSuccess
}

// Stats summarizes every journaled invocation.
type Stats struct {
	Invocations int
	Failed      int
	Created     int
	Closed      int
}

type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal at [path].
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// sqlite allows a single writer and every connection to an in-memory
	// database sees a different database.
	db.SetMaxOpenConns(1)
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize journal: %w", err)
		}
	}
	return &Journal{db: db}, nil
}

// Record stores [r] and returns its id.
func (j *Journal) Record(ctx context.Context, r *ledger.Receipt) (int64, error) {
	if r == nil {
		return 0, ErrNilReceipt
	}
	programs, err := json.Marshal(keysToStrings(r.Programs))
	if err != nil {
		return 0, err
	}
	logs, err := json.Marshal(r.Logs)
	if err != nil {
		return 0, err
	}
	var errMsg string
	if r.Err != nil {
		errMsg = r.Err.Error()
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO invocations (timestamp, duration, programs, code, error, logs, created, closed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Timestamp.UnixNano(),
		int64(r.Duration),
		string(programs),
		uint32(r.Code),
		errMsg,
		string(logs),
		r.Created,
		r.Closed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record invocation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for i, signer := range r.Signers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO signers (invocation_id, position, signer) VALUES (?, ?, ?)`,
			id, i, signer.String(),
		); err != nil {
			return 0, fmt.Errorf("failed to record signer: %w", err)
		}
	}
	return id, tx.Commit()
}

const selectEntries = `SELECT id, timestamp, duration, programs, code, error, logs, created, closed FROM invocations`

// Recent returns up to [limit] of the latest invocations, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	return j.query(ctx, selectEntries+` ORDER BY id DESC LIMIT ?`, limit)
}

// BySigner returns up to [limit] of the latest invocations signed by
// [signer], newest first.
func (j *Journal) BySigner(ctx context.Context, signer solana.PublicKey, limit int) ([]*Entry, error) {
	return j.query(ctx,
		selectEntries+` WHERE id IN (SELECT invocation_id FROM signers WHERE signer = ?) ORDER BY id DESC LIMIT ?`,
		signer.String(), limit,
	)
}

// Stats totals the journal. Accounts created or closed by failed invocations
// were rolled back and are not counted.
func (j *Journal) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(code != 0), 0),
			COALESCE(SUM(CASE WHEN code = 0 THEN created ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN code = 0 THEN closed ELSE 0 END), 0)
		FROM invocations`,
	).Scan(&s.Invocations, &s.Failed, &s.Created, &s.Closed)
	return s, err
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) query(ctx context.Context, query string, args ...any) ([]*Entry, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			e        Entry
			ts       int64
			duration int64
			code     uint32
			programs string
			logs     string
		)
		if err := rows.Scan(&e.ID, &ts, &duration, &programs, &code, &e.Error, &logs, &e.Created, &e.Closed); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(0, ts)
		e.Duration = time.Duration(duration)
		e.Code = runtime.Code(code)
		if err := json.Unmarshal([]byte(logs), &e.Logs); err != nil {
			return nil, fmt.Errorf("corrupt logs of invocation %d: %w", e.ID, err)
		}
		var programIDs []string
		if err := json.Unmarshal([]byte(programs), &programIDs); err != nil {
			return nil, fmt.Errorf("corrupt programs of invocation %d: %w", e.ID, err)
		}
		if e.Programs, err = stringsToKeys(programIDs); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Signers are loaded after the rows are drained since the journal uses
	// a single connection.
	for _, e := range entries {
		if e.Signers, err = j.signers(ctx, e.ID); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (j *Journal) signers(ctx context.Context, id int64) ([]solana.PublicKey, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT signer FROM signers WHERE invocation_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signers []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		signers = append(signers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stringsToKeys(signers)
}

func keysToStrings(keys []solana.PublicKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func stringsToKeys(s []string) ([]solana.PublicKey, error) {
	if len(s) == 0 {
		return nil, nil
	}
	out := make([]solana.PublicKey, len(s))
	for i, v := range s {
		k, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, fmt.Errorf("corrupt key %q: %w", v, err)
		}
		out[i] = k
	}
	return out, nil
}
