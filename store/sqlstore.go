/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

const (
	createSchema = `
CREATE TABLE IF NOT EXISTS messages (
	seq_num INTEGER PRIMARY KEY,
	body BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS counters (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	next_sender_seq INTEGER NOT NULL,
	next_target_seq INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
`
	insertMessageQuery   = `INSERT OR IGNORE INTO messages (seq_num, body) VALUES (?, ?)`
	selectRangeQuery     = `SELECT seq_num, body FROM messages WHERE seq_num >= ? AND seq_num <= ? ORDER BY seq_num ASC`
	selectMaxSeqQuery    = `SELECT COALESCE(MAX(seq_num), 0) FROM messages`
	selectCountersQuery  = `SELECT next_sender_seq, next_target_seq, created_at FROM counters WHERE id = 1`
	updateSenderSeqQuery = `UPDATE counters SET next_sender_seq = ? WHERE id = 1`
	updateTargetSeqQuery = `UPDATE counters SET next_target_seq = ? WHERE id = 1`
	deleteMessagesQuery  = `DELETE FROM messages`
)

// SQLStore is a durable MessageStore backed by SQLite, following the
// teacher's database/marketdata.go pattern: WAL mode for concurrent
// readers alongside the single writer, prepared statements held open
// for the lifetime of the store, and careful cleanup of
// already-prepared statements if a later one fails to prepare.
type SQLStore struct {
	db *sql.DB

	stmtInsert       *sql.Stmt
	stmtSelectRange  *sql.Stmt
	stmtSelectMaxSeq *sql.Stmt
	stmtCounters     *sql.Stmt
	stmtSetSender    *sql.Stmt
	stmtSetTarget    *sql.Stmt
}

// NewSQLStore opens (or creates) a SQLite database at dbPath, applies
// the schema, and prepares every statement the store needs.
func NewSQLStore(dbPath string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	if _, err := db.Exec(createSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO counters (id, next_sender_seq, next_target_seq, created_at) VALUES (1, 1, 1, ?)`, fixcore.NowTimestamp().String()); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: seed counters: %w", err)
	}

	s := &SQLStore{db: db}
	prepared := []**sql.Stmt{&s.stmtInsert, &s.stmtSelectRange, &s.stmtSelectMaxSeq, &s.stmtCounters, &s.stmtSetSender, &s.stmtSetTarget}
	queries := []string{insertMessageQuery, selectRangeQuery, selectMaxSeqQuery, selectCountersQuery, updateSenderSeqQuery, updateTargetSeqQuery}

	for i, q := range queries {
		stmt, err := db.Prepare(q)
		if err != nil {
			for j := 0; j < i; j++ {
				(*prepared[j]).Close()
			}
			db.Close()
			return nil, fmt.Errorf("store: prepare statement %d: %w", i, err)
		}
		*prepared[i] = stmt
	}
	return s, nil
}

// Close releases the prepared statements and the underlying database
// handle.
func (s *SQLStore) Close() error {
	s.stmtInsert.Close()
	s.stmtSelectRange.Close()
	s.stmtSelectMaxSeq.Close()
	s.stmtCounters.Close()
	s.stmtSetSender.Close()
	s.stmtSetTarget.Close()
	return s.db.Close()
}

func (s *SQLStore) Store(seq fixcore.SeqNum, raw []byte) error {
	_, err := s.stmtInsert.Exec(int64(seq), raw)
	if err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("sqlite insert failed: %v", err)}
	}
	return nil
}

func (s *SQLStore) GetRange(begin, end fixcore.SeqNum) ([][]byte, error) {
	effectiveEnd := end
	if effectiveEnd == 0 {
		var maxSeq int64
		if err := s.stmtSelectMaxSeq.QueryRow().Scan(&maxSeq); err != nil {
			return nil, &fixcore.StoreError{Reason: fmt.Sprintf("sqlite max seq query failed: %v", err)}
		}
		effectiveEnd = fixcore.SeqNum(maxSeq)
	}

	rows, err := s.stmtSelectRange.Query(int64(begin), int64(effectiveEnd))
	if err != nil {
		return nil, &fixcore.StoreError{Reason: fmt.Sprintf("sqlite range query failed: %v", err)}
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var seq int64
		var body []byte
		if err := rows.Scan(&seq, &body); err != nil {
			return nil, &fixcore.StoreError{Reason: fmt.Sprintf("sqlite row scan failed: %v", err)}
		}
		out = append(out, body)
	}
	if len(out) == 0 {
		return nil, &fixcore.RangeNotAvailableError{Begin: begin, End: end}
	}
	return out, nil
}

func (s *SQLStore) counters() (nextSender, nextTarget int64, createdAt string, err error) {
	err = s.stmtCounters.QueryRow().Scan(&nextSender, &nextTarget, &createdAt)
	return
}

func (s *SQLStore) NextSenderSeq() (fixcore.SeqNum, error) {
	nextSender, _, _, err := s.counters()
	if err != nil {
		return 0, &fixcore.StoreError{Reason: fmt.Sprintf("sqlite counters query failed: %v", err)}
	}
	return fixcore.SeqNum(nextSender), nil
}

func (s *SQLStore) NextTargetSeq() (fixcore.SeqNum, error) {
	_, nextTarget, _, err := s.counters()
	if err != nil {
		return 0, &fixcore.StoreError{Reason: fmt.Sprintf("sqlite counters query failed: %v", err)}
	}
	return fixcore.SeqNum(nextTarget), nil
}

func (s *SQLStore) SetNextSenderSeq(seq fixcore.SeqNum) error {
	if _, err := s.stmtSetSender.Exec(int64(seq)); err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("sqlite update next_sender_seq failed: %v", err)}
	}
	return nil
}

func (s *SQLStore) SetNextTargetSeq(seq fixcore.SeqNum) error {
	if _, err := s.stmtSetTarget.Exec(int64(seq)); err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("sqlite update next_target_seq failed: %v", err)}
	}
	return nil
}

func (s *SQLStore) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("sqlite begin tx failed: %v", err)}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteMessagesQuery); err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("sqlite delete messages failed: %v", err)}
	}
	if _, err := tx.Exec(`UPDATE counters SET next_sender_seq = 1, next_target_seq = 1 WHERE id = 1`); err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("sqlite reset counters failed: %v", err)}
	}
	if err := tx.Commit(); err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("sqlite commit failed: %v", err)}
	}
	return nil
}

func (s *SQLStore) CreationTime() (fixcore.Timestamp, error) {
	_, _, createdAt, err := s.counters()
	if err != nil {
		return fixcore.Timestamp{}, &fixcore.StoreError{Reason: fmt.Sprintf("sqlite counters query failed: %v", err)}
	}
	return fixcore.ParseTimestamp(createdAt)
}

// Refresh is a no-op: every read already goes straight to SQLite, so
// there is no cached state to invalidate.
func (s *SQLStore) Refresh() error {
	return nil
}

var _ MessageStore = (*SQLStore)(nil)
