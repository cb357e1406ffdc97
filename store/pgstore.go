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
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS ironfix_messages (
	session_key TEXT NOT NULL,
	seq_num BIGINT NOT NULL,
	body BYTEA NOT NULL,
	PRIMARY KEY (session_key, seq_num)
);
CREATE TABLE IF NOT EXISTS ironfix_counters (
	session_key TEXT PRIMARY KEY,
	next_sender_seq BIGINT NOT NULL,
	next_target_seq BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresStore is a durable MessageStore backed by a pgx connection
// pool, intended for acceptor-side deployments serving many
// concurrent sessions from one process (the "multiple
// readers may run concurrently with other sessions' writers" is
// naturally satisfied by one pool shared across sessions, each scoped
// by session_key).
type PostgresStore struct {
	pool       *pgxpool.Pool
	sessionKey string
}

// NewPostgresStore connects to connString and ensures the schema
// exists. sessionKey scopes all operations to one FIX session within
// a shared database.
func NewPostgresStore(ctx context.Context, connString, sessionKey string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("store: pgx connect: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: pgx init schema: %w", err)
	}
	if _, err := pool.Exec(ctx, `INSERT INTO ironfix_counters (session_key, next_sender_seq, next_target_seq) VALUES ($1, 1, 1) ON CONFLICT (session_key) DO NOTHING`, sessionKey); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: pgx seed counters: %w", err)
	}
	return &PostgresStore{pool: pool, sessionKey: sessionKey}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Store(seq fixcore.SeqNum, raw []byte) error {
	ctx := context.Background()
	_, err := s.pool.Exec(ctx, `INSERT INTO ironfix_messages (session_key, seq_num, body) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, s.sessionKey, int64(seq), raw)
	if err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("pgx insert failed: %v", err)}
	}
	return nil
}

func (s *PostgresStore) GetRange(begin, end fixcore.SeqNum) ([][]byte, error) {
	ctx := context.Background()
	effectiveEnd := end
	if effectiveEnd == 0 {
		var maxSeq int64
		row := s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(seq_num), 0) FROM ironfix_messages WHERE session_key = $1`, s.sessionKey)
		if err := row.Scan(&maxSeq); err != nil {
			return nil, &fixcore.StoreError{Reason: fmt.Sprintf("pgx max seq query failed: %v", err)}
		}
		effectiveEnd = fixcore.SeqNum(maxSeq)
	}

	rows, err := s.pool.Query(ctx, `SELECT body FROM ironfix_messages WHERE session_key = $1 AND seq_num >= $2 AND seq_num <= $3 ORDER BY seq_num ASC`, s.sessionKey, int64(begin), int64(effectiveEnd))
	if err != nil {
		return nil, &fixcore.StoreError{Reason: fmt.Sprintf("pgx range query failed: %v", err)}
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, &fixcore.StoreError{Reason: fmt.Sprintf("pgx row scan failed: %v", err)}
		}
		out = append(out, body)
	}
	if len(out) == 0 {
		return nil, &fixcore.RangeNotAvailableError{Begin: begin, End: end}
	}
	return out, nil
}

func (s *PostgresStore) counters() (nextSender, nextTarget int64, err error) {
	ctx := context.Background()
	row := s.pool.QueryRow(ctx, `SELECT next_sender_seq, next_target_seq FROM ironfix_counters WHERE session_key = $1`, s.sessionKey)
	err = row.Scan(&nextSender, &nextTarget)
	return
}

func (s *PostgresStore) NextSenderSeq() (fixcore.SeqNum, error) {
	nextSender, _, err := s.counters()
	if err != nil {
		return 0, &fixcore.StoreError{Reason: fmt.Sprintf("pgx counters query failed: %v", err)}
	}
	return fixcore.SeqNum(nextSender), nil
}

func (s *PostgresStore) NextTargetSeq() (fixcore.SeqNum, error) {
	_, nextTarget, err := s.counters()
	if err != nil {
		return 0, &fixcore.StoreError{Reason: fmt.Sprintf("pgx counters query failed: %v", err)}
	}
	return fixcore.SeqNum(nextTarget), nil
}

func (s *PostgresStore) SetNextSenderSeq(seq fixcore.SeqNum) error {
	ctx := context.Background()
	_, err := s.pool.Exec(ctx, `UPDATE ironfix_counters SET next_sender_seq = $1 WHERE session_key = $2`, int64(seq), s.sessionKey)
	if err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("pgx update next_sender_seq failed: %v", err)}
	}
	return nil
}

func (s *PostgresStore) SetNextTargetSeq(seq fixcore.SeqNum) error {
	ctx := context.Background()
	_, err := s.pool.Exec(ctx, `UPDATE ironfix_counters SET next_target_seq = $1 WHERE session_key = $2`, int64(seq), s.sessionKey)
	if err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("pgx update next_target_seq failed: %v", err)}
	}
	return nil
}

func (s *PostgresStore) Reset() error {
	ctx := context.Background()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("pgx begin tx failed: %v", err)}
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ironfix_messages WHERE session_key = $1`, s.sessionKey); err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("pgx delete messages failed: %v", err)}
	}
	if _, err := tx.Exec(ctx, `UPDATE ironfix_counters SET next_sender_seq = 1, next_target_seq = 1 WHERE session_key = $1`, s.sessionKey); err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("pgx reset counters failed: %v", err)}
	}
	if err := tx.Commit(ctx); err != nil {
		return &fixcore.StoreError{Reason: fmt.Sprintf("pgx commit failed: %v", err)}
	}
	return nil
}

func (s *PostgresStore) CreationTime() (fixcore.Timestamp, error) {
	ctx := context.Background()
	var createdAt fixcore.Timestamp
	row := s.pool.QueryRow(ctx, `SELECT created_at FROM ironfix_counters WHERE session_key = $1`, s.sessionKey)
	if err := row.Scan(&createdAt.Time); err != nil {
		return fixcore.Timestamp{}, &fixcore.StoreError{Reason: fmt.Sprintf("pgx created_at query failed: %v", err)}
	}
	return createdAt, nil
}

// Refresh is a no-op: every read already goes straight to Postgres.
func (s *PostgresStore) Refresh() error {
	return nil
}

var _ MessageStore = (*PostgresStore)(nil)
