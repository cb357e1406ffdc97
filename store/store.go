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

// Package store implements the FIX message store contract from
// the session contract: durable retention of every outbound message keyed by
// MsgSeqNum, sequence counters, and reset/refresh hooks.
package store

import "github.com/coinbase-samples/ironfix-go/fixcore"

// MessageStore is the contract every store backend (in-memory, SQLite,
// Postgres) implements. A single writer per session is guaranteed by
// the session FSM; multiple readers may run concurrently with other
// sessions' writers (the session contract).
type MessageStore interface {
	// Store persists raw under seq. Storing the same (seq, raw) pair
	// twice is a no-op.
	Store(seq fixcore.SeqNum, raw []byte) error

	// GetRange returns every stored message with sequence number in
	// [begin, end], inclusive. end == 0 means "through the latest
	// stored sequence number". Returns a RangeNotAvailableError if the
	// store is non-empty but has nothing in the requested window.
	GetRange(begin, end fixcore.SeqNum) ([][]byte, error)

	NextSenderSeq() (fixcore.SeqNum, error)
	NextTargetSeq() (fixcore.SeqNum, error)
	SetNextSenderSeq(fixcore.SeqNum) error
	SetNextTargetSeq(fixcore.SeqNum) error

	// Reset clears all stored messages and returns both sequence
	// counters to 1.
	Reset() error

	CreationTime() (fixcore.Timestamp, error)

	// Refresh is a hook for reloading cached state from durable
	// storage. Every backend in this package reads its counters
	// straight from storage on each call, so its Refresh is a no-op
	// (RedisCache delegates to its backing store).
	Refresh() error
}
