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
	"sort"
	"sync"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

// MemoryStore is the in-memory reference MessageStore: a map keyed by
// sequence number guarded by an RWMutex, with atomically-tracked
// counters. Its locking discipline — RWMutex plus defensive copies
// under lock — follows the same pattern prime-fix-md-go's TradeStore
// and OrderStore use for their in-memory maps, generalized from a
// fixed-capacity ring buffer to unbounded sequence-keyed retention
// (this store must keep every message until an explicit Reset, not
// evict at a fixed size).
type MemoryStore struct {
	mu sync.RWMutex

	messages    map[fixcore.SeqNum][]byte
	nextSender  fixcore.SeqNum
	nextTarget  fixcore.SeqNum
	createdAt   fixcore.Timestamp
}

// NewMemoryStore returns an empty store with both counters at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages:   make(map[fixcore.SeqNum][]byte),
		nextSender: 1,
		nextTarget: 1,
		createdAt:  fixcore.NowTimestamp(),
	}
}

func (s *MemoryStore) Store(seq fixcore.SeqNum, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.messages[seq]; ok {
		// Storing the same message twice is idempotent; storing a
		// different message under an already-used sequence number is
		// a programmer error the store surfaces rather than silently
		// overwrites.
		if string(existing) == string(raw) {
			return nil
		}
		return &fixcore.StoreError{Reason: "sequence number already stored with different content"}
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	s.messages[seq] = cp
	return nil
}

func (s *MemoryStore) GetRange(begin, end fixcore.SeqNum) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return nil, nil
	}

	keys := make([]fixcore.SeqNum, 0, len(s.messages))
	for k := range s.messages {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	effectiveEnd := end
	if effectiveEnd == 0 {
		effectiveEnd = keys[len(keys)-1]
	}

	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k >= begin && k <= effectiveEnd {
			out = append(out, s.messages[k])
		}
	}
	if len(out) == 0 {
		return nil, &fixcore.RangeNotAvailableError{Begin: begin, End: end}
	}
	return out, nil
}

func (s *MemoryStore) NextSenderSeq() (fixcore.SeqNum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextSender, nil
}

func (s *MemoryStore) NextTargetSeq() (fixcore.SeqNum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextTarget, nil
}

func (s *MemoryStore) SetNextSenderSeq(seq fixcore.SeqNum) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSender = seq
	return nil
}

func (s *MemoryStore) SetNextTargetSeq(seq fixcore.SeqNum) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTarget = seq
	return nil
}

func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = make(map[fixcore.SeqNum][]byte)
	s.nextSender = 1
	s.nextTarget = 1
	return nil
}

func (s *MemoryStore) CreationTime() (fixcore.Timestamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdAt, nil
}

func (s *MemoryStore) Refresh() error {
	return nil
}
