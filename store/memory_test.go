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
	"errors"
	"testing"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

// TestMemoryStore_GetRangeAll verifies that GetRange(1, 0) returns
// every stored message in ascending sequence order, the
// get_range(1,0)==all-sorted invariant from the session contract.
func TestMemoryStore_GetRangeAll(t *testing.T) {
	s := NewMemoryStore()
	for _, seq := range []fixcore.SeqNum{3, 1, 2} {
		if err := s.Store(seq, []byte{byte(seq)}); err != nil {
			t.Fatalf("Store(%d) returned error: %v", seq, err)
		}
	}

	got, err := s.GetRange(1, 0)
	if err != nil {
		t.Fatalf("GetRange(1,0) returned error: %v", err)
	}
	want := []byte{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("GetRange(1,0) returned %d messages, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i][0] != w {
			t.Fatalf("GetRange(1,0)[%d] = %d, want %d", i, got[i][0], w)
		}
	}
}

// TestMemoryStore_StoreIdempotent verifies storing the same (seq,
// bytes) pair twice is a no-op rather than an error.
func TestMemoryStore_StoreIdempotent(t *testing.T) {
	s := NewMemoryStore()
	raw := []byte("8=FIX.4.4\x01")
	if err := s.Store(5, raw); err != nil {
		t.Fatalf("first Store returned error: %v", err)
	}
	if err := s.Store(5, raw); err != nil {
		t.Fatalf("idempotent re-Store returned error: %v", err)
	}
}

// TestMemoryStore_RangeNotAvailable verifies that requesting a window
// with no stored messages inside a non-empty store surfaces
// RangeNotAvailableError rather than an empty, ambiguous result.
func TestMemoryStore_RangeNotAvailable(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Store(10, []byte("x")); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	_, err := s.GetRange(1, 5)
	var notAvailable *fixcore.RangeNotAvailableError
	if !errors.As(err, &notAvailable) {
		t.Fatalf("GetRange error = %v, want *RangeNotAvailableError", err)
	}
}

// TestMemoryStore_Reset verifies Reset clears messages and returns
// both counters to 1.
func TestMemoryStore_Reset(t *testing.T) {
	s := NewMemoryStore()
	s.Store(1, []byte("x"))
	s.SetNextSenderSeq(42)
	s.SetNextTargetSeq(17)

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if seq, _ := s.NextSenderSeq(); seq != 1 {
		t.Fatalf("NextSenderSeq after Reset = %d, want 1", seq)
	}
	if seq, _ := s.NextTargetSeq(); seq != 1 {
		t.Fatalf("NextTargetSeq after Reset = %d, want 1", seq)
	}
	got, err := s.GetRange(1, 0)
	if err != nil {
		t.Fatalf("GetRange on empty store returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("GetRange on empty store returned %d messages, want 0", len(got))
	}
}
