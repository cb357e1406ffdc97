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

package session

import (
	"sync/atomic"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

// SequenceManager tracks the next outbound and expected inbound
// MsgSeqNum for one session using atomic counters, so sequence
// allocation stays lock-free and always wins any race against store
// insertion (a resend request must always find the message the
// sequence number was handed out for).
type SequenceManager struct {
	nextSender atomic.Uint64
	nextTarget atomic.Uint64
}

// NewSequenceManager returns a manager starting both counters at 1,
// the standard FIX MsgSeqNumInit.
func NewSequenceManager() *SequenceManager {
	sm := &SequenceManager{}
	sm.nextSender.Store(1)
	sm.nextTarget.Store(1)
	return sm
}

// NextSenderSeq returns the current next-outbound sequence number
// without consuming it.
func (sm *SequenceManager) NextSenderSeq() fixcore.SeqNum {
	return fixcore.SeqNum(sm.nextSender.Load())
}

// NextTargetSeq returns the expected next-inbound sequence number.
func (sm *SequenceManager) NextTargetSeq() fixcore.SeqNum {
	return fixcore.SeqNum(sm.nextTarget.Load())
}

// AllocateSenderSeq atomically hands out the next outbound sequence
// number (fetch-then-increment) and returns it, so the caller can
// stamp an outgoing message before it is handed to the store.
func (sm *SequenceManager) AllocateSenderSeq() fixcore.SeqNum {
	return fixcore.SeqNum(sm.nextSender.Add(1) - 1)
}

// CompareResult classifies an inbound MsgSeqNum against what was
// expected.
type CompareResult int

const (
	SeqEqual CompareResult = iota
	SeqGreater
	SeqLower
)

// Compare classifies received against the expected next-target
// sequence number.
func (sm *SequenceManager) Compare(received fixcore.SeqNum) CompareResult {
	expected := sm.NextTargetSeq()
	switch {
	case received == expected:
		return SeqEqual
	case received > expected:
		return SeqGreater
	default:
		return SeqLower
	}
}

// AdvanceTarget records that an inbound message with the expected
// sequence number was processed, advancing the next-target counter by
// one.
func (sm *SequenceManager) AdvanceTarget() {
	sm.nextTarget.Add(1)
}

// SetNextSenderSeq atomically overwrites the outbound counter, used
// by ResetOnLogon/SequenceReset-Reset handling.
func (sm *SequenceManager) SetNextSenderSeq(seq fixcore.SeqNum) {
	sm.nextSender.Store(uint64(seq))
}

// SetNextTargetSeq atomically overwrites the inbound counter, used by
// SequenceReset (both GapFill and Reset) handling.
func (sm *SequenceManager) SetNextTargetSeq(seq fixcore.SeqNum) {
	sm.nextTarget.Store(uint64(seq))
}

// Reset returns both counters to 1, per the store Reset
// semantics.
func (sm *SequenceManager) Reset() {
	sm.nextSender.Store(1)
	sm.nextTarget.Store(1)
}
