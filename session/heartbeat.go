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
	"sync"
	"time"

	"github.com/google/uuid"
)

// HeartbeatManager implements the heartbeat protocol: an
// outbound Heartbeat is due every HeartBtInt seconds of outbound
// silence, and a TestRequest is due if nothing has been received for
// HeartBtInt+1 seconds. A second full interval of silence after the
// TestRequest fires a timeout.
type HeartbeatManager struct {
	interval time.Duration

	mu            sync.Mutex
	lastSent      time.Time
	lastReceived  time.Time
	testReqSentAt time.Time
	testReqID     string
}

// NewHeartbeatManager returns a manager for the given heartbeat
// interval.
func NewHeartbeatManager(interval time.Duration) *HeartbeatManager {
	now := time.Now()
	return &HeartbeatManager{interval: interval, lastSent: now, lastReceived: now}
}

// RecordSent notes that an outbound message (of any type) was just
// sent, resetting the send timer.
func (h *HeartbeatManager) RecordSent() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastSent = time.Now()
}

// RecordReceived notes that an inbound message (of any type) just
// arrived, resetting the receive timer and clearing any outstanding
// TestRequest.
func (h *HeartbeatManager) RecordReceived() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastReceived = time.Now()
	h.testReqSentAt = time.Time{}
	h.testReqID = ""
}

// ShouldSendHeartbeat reports whether HeartBtInt seconds have elapsed
// since the last outbound message.
func (h *HeartbeatManager) ShouldSendHeartbeat() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return time.Since(h.lastSent) >= h.interval
}

// ShouldSendTestRequest reports whether HeartBtInt+1 seconds have
// elapsed since the last inbound message and no TestRequest is
// already outstanding. The returned id must be used as TestReqID
// (tag 112) on the outgoing TestRequest.
func (h *HeartbeatManager) ShouldSendTestRequest() (id string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.testReqSentAt.IsZero() {
		return "", false
	}
	if time.Since(h.lastReceived) < h.interval+time.Second {
		return "", false
	}
	h.testReqID = uuid.NewString()
	h.testReqSentAt = time.Now()
	return h.testReqID, true
}

// IsTimedOut reports whether a full interval has elapsed since an
// outstanding TestRequest was sent with no reply, which fires
// EventHeartbeatTimeout.
func (h *HeartbeatManager) IsTimedOut() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.testReqSentAt.IsZero() {
		return false
	}
	return time.Since(h.testReqSentAt) >= h.interval
}
