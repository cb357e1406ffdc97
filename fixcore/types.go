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

// Package fixcore defines the shared data model for the FIX/FAST
// engine: field tags, sequence numbers, timestamps, message types,
// and the session identity triple. These types are imported by every
// other package in the module and carry no protocol-specific logic of
// their own.
package fixcore

import (
	"fmt"
	"time"
)

// FieldTag is a FIX tag number, e.g. 8 for BeginString or 35 for MsgType.
type FieldTag int

// SeqNum is a FIX MsgSeqNum. Valid sequence numbers start at 1; 0 is
// used internally to mean "unset".
type SeqNum uint64

// Timestamp wraps time.UTC with the FIX UTCTimestamp wire format
// (YYYYMMDD-HH:MM:SS.sss).
type Timestamp struct {
	time.Time
}

const fixTimeFormat = "20060102-15:04:05.000"

// NowTimestamp returns the current time as a Timestamp, truncated to
// millisecond precision the way the wire format requires.
func NowTimestamp() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Millisecond)}
}

// String renders the timestamp in FIX UTCTimestamp form.
func (t Timestamp) String() string {
	return t.Time.Format(fixTimeFormat)
}

// ParseTimestamp parses a FIX UTCTimestamp field value.
func ParseTimestamp(s string) (Timestamp, error) {
	parsed, err := time.Parse(fixTimeFormat, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("fixcore: invalid UTCTimestamp %q: %w", s, err)
	}
	return Timestamp{parsed.UTC()}, nil
}

// CompID is a SenderCompID/TargetCompID value. The wire format limits
// these to 32 bytes.
type CompID string

const maxCompIDLen = 32

// Validate reports whether the CompID satisfies the 32-byte wire limit.
func (c CompID) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("fixcore: CompID must not be empty")
	}
	if len(c) > maxCompIDLen {
		return fmt.Errorf("fixcore: CompID %q exceeds %d bytes", c, maxCompIDLen)
	}
	return nil
}

// MsgType identifies the FIX message type (tag 35). The constants
// below are the admin message types the session layer itself
// generates and consumes; an application message type is any other
// tag 35 string.
type MsgType string

const (
	MsgTypeHeartbeat     MsgType = "0"
	MsgTypeTestRequest   MsgType = "1"
	MsgTypeResendRequest MsgType = "2"
	MsgTypeReject        MsgType = "3"
	MsgTypeSequenceReset MsgType = "4"
	MsgTypeLogout        MsgType = "5"
	MsgTypeLogon         MsgType = "A"
)

// IsAdmin reports whether mt is one of the session-level admin message
// types the engine handles itself.
func (mt MsgType) IsAdmin() bool {
	switch mt {
	case MsgTypeHeartbeat, MsgTypeTestRequest, MsgTypeResendRequest,
		MsgTypeReject, MsgTypeSequenceReset, MsgTypeLogout, MsgTypeLogon:
		return true
	default:
		return false
	}
}

// SessionID is the triple that identifies a FIX session: the begin
// string plus both counterparty CompIDs. An optional qualifier
// disambiguates multiple concurrent sessions between the same two
// CompIDs (e.g. separate sessions per trading desk).
type SessionID struct {
	BeginString string
	SenderCompID CompID
	TargetCompID CompID
	Qualifier    string
}

// String renders a stable key for use as a map key or log field.
func (s SessionID) String() string {
	if s.Qualifier == "" {
		return fmt.Sprintf("%s:%s->%s", s.BeginString, s.SenderCompID, s.TargetCompID)
	}
	return fmt.Sprintf("%s:%s->%s:%s", s.BeginString, s.SenderCompID, s.TargetCompID, s.Qualifier)
}

// Counterparty returns the SessionID as seen from the other side of
// the connection (sender and target swapped).
func (s SessionID) Counterparty() SessionID {
	return SessionID{
		BeginString:  s.BeginString,
		SenderCompID: s.TargetCompID,
		TargetCompID: s.SenderCompID,
		Qualifier:    s.Qualifier,
	}
}
