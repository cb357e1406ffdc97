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

package tagvalue

import (
	"errors"
	"testing"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

// buildHeartbeat encodes a minimal Heartbeat (MsgType, CompIDs,
// MsgSeqNum, SendingTime) with Encoder, which computes its BodyLength
// and CheckSum.
func buildHeartbeat(t *testing.T) []byte {
	t.Helper()
	enc := NewEncoder()
	enc.PutStr(35, "0")
	enc.PutStr(49, "SENDER")
	enc.PutStr(56, "TARGET")
	enc.PutInt(34, 1)
	enc.PutStr(52, "20260101-00:00:00.000")
	return enc.Finish("FIXT.1.1")
}

// TestDecode_RoundTrip verifies that a message produced by Encoder can
// be decoded back into the same set of fields. This is the basic
// round-trip invariant from the session contract.
func TestDecode_RoundTrip(t *testing.T) {
	buf := buildHeartbeat(t)
	d := NewDecoder()
	msg, err := d.Decode(buf)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	mt, ok := msg.MsgType()
	if !ok || mt != fixcore.MsgTypeHeartbeat {
		t.Fatalf("MsgType = %q, ok=%v, want 0", mt, ok)
	}
	f, ok := msg.Get(34)
	if !ok {
		t.Fatalf("MsgSeqNum (34) not found")
	}
	seq, err := f.Int()
	if err != nil || seq != 1 {
		t.Fatalf("MsgSeqNum = %d, err=%v, want 1", seq, err)
	}
}

// TestDecode_ChecksumMismatch verifies S2 from the session contract: corrupting
// the CheckSum trailer surfaces a ChecksumMismatchError rather than
// silently accepting the frame.
func TestDecode_ChecksumMismatch(t *testing.T) {
	buf := buildHeartbeat(t)
	// Flip the last digit of the checksum, which is always the three
	// bytes immediately before the trailing SOH.
	buf[len(buf)-2]++

	d := NewDecoder()
	_, err := d.Decode(buf)
	var mismatch *fixcore.ChecksumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Decode error = %v, want *ChecksumMismatchError", err)
	}
}

// TestDecode_ChecksumValidationDisabled verifies that a corrupted
// checksum is accepted when ValidateChecksum is turned off, the same
// escape hatch the validate_checksum configuration option
// describes.
func TestDecode_ChecksumValidationDisabled(t *testing.T) {
	buf := buildHeartbeat(t)
	buf[len(buf)-2]++

	d := NewDecoder()
	d.ValidateChecksum = false
	if _, err := d.Decode(buf); err != nil {
		t.Fatalf("Decode returned error with checksum validation disabled: %v", err)
	}
}

// TestDecode_MissingBodyLength verifies that a frame without a
// BodyLength field is rejected rather than guessed at.
func TestDecode_MissingBodyLength(t *testing.T) {
	raw := []byte("8=FIXT.1.1\x0135=0\x0110=000\x01")
	d := NewDecoder()
	_, err := d.Decode(raw)
	if !errors.Is(err, fixcore.ErrMissingBodyLength) {
		t.Fatalf("Decode error = %v, want ErrMissingBodyLength", err)
	}
}

// TestDecode_InvalidBeginString verifies that a buffer not starting
// with "8=" is rejected immediately.
func TestDecode_InvalidBeginString(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode([]byte("9=10\x0135=0\x0110=000\x01"))
	if !errors.Is(err, fixcore.ErrInvalidBeginString) {
		t.Fatalf("Decode error = %v, want ErrInvalidBeginString", err)
	}
}

// TestDecode_LeadingZeroTag verifies the "no leading zeros on tags"
// edge case from the session contract.
func TestDecode_LeadingZeroTag(t *testing.T) {
	buf := buildHeartbeat(t)
	d := NewDecoder()
	_, err := d.Decode(buf)
	if err != nil {
		t.Fatalf("well-formed message unexpectedly failed: %v", err)
	}

	raw := []byte("8=FIXT.1.1\x019=6\x01035=0\x0110=241\x01")
	_, err = d.Decode(raw)
	var invalidTag *fixcore.InvalidTagError
	if !errors.As(err, &invalidTag) {
		t.Fatalf("Decode error = %v, want *InvalidTagError for leading-zero tag", err)
	}
}

// TestDecode_ZeroLengthValue verifies zero-length field values are
// legal per the session contract.
func TestDecode_ZeroLengthValue(t *testing.T) {
	enc := NewEncoder()
	enc.PutStr(35, "0")
	enc.PutStr(58, "")
	buf := enc.Finish("FIXT.1.1")

	d := NewDecoder()
	msg, err := d.Decode(buf)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	f, ok := msg.Get(58)
	if !ok {
		t.Fatalf("tag 58 not found")
	}
	if len(f.Value) != 0 {
		t.Fatalf("tag 58 value = %q, want empty", f.Value)
	}
}

func BenchmarkDecode(b *testing.B) {
	buf := []byte("8=FIXT.1.1\x019=30\x0135=0\x0149=SENDER\x0156=TARGET\x0134=1\x0110=209\x01")
	d := NewDecoder()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.Decode(buf); err != nil {
			b.Fatalf("Decode returned error: %v", err)
		}
	}
}
