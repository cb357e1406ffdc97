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

package fast

import (
	"bytes"
	"testing"
)

// TestEncodeUint_Zero verifies zero encodes as the single sentinel
// byte 0x80.
func TestEncodeUint_Zero(t *testing.T) {
	got := EncodeUint(nil, 0)
	want := []byte{0x80}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeUint(0) = % x, want % x", got, want)
	}
}

// TestEncodeUint_Larger reproduces the session contract scenario S6: 942 must
// encode as [0x07, 0xAE].
func TestEncodeUint_Larger(t *testing.T) {
	got := EncodeUint(nil, 942)
	want := []byte{0x07, 0xAE}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeUint(942) = % x, want % x", got, want)
	}
}

// TestStopBitUint_RoundTrip verifies the uint round-trip invariant
// from the session contract across a range of representative values including
// the 7-bit and multi-byte boundaries.
func TestStopBitUint_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 942, 16384, 1 << 40, ^uint64(0)}
	for _, v := range values {
		buf := EncodeUint(nil, v)
		got, consumed, err := DecodeUint(buf)
		if err != nil {
			t.Fatalf("DecodeUint(%d) returned error: %v", v, err)
		}
		if consumed != len(buf) {
			t.Fatalf("DecodeUint(%d) consumed %d bytes, want %d", v, consumed, len(buf))
		}
		if got != v {
			t.Fatalf("round trip for %d produced %d", v, got)
		}
	}
}

// TestStopBitInt_RoundTrip verifies signed round trips across the
// sign boundary near +/-64, the exact region the session contract flags the
// original source's encoder as buggy for.
func TestStopBitInt_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 63, -63, 64, -64, 65, -65, 8191, -8192, 1 << 40, -(1 << 40)}
	for _, v := range values {
		buf := EncodeInt(nil, v)
		got, consumed, err := DecodeInt(buf)
		if err != nil {
			t.Fatalf("DecodeInt(%d) returned error: %v", v, err)
		}
		if consumed != len(buf) {
			t.Fatalf("DecodeInt(%d) consumed %d bytes, want %d", v, consumed, len(buf))
		}
		if got != v {
			t.Fatalf("round trip for %d produced %d (encoded % x)", v, got, buf)
		}
	}
}

// TestEncodeASCIIString_Basic reproduces the original source's
// test_encode_ascii case: "Hi!" encodes as [H, i, '!'|0x80].
func TestEncodeASCIIString_Basic(t *testing.T) {
	got := EncodeASCIIString(nil, "Hi!")
	want := []byte{'H', 'i', '!' | 0x80}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeASCIIString(\"Hi!\") = % x, want % x", got, want)
	}
}

// TestEncodeASCIIString_Empty reproduces test_encode_ascii_empty: the
// empty string encodes as the single sentinel byte 0x80.
func TestEncodeASCIIString_Empty(t *testing.T) {
	got := EncodeASCIIString(nil, "")
	want := []byte{0x80}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeASCIIString(\"\") = % x, want % x", got, want)
	}
}

// TestStopBitASCIIString_RoundTrip verifies the string round-trip
// invariant from the session contract.
func TestStopBitASCIIString_RoundTrip(t *testing.T) {
	values := []string{"", "A", "Hi!", "FIXT.1.1", "the quick brown fox"}
	for _, v := range values {
		buf := EncodeASCIIString(nil, v)
		got, consumed, err := DecodeASCIIString(buf)
		if err != nil {
			t.Fatalf("DecodeASCIIString(%q) returned error: %v", v, err)
		}
		if consumed != len(buf) {
			t.Fatalf("DecodeASCIIString(%q) consumed %d bytes, want %d", v, consumed, len(buf))
		}
		if got != v {
			t.Fatalf("round trip for %q produced %q", v, got)
		}
	}
}

// TestEncodeBytes_Basic reproduces the original source's
// test_encode_bytes case: [1,2,3] encodes as [0x83, 1, 2, 3].
func TestEncodeBytes_Basic(t *testing.T) {
	got := EncodeBytes(nil, []byte{1, 2, 3})
	want := []byte{0x83, 1, 2, 3}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeBytes([1,2,3]) = % x, want % x", got, want)
	}
}

// TestStopBitNullableUint_RoundTrip verifies the null sentinel and
// value+1 shift round trip correctly.
func TestStopBitNullableUint_RoundTrip(t *testing.T) {
	got, consumed, err := DecodeNullableUint(EncodeNullableUint(nil, nil))
	if err != nil {
		t.Fatalf("DecodeNullableUint(nil) returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("DecodeNullableUint(nil) = %v, want nil", got)
	}
	if consumed != 1 {
		t.Fatalf("DecodeNullableUint(nil) consumed %d bytes, want 1", consumed)
	}

	v := uint64(41)
	buf := EncodeNullableUint(nil, &v)
	gotPtr, _, err := DecodeNullableUint(buf)
	if err != nil {
		t.Fatalf("DecodeNullableUint(41) returned error: %v", err)
	}
	if gotPtr == nil || *gotPtr != v {
		t.Fatalf("DecodeNullableUint(41) = %v, want 41", gotPtr)
	}
}
