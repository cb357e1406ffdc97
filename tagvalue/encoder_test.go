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
	"bytes"
	"testing"
)

// TestEncoder_Finish_WellFormed verifies the produced frame starts
// with BeginString, contains a correctly computed BodyLength, and
// ends with a valid CheckSum trailer — the checksum-correctness
// invariant from the session contract.
func TestEncoder_Finish_WellFormed(t *testing.T) {
	enc := NewEncoder()
	enc.PutStr(35, "0")
	enc.PutInt(34, 7)
	buf := enc.Finish("FIX.4.4")

	if !bytes.HasPrefix(buf, []byte("8=FIX.4.4\x01")) {
		t.Fatalf("frame does not start with BeginString: %q", buf)
	}
	if !bytes.Contains(buf, []byte("9=")) {
		t.Fatalf("frame missing BodyLength: %q", buf)
	}
	if !bytes.HasSuffix(buf, []byte("\x01")) {
		t.Fatalf("frame does not end with trailing SOH: %q", buf)
	}

	d := NewDecoder()
	if _, err := d.Decode(buf); err != nil {
		t.Fatalf("Decode of freshly-encoded frame failed: %v", err)
	}
}

// TestEncoder_Clear verifies that Clear resets the body so the
// Encoder can be reused without carrying over fields from a prior
// message, the buffer-reuse discipline the hot path depends on.
func TestEncoder_Clear(t *testing.T) {
	enc := NewEncoder()
	enc.PutStr(35, "0")
	enc.Clear()
	enc.PutStr(35, "1")
	buf := enc.Finish("FIX.4.4")

	d := NewDecoder()
	msg, err := d.Decode(buf)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	mt, _ := msg.MsgType()
	if mt != "1" {
		t.Fatalf("MsgType = %q, want 1 (stale field from before Clear leaked through)", mt)
	}
}

func BenchmarkEncoderFinish(b *testing.B) {
	enc := NewEncoder()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.Clear()
		enc.PutStr(35, "0")
		enc.PutStr(49, "SENDER")
		enc.PutStr(56, "TARGET")
		enc.PutInt(34, int64(i))
		_ = enc.Finish("FIXT.1.1")
	}
}
