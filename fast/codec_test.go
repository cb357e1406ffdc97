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

// TestEncodeDecode_NoneOperator verifies a mandatory field with no
// operator round trips and always consumes a presence map bit.
func TestEncodeDecode_NoneOperator(t *testing.T) {
	enc := NewEncoder(NewDictionaryScope())
	if err := enc.EncodeUint("MsgSeqNum", OperatorNone, 34, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	frame := enc.Finish()

	dec, err := NewDecoder(NewDictionaryScope(), frame)
	if err != nil {
		t.Fatalf("new decoder: %v", err)
	}
	got, err := dec.DecodeUint("MsgSeqNum", OperatorNone, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != 34 {
		t.Fatalf("got %d, want 34", got)
	}
}

// TestEncodeDecode_ConstantOperator verifies Constant emits no
// presence bit and no stream bytes; the value is always the template
// default on both sides.
func TestEncodeDecode_ConstantOperator(t *testing.T) {
	enc := NewEncoder(NewDictionaryScope())
	if err := enc.EncodeUint("TemplateID", OperatorConstant, 5, 5); err != nil {
		t.Fatalf("encode: %v", err)
	}
	frame := enc.Finish()
	if len(frame) != 1 {
		t.Fatalf("expected only the sentinel pmap byte, got % x", frame)
	}

	dec, err := NewDecoder(NewDictionaryScope(), frame)
	if err != nil {
		t.Fatalf("new decoder: %v", err)
	}
	got, err := dec.DecodeUint("TemplateID", OperatorConstant, 5)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

// TestEncodeDecode_ConstantMismatch verifies a non-matching Constant
// value is rejected at encode time.
func TestEncodeDecode_ConstantMismatch(t *testing.T) {
	enc := NewEncoder(NewDictionaryScope())
	err := enc.EncodeUint("TemplateID", OperatorConstant, 6, 5)
	if err == nil {
		t.Fatal("expected an error for a mismatched constant value")
	}
}

// TestEncodeDecode_CopySeries verifies Copy round trips a series with
// repeated values through the dictionary.
func TestEncodeDecode_CopySeries(t *testing.T) {
	encDict := NewDictionaryScope()
	decDict := NewDictionaryScope()
	values := []uint64{100, 100, 100, 101, 101}

	for _, v := range values {
		enc := NewEncoder(encDict)
		if err := enc.EncodeUint("Price", OperatorCopy, v, 0); err != nil {
			t.Fatalf("encode %d: %v", v, err)
		}
		frame := enc.Finish()

		dec, err := NewDecoder(decDict, frame)
		if err != nil {
			t.Fatalf("new decoder: %v", err)
		}
		got, err := dec.DecodeUint("Price", OperatorCopy, 0)
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("got %d, want %d", got, v)
		}
	}
}

// TestEncodeDecode_IncrementSeries verifies Increment round trips a
// series mixing steps of exactly one with larger jumps.
func TestEncodeDecode_IncrementSeries(t *testing.T) {
	encDict := NewDictionaryScope()
	decDict := NewDictionaryScope()
	values := []uint64{1, 2, 3, 10, 11}

	for _, v := range values {
		enc := NewEncoder(encDict)
		if err := enc.EncodeUint("MsgSeqNum", OperatorIncrement, v, 0); err != nil {
			t.Fatalf("encode %d: %v", v, err)
		}
		frame := enc.Finish()

		dec, err := NewDecoder(decDict, frame)
		if err != nil {
			t.Fatalf("new decoder: %v", err)
		}
		got, err := dec.DecodeUint("MsgSeqNum", OperatorIncrement, 0)
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("got %d, want %d", got, v)
		}
	}
}

// TestEncodeDecode_DeltaSeries verifies Delta round trips a sequence
// of signed deltas, crossing the +/-64 boundary the original source's
// encoder mishandles.
func TestEncodeDecode_DeltaSeries(t *testing.T) {
	encDict := NewDictionaryScope()
	decDict := NewDictionaryScope()
	values := []int64{0, 64, -64, 128, -1, 8191}

	for _, v := range values {
		enc := NewEncoder(encDict)
		if err := enc.EncodeInt("RefPrice", OperatorDelta, v, 0); err != nil {
			t.Fatalf("encode %d: %v", v, err)
		}
		frame := enc.Finish()

		dec, err := NewDecoder(decDict, frame)
		if err != nil {
			t.Fatalf("new decoder: %v", err)
		}
		got, err := dec.DecodeInt("RefPrice", OperatorDelta, 0)
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("got %d, want %d", got, v)
		}
	}
}

// TestEncodeDecode_TailSeries verifies Tail round trips a shared-root
// series of strings.
func TestEncodeDecode_TailSeries(t *testing.T) {
	encDict := NewDictionaryScope()
	decDict := NewDictionaryScope()
	values := []string{"EUR/USD", "EUR/USX", "EUR/USY", "EUR/USY"}

	for _, v := range values {
		enc := NewEncoder(encDict)
		if err := enc.EncodeString("Symbol", OperatorTail, v, ""); err != nil {
			t.Fatalf("encode %q: %v", v, err)
		}
		frame := enc.Finish()

		dec, err := NewDecoder(decDict, frame)
		if err != nil {
			t.Fatalf("new decoder: %v", err)
		}
		got, err := dec.DecodeString("Symbol", OperatorTail, "")
		if err != nil {
			t.Fatalf("decode %q: %v", v, err)
		}
		if got != v {
			t.Fatalf("got %q, want %q", got, v)
		}
	}
}

// TestEncodeDecode_BytesCopy verifies a Copy byte-vector field round
// trips a series that repeats a value.
func TestEncodeDecode_BytesCopy(t *testing.T) {
	encDict := NewDictionaryScope()
	decDict := NewDictionaryScope()
	values := [][]byte{{1, 2, 3}, {1, 2, 3}, {4, 5}}

	for _, v := range values {
		enc := NewEncoder(encDict)
		if err := enc.EncodeBytes("RawData", OperatorCopy, v); err != nil {
			t.Fatalf("encode % x: %v", v, err)
		}
		frame := enc.Finish()

		dec, err := NewDecoder(decDict, frame)
		if err != nil {
			t.Fatalf("new decoder: %v", err)
		}
		got, err := dec.DecodeBytes("RawData", OperatorCopy)
		if err != nil {
			t.Fatalf("decode % x: %v", v, err)
		}
		if !bytes.Equal(got, v) {
			t.Fatalf("got % x, want % x", got, v)
		}
	}
}

// TestEncodeDecode_DecimalDelta verifies a Delta decimal field round
// trips mantissa/exponent pairs.
func TestEncodeDecode_DecimalDelta(t *testing.T) {
	encDict := NewDictionaryScope()
	decDict := NewDictionaryScope()
	type pair struct {
		mant int64
		exp  int32
	}
	values := []pair{{10050, -2}, {10075, -2}, {9999, -2}}

	for _, v := range values {
		enc := NewEncoder(encDict)
		if err := enc.EncodeDecimal("Price", OperatorDelta, v.mant, v.exp); err != nil {
			t.Fatalf("encode %+v: %v", v, err)
		}
		frame := enc.Finish()

		dec, err := NewDecoder(decDict, frame)
		if err != nil {
			t.Fatalf("new decoder: %v", err)
		}
		mant, exp, err := dec.DecodeDecimal("Price", OperatorDelta)
		if err != nil {
			t.Fatalf("decode %+v: %v", v, err)
		}
		if mant != v.mant || exp != v.exp {
			t.Fatalf("got (%d,%d), want (%d,%d)", mant, exp, v.mant, v.exp)
		}
	}
}

// TestDictionaries_ResetIndependence verifies resetting global and
// per-template scopes does not clobber each other, per the session contract.
func TestDictionaries_ResetIndependence(t *testing.T) {
	d := NewDictionaries()
	d.Global.Set("A", UIntValue(1))
	d.Template(7).Set("B", UIntValue(2))

	d.Template(7).Reset()

	if _, ok := d.Global.Get("A"); !ok {
		t.Fatal("resetting template 7 must not clear the global scope")
	}
	if _, ok := d.Template(7).Get("B"); ok {
		t.Fatal("template 7's scope should be empty after reset")
	}
}
