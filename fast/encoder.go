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

import "bytes"

// Encoder builds one FAST-encoded message: callers encode fields in
// template-definition order via the typed Encode* methods, which
// decide — based on the field's Operator — whether a presence map bit
// and/or stream bytes are needed, consulting dict for
// Copy/Increment/Delta/Tail's previous-value semantics. Finish
// prepends the accumulated presence map to the field bytes, since the
// pmap must appear first on the wire but can only be known once every
// field in the message has been visited.
//
// Grounded on ironfix-fast/src/encoder.rs's FastEncoder, reworked from
// a flat HashMap-keyed global/template-dictionary pair into an
// explicit *DictionaryScope the caller selects (global or
// per-template), preserving the requirement that scopes reset
// independently.
type Encoder struct {
	Dict *DictionaryScope

	bits []bool
	body []byte
}

// NewEncoder returns an Encoder consulting dict for stateful
// operators.
func NewEncoder(dict *DictionaryScope) *Encoder {
	return &Encoder{Dict: dict}
}

// Reset clears accumulated presence bits and field bytes so the
// Encoder can be reused for the next message; it does not clear Dict,
// since dictionary state persists across messages by design.
func (e *Encoder) Reset() {
	e.bits = e.bits[:0]
	e.body = e.body[:0]
}

func (e *Encoder) pushBit(b bool) {
	e.bits = append(e.bits, b)
}

// EncodeUint encodes an unsigned field under op, using key to look up
// the previous value in Dict for stateful operators and def as the
// template's declared default/initial value.
func (e *Encoder) EncodeUint(key string, op Operator, value uint64, def uint64) error {
	switch op {
	case OperatorNone:
		e.pushBit(true)
		e.body = EncodeUint(e.body, value)
	case OperatorConstant:
		if value != def {
			return &EncodeErrorConstantMismatch{Key: key}
		}
	case OperatorDefault:
		if value == def {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeUint(e.body, value)
		}
	case OperatorCopy:
		prev, ok := e.Dict.Get(key)
		if ok && prev.Kind == CellUInt && prev.UInt == value {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeUint(e.body, value)
		}
		e.Dict.Set(key, UIntValue(value))
	case OperatorIncrement:
		prev, ok := e.Dict.Get(key)
		if ok && prev.Kind == CellUInt && prev.UInt+1 == value {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeUint(e.body, value)
		}
		e.Dict.Set(key, UIntValue(value))
	case OperatorDelta:
		prev, ok := e.Dict.Get(key)
		var prevVal int64
		if ok && prev.Kind == CellUInt {
			prevVal = int64(prev.UInt)
		}
		e.body = EncodeInt(e.body, int64(value)-prevVal)
		e.Dict.Set(key, UIntValue(value))
	default:
		return &InvalidOperatorError{Name: op.String()}
	}
	return nil
}

// EncodeInt encodes a signed field under op.
func (e *Encoder) EncodeInt(key string, op Operator, value int64, def int64) error {
	switch op {
	case OperatorNone:
		e.pushBit(true)
		e.body = EncodeInt(e.body, value)
	case OperatorConstant:
		if value != def {
			return &EncodeErrorConstantMismatch{Key: key}
		}
	case OperatorDefault:
		if value == def {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeInt(e.body, value)
		}
	case OperatorCopy:
		prev, ok := e.Dict.Get(key)
		if ok && prev.Kind == CellInt && prev.Int == value {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeInt(e.body, value)
		}
		e.Dict.Set(key, IntValue(value))
	case OperatorIncrement:
		prev, ok := e.Dict.Get(key)
		if ok && prev.Kind == CellInt && prev.Int+1 == value {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeInt(e.body, value)
		}
		e.Dict.Set(key, IntValue(value))
	case OperatorDelta:
		prev, ok := e.Dict.Get(key)
		var prevVal int64
		if ok && prev.Kind == CellInt {
			prevVal = prev.Int
		}
		e.body = EncodeInt(e.body, value-prevVal)
		e.Dict.Set(key, IntValue(value))
	default:
		return &InvalidOperatorError{Name: op.String()}
	}
	return nil
}

// EncodeString encodes an ASCII string field under op. Tail is
// supported as "replace trailing bytes of previous": the encoded
// delta is the suffix of value that differs from prev, after the
// shared prefix.
func (e *Encoder) EncodeString(key string, op Operator, value string, def string) error {
	switch op {
	case OperatorNone:
		e.pushBit(true)
		e.body = EncodeASCIIString(e.body, value)
	case OperatorConstant:
		if value != def {
			return &EncodeErrorConstantMismatch{Key: key}
		}
	case OperatorDefault:
		if value == def {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeASCIIString(e.body, value)
		}
	case OperatorCopy:
		prev, ok := e.Dict.Get(key)
		if ok && prev.Kind == CellString && prev.Str == value {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeASCIIString(e.body, value)
		}
		e.Dict.Set(key, StringValue(value))
	case OperatorTail:
		prev, ok := e.Dict.Get(key)
		prevStr := ""
		if ok && prev.Kind == CellString {
			prevStr = prev.Str
		}
		if ok && prev.Kind == CellString && prevStr == value {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			shared := commonPrefixLen(prevStr, value)
			// removeCount tells the decoder how many trailing bytes of
			// prevStr to drop before appending the transmitted tail.
			removeCount := len(prevStr) - shared
			e.body = EncodeInt(e.body, int64(removeCount))
			e.body = EncodeASCIIString(e.body, value[shared:])
		}
		e.Dict.Set(key, StringValue(value))
	default:
		return &InvalidOperatorError{Name: op.String()}
	}
	return nil
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// EncodeBytes encodes a byte-vector field under op (None or Copy
// only; Tail/Delta on byte vectors is not needed by any field in
// scope).
func (e *Encoder) EncodeBytes(key string, op Operator, value []byte) error {
	switch op {
	case OperatorNone:
		e.pushBit(true)
		e.body = EncodeBytes(e.body, value)
	case OperatorCopy:
		prev, ok := e.Dict.Get(key)
		if ok && prev.Kind == CellBytes && bytes.Equal(prev.Bytes, value) {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeBytes(e.body, value)
		}
		e.Dict.Set(key, BytesValue(value))
	default:
		return &InvalidOperatorError{Name: op.String()}
	}
	return nil
}

// EncodeDecimal encodes a decimal field (mantissa, exponent) under
// op. None and Copy are supported directly; Delta sends the exponent
// as is and the mantissa as a delta against the previous mantissa,
// whatever the previous exponent was.
func (e *Encoder) EncodeDecimal(key string, op Operator, mantissa int64, exponent int32) error {
	switch op {
	case OperatorNone:
		e.pushBit(true)
		e.body = EncodeInt(e.body, int64(exponent))
		e.body = EncodeInt(e.body, mantissa)
	case OperatorCopy:
		prev, ok := e.Dict.Get(key)
		if ok && prev.Kind == CellDecimal && prev.Mant == mantissa && prev.Exp == exponent {
			e.pushBit(false)
		} else {
			e.pushBit(true)
			e.body = EncodeInt(e.body, int64(exponent))
			e.body = EncodeInt(e.body, mantissa)
		}
		e.Dict.Set(key, DecimalValue(mantissa, exponent))
	case OperatorDelta:
		prev, ok := e.Dict.Get(key)
		var prevMant int64
		if ok && prev.Kind == CellDecimal {
			prevMant = prev.Mant
		}
		e.body = EncodeInt(e.body, int64(exponent))
		e.body = EncodeInt(e.body, mantissa-prevMant)
		e.Dict.Set(key, DecimalValue(mantissa, exponent))
	default:
		return &InvalidOperatorError{Name: op.String()}
	}
	return nil
}

// Finish returns the complete encoded message: the presence map
// followed by every field's stream bytes, in the order they were
// encoded.
func (e *Encoder) Finish() []byte {
	out := NewPresenceMap(e.bits).Encode(nil)
	out = append(out, e.body...)
	return out
}

// EncodeErrorConstantMismatch reports that a Constant-operator field
// was encoded with a value other than its fixed template constant.
type EncodeErrorConstantMismatch struct {
	Key string
}

func (e *EncodeErrorConstantMismatch) Error() string {
	return "fast: constant field " + e.Key + " encoded with a non-constant value"
}
