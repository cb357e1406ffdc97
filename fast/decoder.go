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

// Decoder reads one FAST-encoded message: the presence map first,
// then fields in template-definition order via the typed Decode*
// methods, mirroring Encoder's operator handling exactly so a message
// produced by Encoder always round-trips through Decoder.
type Decoder struct {
	Dict *DictionaryScope

	pmap *PresenceMap
	body []byte
	pos  int
}

// NewDecoder parses frame's leading presence map and returns a
// Decoder positioned at the first field's bytes.
func NewDecoder(dict *DictionaryScope, frame []byte) (*Decoder, error) {
	pmap, n, err := DecodePresenceMap(frame)
	if err != nil {
		return nil, err
	}
	return &Decoder{Dict: dict, pmap: pmap, body: frame[n:]}, nil
}

// DecodeUint decodes an unsigned field under op.
func (d *Decoder) DecodeUint(key string, op Operator, def uint64) (uint64, error) {
	switch op {
	case OperatorNone:
		if !d.pmap.NextBit() {
			return 0, &MissingMandatoryFieldError{Name: key}
		}
		v, n, err := DecodeUint(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		return v, nil
	case OperatorConstant:
		return def, nil
	case OperatorDefault:
		if !d.pmap.NextBit() {
			return def, nil
		}
		v, n, err := DecodeUint(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		return v, nil
	case OperatorCopy:
		if !d.pmap.NextBit() {
			prev, ok := d.Dict.Get(key)
			if !ok {
				return 0, &DictionaryEntryNotFoundError{Key: key}
			}
			return prev.UInt, nil
		}
		v, n, err := DecodeUint(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		d.Dict.Set(key, UIntValue(v))
		return v, nil
	case OperatorIncrement:
		if !d.pmap.NextBit() {
			prev, ok := d.Dict.Get(key)
			if !ok {
				return 0, &DictionaryEntryNotFoundError{Key: key}
			}
			v := prev.UInt + 1
			d.Dict.Set(key, UIntValue(v))
			return v, nil
		}
		v, n, err := DecodeUint(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		d.Dict.Set(key, UIntValue(v))
		return v, nil
	case OperatorDelta:
		delta, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		prev, _ := d.Dict.Get(key)
		var prevVal int64
		if prev.Kind == CellUInt {
			prevVal = int64(prev.UInt)
		}
		v := uint64(prevVal + delta)
		d.Dict.Set(key, UIntValue(v))
		return v, nil
	default:
		return 0, &InvalidOperatorError{Name: op.String()}
	}
}

// DecodeInt decodes a signed field under op.
func (d *Decoder) DecodeInt(key string, op Operator, def int64) (int64, error) {
	switch op {
	case OperatorNone:
		if !d.pmap.NextBit() {
			return 0, &MissingMandatoryFieldError{Name: key}
		}
		v, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		return v, nil
	case OperatorConstant:
		return def, nil
	case OperatorDefault:
		if !d.pmap.NextBit() {
			return def, nil
		}
		v, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		return v, nil
	case OperatorCopy:
		if !d.pmap.NextBit() {
			prev, ok := d.Dict.Get(key)
			if !ok {
				return 0, &DictionaryEntryNotFoundError{Key: key}
			}
			return prev.Int, nil
		}
		v, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		d.Dict.Set(key, IntValue(v))
		return v, nil
	case OperatorIncrement:
		if !d.pmap.NextBit() {
			prev, ok := d.Dict.Get(key)
			if !ok {
				return 0, &DictionaryEntryNotFoundError{Key: key}
			}
			v := prev.Int + 1
			d.Dict.Set(key, IntValue(v))
			return v, nil
		}
		v, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		d.Dict.Set(key, IntValue(v))
		return v, nil
	case OperatorDelta:
		delta, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, err
		}
		d.pos += n
		prev, _ := d.Dict.Get(key)
		var prevVal int64
		if prev.Kind == CellInt {
			prevVal = prev.Int
		}
		v := prevVal + delta
		d.Dict.Set(key, IntValue(v))
		return v, nil
	default:
		return 0, &InvalidOperatorError{Name: op.String()}
	}
}

// DecodeString decodes an ASCII string field under op.
func (d *Decoder) DecodeString(key string, op Operator, def string) (string, error) {
	switch op {
	case OperatorNone:
		if !d.pmap.NextBit() {
			return "", &MissingMandatoryFieldError{Name: key}
		}
		v, n, err := DecodeASCIIString(d.body[d.pos:])
		if err != nil {
			return "", err
		}
		d.pos += n
		return v, nil
	case OperatorConstant:
		return def, nil
	case OperatorDefault:
		if !d.pmap.NextBit() {
			return def, nil
		}
		v, n, err := DecodeASCIIString(d.body[d.pos:])
		if err != nil {
			return "", err
		}
		d.pos += n
		return v, nil
	case OperatorCopy:
		if !d.pmap.NextBit() {
			prev, ok := d.Dict.Get(key)
			if !ok {
				return "", &DictionaryEntryNotFoundError{Key: key}
			}
			return prev.Str, nil
		}
		v, n, err := DecodeASCIIString(d.body[d.pos:])
		if err != nil {
			return "", err
		}
		d.pos += n
		d.Dict.Set(key, StringValue(v))
		return v, nil
	case OperatorTail:
		if !d.pmap.NextBit() {
			prev, ok := d.Dict.Get(key)
			if !ok {
				return "", &DictionaryEntryNotFoundError{Key: key}
			}
			return prev.Str, nil
		}
		removeCount, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return "", err
		}
		d.pos += n
		suffix, n, err := DecodeASCIIString(d.body[d.pos:])
		if err != nil {
			return "", err
		}
		d.pos += n
		prev, _ := d.Dict.Get(key)
		v, err := tailApply(prev.Str, int(removeCount), suffix)
		if err != nil {
			return "", err
		}
		d.Dict.Set(key, StringValue(v))
		return v, nil
	default:
		return "", &InvalidOperatorError{Name: op.String()}
	}
}

// tailApply reconstructs the new value by dropping removeCount
// trailing bytes from prev and appending suffix, mirroring the
// encoder's commonPrefixLen-derived removeCount exactly.
func tailApply(prev string, removeCount int, suffix string) (string, error) {
	keep := len(prev) - removeCount
	if keep < 0 || keep > len(prev) {
		return "", &InvalidStringError{}
	}
	return prev[:keep] + suffix, nil
}

// DecodeBytes decodes a byte-vector field under op.
func (d *Decoder) DecodeBytes(key string, op Operator) ([]byte, error) {
	switch op {
	case OperatorNone:
		if !d.pmap.NextBit() {
			return nil, &MissingMandatoryFieldError{Name: key}
		}
		v, n, err := DecodeBytes(d.body[d.pos:])
		if err != nil {
			return nil, err
		}
		d.pos += n
		return v, nil
	case OperatorCopy:
		if !d.pmap.NextBit() {
			prev, ok := d.Dict.Get(key)
			if !ok {
				return nil, &DictionaryEntryNotFoundError{Key: key}
			}
			return prev.Bytes, nil
		}
		v, n, err := DecodeBytes(d.body[d.pos:])
		if err != nil {
			return nil, err
		}
		d.pos += n
		d.Dict.Set(key, BytesValue(v))
		return v, nil
	default:
		return nil, &InvalidOperatorError{Name: op.String()}
	}
}

// DecodeDecimal decodes a decimal field under op, returning its
// (mantissa, exponent) pair.
func (d *Decoder) DecodeDecimal(key string, op Operator) (mantissa int64, exponent int32, err error) {
	switch op {
	case OperatorNone:
		if !d.pmap.NextBit() {
			return 0, 0, &MissingMandatoryFieldError{Name: key}
		}
		exp, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, 0, err
		}
		d.pos += n
		mant, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, 0, err
		}
		d.pos += n
		return mant, int32(exp), nil
	case OperatorCopy:
		if !d.pmap.NextBit() {
			prev, ok := d.Dict.Get(key)
			if !ok {
				return 0, 0, &DictionaryEntryNotFoundError{Key: key}
			}
			return prev.Mant, prev.Exp, nil
		}
		exp, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, 0, err
		}
		d.pos += n
		mant, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, 0, err
		}
		d.pos += n
		d.Dict.Set(key, DecimalValue(mant, int32(exp)))
		return mant, int32(exp), nil
	case OperatorDelta:
		exp, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, 0, err
		}
		d.pos += n
		deltaMant, n, err := DecodeInt(d.body[d.pos:])
		if err != nil {
			return 0, 0, err
		}
		d.pos += n
		prev, _ := d.Dict.Get(key)
		var prevMant int64
		if prev.Kind == CellDecimal {
			prevMant = prev.Mant
		}
		mant := prevMant + deltaMant
		d.Dict.Set(key, DecimalValue(mant, int32(exp)))
		return mant, int32(exp), nil
	default:
		return 0, 0, &InvalidOperatorError{Name: op.String()}
	}
}
