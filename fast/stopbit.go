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

// maxStopBitBytes bounds a single stop-bit encoded scalar at 10
// bytes (70 payload bits), enough for a full uint64/int64 plus one
// sign-extension byte; anything longer is a corrupt stream.
const maxStopBitBytes = 10

// EncodeUint appends value's stop-bit encoding to dst (7 payload bits
// per byte, MSB-first, stop bit set on the final byte). Zero encodes
// as the single byte 0x80.
func EncodeUint(dst []byte, value uint64) []byte {
	if value == 0 {
		return append(dst, 0x80)
	}
	var groups [maxStopBitBytes]byte
	n := 0
	for value > 0 {
		groups[n] = byte(value & 0x7F)
		value >>= 7
		n++
	}
	groups[0] |= 0x80
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, groups[i])
	}
	return dst
}

// DecodeUint reads a stop-bit encoded unsigned integer from the front
// of data, returning the value and the number of bytes consumed.
func DecodeUint(data []byte) (value uint64, consumed int, err error) {
	var v uint64
	for i, b := range data {
		if i >= maxStopBitBytes {
			return 0, 0, &IntegerOverflowError{}
		}
		v = (v << 7) | uint64(b&0x7F)
		if b&0x80 != 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, &UnexpectedEOFError{}
}

// EncodeInt appends value's stop-bit encoding to dst using standard
// FAST 1.x two's-complement sign-extended signed integer encoding:
// as many 7-bit groups are emitted as needed for the most significant
// group's bit 6 to already match the value's sign, so the decoder can
// sign-extend correctly.
//
// This deliberately does not port ironfix-fast/src/encoder.rs's
// encode_int, whose fast path and break condition produce incorrect
// output for boundary values near +/-64; this is the published FAST
// 1.x algorithm instead.
func EncodeInt(dst []byte, value int64) []byte {
	var groups [maxStopBitBytes]byte
	n := 0
	v := value
	for {
		b := byte(v & 0x7F)
		v >>= 7 // arithmetic shift: sign-extends for negative v
		groups[n] = b
		n++
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			break
		}
	}
	groups[0] |= 0x80
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, groups[i])
	}
	return dst
}

// DecodeInt reads a stop-bit encoded signed integer from the front of
// data, sign-extending from the most significant byte's bit 6.
func DecodeInt(data []byte) (value int64, consumed int, err error) {
	var v int64
	n := 0
	for i, b := range data {
		if i >= maxStopBitBytes {
			return 0, 0, &IntegerOverflowError{}
		}
		v = (v << 7) | int64(b&0x7F)
		n++
		if b&0x80 != 0 {
			if data[0]&0x40 != 0 {
				totalBits := uint(n) * 7
				if totalBits < 64 {
					v |= int64(-1) << totalBits
				}
			}
			return v, n, nil
		}
	}
	return 0, 0, &UnexpectedEOFError{}
}

// EncodeASCIIString appends s's stop-bit encoding: every byte except
// the last has its top bit cleared, and the last byte has its top bit
// set as the stop bit. An empty string encodes as the single byte
// 0x80.
func EncodeASCIIString(dst []byte, s string) []byte {
	if len(s) == 0 {
		return append(dst, 0x80)
	}
	for i := 0; i < len(s)-1; i++ {
		dst = append(dst, s[i]&0x7F)
	}
	dst = append(dst, s[len(s)-1]|0x80)
	return dst
}

// DecodeASCIIString reads a stop-bit encoded ASCII string from the
// front of data.
func DecodeASCIIString(data []byte) (value string, consumed int, err error) {
	for i, b := range data {
		if b&0x80 != 0 {
			if i == 0 && b == 0x80 {
				return "", 1, nil
			}
			buf := make([]byte, i+1)
			copy(buf, data[:i])
			buf[i] = b &^ 0x80
			return string(buf), i + 1, nil
		}
	}
	return "", 0, &UnexpectedEOFError{}
}

// EncodeBytes appends value's stop-bit encoding: a stop-bit uint
// length prefix followed by the raw bytes.
func EncodeBytes(dst []byte, value []byte) []byte {
	dst = EncodeUint(dst, uint64(len(value)))
	dst = append(dst, value...)
	return dst
}

// DecodeBytes reads a length-prefixed byte vector from the front of
// data.
func DecodeBytes(data []byte) (value []byte, consumed int, err error) {
	length, n, err := DecodeUint(data)
	if err != nil {
		return nil, 0, err
	}
	end := n + int(length)
	if end > len(data) {
		return nil, 0, &UnexpectedEOFError{}
	}
	out := make([]byte, length)
	copy(out, data[n:end])
	return out, end, nil
}

// EncodeNullableUint appends value's stop-bit encoding, shifted by one
// so that 0 is free to mean "null" (0x80).
func EncodeNullableUint(dst []byte, value *uint64) []byte {
	if value == nil {
		return append(dst, 0x80)
	}
	return EncodeUint(dst, *value+1)
}

// DecodeNullableUint reads a nullable stop-bit unsigned integer,
// returning a nil pointer for the null sentinel.
func DecodeNullableUint(data []byte) (value *uint64, consumed int, err error) {
	v, n, err := DecodeUint(data)
	if err != nil {
		return nil, 0, err
	}
	if v == 0 {
		return nil, n, nil
	}
	v--
	return &v, n, nil
}
