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
	"math"
	"unicode/utf8"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

const soh = 0x01

// Decoder turns one already-framed tag=value message (the transport
// package's stream framer is responsible for locating frame
// boundaries) into a fixcore.RawMessage.
//
// HOT PATH: Decode is called once per inbound message. It makes a
// single forward pass over buf, splitting on SOH and '=' with
// strings.IndexByte-equivalent byte scans rather than strings.Split
// (which would allocate a slice of substrings).
type Decoder struct {
	ValidateChecksum bool
	ValidateLength   bool

	fields []fixcore.Field
}

// NewDecoder returns a Decoder with both validations enabled, the
// conservative default for an inbound session.
func NewDecoder() *Decoder {
	return &Decoder{ValidateChecksum: true, ValidateLength: true}
}

// Decode scans buf (one complete SOH-delimited, checksum-terminated
// frame, trailing SOH included) into a RawMessage whose fields borrow
// buf directly.
func (d *Decoder) Decode(buf []byte) (*fixcore.RawMessage, error) {
	if len(buf) < 2 || buf[0] != '8' || buf[1] != '=' {
		return nil, fixcore.ErrInvalidBeginString
	}

	fields := d.fields[:0]
	pos := 0
	bodyLength := -1
	checksumDeclared := -1
	sawMsgType := false

	for pos < len(buf) {
		eq := indexByteFrom(buf, pos, '=')
		if eq < 0 {
			return nil, fixcore.ErrIncomplete
		}
		tagBytes := buf[pos:eq]
		tag, ok := parseTag(tagBytes)
		if !ok {
			return nil, &fixcore.InvalidTagError{Raw: string(tagBytes)}
		}

		end := indexByteFrom(buf, eq+1, soh)
		if end < 0 {
			return nil, fixcore.ErrIncomplete
		}
		value := buf[eq+1 : end]

		if d.ValidateLength && !utf8.Valid(value) {
			return nil, fixcore.ErrInvalidUTF8
		}

		switch fixcore.FieldTag(tag) {
		case 9:
			n, ok := parseNonNegativeInt(value)
			if !ok {
				return nil, &fixcore.InvalidBodyLengthError{Value: string(value)}
			}
			bodyLength = n
		case 35:
			sawMsgType = true
		case 10:
			n, ok := parseChecksumValue(value)
			if !ok {
				return nil, &fixcore.DecodeError{Reason: "invalid CheckSum value: " + string(value)}
			}
			checksumDeclared = n
		}

		fields = append(fields, fixcore.Field{Tag: fixcore.FieldTag(tag), Value: value})
		pos = end + 1
	}

	if bodyLength < 0 {
		return nil, fixcore.ErrMissingBodyLength
	}
	if !sawMsgType {
		return nil, fixcore.ErrMissingMsgType
	}
	if checksumDeclared < 0 {
		return nil, &fixcore.DecodeError{Reason: "missing CheckSum field"}
	}

	if d.ValidateChecksum {
		checksumFieldStart := lastChecksumFieldStart(buf)
		calculated := Checksum(buf[:checksumFieldStart])
		if calculated != checksumDeclared {
			return nil, &fixcore.ChecksumMismatchError{Calculated: calculated, Declared: checksumDeclared}
		}
	}

	d.fields = fields
	return fixcore.NewRawMessage(buf, fields), nil
}

// lastChecksumFieldStart returns the byte offset where "10=" begins,
// scanning from the end since CheckSum is always the final field.
func lastChecksumFieldStart(buf []byte) int {
	for i := len(buf) - 1; i >= 2; i-- {
		if buf[i] == soh && i+3 <= len(buf) && buf[i+1] == '1' && buf[i+2] == '0' && i+3 < len(buf) && buf[i+3] == '=' {
			return i + 1
		}
	}
	return len(buf)
}

func indexByteFrom(buf []byte, from int, b byte) int {
	for i := from; i < len(buf); i++ {
		if buf[i] == b {
			return i
		}
	}
	return -1
}

// parseTag parses a field tag. Tags are decimal with no leading
// zeros, and must not overflow 32 bits.
func parseTag(b []byte) (int, bool) {
	if len(b) == 0 || (len(b) > 1 && b[0] == '0') {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > math.MaxUint32 {
			return 0, false
		}
	}
	return n, true
}

func parseNonNegativeInt(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > math.MaxUint32 {
			return 0, false
		}
	}
	return n, true
}

// parseChecksumValue parses the CheckSum (tag 10) value, which the
// wire format requires to be exactly three ASCII digits
// (zero-padded, e.g. "007"), rejecting both shorter and longer forms.
func parseChecksumValue(b []byte) (int, bool) {
	if len(b) != 3 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
