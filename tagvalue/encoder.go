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
	"strconv"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

// Encoder builds one tag=value message body. Callers append fields in
// wire order with the Put* methods, then call Finish to prepend
// BeginString/BodyLength and append the CheckSum trailer.
//
// Encoder is reused across messages via Clear to avoid reallocating
// its backing buffer on every send, the same buffer-reuse discipline
// a pre-sized trade store relies on to keep its hot path allocation-free.
type Encoder struct {
	body []byte
}

// NewEncoder returns an empty Encoder with a pre-sized buffer.
func NewEncoder() *Encoder {
	return &Encoder{body: make([]byte, 0, 256)}
}

func (e *Encoder) putTag(tag fixcore.FieldTag) {
	e.body = strconv.AppendInt(e.body, int64(tag), 10)
	e.body = append(e.body, '=')
}

// PutStr appends a string-valued field.
func (e *Encoder) PutStr(tag fixcore.FieldTag, value string) {
	e.putTag(tag)
	e.body = append(e.body, value...)
	e.body = append(e.body, soh)
}

// PutRaw appends a byte-valued field without any validation.
func (e *Encoder) PutRaw(tag fixcore.FieldTag, value []byte) {
	e.putTag(tag)
	e.body = append(e.body, value...)
	e.body = append(e.body, soh)
}

// PutInt appends a signed-integer-valued field.
func (e *Encoder) PutInt(tag fixcore.FieldTag, value int64) {
	e.putTag(tag)
	e.body = strconv.AppendInt(e.body, value, 10)
	e.body = append(e.body, soh)
}

// PutUint appends an unsigned-integer-valued field.
func (e *Encoder) PutUint(tag fixcore.FieldTag, value uint64) {
	e.putTag(tag)
	e.body = strconv.AppendUint(e.body, value, 10)
	e.body = append(e.body, soh)
}

// PutBool appends a FIX boolean field ("Y"/"N").
func (e *Encoder) PutBool(tag fixcore.FieldTag, value bool) {
	if value {
		e.PutStr(tag, "Y")
	} else {
		e.PutStr(tag, "N")
	}
}

// PutChar appends a single-character field.
func (e *Encoder) PutChar(tag fixcore.FieldTag, value byte) {
	e.putTag(tag)
	e.body = append(e.body, value, soh)
}

// Finish returns the complete, checksummed wire message: BeginString,
// BodyLength, the accumulated body, and the CheckSum trailer. It does
// not reset the Encoder; call Clear before reuse.
func (e *Encoder) Finish(beginString string) []byte {
	// BodyLength (tag 9) counts every byte from the field following
	// BodyLength through the field preceding CheckSum, inclusive of
	// delimiters (the session contract).
	header := make([]byte, 0, 32)
	header = append(header, '8', '=')
	header = append(header, beginString...)
	header = append(header, soh)
	header = append(header, '9', '=')
	header = strconv.AppendInt(header, int64(len(e.body)), 10)
	header = append(header, soh)

	msg := make([]byte, 0, len(header)+len(e.body)+7)
	msg = append(msg, header...)
	msg = append(msg, e.body...)

	sum := Checksum(msg)
	msg = append(msg, '1', '0', '=')
	msg = append(msg, FormatChecksum(sum)...)
	msg = append(msg, soh)
	return msg
}

// Clear resets the Encoder's body buffer for reuse, retaining its
// backing array.
func (e *Encoder) Clear() {
	e.body = e.body[:0]
}
