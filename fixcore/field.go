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

package fixcore

import "strconv"

// Field is a single decoded tag=value pair. Value shares the backing
// array of whatever buffer it was decoded from — the same zero-copy
// slicing prime-fix-md-go's extractSingleFieldValue relies on — so a
// Field is only valid as long as that buffer is not reused or mutated.
type Field struct {
	Tag   FieldTag
	Value []byte
}

// String returns the field value as a string. This allocates a copy;
// call it only when the value must outlive the source buffer.
func (f Field) String() string {
	return string(f.Value)
}

// Int parses the field value as a signed integer.
func (f Field) Int() (int64, error) {
	v, err := strconv.ParseInt(string(f.Value), 10, 64)
	if err != nil {
		return 0, &DecodeError{Reason: "not an integer: " + string(f.Value), Tag: f.Tag}
	}
	return v, nil
}

// Uint parses the field value as an unsigned integer.
func (f Field) Uint() (uint64, error) {
	v, err := strconv.ParseUint(string(f.Value), 10, 64)
	if err != nil {
		return 0, &DecodeError{Reason: "not an unsigned integer: " + string(f.Value), Tag: f.Tag}
	}
	return v, nil
}

// Bool parses a FIX boolean field ("Y"/"N").
func (f Field) Bool() (bool, error) {
	switch string(f.Value) {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, &DecodeError{Reason: "not a FIX boolean: " + string(f.Value), Tag: f.Tag}
	}
}

// RawMessage is a decoded message whose fields still borrow the input
// buffer. It is the cheapest possible decode result and is valid only
// until that buffer is reused; callers who need to retain a message
// past the current read must call Own.
type RawMessage struct {
	buf    []byte
	Fields []Field
}

// NewRawMessage wraps a buffer and its already-scanned fields.
func NewRawMessage(buf []byte, fields []Field) *RawMessage {
	return &RawMessage{buf: buf, Fields: fields}
}

// Get returns the first field with the given tag, if present.
func (m *RawMessage) Get(tag FieldTag) (Field, bool) {
	for _, f := range m.Fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

// GetAll returns every field with the given tag, in order. Used for
// repeating groups, where the same tag may appear multiple times.
func (m *RawMessage) GetAll(tag FieldTag) []Field {
	var out []Field
	for _, f := range m.Fields {
		if f.Tag == tag {
			out = append(out, f)
		}
	}
	return out
}

// MsgType returns the decoded MsgType (tag 35).
func (m *RawMessage) MsgType() (MsgType, bool) {
	f, ok := m.Get(35)
	if !ok {
		return "", false
	}
	return MsgType(f.Value), true
}

// Own copies the underlying buffer and rewrites the field offset
// table against the copy, producing a message that outlives the
// original read buffer.
func (m *RawMessage) Own() *OwnedMessage {
	owned := make([]byte, len(m.buf))
	copy(owned, m.buf)

	offsets := make([]fieldOffset, len(m.Fields))
	for i, f := range m.Fields {
		start := indexOfSubslice(m.buf, f.Value)
		offsets[i] = fieldOffset{tag: f.Tag, start: start, end: start + len(f.Value)}
	}
	return &OwnedMessage{buf: owned, offsets: offsets}
}

// indexOfSubslice returns the offset of sub within buf, assuming sub
// shares buf's backing array (as every Field.Value produced by the
// tagvalue decoder does).
func indexOfSubslice(buf, sub []byte) int {
	if len(sub) == 0 {
		// Zero-length values carry no address info of their own;
		// Own() does not need their exact offset since OwnedMessage
		// re-derives length from end-start == 0 regardless of start.
		return 0
	}
	base := &buf[0]
	target := &sub[0]
	// Pointer arithmetic via unsafe is avoided; instead we scan, which
	// is acceptable since Own() is an explicit opt-in copy path, not
	// the hot decode path itself.
	for i := range buf {
		if &buf[i] == target {
			return i
		}
	}
	_ = base
	return 0
}

type fieldOffset struct {
	tag        FieldTag
	start, end int
}

// OwnedMessage is a decoded message that owns its byte buffer: the
// buffer is a private copy and fields are represented as an offset
// table rather than slices, so it can be retained indefinitely (e.g.
// stored for resend) without holding a reference into a shared,
// reusable read buffer.
type OwnedMessage struct {
	buf     []byte
	offsets []fieldOffset
}

// Get returns the first field with the given tag, if present.
func (m *OwnedMessage) Get(tag FieldTag) (Field, bool) {
	for _, o := range m.offsets {
		if o.tag == tag {
			return Field{Tag: o.tag, Value: m.buf[o.start:o.end]}, true
		}
	}
	return Field{}, false
}

// Bytes returns the full encoded message.
func (m *OwnedMessage) Bytes() []byte {
	return m.buf
}
