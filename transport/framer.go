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

package transport

import (
	"bufio"
	"io"
)

// Framer reads frames off r using a FixCodec, growing its buffer as
// needed the way ironfix-transport's BytesMut reservation hint does.
type Framer struct {
	codec *FixCodec
	r     *bufio.Reader
	buf   []byte
}

// NewFramer wraps r with the given codec.
func NewFramer(r io.Reader, codec *FixCodec) *Framer {
	return &Framer{codec: codec, r: bufio.NewReaderSize(r, 4096), buf: make([]byte, 0, 4096)}
}

// Next blocks until one complete frame is available and returns it.
// The returned slice is only valid until the next call to Next.
func (f *Framer) Next() ([]byte, error) {
	for {
		if n, ok, err := f.codec.Decode(f.buf); err != nil {
			return nil, err
		} else if ok {
			frame := make([]byte, n)
			copy(frame, f.buf[:n])
			f.buf = f.buf[:copy(f.buf, f.buf[n:])]
			return frame, nil
		}

		chunk := make([]byte, 4096)
		n, err := f.r.Read(chunk)
		if n > 0 {
			f.buf = append(f.buf, chunk[:n]...)
		}
		if err != nil {
			return nil, err
		}
	}
}
