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

// Package transport frames a FIX tag=value byte stream into discrete
// messages and drives the TCP initiator/acceptor loops that feed a
// session.
package transport

import (
	"bytes"
	"math"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

const soh = 0x01

// FixCodec locates message boundaries in a growing byte buffer the
// way a bufio.Scanner split function does: it reports how many bytes
// the next complete frame occupies, or that more data is needed.
//
// Grounded directly on ironfix-transport's Tokio FixCodec::decode:
// the same two-field-scan-then-length-check algorithm, adapted from
// BytesMut/memchr to []byte/bytes.IndexByte.
type FixCodec struct {
	MaxMessageSize   int
	ValidateChecksum bool
}

// NewFixCodec returns a FixCodec with a 1MiB maximum message size and
// ValidateChecksum set. Decode only locates frame boundaries and does
// not read ValidateChecksum; the CheckSum is verified by
// tagvalue.Decoder.
func NewFixCodec() *FixCodec {
	return &FixCodec{MaxMessageSize: 1 << 20, ValidateChecksum: true}
}

// Decode inspects src for one complete frame. It returns the frame
// length and true if a full frame is present; it returns (0, false,
// nil) if more data must arrive before a frame can be identified.
func (c *FixCodec) Decode(src []byte) (frameLen int, ok bool, err error) {
	const minHeader = 2 // "8="
	if len(src) < minHeader {
		return 0, false, nil
	}
	if src[0] != '8' || src[1] != '=' {
		return 0, false, fixcore.ErrInvalidBeginString
	}

	firstSOH := bytes.IndexByte(src, soh)
	if firstSOH < 0 {
		return 0, false, nil
	}

	bodyLenFieldStart := firstSOH + 1
	if bodyLenFieldStart+2 > len(src) || src[bodyLenFieldStart] != '9' || src[bodyLenFieldStart+1] != '=' {
		return 0, false, fixcore.ErrMissingBodyLength
	}
	bodyLenValueStart := bodyLenFieldStart + 2
	bodyLenSOH := bytes.IndexByte(src[bodyLenValueStart:], soh)
	if bodyLenSOH < 0 {
		return 0, false, nil
	}
	bodyLenSOH += bodyLenValueStart

	bodyLength, ok := parseNonNegativeInt(src[bodyLenValueStart:bodyLenSOH])
	if !ok {
		return 0, false, &fixcore.InvalidBodyLengthError{Value: string(src[bodyLenValueStart:bodyLenSOH])}
	}

	// total = header-through-BodyLength-SOH + body + "10=XXX" + SOH.
	total := (bodyLenSOH + 1) + bodyLength + 7

	if c.MaxMessageSize > 0 && total > c.MaxMessageSize {
		return 0, false, &fixcore.MessageTooLargeError{Size: total, MaxSize: c.MaxMessageSize}
	}
	if len(src) < total {
		return 0, false, nil
	}
	return total, true, nil
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
