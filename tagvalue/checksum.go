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

// Package tagvalue implements the classic FIX tag=value wire codec:
// field scanning, checksum validation, and the stream framer that
// locates message boundaries in a byte stream.
package tagvalue

// Checksum computes the FIX CheckSum (tag 10) value: the mod-256 sum
// of every byte in buf.
func Checksum(buf []byte) int {
	sum := 0
	for _, b := range buf {
		sum += int(b)
	}
	return sum % 256
}

// FormatChecksum renders a checksum as the required 3-digit
// zero-padded decimal string.
func FormatChecksum(sum int) string {
	const digits = "0123456789"
	return string([]byte{
		digits[(sum/100)%10],
		digits[(sum/10)%10],
		digits[sum%10],
	})
}
