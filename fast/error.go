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

// Package fast implements the FAST (FIX Adapted for STreaming) binary
// encoding: stop-bit primitives, presence maps, operator-driven
// dictionaries, and the Encoder/Decoder built on top of them.
package fast

import "fmt"

// Error variants mirror ironfix-fast/src/error.rs's FastError enum
// one-for-one, translated from a Rust sum type to distinct Go
// error struct types.

type UnexpectedEOFError struct{}

func (e *UnexpectedEOFError) Error() string { return "fast: unexpected end of input" }

type UnknownTemplateError struct {
	TemplateID uint32
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("fast: unknown template id %d", e.TemplateID)
}

type InvalidPresenceMapError struct{}

func (e *InvalidPresenceMapError) Error() string { return "fast: invalid presence map" }

type IntegerOverflowError struct{}

func (e *IntegerOverflowError) Error() string { return "fast: integer overflow decoding stop-bit value" }

type InvalidStringError struct{}

func (e *InvalidStringError) Error() string { return "fast: invalid string encoding" }

type InvalidDecimalError struct {
	Exponent int32
	Mantissa int64
}

func (e *InvalidDecimalError) Error() string {
	return fmt.Sprintf("fast: invalid decimal mantissa=%d exponent=%d", e.Mantissa, e.Exponent)
}

type MissingMandatoryFieldError struct {
	Name string
}

func (e *MissingMandatoryFieldError) Error() string {
	return fmt.Sprintf("fast: missing mandatory field %q", e.Name)
}

type InvalidOperatorError struct {
	Name string
}

func (e *InvalidOperatorError) Error() string {
	return fmt.Sprintf("fast: invalid operator %q", e.Name)
}

type DictionaryEntryNotFoundError struct {
	Key string
}

func (e *DictionaryEntryNotFoundError) Error() string {
	return fmt.Sprintf("fast: dictionary entry %q not found", e.Key)
}

type SequenceLengthMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *SequenceLengthMismatchError) Error() string {
	return fmt.Sprintf("fast: sequence length mismatch: expected %d, got %d", e.Expected, e.Actual)
}
