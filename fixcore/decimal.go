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

import (
	"fmt"

	"github.com/govalues/decimal"
)

// Price and Qty are the decimal-valued FIX fields (e.g. tag 44 Price,
// tag 38 OrderQty). They wrap govalues/decimal rather than float64 so
// that FAST's mantissa/exponent decimal cell type round-trips exactly
// and tag=value decimal strings never pick up binary floating point
// error.
type Price struct {
	decimal.Decimal
}

type Qty struct {
	decimal.Decimal
}

// ParsePrice parses a tag=value decimal string into a Price.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return Price{}, fmt.Errorf("fixcore: invalid Price %q: %w", s, err)
	}
	return Price{d}, nil
}

// ParseQty parses a tag=value decimal string into a Qty.
func ParseQty(s string) (Qty, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return Qty{}, fmt.Errorf("fixcore: invalid Qty %q: %w", s, err)
	}
	return Qty{d}, nil
}

// DecimalFromParts builds a decimal.Decimal from a FAST decimal
// field's (mantissa, exponent) pair: value = mantissa * 10^exponent.
// FAST only ever sends a non-positive exponent (a scale), so a
// positive exponent is rejected rather than silently re-scaled.
func DecimalFromParts(mantissa int64, exponent int32) (decimal.Decimal, error) {
	if exponent > 0 {
		return decimal.Decimal{}, fmt.Errorf("fixcore: positive FAST decimal exponent %d is not representable", exponent)
	}
	d, err := decimal.New(mantissa, int(-exponent))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("fixcore: invalid FAST decimal mantissa=%d exponent=%d: %w", mantissa, exponent, err)
	}
	return d, nil
}

// DecimalToParts decomposes d into the (mantissa, exponent) pair the
// FAST decimal cell type encodes.
func DecimalToParts(d decimal.Decimal) (mantissa int64, exponent int32) {
	return d.Coef(), -int32(d.Scale())
}
