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

package fixmsg

import (
	"testing"

	"github.com/coinbase-samples/ironfix-go/admin"
	"github.com/coinbase-samples/ironfix-go/constants"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/tagvalue"
)

func testHeader(seq fixcore.SeqNum) admin.Header {
	return admin.Header{
		BeginString:  "FIX.4.4",
		SenderCompID: "SENDER",
		TargetCompID: "TARGET",
		MsgSeqNum:    seq,
		SendingTime:  fixcore.NowTimestamp(),
	}
}

func decodeOrFail(t *testing.T, frame []byte) *fixcore.RawMessage {
	t.Helper()
	msg, err := tagvalue.NewDecoder().Decode(frame)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return msg
}

func TestBuildNewOrderSingle(t *testing.T) {
	price, err := fixcore.ParsePrice("50000.00")
	if err != nil {
		t.Fatalf("ParsePrice: %v", err)
	}
	qty, err := fixcore.ParseQty("0.01")
	if err != nil {
		t.Fatalf("ParseQty: %v", err)
	}

	frame := BuildNewOrderSingle(testHeader(1), NewOrderParams{
		Account:     "portfolio-123",
		ClOrdID:     "order-1",
		Symbol:      "BTC-USD",
		Side:        constants.SideBuy,
		OrdType:     constants.OrdTypeLimit,
		TimeInForce: constants.TimeInForceFOK,
		OrderQty:    qty,
		Price:       price,
		HasPrice:    true,
	})

	msg := decodeOrFail(t, frame)
	mt, _ := msg.MsgType()
	if mt != constants.MsgTypeNewOrderSingle {
		t.Fatalf("MsgType = %q, want %q", mt, constants.MsgTypeNewOrderSingle)
	}
	if f, ok := msg.Get(constants.TagSymbol); !ok || f.String() != "BTC-USD" {
		t.Fatalf("Symbol = %+v, want BTC-USD", f)
	}
	if f, ok := msg.Get(constants.TagPrice); !ok || f.String() != "50000.00" {
		t.Fatalf("Price = %+v, want 50000.00", f)
	}
	if _, ok := msg.Get(constants.TagCashOrderQty); ok {
		t.Fatalf("CashOrderQty should be absent when unset")
	}
}

func TestBuildOrderCancelRequest(t *testing.T) {
	frame := BuildOrderCancelRequest(testHeader(2), CancelOrderParams{
		Account:     "portfolio-123",
		ClOrdID:     "cancel-1",
		OrigClOrdID: "order-1",
		OrderID:     "cb-order-id",
		Symbol:      "BTC-USD",
		Side:        constants.SideBuy,
	})

	msg := decodeOrFail(t, frame)
	if f, ok := msg.Get(constants.TagOrigClOrdID); !ok || f.String() != "order-1" {
		t.Fatalf("OrigClOrdID = %+v, want order-1", f)
	}
}

func TestBuildMarketDataRequest_RepeatingGroups(t *testing.T) {
	frame := BuildMarketDataRequest(testHeader(3), MarketDataRequestParams{
		MDReqID:                 "md-1",
		Symbols:                 []string{"BTC-USD", "ETH-USD"},
		SubscriptionRequestType: constants.SubscriptionRequestTypeSubscribe,
		MarketDepth:             "1",
		MDEntryTypes:            []string{"0", "1"},
	})

	msg := decodeOrFail(t, frame)
	syms := msg.GetAll(constants.TagSymbol)
	if len(syms) != 2 || syms[0].String() != "BTC-USD" || syms[1].String() != "ETH-USD" {
		t.Fatalf("Symbol group = %+v, want [BTC-USD ETH-USD]", syms)
	}
	entries := msg.GetAll(constants.TagMdEntryType)
	if len(entries) != 2 {
		t.Fatalf("MDEntryType group len = %d, want 2", len(entries))
	}
	if f, ok := msg.Get(constants.TagNoRelatedSym); !ok || f.String() != "2" {
		t.Fatalf("NoRelatedSym = %+v, want 2", f)
	}
}

func TestBuildAcceptQuote(t *testing.T) {
	price, _ := fixcore.ParsePrice("50000.00")
	qty, _ := fixcore.ParseQty("1.0")

	frame := BuildAcceptQuote(testHeader(4), AcceptQuoteParams{
		Account:  "portfolio-123",
		ClOrdID:  "accept-1",
		Symbol:   "BTC-USD",
		Side:     constants.SideBuy,
		QuoteID:  "quote-123",
		OrderQty: qty,
		Price:    price,
	})

	msg := decodeOrFail(t, frame)
	mt, _ := msg.MsgType()
	if mt != constants.MsgTypeNewOrderSingle {
		t.Fatalf("MsgType = %q, want %q", mt, constants.MsgTypeNewOrderSingle)
	}
	if f, ok := msg.Get(constants.TagQuoteID); !ok || f.String() != "quote-123" {
		t.Fatalf("QuoteID = %+v, want quote-123", f)
	}
}
