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

// Package fixmsg builds application-level (non-admin) FIX messages
// against the engine's own tagvalue.Encoder, demonstrating the codec
// against a realistic order-entry and market-data message set.
//
// Grounded on prime-fix-md-go/builder/messages.go's NewOrderParams/
// CancelOrderParams/BuildNewOrderSingle/BuildMarketDataRequest family,
// generalized off quickfix.Message onto []byte frames built with
// admin.Header for the common header fields.
package fixmsg

import (
	"github.com/coinbase-samples/ironfix-go/admin"
	"github.com/coinbase-samples/ironfix-go/constants"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/tagvalue"
)

func putStrNonEmpty(enc *tagvalue.Encoder, tag fixcore.FieldTag, value string) {
	if value != "" {
		enc.PutStr(tag, value)
	}
}

// NewOrderParams carries the fields a New Order Single (D) needs.
type NewOrderParams struct {
	Account        string
	ClOrdID        string
	Symbol         string
	Side           string
	OrdType        string
	TargetStrategy string
	TimeInForce    string
	OrderQty       fixcore.Qty
	CashOrderQty   fixcore.Qty
	Price          fixcore.Price
	HasPrice       bool
	StopPx         fixcore.Price
	HasStopPx      bool
	ExpireTime     string
	EffectiveTime  string
	MaxShow        string
	ExecInst       string
	PartRate       string
	QuoteID        string
}

// BuildNewOrderSingle encodes a New Order Single (D) message.
func BuildNewOrderSingle(h admin.Header, p NewOrderParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeNewOrderSingle, h)

	enc.PutStr(constants.TagAccount, p.Account)
	enc.PutStr(constants.TagClOrdID, p.ClOrdID)
	enc.PutStr(constants.TagSymbol, p.Symbol)
	enc.PutStr(constants.TagSide, p.Side)
	enc.PutStr(constants.TagOrdType, p.OrdType)
	putStrNonEmpty(enc, constants.TagTargetStrategy, p.TargetStrategy)
	enc.PutStr(constants.TagTimeInForce, p.TimeInForce)
	enc.PutStr(constants.TagTransactTime, h.SendingTime.String())

	if !p.OrderQty.IsZero() {
		enc.PutStr(constants.TagOrderQty, p.OrderQty.String())
	}
	if !p.CashOrderQty.IsZero() {
		enc.PutStr(constants.TagCashOrderQty, p.CashOrderQty.String())
	}
	if p.HasPrice {
		enc.PutStr(constants.TagPrice, p.Price.String())
	}
	if p.HasStopPx {
		enc.PutStr(constants.TagStopPx, p.StopPx.String())
	}
	putStrNonEmpty(enc, constants.TagExpireTime, p.ExpireTime)
	putStrNonEmpty(enc, constants.TagEffectiveTime, p.EffectiveTime)
	putStrNonEmpty(enc, constants.TagMaxShow, p.MaxShow)
	putStrNonEmpty(enc, constants.TagExecInst, p.ExecInst)
	putStrNonEmpty(enc, constants.TagParticipationRate, p.PartRate)
	putStrNonEmpty(enc, constants.TagQuoteID, p.QuoteID)

	return enc.Finish(h.BeginString)
}

// CancelOrderParams carries the fields an Order Cancel Request (F) needs.
type CancelOrderParams struct {
	Account      string
	ClOrdID      string
	OrigClOrdID  string
	OrderID      string
	Symbol       string
	Side         string
	OrderQty     fixcore.Qty
	CashOrderQty fixcore.Qty
}

// BuildOrderCancelRequest encodes an Order Cancel Request (F) message.
func BuildOrderCancelRequest(h admin.Header, p CancelOrderParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeOrderCancelRequest, h)

	enc.PutStr(constants.TagAccount, p.Account)
	enc.PutStr(constants.TagClOrdID, p.ClOrdID)
	enc.PutStr(constants.TagOrigClOrdID, p.OrigClOrdID)
	enc.PutStr(constants.TagOrderID, p.OrderID)
	enc.PutStr(constants.TagSymbol, p.Symbol)
	enc.PutStr(constants.TagSide, p.Side)
	enc.PutStr(constants.TagTransactTime, h.SendingTime.String())

	if !p.OrderQty.IsZero() {
		enc.PutStr(constants.TagOrderQty, p.OrderQty.String())
	}
	if !p.CashOrderQty.IsZero() {
		enc.PutStr(constants.TagCashOrderQty, p.CashOrderQty.String())
	}
	return enc.Finish(h.BeginString)
}

// ReplaceOrderParams carries the fields an Order Cancel/Replace
// Request (G) needs.
type ReplaceOrderParams struct {
	Account      string
	ClOrdID      string
	OrigClOrdID  string
	OrderID      string
	Symbol       string
	Side         string
	OrdType      string
	OrderQty     fixcore.Qty
	CashOrderQty fixcore.Qty
	Price        fixcore.Price
	StopPx       fixcore.Price
	HasStopPx    bool
	ExpireTime   string
	MaxShow      string
}

// BuildOrderCancelReplaceRequest encodes an Order Cancel/Replace
// Request (G) message.
func BuildOrderCancelReplaceRequest(h admin.Header, p ReplaceOrderParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeOrderCancelReplace, h)

	enc.PutStr(constants.TagAccount, p.Account)
	enc.PutStr(constants.TagClOrdID, p.ClOrdID)
	enc.PutStr(constants.TagOrigClOrdID, p.OrigClOrdID)
	enc.PutStr(constants.TagOrderID, p.OrderID)
	enc.PutStr(constants.TagSymbol, p.Symbol)
	enc.PutStr(constants.TagSide, p.Side)
	enc.PutStr(constants.TagOrdType, p.OrdType)
	enc.PutStr(constants.TagHandlInst, constants.HandlInstAutomatedNoIntervention)
	enc.PutStr(constants.TagTransactTime, h.SendingTime.String())
	enc.PutStr(constants.TagPrice, p.Price.String())

	if !p.OrderQty.IsZero() {
		enc.PutStr(constants.TagOrderQty, p.OrderQty.String())
	}
	if !p.CashOrderQty.IsZero() {
		enc.PutStr(constants.TagCashOrderQty, p.CashOrderQty.String())
	}
	if p.HasStopPx {
		enc.PutStr(constants.TagStopPx, p.StopPx.String())
	}
	putStrNonEmpty(enc, constants.TagExpireTime, p.ExpireTime)
	putStrNonEmpty(enc, constants.TagMaxShow, p.MaxShow)

	return enc.Finish(h.BeginString)
}

// BuildOrderStatusRequest encodes an Order Status Request (H) message.
func BuildOrderStatusRequest(h admin.Header, orderID, clOrdID, symbol, side string) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeOrderStatusRequest, h)

	enc.PutStr(constants.TagOrderID, orderID)
	putStrNonEmpty(enc, constants.TagClOrdID, clOrdID)
	putStrNonEmpty(enc, constants.TagSymbol, symbol)
	putStrNonEmpty(enc, constants.TagSide, side)

	return enc.Finish(h.BeginString)
}

// QuoteRequestParams carries the fields a Quote Request (R) needs.
type QuoteRequestParams struct {
	QuoteReqID string
	Account    string
	Symbol     string
	Side       string
	OrderQty   fixcore.Qty
	Price      fixcore.Price
}

// BuildQuoteRequest encodes a Quote Request (R) message for RFQ.
func BuildQuoteRequest(h admin.Header, p QuoteRequestParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeQuoteRequest, h)

	enc.PutStr(constants.TagQuoteReqID, p.QuoteReqID)
	enc.PutStr(constants.TagAccount, p.Account)
	enc.PutStr(constants.TagSymbol, p.Symbol)
	enc.PutStr(constants.TagSide, p.Side)
	enc.PutStr(constants.TagOrderQty, p.OrderQty.String())
	enc.PutStr(constants.TagOrdType, constants.OrdTypeLimit)
	enc.PutStr(constants.TagPrice, p.Price.String())
	enc.PutStr(constants.TagTimeInForce, constants.TimeInForceFOK)

	return enc.Finish(h.BeginString)
}

// AcceptQuoteParams carries the fields accepting a Quote (via a New
// Order Single referencing a QuoteID) needs.
type AcceptQuoteParams struct {
	Account  string
	ClOrdID  string
	Symbol   string
	Side     string
	QuoteID  string
	OrderQty fixcore.Qty
	Price    fixcore.Price
}

// BuildAcceptQuote encodes a New Order Single (D) that accepts a Quote.
func BuildAcceptQuote(h admin.Header, p AcceptQuoteParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeNewOrderSingle, h)

	enc.PutStr(constants.TagAccount, p.Account)
	enc.PutStr(constants.TagClOrdID, p.ClOrdID)
	enc.PutStr(constants.TagSymbol, p.Symbol)
	enc.PutStr(constants.TagSide, p.Side)
	enc.PutStr(constants.TagOrdType, constants.OrdTypePreviouslyQuoted)
	enc.PutStr(constants.TagTargetStrategy, constants.TargetStrategyRFQ)
	enc.PutStr(constants.TagTimeInForce, constants.TimeInForceFOK)
	enc.PutStr(constants.TagQuoteID, p.QuoteID)
	enc.PutStr(constants.TagOrderQty, p.OrderQty.String())
	enc.PutStr(constants.TagPrice, p.Price.String())
	enc.PutStr(constants.TagTransactTime, h.SendingTime.String())

	return enc.Finish(h.BeginString)
}

// MarketDataRequestParams carries the fields a Market Data Request (V)
// needs, including its two repeating groups (MDEntryTypes, RelatedSym).
type MarketDataRequestParams struct {
	MDReqID                 string
	Symbols                 []string
	SubscriptionRequestType string
	MarketDepth             string
	MDEntryTypes            []string
}

// BuildMarketDataRequest encodes a Market Data Request (V) message,
// including its NoMDEntryTypes and NoRelatedSym repeating groups.
func BuildMarketDataRequest(h admin.Header, p MarketDataRequestParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeMarketDataRequest, h)

	enc.PutStr(constants.TagMdReqId, p.MDReqID)
	enc.PutStr(constants.TagSubscriptionRequestType, p.SubscriptionRequestType)
	enc.PutStr(constants.TagMarketDepth, p.MarketDepth)

	if p.SubscriptionRequestType == constants.SubscriptionRequestTypeSubscribe {
		enc.PutStr(constants.TagMdUpdateType, constants.MdUpdateTypeIncremental)
	}

	enc.PutInt(constants.TagNoMdEntryTypes, int64(len(p.MDEntryTypes)))
	for _, entryType := range p.MDEntryTypes {
		enc.PutStr(constants.TagMdEntryType, entryType)
	}

	enc.PutInt(constants.TagNoRelatedSym, int64(len(p.Symbols)))
	for _, symbol := range p.Symbols {
		enc.PutStr(constants.TagSymbol, symbol)
	}

	return enc.Finish(h.BeginString)
}

func putHeader(enc *tagvalue.Encoder, msgType string, h admin.Header) {
	enc.PutStr(constants.TagMsgType, msgType)
	enc.PutStr(constants.TagSenderCompId, h.SenderCompID)
	enc.PutStr(constants.TagTargetCompId, h.TargetCompID)
	enc.PutUint(constants.TagMsgSeqNum, uint64(h.MsgSeqNum))
	enc.PutStr(constants.TagSendingTime, h.SendingTime.String())
}
