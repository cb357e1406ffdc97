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

package main

import (
	"fmt"
	"log"

	"github.com/fatih/color"

	"github.com/coinbase-samples/ironfix-go/constants"
	"github.com/coinbase-samples/ironfix-go/fixcore"
)

// Creds carries the REPL's logon credentials. Grounded on
// fixclient/fixapp.go's Config (ApiKey/ApiSecret/Passphrase),
// generalized from a Coinbase-specific API-key model to the admin
// package's generic Username/Password/Secret fields. The outbound
// Logon is stamped from session.Config's Username/Password/Secret by
// engine.Session.sendLogon; ToAdmin does not read Creds.
type Creds struct {
	Username string
	Password string
	Secret   string
}

// App implements engine.Application for the REPL demo: it tracks
// orders and quotes locally, and prints execution reports and market
// data as they arrive.
//
// Grounded on fixclient/fixapp.go's FixApp, trimmed of its sqlite
// TradeStore persistence (the engine's own store.MessageStore already
// persists raw wire traffic) and its REPL-exit heuristics; main.go
// stops the session once the REPL returns.
type App struct {
	Creds Creds
	Store *OrderStore

	loggedOn chan struct{}
}

func NewApp(creds Creds) *App {
	return &App{
		Creds:    creds,
		Store:    NewOrderStore(),
		loggedOn: make(chan struct{}),
	}
}

func (a *App) OnCreate(id fixcore.SessionID) {
	log.Printf("session created: %s", id)
}

func (a *App) OnLogon(id fixcore.SessionID) {
	color.Green("logged on: %s", id)
	select {
	case <-a.loggedOn:
	default:
		close(a.loggedOn)
	}
}

func (a *App) OnLogout(id fixcore.SessionID) {
	color.Yellow("logged out: %s", id)
}

// WaitLogon returns a channel that is closed once the session has
// completed a logon.
func (a *App) WaitLogon() <-chan struct{} {
	return a.loggedOn
}

func (a *App) ToAdmin(msg *fixcore.RawMessage, id fixcore.SessionID) {
	// Credential stamping happens in admin.LogonParams via
	// engine.Session.sendLogon; nothing to augment here for other
	// admin message types.
	_ = msg
	_ = id
}

func (a *App) FromAdmin(msg *fixcore.RawMessage, id fixcore.SessionID) error {
	mt, _ := msg.MsgType()
	if mt == constants.MsgTypeReject {
		text := fieldStr(msg, constants.TagText)
		color.Red("session reject: %s", text)
	}
	return nil
}

func (a *App) ToApp(msg *fixcore.RawMessage, id fixcore.SessionID) error {
	return nil
}

func (a *App) FromApp(msg *fixcore.RawMessage, id fixcore.SessionID) error {
	mt, _ := msg.MsgType()
	switch mt {
	case constants.MsgTypeExecutionReport:
		a.handleExecutionReport(msg)
	case constants.MsgTypeOrderCancelReject:
		a.handleOrderCancelReject(msg)
	case constants.MsgTypeQuote:
		a.handleQuote(msg)
	case constants.MsgTypeQuoteAcknowledgement:
		color.Cyan("quote acknowledged")
	case constants.MsgTypeMarketDataSnapshot, constants.MsgTypeMarketDataIncremental:
		a.handleMarketData(msg)
	default:
		log.Printf("unhandled app message type %q", mt)
	}
	return nil
}

func fieldStr(msg *fixcore.RawMessage, tag fixcore.FieldTag) string {
	f, ok := msg.Get(tag)
	if !ok {
		return ""
	}
	return f.String()
}

func (a *App) handleExecutionReport(msg *fixcore.RawMessage) {
	clOrdID := fieldStr(msg, constants.TagClOrdID)
	order := a.Store.UpdateFromExecReport(
		clOrdID,
		fieldStr(msg, constants.TagOrderID),
		fieldStr(msg, constants.TagSymbol),
		fieldStr(msg, constants.TagSide),
		fieldStr(msg, constants.TagOrdType),
		fieldStr(msg, constants.TagPrice),
		fieldStr(msg, constants.TagOrderQty),
		fieldStr(msg, constants.TagCumQty),
		fieldStr(msg, constants.TagLeavesQty),
		fieldStr(msg, constants.TagAvgPx),
		fieldStr(msg, constants.TagOrdStatus),
	)
	execType := fieldStr(msg, constants.TagExecType)
	fmt.Printf("\nexec report: clOrdID=%s orderID=%s execType=%s status=%s\n",
		order.ClOrdID, order.OrderID, execType, order.Status)
}

func (a *App) handleOrderCancelReject(msg *fixcore.RawMessage) {
	clOrdID := fieldStr(msg, constants.TagClOrdID)
	reason := fieldStr(msg, constants.TagCxlRejReason)
	color.Red("order cancel reject: clOrdID=%s reason=%s", clOrdID, reason)
}

func (a *App) handleQuote(msg *fixcore.RawMessage) {
	q := &Quote{
		QuoteID: fieldStr(msg, constants.TagQuoteID),
		Symbol:  fieldStr(msg, constants.TagSymbol),
		Side:    fieldStr(msg, constants.TagSide),
		BidPx:   fieldStr(msg, constants.TagBidPx),
		OfferPx: fieldStr(msg, constants.TagOfferPx),
	}
	a.Store.AddQuote(q)
	fmt.Printf("\nquote: id=%s symbol=%s bid=%s offer=%s\n", q.QuoteID, q.Symbol, q.BidPx, q.OfferPx)
}

func (a *App) handleMarketData(msg *fixcore.RawMessage) {
	types := msg.GetAll(constants.TagMdEntryType)
	pxs := msg.GetAll(constants.TagMdEntryPx)
	sizes := msg.GetAll(constants.TagMdEntrySize)

	fmt.Printf("\nmarket data (%d entries):\n", len(types))
	for i := range types {
		px := ""
		if i < len(pxs) {
			px = pxs[i].String()
		}
		size := ""
		if i < len(sizes) {
			size = sizes[i].String()
		}
		fmt.Printf("  type=%s px=%s size=%s\n", types[i].String(), px, size)
	}
}
