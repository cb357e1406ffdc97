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
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/coinbase-samples/ironfix-go/admin"
	"github.com/coinbase-samples/ironfix-go/constants"
	"github.com/coinbase-samples/ironfix-go/engine"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/fixmsg"
)

// Repl drives an interactive command loop against sess, in the
// teacher's fixclient/repl.go style: a readline prefix-completer,
// whitespace-tokenized commands, and one handler function per verb.
// Grounded on that file's command set (md/unsubscribe/order/cancel/
// replace/ordstatus/rfq/accept/orders/quotes/status/help/version/
// exit), generalized off quickfix.Message/builder onto
// engine.Session/fixmsg.
func Repl(sess *engine.Session, app *App) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("md",
			readline.PcItem("--subscribe"),
			readline.PcItem("--snapshot"),
		),
		readline.PcItem("unsubscribe"),
		readline.PcItem("order",
			readline.PcItem("buy"),
			readline.PcItem("sell"),
		),
		readline.PcItem("cancel"),
		readline.PcItem("replace"),
		readline.PcItem("ordstatus"),
		readline.PcItem("rfq",
			readline.PcItem("buy"),
			readline.PcItem("sell"),
		),
		readline.PcItem("accept"),
		readline.PcItem("orders"),
		readline.PcItem("quotes"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("version"),
		readline.PcItem("exit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ironfix> ",
		HistoryFile:     "/tmp/ironfix_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Printf("readline init failed: %v", err)
		return
	}
	defer rl.Close()

	displayHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "md":
			handleMdCommand(sess, parts)
		case "unsubscribe":
			handleUnsubscribeCommand(sess, parts)
		case "order":
			handleOrderCommand(sess, parts)
		case "cancel":
			handleCancelCommand(sess, parts)
		case "replace":
			handleReplaceCommand(sess, parts)
		case "ordstatus":
			handleOrdStatusCommand(sess, parts)
		case "rfq":
			handleRfqCommand(sess, parts)
		case "accept":
			handleAcceptCommand(sess, parts)
		case "orders":
			displayOrders(app)
		case "quotes":
			displayQuotes(app)
		case "status":
			fmt.Printf("session state: %s\n", sess.State())
		case "help":
			displayHelp()
		case "version":
			fmt.Println("ironfix fixrepl demo")
		case "exit", "quit":
			return
		default:
			fmt.Printf("unknown command %q; type 'help'\n", parts[0])
		}
	}
}

func newClOrdID() string {
	return uuid.NewString()
}

func requireArgs(parts []string, n int, usage string) bool {
	if len(parts) < n {
		fmt.Printf("usage: %s\n", usage)
		return false
	}
	return true
}

func handleMdCommand(sess *engine.Session, parts []string) {
	if !requireArgs(parts, 2, "md <symbol> [--snapshot|--subscribe]") {
		return
	}
	symbol := parts[1]
	subType := constants.SubscriptionRequestTypeSubscribe
	for _, p := range parts[2:] {
		if p == "--snapshot" {
			subType = "0"
		}
	}

	err := sess.SendApp(func(h admin.Header) []byte {
		return fixmsg.BuildMarketDataRequest(h, fixmsg.MarketDataRequestParams{
			MDReqID:                 newClOrdID(),
			Symbols:                 []string{symbol},
			SubscriptionRequestType: subType,
			MarketDepth:             "1",
			MDEntryTypes:            []string{"0", "1"},
		})
	})
	if err != nil {
		fmt.Printf("md request failed: %v\n", err)
	}
}

func handleUnsubscribeCommand(sess *engine.Session, parts []string) {
	if !requireArgs(parts, 2, "unsubscribe <symbol>") {
		return
	}
	err := sess.SendApp(func(h admin.Header) []byte {
		return fixmsg.BuildMarketDataRequest(h, fixmsg.MarketDataRequestParams{
			MDReqID:                 newClOrdID(),
			Symbols:                 []string{parts[1]},
			SubscriptionRequestType: "2", // Disable previous snapshot+updates request
			MarketDepth:             "1",
			MDEntryTypes:            []string{"0", "1"},
		})
	})
	if err != nil {
		fmt.Printf("unsubscribe failed: %v\n", err)
	}
}

// handleOrderCommand parses: order buy|sell <symbol> <qty> [price]
// With a price the order is a limit order, without one a market
// order; TimeInForce is always FOK.
func handleOrderCommand(sess *engine.Session, parts []string) {
	if !requireArgs(parts, 4, "order buy|sell <symbol> <qty> [price]") {
		return
	}
	side := constants.SideBuy
	if strings.EqualFold(parts[1], "sell") {
		side = constants.SideSell
	}
	symbol := parts[2]
	qty, err := fixcore.ParseQty(parts[3])
	if err != nil {
		fmt.Printf("bad qty: %v\n", err)
		return
	}

	p := fixmsg.NewOrderParams{
		ClOrdID:     newClOrdID(),
		Symbol:      symbol,
		Side:        side,
		OrdType:     constants.OrdTypeLimit,
		TimeInForce: constants.TimeInForceFOK,
		OrderQty:    qty,
	}

	if len(parts) >= 5 {
		price, err := fixcore.ParsePrice(parts[4])
		if err != nil {
			fmt.Printf("bad price: %v\n", err)
			return
		}
		p.Price = price
		p.HasPrice = true
	} else {
		p.OrdType = constants.OrdTypeMarket
	}

	clOrdID := p.ClOrdID
	err = sess.SendApp(func(h admin.Header) []byte {
		return fixmsg.BuildNewOrderSingle(h, p)
	})
	if err != nil {
		fmt.Printf("order send failed: %v\n", err)
		return
	}
	fmt.Printf("order sent: clOrdID=%s\n", clOrdID)
}

func handleCancelCommand(sess *engine.Session, parts []string) {
	if !requireArgs(parts, 2, "cancel <clOrdID>") {
		return
	}
	origClOrdID := parts[1]
	newID := newClOrdID()
	err := sess.SendApp(func(h admin.Header) []byte {
		return fixmsg.BuildOrderCancelRequest(h, fixmsg.CancelOrderParams{
			ClOrdID:     newID,
			OrigClOrdID: origClOrdID,
		})
	})
	if err != nil {
		fmt.Printf("cancel failed: %v\n", err)
		return
	}
	fmt.Printf("cancel sent: clOrdID=%s origClOrdID=%s\n", newID, origClOrdID)
}

func handleReplaceCommand(sess *engine.Session, parts []string) {
	if !requireArgs(parts, 4, "replace <clOrdID> <qty> <price>") {
		return
	}
	origClOrdID := parts[1]
	qty, err := fixcore.ParseQty(parts[2])
	if err != nil {
		fmt.Printf("bad qty: %v\n", err)
		return
	}
	price, err := fixcore.ParsePrice(parts[3])
	if err != nil {
		fmt.Printf("bad price: %v\n", err)
		return
	}

	newID := newClOrdID()
	err = sess.SendApp(func(h admin.Header) []byte {
		return fixmsg.BuildOrderCancelReplaceRequest(h, fixmsg.ReplaceOrderParams{
			ClOrdID:     newID,
			OrigClOrdID: origClOrdID,
			OrderQty:    qty,
			Price:       price,
		})
	})
	if err != nil {
		fmt.Printf("replace failed: %v\n", err)
		return
	}
	fmt.Printf("replace sent: clOrdID=%s origClOrdID=%s\n", newID, origClOrdID)
}

func handleOrdStatusCommand(sess *engine.Session, parts []string) {
	if !requireArgs(parts, 2, "ordstatus <clOrdID>") {
		return
	}
	clOrdID := parts[1]
	err := sess.SendApp(func(h admin.Header) []byte {
		return fixmsg.BuildOrderStatusRequest(h, "", clOrdID, "", "")
	})
	if err != nil {
		fmt.Printf("ordstatus failed: %v\n", err)
	}
}

func handleRfqCommand(sess *engine.Session, parts []string) {
	if !requireArgs(parts, 3, "rfq buy|sell <symbol>") {
		return
	}
	side := constants.SideBuy
	if strings.EqualFold(parts[1], "sell") {
		side = constants.SideSell
	}
	reqID := newClOrdID()
	err := sess.SendApp(func(h admin.Header) []byte {
		return fixmsg.BuildQuoteRequest(h, fixmsg.QuoteRequestParams{
			QuoteReqID: reqID,
			Symbol:     parts[2],
			Side:       side,
		})
	})
	if err != nil {
		fmt.Printf("rfq failed: %v\n", err)
		return
	}
	fmt.Printf("quote request sent: reqID=%s\n", reqID)
}

func handleAcceptCommand(sess *engine.Session, parts []string) {
	if !requireArgs(parts, 2, "accept <quoteID>") {
		return
	}
	quoteID := parts[1]
	err := sess.SendApp(func(h admin.Header) []byte {
		return fixmsg.BuildAcceptQuote(h, fixmsg.AcceptQuoteParams{
			ClOrdID: newClOrdID(),
			QuoteID: quoteID,
		})
	})
	if err != nil {
		fmt.Printf("accept failed: %v\n", err)
	}
}

func displayOrders(app *App) {
	orders := app.Store.AllOrders()
	if len(orders) == 0 {
		fmt.Println("no orders")
		return
	}
	fmt.Printf("%-36s %-10s %-8s %-4s %-10s %-8s %-8s\n", "ClOrdID", "Symbol", "Side", "Type", "Price", "CumQty", "Status")
	for _, o := range orders {
		fmt.Printf("%-36s %-10s %-8s %-4s %-10s %-8s %-8s\n", o.ClOrdID, o.Symbol, o.Side, o.OrdType, o.Price, o.CumQty, o.Status)
	}
}

func displayQuotes(app *App) {
	quotes := app.Store.AllQuotes()
	if len(quotes) == 0 {
		fmt.Println("no quotes")
		return
	}
	fmt.Printf("%-36s %-10s %-8s %-10s %-10s\n", "QuoteID", "Symbol", "Side", "Bid", "Offer")
	for _, q := range quotes {
		fmt.Printf("%-36s %-10s %-8s %-10s %-10s\n", q.QuoteID, q.Symbol, q.Side, q.BidPx, q.OfferPx)
	}
}

func displayHelp() {
	fmt.Println(`
ironfix fixrepl commands:
  md <symbol> [--snapshot|--subscribe]   request market data
  unsubscribe <symbol>                   cancel a market data request
  order buy|sell <symbol> <qty> [price]  send a new order (limit if price given, else market)
  cancel <clOrdID>                       cancel a working order
  replace <clOrdID> <qty> <price>        cancel/replace a working order
  ordstatus <clOrdID>                    request an order status
  rfq buy|sell <symbol>                  request a quote
  accept <quoteID>                       accept a quote
  orders                                 list tracked orders
  quotes                                 list tracked quotes
  status                                 show session state
  help                                   show this text
  exit                                   quit
`)
}
