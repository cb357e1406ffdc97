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

import "sync"

// Order is the REPL's local view of a working order, refreshed from
// ExecutionReports as they arrive.
//
// Grounded on fixclient/orderstore.go's Order struct, trimmed to the
// fields this demo's table output actually uses.
type Order struct {
	ClOrdID   string
	OrderID   string
	Symbol    string
	Side      string
	OrdType   string
	Price     string
	OrderQty  string
	CumQty    string
	LeavesQty string
	AvgPx     string
	Status    string
}

func isOpenStatus(status string) bool {
	switch status {
	case "0", "1", "6", "9", "A", "E":
		return true
	default:
		return false
	}
}

// Quote is the REPL's local view of a quote received in response to a
// QuoteRequest.
type Quote struct {
	QuoteID string
	Symbol  string
	Side    string
	BidPx   string
	OfferPx string
}

// OrderStore tracks orders and quotes keyed by ClOrdID/QuoteID, the
// way fixclient/orderstore.go's OrderStore does, generalized off the
// teacher's JSON-tagged persistence fields onto the REPL's simpler
// in-memory-only need (the engine's own store.MessageStore already
// persists the raw wire messages).
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*Order
	byOID  map[string]*Order
	quotes map[string]*Quote
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]*Order),
		byOID:  make(map[string]*Order),
		quotes: make(map[string]*Quote),
	}
}

func (s *OrderStore) AddOrder(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ClOrdID] = o
	if o.OrderID != "" {
		s.byOID[o.OrderID] = o
	}
}

func (s *OrderStore) GetOrder(clOrdID string) (*Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[clOrdID]
	return o, ok
}

func (s *OrderStore) GetOrderByOrderID(orderID string) (*Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byOID[orderID]
	return o, ok
}

// UpdateFromExecReport applies an ExecutionReport's fields onto the
// order it refers to (by ClOrdID, falling back to OrderID for
// cancel/replace acks that only echo the new OrderID), creating the
// order if this is the first report seen for it.
func (s *OrderStore) UpdateFromExecReport(clOrdID, orderID, symbol, side, ordType, price, orderQty, cumQty, leavesQty, avgPx, status string) *Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[clOrdID]
	if !ok && orderID != "" {
		o, ok = s.byOID[orderID]
	}
	if !ok {
		o = &Order{ClOrdID: clOrdID}
		s.orders[clOrdID] = o
	}
	o.OrderID = orderID
	if symbol != "" {
		o.Symbol = symbol
	}
	if side != "" {
		o.Side = side
	}
	if ordType != "" {
		o.OrdType = ordType
	}
	if price != "" {
		o.Price = price
	}
	if orderQty != "" {
		o.OrderQty = orderQty
	}
	o.CumQty = cumQty
	o.LeavesQty = leavesQty
	o.AvgPx = avgPx
	o.Status = status
	if orderID != "" {
		s.byOID[orderID] = o
	}
	return o
}

func (s *OrderStore) AllOrders() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out
}

func (s *OrderStore) OpenOrders() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0)
	for _, o := range s.orders {
		if isOpenStatus(o.Status) {
			out = append(out, o)
		}
	}
	return out
}

func (s *OrderStore) AddQuote(q *Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.QuoteID] = q
}

func (s *OrderStore) GetQuote(quoteID string) (*Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[quoteID]
	return q, ok
}

func (s *OrderStore) AllQuotes() []*Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	return out
}
