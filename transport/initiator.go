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
	"context"
	"log"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Initiator dials addr in a loop, handing each successful connection
// to onConnect, and reconnecting with exponential backoff after every
// disconnect. It is the "concrete TCP initiator loop" the session contract
// treats as an external collaborator to the engine core; the engine
// only needs something that produces net.Conns.
type Initiator struct {
	Addr    string
	Backoff backoff.BackOff
}

// NewInitiator returns an Initiator with the pack's standard
// exponential backoff policy (cenkalti/backoff/v4), capped so a
// flapping counterparty does not back off indefinitely.
func NewInitiator(addr string) *Initiator {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0 // retry forever; the caller cancels via ctx
	b.MaxInterval = 30 * time.Second
	return &Initiator{Addr: addr, Backoff: b}
}

// Run dials addr repeatedly until ctx is canceled, invoking onConnect
// for each successful connection. onConnect should block for the
// lifetime of the connection; when it returns, Run reconnects.
func (i *Initiator) Run(ctx context.Context, onConnect func(net.Conn)) {
	var dialer net.Dialer
	operation := func() error {
		conn, err := dialer.DialContext(ctx, "tcp", i.Addr)
		if err != nil {
			log.Printf("transport: dial %s failed: %v", i.Addr, err)
			return err
		}
		i.Backoff.Reset()
		onConnect(conn)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := backoff.Retry(operation, backoff.WithContext(i.Backoff, ctx)); err != nil {
			log.Printf("transport: initiator stopped for %s: %v", i.Addr, err)
			return
		}
	}
}
