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

package engine

import (
	"context"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/session"
	"github.com/coinbase-samples/ironfix-go/store"
	"github.com/coinbase-samples/ironfix-go/transport"
)

// Builder assembles a Session from a Config, an Application, and a
// MessageStore, then optionally runs it against a transport.Initiator
// with reconnect backoff.
//
// Grounded on ironfix-engine/src/builder.rs's EngineBuilder; its
// TLS-wrapping and connection-pool-size fields are dropped since this
// module treats TLS and connection pooling as external collaborators,
// not core responsibilities. What remains is session.Config's fields
// plus the reconnect-backoff settings transport.Initiator already
// exposes.
type Builder struct {
	cfg         *session.Config
	app         Application
	st          store.MessageStore
	addr        string
	maxInterval time.Duration
}

// NewBuilder starts a Builder from the required Config. Application
// defaults to NoOpApplication and the store to an in-memory one; call
// WithApplication/WithStore to override either.
func NewBuilder(cfg *session.Config) *Builder {
	return &Builder{
		cfg:         cfg,
		app:         NoOpApplication{},
		st:          store.NewMemoryStore(),
		maxInterval: 30 * time.Second,
	}
}

// WithApplication sets the Application the Session dispatches to.
func (b *Builder) WithApplication(app Application) *Builder {
	b.app = app
	return b
}

// WithStore sets the MessageStore backing the Session.
func (b *Builder) WithStore(st store.MessageStore) *Builder {
	b.st = st
	return b
}

// WithInitiator configures the Builder to dial addr as an initiator,
// reconnecting with exponential backoff capped at maxInterval, instead
// of accepting an externally supplied net.Conn.
func (b *Builder) WithInitiator(addr string, maxInterval time.Duration) *Builder {
	b.addr = addr
	b.maxInterval = maxInterval
	return b
}

// Build returns the assembled Session, ready for Connect.
func (b *Builder) Build() *Session {
	return NewSession(b.cfg, b.app, b.st)
}

// RunInitiator builds a Session and drives it against the configured
// initiator address, reconnecting with backoff until ctx is canceled.
// Each reconnect resets sequence numbers when resetSeqNums is true or
// Config.ResetOnLogon is set; callers that want a hard reset per reconnect should reset
// the Session's store themselves between attempts.
func (b *Builder) RunInitiator(ctx context.Context, resetSeqNums bool) (*Session, error) {
	if b.addr == "" {
		return nil, &fixcore.SessionError{Reason: "builder: no initiator address configured"}
	}
	s := b.Build()

	init := transport.NewInitiator(b.addr)
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0
	bo.MaxInterval = b.maxInterval
	init.Backoff = bo

	go init.Run(ctx, func(conn net.Conn) {
		if err := s.Connect(conn, resetSeqNums); err != nil {
			return
		}
	})
	return s, nil
}
