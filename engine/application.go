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

import "github.com/coinbase-samples/ironfix-go/fixcore"

// Application is the callback surface a caller implements to react to
// session lifecycle events and application-level messages, keyed by
// SessionID. The method set (OnCreate/OnLogon/ToAdmin/FromAdmin/ToApp/
// FromApp/OnLogout) mirrors quickfixgo's quickfix.Application,
// generalized off quickfix.Message onto this engine's own RawMessage.
type Application interface {
	// OnCreate is called once a Session is constructed, before any
	// network activity.
	OnCreate(id fixcore.SessionID)

	// OnLogon is called when the session reaches the Active state.
	OnLogon(id fixcore.SessionID)

	// OnLogout is called when the session leaves the Active state for
	// Disconnected.
	OnLogout(id fixcore.SessionID)

	// ToAdmin is called before an outbound admin message is sent,
	// with a decoded view of the already-built frame. The frame is
	// written as built: fields added to or removed from msg are not
	// sent, and the CheckSum is not recomputed.
	ToAdmin(msg *fixcore.RawMessage, id fixcore.SessionID)

	// FromAdmin is called for each inbound admin message, after the
	// Session has applied its own protocol handling. Returning an
	// error causes the Session to reject the message.
	FromAdmin(msg *fixcore.RawMessage, id fixcore.SessionID) error

	// ToApp is called before an outbound application message is sent.
	// Returning an error aborts the send.
	ToApp(msg *fixcore.RawMessage, id fixcore.SessionID) error

	// FromApp is called for each inbound application-level message.
	FromApp(msg *fixcore.RawMessage, id fixcore.SessionID) error
}

// NoOpApplication implements Application with no-op bodies, useful in
// tests and as the demo acceptor's default.
//
// Grounded on ironfix-engine/src/application.rs's NoOpApplication.
type NoOpApplication struct{}

func (NoOpApplication) OnCreate(fixcore.SessionID) {}
func (NoOpApplication) OnLogon(fixcore.SessionID)  {}
func (NoOpApplication) OnLogout(fixcore.SessionID) {}
func (NoOpApplication) ToAdmin(*fixcore.RawMessage, fixcore.SessionID) {}
func (NoOpApplication) FromAdmin(*fixcore.RawMessage, fixcore.SessionID) error { return nil }
func (NoOpApplication) ToApp(*fixcore.RawMessage, fixcore.SessionID) error     { return nil }
func (NoOpApplication) FromApp(*fixcore.RawMessage, fixcore.SessionID) error   { return nil }

var _ Application = NoOpApplication{}
