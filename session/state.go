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

// Package session implements the FIX session state machine: the
// state transition table, sequence number discipline, and the
// heartbeat/test-request protocol.
//
// Go has no typestate (phantom-typed states the way the original Rust
// engine uses); the FSM here follows the named alternative
// instead — a tagged-variant State plus a transition function that
// rejects illegal transitions without mutating state.
package session

import "github.com/coinbase-samples/ironfix-go/fixcore"

// State is one of the session FSM's states.
type State int

const (
	Disconnected State = iota
	Connecting
	LogonSent
	Active
	Resending
	LogoutPending
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case LogonSent:
		return "LogonSent"
	case Active:
		return "Active"
	case Resending:
		return "Resending"
	case LogoutPending:
		return "LogoutPending"
	default:
		return "Unknown"
	}
}

// Event names the FSM transitions by, mirroring the table
// column for column.
type Event int

const (
	EventConnect Event = iota
	EventOutboundLogonSent
	EventTransportFailure
	EventInboundLogonMatched
	EventLogonTimeout
	EventSequenceGap
	EventInitiateLogout
	EventHeartbeatTimeout
	EventResendComplete
	EventResendError
	EventInboundLogout
	EventLogoutTimeout
)

func (e Event) String() string {
	switch e {
	case EventConnect:
		return "connect"
	case EventOutboundLogonSent:
		return "outbound logon sent"
	case EventTransportFailure:
		return "transport failure"
	case EventInboundLogonMatched:
		return "inbound logon (matching)"
	case EventLogonTimeout:
		return "logon timeout/reject"
	case EventSequenceGap:
		return "sequence gap on receive"
	case EventInitiateLogout:
		return "initiate logout"
	case EventHeartbeatTimeout:
		return "heartbeat timeout"
	case EventResendComplete:
		return "resend complete"
	case EventResendError:
		return "resend error"
	case EventInboundLogout:
		return "inbound logout"
	case EventLogoutTimeout:
		return "logout timeout"
	default:
		return "unknown event"
	}
}

// transitions is the exact table from the session contract.
var transitions = map[State]map[Event]State{
	Disconnected: {
		EventConnect: Connecting,
	},
	Connecting: {
		EventOutboundLogonSent: LogonSent,
		EventTransportFailure:  Disconnected,
	},
	LogonSent: {
		EventInboundLogonMatched: Active,
		EventLogonTimeout:        Disconnected,
	},
	Active: {
		EventSequenceGap:      Resending,
		EventInitiateLogout:   LogoutPending,
		EventTransportFailure: Disconnected,
		EventHeartbeatTimeout: Disconnected,
	},
	Resending: {
		EventResendComplete: Active,
		EventResendError:    Disconnected,
	},
	LogoutPending: {
		EventInboundLogout: Disconnected,
		EventLogoutTimeout: Disconnected,
	},
}

// Transition applies event to from, returning the resulting state. It
// returns an error and leaves the caller's state untouched if the
// transition is not in the table.
func Transition(from State, event Event) (State, error) {
	next, ok := transitions[from][event]
	if !ok {
		return from, &fixcore.IllegalTransitionError{From: from.String(), Event: event.String()}
	}
	return next, nil
}
