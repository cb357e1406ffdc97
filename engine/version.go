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

// Package engine assembles the session, store, transport, and codec
// packages into a running FIX session: Builder constructs one from a
// Config and an Application; Session drives its read loop, heartbeat
// timers, and resend handling, dispatching decoded messages to the
// Application.
package engine

// Version identifies a FIX protocol version and maps it to the
// BeginString used on the wire and, for FIX 5.0 and later, to its
// ApplVerID code. Session does not consult Version: it takes
// BeginString from session.Config and puts no ApplVerID or
// DefaultApplVerID on its Logon.
//
// Grounded on ironfix-dictionary/src/schema.rs's Version enum; only
// the enum and its begin-string/ApplVerID mapping are kept, not the
// surrounding FieldDef/MessageDef/GroupDef schema apparatus.
type Version int

const (
	VersionFIX40 Version = iota
	VersionFIX41
	VersionFIX42
	VersionFIX43
	VersionFIX44
	VersionFIX50
	VersionFIX50SP1
	VersionFIX50SP2
	VersionFIXT11
)

// BeginString returns the wire-level BeginString (tag 8) for v.
func (v Version) BeginString() string {
	switch v {
	case VersionFIX40:
		return "FIX.4.0"
	case VersionFIX41:
		return "FIX.4.1"
	case VersionFIX42:
		return "FIX.4.2"
	case VersionFIX43:
		return "FIX.4.3"
	case VersionFIX44:
		return "FIX.4.4"
	case VersionFIX50, VersionFIX50SP1, VersionFIX50SP2, VersionFIXT11:
		return "FIXT.1.1"
	default:
		return "FIX.4.4"
	}
}

// ApplVerID returns the tag 1128 code that declares v's
// application-level message version over a FIXT.1.1 transport.
// Pre-FIXT.1.1 versions have no separate ApplVerID, and VersionFIXT11
// names no application version; all of them return "".
func (v Version) ApplVerID() string {
	switch v {
	case VersionFIX50:
		return "7"
	case VersionFIX50SP1:
		return "8"
	case VersionFIX50SP2:
		return "9"
	default:
		return ""
	}
}

// IsTransportFIXT reports whether v rides the FIXT.1.1 transport
// (session and application versions decoupled), as opposed to an
// earlier version where BeginString itself carries the application
// version.
func (v Version) IsTransportFIXT() bool {
	return v == VersionFIX50 || v == VersionFIX50SP1 || v == VersionFIX50SP2 || v == VersionFIXT11
}

func (v Version) String() string {
	return v.BeginString()
}
