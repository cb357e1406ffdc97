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

package session

import "testing"

func TestTransitionHappyPath(t *testing.T) {
	steps := []struct {
		from  State
		event Event
		want  State
	}{
		{Disconnected, EventConnect, Connecting},
		{Connecting, EventOutboundLogonSent, LogonSent},
		{LogonSent, EventInboundLogonMatched, Active},
		{Active, EventSequenceGap, Resending},
		{Resending, EventResendComplete, Active},
		{Active, EventInitiateLogout, LogoutPending},
		{LogoutPending, EventInboundLogout, Disconnected},
	}
	for _, s := range steps {
		got, err := Transition(s.from, s.event)
		if err != nil {
			t.Fatalf("Transition(%s, %s) returned error: %v", s.from, s.event, err)
		}
		if got != s.want {
			t.Fatalf("Transition(%s, %s) = %s, want %s", s.from, s.event, got, s.want)
		}
	}
}

func TestTransitionIllegal(t *testing.T) {
	got, err := Transition(Disconnected, EventInboundLogonMatched)
	if err == nil {
		t.Fatalf("expected error for illegal transition, got nil")
	}
	if got != Disconnected {
		t.Fatalf("illegal transition should not mutate state, got %s", got)
	}
}

func TestTransitionTimeoutsReturnToDisconnected(t *testing.T) {
	for _, s := range []struct {
		from  State
		event Event
	}{
		{LogonSent, EventLogonTimeout},
		{Active, EventTransportFailure},
		{Active, EventHeartbeatTimeout},
		{Resending, EventResendError},
		{LogoutPending, EventLogoutTimeout},
	} {
		got, err := Transition(s.from, s.event)
		if err != nil {
			t.Fatalf("Transition(%s, %s) returned error: %v", s.from, s.event, err)
		}
		if got != Disconnected {
			t.Fatalf("Transition(%s, %s) = %s, want Disconnected", s.from, s.event, got)
		}
	}
}
