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
	"net"
	"sync"
	"testing"
	"time"

	"github.com/coinbase-samples/ironfix-go/constants"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/session"
	"github.com/coinbase-samples/ironfix-go/store"
	"github.com/coinbase-samples/ironfix-go/tagvalue"
	"github.com/coinbase-samples/ironfix-go/transport"
)

const (
	testBeginString = "FIX.4.4"
	testSender      = "ACCEPTOR"
	testTarget      = "INITIATOR"
)

// testApp is a minimal Application that signals logon/logout over
// channels and queues every FromApp message for inspection.
type testApp struct {
	logonOnce  sync.Once
	logoutOnce sync.Once
	logonCh    chan struct{}
	logoutCh   chan struct{}
	fromApp    chan *fixcore.RawMessage
}

func newTestApp() *testApp {
	return &testApp{
		logonCh:  make(chan struct{}),
		logoutCh: make(chan struct{}),
		fromApp:  make(chan *fixcore.RawMessage, 8),
	}
}

func (a *testApp) OnCreate(fixcore.SessionID) {}
func (a *testApp) OnLogon(fixcore.SessionID)  { a.logonOnce.Do(func() { close(a.logonCh) }) }
func (a *testApp) OnLogout(fixcore.SessionID) { a.logoutOnce.Do(func() { close(a.logoutCh) }) }
func (a *testApp) ToAdmin(*fixcore.RawMessage, fixcore.SessionID) {}
func (a *testApp) FromAdmin(*fixcore.RawMessage, fixcore.SessionID) error { return nil }
func (a *testApp) ToApp(*fixcore.RawMessage, fixcore.SessionID) error     { return nil }
func (a *testApp) FromApp(msg *fixcore.RawMessage, _ fixcore.SessionID) error {
	a.fromApp <- msg
	return nil
}

// counterparty drives the session under test from the other end of a
// net.Pipe: it frames/decodes like a real peer and can build and send
// its own tag=value messages.
type counterparty struct {
	conn   net.Conn
	framer *transport.Framer
	dec    *tagvalue.Decoder
}

func newCounterparty(conn net.Conn) *counterparty {
	return &counterparty{
		conn:   conn,
		framer: transport.NewFramer(conn, transport.NewFixCodec()),
		dec:    tagvalue.NewDecoder(),
	}
}

// recv reads and decodes the next frame the session sent.
func (c *counterparty) recv(t *testing.T) *fixcore.RawMessage {
	t.Helper()
	raw, err := c.framer.Next()
	if err != nil {
		t.Fatalf("counterparty recv: %v", err)
	}
	msg, err := c.dec.Decode(raw)
	if err != nil {
		t.Fatalf("counterparty decode: %v", err)
	}
	return msg
}

// send writes a raw frame built by the counterparty to the session.
func (c *counterparty) send(t *testing.T, frame []byte) {
	t.Helper()
	if _, err := c.conn.Write(frame); err != nil {
		t.Fatalf("counterparty send: %v", err)
	}
}

// buildMessage assembles a tag=value frame with the standard header
// fields, mirroring admin.putHeader's field order, plus whatever
// extra fields body appends.
func buildMessage(seq fixcore.SeqNum, msgType string, body func(*tagvalue.Encoder)) []byte {
	enc := tagvalue.NewEncoder()
	enc.PutStr(constants.TagMsgType, msgType)
	enc.PutStr(constants.TagSenderCompId, testTarget)
	enc.PutStr(constants.TagTargetCompId, testSender)
	enc.PutUint(constants.TagMsgSeqNum, uint64(seq))
	enc.PutStr(constants.TagSendingTime, fixcore.NowTimestamp().String())
	if body != nil {
		body(enc)
	}
	return enc.Finish(testBeginString)
}

// corruptChecksum flips the first checksum digit of an otherwise
// well-formed frame, producing a frame whose declared CheckSum no
// longer matches its calculated one.
func corruptChecksum(frame []byte) []byte {
	cp := append([]byte(nil), frame...)
	i := len(cp) - 4 // first of the three CheckSum digits
	if cp[i] == '0' {
		cp[i] = '1'
	} else {
		cp[i] = '0'
	}
	return cp
}

// newActiveSession wires a Session to one end of a net.Pipe, drives it
// through Connect in the background, completes the Logon handshake
// from the counterparty side, and returns once the session reaches
// Active.
func newActiveSession(t *testing.T, cfg *session.Config) (*Session, *testApp, *counterparty) {
	t.Helper()
	serverConn, clientConn := net.Pipe()

	app := newTestApp()
	sess := NewSession(cfg, app, store.NewMemoryStore())
	cp := newCounterparty(clientConn)

	go func() {
		_ = sess.Connect(serverConn, false)
	}()

	// Drain the session's outbound Logon.
	logon := cp.recv(t)
	if mt, _ := logon.MsgType(); mt != constants.MsgTypeLogon {
		t.Fatalf("expected outbound Logon, got MsgType %q", mt)
	}

	// Ack it with a matching Logon so the session reaches Active.
	cp.send(t, buildMessage(1, constants.MsgTypeLogon, func(enc *tagvalue.Encoder) {
		enc.PutInt(constants.TagHeartBtInt, 30)
	}))

	select {
	case <-app.logonCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for OnLogon")
	}
	if got := sess.State(); got != session.Active {
		t.Fatalf("expected Active after logon ack, got %s", got)
	}
	return sess, app, cp
}

func newTestConfig() *session.Config {
	cfg := session.NewConfig(fixcore.CompID(testSender), fixcore.CompID(testTarget), testBeginString)
	return cfg
}

// TestChecksumMismatchRejectsAndStaysActive verifies that a checksum
// mismatch produces an outbound Reject (type 3) referencing RefTagID
// 10 and that the session remains Active.
func TestChecksumMismatchRejectsAndStaysActive(t *testing.T) {
	sess, _, cp := newActiveSession(t, newTestConfig())
	defer sess.Stop()

	good := buildMessage(2, constants.MsgTypeTestRequest, func(enc *tagvalue.Encoder) {
		enc.PutStr(constants.TagTestReqID, "ping")
	})
	cp.send(t, corruptChecksum(good))

	reject := cp.recv(t)
	mt, _ := reject.MsgType()
	if mt != constants.MsgTypeReject {
		t.Fatalf("expected Reject, got MsgType %q", mt)
	}
	refTag, ok := reject.Get(constants.TagRefTagID)
	if !ok {
		t.Fatal("Reject missing RefTagID")
	}
	if refTag.String() != "10" {
		t.Fatalf("expected RefTagID 10, got %q", refTag.String())
	}
	if got := sess.State(); got != session.Active {
		t.Fatalf("expected session to remain Active after Reject, got %s", got)
	}
}

// TestSequenceGapSendsResendRequest verifies that an inbound MsgSeqNum
// greater than expected triggers a ResendRequest for the missing range
// and moves the session to Resending.
func TestSequenceGapSendsResendRequest(t *testing.T) {
	sess, _, cp := newActiveSession(t, newTestConfig())
	defer sess.Stop()

	// Expected next inbound is 2; skip straight to 4.
	cp.send(t, buildMessage(4, constants.MsgTypeNewOrderSingle, func(enc *tagvalue.Encoder) {
		enc.PutStr(constants.TagClOrdID, "ord-4")
	}))

	resendReq := cp.recv(t)
	mt, _ := resendReq.MsgType()
	if mt != constants.MsgTypeResendRequest {
		t.Fatalf("expected ResendRequest, got MsgType %q", mt)
	}
	begin, _ := resendReq.Get(constants.TagBeginSeqNo)
	end, _ := resendReq.Get(constants.TagEndSeqNo)
	if begin.String() != "2" {
		t.Fatalf("expected BeginSeqNo 2, got %q", begin.String())
	}
	if end.String() != "3" {
		t.Fatalf("expected EndSeqNo 3, got %q", end.String())
	}
	if got := sess.State(); got != session.Resending {
		t.Fatalf("expected Resending, got %s", got)
	}
}

// TestGapFillReturnsToActive verifies that a GapFill SequenceReset
// closes an outstanding resend and returns the session to Active.
func TestGapFillReturnsToActive(t *testing.T) {
	sess, _, cp := newActiveSession(t, newTestConfig())
	defer sess.Stop()

	cp.send(t, buildMessage(4, constants.MsgTypeNewOrderSingle, func(enc *tagvalue.Encoder) {
		enc.PutStr(constants.TagClOrdID, "ord-4")
	}))
	_ = cp.recv(t) // ResendRequest

	if got := sess.State(); got != session.Resending {
		t.Fatalf("expected Resending before GapFill, got %s", got)
	}

	// GapFill covering the missing range, handed out under the
	// expected (gap-start) sequence number, closing the gap at 4.
	cp.send(t, buildMessage(2, constants.MsgTypeSequenceReset, func(enc *tagvalue.Encoder) {
		enc.PutBool(constants.TagGapFillFlag, true)
		enc.PutUint(constants.TagNewSeqNo, 4)
	}))

	deadline := time.After(2 * time.Second)
	for {
		if sess.State() == session.Active {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for Active after GapFill, stuck in %s", sess.State())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// TestHeartbeatTimeoutDisconnects verifies that silence past the
// heartbeat interval and an unanswered TestRequest forces the session
// to Disconnected and fires OnLogout.
func TestHeartbeatTimeoutDisconnects(t *testing.T) {
	cfg := newTestConfig()
	cfg.HeartbeatInterval = 50 * time.Millisecond
	sess, app, cp := newActiveSession(t, cfg)
	defer sess.Stop()

	// Drain (but never answer) every Heartbeat/TestRequest the session
	// sends while waiting on silence; net.Pipe has no buffering, so an
	// un-drained write would block the session's heartbeat loop
	// forever instead of letting the timeout fire.
	go func() {
		for {
			if _, err := cp.framer.Next(); err != nil {
				return
			}
		}
	}()

	select {
	case <-app.logoutCh:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for OnLogout after heartbeat timeout")
	}
	if got := sess.State(); got != session.Disconnected {
		t.Fatalf("expected Disconnected after heartbeat timeout, got %s", got)
	}
}
