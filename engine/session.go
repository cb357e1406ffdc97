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
	"errors"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/coinbase-samples/ironfix-go/admin"
	"github.com/coinbase-samples/ironfix-go/constants"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/session"
	"github.com/coinbase-samples/ironfix-go/store"
	"github.com/coinbase-samples/ironfix-go/tagvalue"
	"github.com/coinbase-samples/ironfix-go/transport"
)

// Session drives one FIX session end to end: it owns the transport
// connection, the session.State machine, the sequence and heartbeat
// managers, the message store, and dispatches decoded messages to an
// Application. It is the orchestrator a FIX session layer needs,
// structured around its own state machine rather than any one
// counterparty's client shape, using the style (mutex-guarded shared
// state, log.Printf diagnostics) prime-fix-md-go's FixApp establishes
// elsewhere in this module.
type Session struct {
	Config      *session.Config
	Application Application
	Store       store.MessageStore
	Metrics     *session.Metrics

	mu        sync.Mutex
	state     session.State
	seq       *session.SequenceManager
	heartbeat *session.HeartbeatManager

	conn    net.Conn
	framer  *transport.Framer
	decoder *tagvalue.Decoder

	resendQueue [][]byte // queued app messages held back while a resend is outstanding
	resending   bool

	stopCh chan struct{}
}

// NewSession constructs a Session in the Disconnected state, seeding
// its SequenceManager from st's durable counters when st already has
// state from a prior run (a fresh MemoryStore reports 1/1, a no-op).
func NewSession(cfg *session.Config, app Application, st store.MessageStore) *Session {
	if app == nil {
		app = NoOpApplication{}
	}
	seq := session.NewSequenceManager()
	if st != nil {
		if sender, err := st.NextSenderSeq(); err == nil {
			seq.SetNextSenderSeq(sender)
		}
		if target, err := st.NextTargetSeq(); err == nil {
			seq.SetNextTargetSeq(target)
		}
	}
	s := &Session{
		Config:      cfg,
		Application: app,
		Store:       st,
		Metrics:     session.NewMetrics(),
		state:       session.Disconnected,
		seq:         seq,
		heartbeat:   session.NewHeartbeatManager(cfg.HeartbeatInterval),
		decoder: &tagvalue.Decoder{
			ValidateChecksum: cfg.ValidateChecksum,
			ValidateLength:   cfg.ValidateLength,
		},
	}
	app.OnCreate(cfg.SessionID())
	return s
}

func (s *Session) transition(event session.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := session.Transition(s.state, event)
	if err != nil {
		return err
	}
	prev := s.state
	s.state = next
	s.Metrics.State.WithLabelValues(s.sessionLabel()).Set(float64(next))
	if prev != session.Active && next == session.Active {
		s.Application.OnLogon(s.Config.SessionID())
	}
	if prev == session.Active && next == session.Disconnected {
		s.Application.OnLogout(s.Config.SessionID())
	}
	return nil
}

func (s *Session) sessionLabel() string {
	return s.Config.SessionID().String()
}

// State returns the session's current state.
func (s *Session) State() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect attaches conn as the session's transport, sends Logon, and
// blocks running the read loop and heartbeat timer until the
// connection closes or ctx-equivalent Stop is called.
func (s *Session) Connect(conn net.Conn, resetSeqNums bool) error {
	if err := s.transition(session.EventConnect); err != nil {
		return err
	}
	s.conn = conn
	s.framer = transport.NewFramer(conn, transport.NewFixCodec())
	s.stopCh = make(chan struct{})

	if resetSeqNums || s.Config.ResetOnLogon {
		s.seq.Reset()
	}

	if err := s.sendLogon(resetSeqNums || s.Config.ResetOnLogon); err != nil {
		return err
	}
	if err := s.transition(session.EventOutboundLogonSent); err != nil {
		return err
	}

	go s.heartbeatLoop()
	return s.readLoop()
}

// Stop closes the transport and ends the read/heartbeat loops.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopCh != nil {
		select {
		case <-s.stopCh:
		default:
			close(s.stopCh)
		}
	}
	conn := s.conn
	s.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (s *Session) nextHeader(msgType string) admin.Header {
	seq := s.seq.AllocateSenderSeq()
	return admin.Header{
		BeginString:  s.Config.BeginString,
		SenderCompID: string(s.Config.SenderCompID),
		TargetCompID: string(s.Config.TargetCompID),
		MsgSeqNum:    seq,
		SendingTime:  fixcore.NowTimestamp(),
	}
}

func (s *Session) sendLogon(resetSeqNums bool) error {
	h := s.nextHeader(constants.MsgTypeLogon)
	frame := admin.BuildLogon(h, admin.LogonParams{
		HeartBtIntSeconds: int(s.Config.HeartbeatInterval / time.Second),
		ResetSeqNumFlag:   resetSeqNums,
		Username:          s.Config.Username,
		Password:          s.Config.Password,
		Secret:            s.Config.Secret,
	})
	return s.send(frame)
}

// send writes an already-encoded frame to the wire, notifying
// Application.ToAdmin/ToApp first for admin/application messages
// respectively, then recording the heartbeat clock. send does not
// store the frame: SendApp stores application messages before calling
// it, and admin messages are not stored.
func (s *Session) send(frame []byte) error {
	dec, err := (&tagvalue.Decoder{ValidateChecksum: false, ValidateLength: false}).Decode(frame)
	if err == nil {
		if mt, ok := dec.MsgType(); ok {
			if mt.IsAdmin() {
				s.Application.ToAdmin(dec, s.Config.SessionID())
			} else if err := s.Application.ToApp(dec, s.Config.SessionID()); err != nil {
				return err
			}
		}
	}

	if _, err := s.conn.Write(frame); err != nil {
		return &fixcore.IOError{Op: "write", Err: err}
	}
	s.heartbeat.RecordSent()
	s.Metrics.MessagesSent.WithLabelValues(s.sessionLabel()).Inc()
	return nil
}

func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if s.heartbeat.ShouldSendHeartbeat() {
				h := s.nextHeader(constants.MsgTypeHeartbeat)
				if err := s.send(admin.BuildHeartbeat(h, "")); err != nil {
					log.Printf("heartbeat send failed: %v", err)
				}
			}
			if id, ok := s.heartbeat.ShouldSendTestRequest(); ok {
				h := s.nextHeader(constants.MsgTypeTestRequest)
				if err := s.send(admin.BuildTestRequest(h, id)); err != nil {
					log.Printf("test request send failed: %v", err)
				}
			}
			if s.heartbeat.IsTimedOut() {
				s.mu.Lock()
				cur := s.state
				s.mu.Unlock()
				if cur == session.Active {
					s.transition(session.EventHeartbeatTimeout)
					s.Metrics.HeartbeatMisses.WithLabelValues(s.sessionLabel()).Inc()
					s.Stop()
				}
				return
			}
		}
	}
}

func (s *Session) readLoop() error {
	for {
		select {
		case <-s.stopCh:
			return nil
		default:
		}

		raw, err := s.framer.Next()
		if err != nil {
			s.transition(session.EventTransportFailure)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &fixcore.IOError{Op: "read", Err: err}
		}

		msg, err := s.decoder.Decode(raw)
		if err != nil {
			log.Printf("decode error: %v", err)
			s.sendDecodeReject(raw, err)
			continue
		}
		s.heartbeat.RecordReceived()
		s.Metrics.MessagesReceived.WithLabelValues(s.sessionLabel()).Inc()
		s.handleMessage(msg)
	}
}

func (s *Session) handleMessage(msg *fixcore.RawMessage) {
	seqField, ok := msg.Get(constants.TagMsgSeqNum)
	if !ok {
		return
	}
	recvSeq, err := seqField.Uint()
	if err != nil {
		return
	}

	switch s.seq.Compare(fixcore.SeqNum(recvSeq)) {
	case session.SeqLower:
		if dup, ok := msg.Get(constants.TagPossDupFlag); ok {
			if isDup, err := dup.Bool(); err == nil && isDup {
				return // possible duplicate, PossDupFlag=Y; ignored
			}
		}
		log.Printf("fatal: MsgSeqNum %d below expected without PossDupFlag=Y", recvSeq)
		s.transition(session.EventTransportFailure)
		s.Stop()
		return
	case session.SeqGreater:
		s.onSequenceGap(fixcore.SeqNum(recvSeq))
		return
	case session.SeqEqual:
		s.seq.AdvanceTarget()
	}

	mt, _ := msg.MsgType()
	switch mt {
	case constants.MsgTypeLogon:
		s.transition(session.EventInboundLogonMatched)
	case constants.MsgTypeLogout:
		s.transition(session.EventInboundLogout)
		s.Stop()
	case constants.MsgTypeTestRequest:
		if f, ok := msg.Get(constants.TagTestReqID); ok {
			h := s.nextHeader(constants.MsgTypeHeartbeat)
			s.send(admin.BuildHeartbeat(h, f.String()))
		}
	case constants.MsgTypeHeartbeat:
		// heartbeat.RecordReceived already cleared any outstanding
		// TestRequest state in readLoop.
	case constants.MsgTypeResendRequest:
		s.onResendRequest(msg)
	case constants.MsgTypeSequenceReset:
		s.onSequenceReset(msg)
	default:
		if !mt.IsAdmin() {
			s.dispatchApp(msg)
			return
		}
	}

	if err := s.Application.FromAdmin(msg, s.Config.SessionID()); err != nil {
		log.Printf("FromAdmin rejected message: %v", err)
		s.sendReject(fixcore.SeqNum(recvSeq), 0, string(mt), err.Error())
	}
}

// dispatchApp routes an application-level message either to the
// Application directly, or onto the resend queue if a resend is
// currently outstanding; queued messages are replayed in order when a
// SequenceReset ends the resend. Only messages carrying the expected
// MsgSeqNum get here: a message above the expected number is not
// queued, and handleMessage answers it with another ResendRequest
// (onSequenceGap) for the range below it.
func (s *Session) dispatchApp(msg *fixcore.RawMessage) {
	s.mu.Lock()
	resending := s.resending
	s.mu.Unlock()
	if resending {
		owned := msg.Own()
		s.mu.Lock()
		s.resendQueue = append(s.resendQueue, owned.Bytes())
		s.mu.Unlock()
		return
	}
	if err := s.Application.FromApp(msg, s.Config.SessionID()); err != nil {
		log.Printf("FromApp rejected message: %v", err)
	}
}

func (s *Session) onSequenceGap(received fixcore.SeqNum) {
	s.transition(session.EventSequenceGap)
	s.mu.Lock()
	s.resending = true
	s.mu.Unlock()

	expected := s.seq.NextTargetSeq()
	h := s.nextHeader(constants.MsgTypeResendRequest)
	if err := s.send(admin.BuildResendRequest(h, expected, received-1)); err != nil {
		log.Printf("resend request send failed: %v", err)
	}
}

// sendDecodeReject builds and sends a session-level Reject for a
// message that failed to decode at all. It re-decodes raw leniently
// (skipping checksum/UTF-8 validation) to recover MsgSeqNum for
// RefSeqNum when possible; a message too malformed even for that
// still gets a Reject with RefSeqNum 0 rather than none at all.
func (s *Session) sendDecodeReject(raw []byte, decodeErr error) {
	var refTagID fixcore.FieldTag
	switch decodeErr.(type) {
	case *fixcore.ChecksumMismatchError:
		refTagID = constants.TagCheckSum
	case *fixcore.InvalidBodyLengthError:
		refTagID = constants.TagBodyLength
	}

	var refSeqNum fixcore.SeqNum
	lenient := &tagvalue.Decoder{ValidateChecksum: false, ValidateLength: false}
	if dec, err := lenient.Decode(raw); err == nil {
		if f, ok := dec.Get(constants.TagMsgSeqNum); ok {
			if v, err := f.Uint(); err == nil {
				refSeqNum = fixcore.SeqNum(v)
			}
		}
	}

	s.sendReject(refSeqNum, refTagID, "", decodeErr.Error())
}

// sendReject builds and sends a session-level Reject (type 3). The
// session remains Active; Reject is advisory, not a fatal condition.
func (s *Session) sendReject(refSeqNum fixcore.SeqNum, refTagID fixcore.FieldTag, refMsgType, text string) {
	h := s.nextHeader(constants.MsgTypeReject)
	frame := admin.BuildReject(h, admin.RejectParams{
		RefSeqNum:  refSeqNum,
		RefTagID:   refTagID,
		RefMsgType: refMsgType,
		Text:       text,
	})
	if err := s.send(frame); err != nil {
		log.Printf("reject send failed: %v", err)
	}
}

func (s *Session) onResendRequest(msg *fixcore.RawMessage) {
	beginField, _ := msg.Get(constants.TagBeginSeqNo)
	endField, _ := msg.Get(constants.TagEndSeqNo)
	begin, _ := beginField.Uint()
	end, _ := endField.Uint()

	msgs, err := s.Store.GetRange(fixcore.SeqNum(begin), fixcore.SeqNum(end))
	if err != nil {
		log.Printf("resend range unavailable: %v", err)
		return
	}
	for _, raw := range msgs {
		if _, err := s.conn.Write(raw); err != nil {
			log.Printf("resend write failed: %v", err)
			return
		}
	}
}

func (s *Session) onSequenceReset(msg *fixcore.RawMessage) {
	newSeqField, ok := msg.Get(constants.TagNewSeqNo)
	if !ok {
		return
	}
	newSeq, err := newSeqField.Uint()
	if err != nil {
		return
	}
	s.seq.SetNextTargetSeq(fixcore.SeqNum(newSeq))

	s.mu.Lock()
	wasResending := s.resending
	s.resending = false
	queued := s.resendQueue
	s.resendQueue = nil
	s.mu.Unlock()

	if wasResending {
		s.transition(session.EventResendComplete)
		for _, raw := range queued {
			dec, err := s.decoder.Decode(raw)
			if err != nil {
				continue
			}
			s.dispatchApp(dec)
		}
	}
}

// SendApp encodes and sends an application-level message frame built
// by the caller (e.g. via the fixmsg package), storing it for
// potential resend.
func (s *Session) SendApp(bodyBuilder func(h admin.Header) []byte) error {
	h := s.nextHeader("")
	frame := bodyBuilder(h)
	if err := s.Store.Store(h.MsgSeqNum, frame); err != nil {
		return err
	}
	if err := s.Store.SetNextSenderSeq(h.MsgSeqNum + 1); err != nil {
		log.Printf("store sequence persist failed: %v", err)
	}
	return s.send(frame)
}
