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

// Package admin builds the session-level administrative messages:
// Logon, Heartbeat, TestRequest, ResendRequest, SequenceReset and
// Logout, plus session-level Reject. Grounded on
// prime-fix-md-go/builder/messages.go's header/body assembly pattern,
// generalized from order-entry/market-data bodies to the full admin
// message catalogue a FIX session layer needs.
package admin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/coinbase-samples/ironfix-go/constants"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/tagvalue"
)

// Header carries the values every admin builder stamps into the
// standard header fields.
type Header struct {
	BeginString  string
	SenderCompID string
	TargetCompID string
	MsgSeqNum    fixcore.SeqNum
	SendingTime  fixcore.Timestamp
}

func putHeader(enc *tagvalue.Encoder, msgType string, h Header) {
	enc.PutStr(constants.TagMsgType, msgType)
	enc.PutStr(constants.TagSenderCompId, h.SenderCompID)
	enc.PutStr(constants.TagTargetCompId, h.TargetCompID)
	enc.PutUint(constants.TagMsgSeqNum, uint64(h.MsgSeqNum))
	enc.PutStr(constants.TagSendingTime, h.SendingTime.String())
}

// LogonParams carries the fields a Logon (A) message needs. HeartBtInt
// is required; ResetSeqNumFlag triggers a session sequence reset
// (the ResetOnLogon path). Secret, when non-empty, signs
// the logon the way a counterparty's HMAC-authenticated gateway
// expects (tag 96), instead of (or alongside) a plain Username/Password.
type LogonParams struct {
	HeartBtIntSeconds int
	ResetSeqNumFlag   bool
	Username          string
	Password          string
	Secret            string
}

// BuildLogon encodes a Logon message.
func BuildLogon(h Header, p LogonParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeLogon, h)
	enc.PutStr(constants.TagEncryptMethod, constants.EncryptMethodNone)
	enc.PutInt(constants.TagHeartBtInt, int64(p.HeartBtIntSeconds))
	if p.ResetSeqNumFlag {
		enc.PutBool(constants.TagResetSeqNumFlag, true)
	}
	if p.Username != "" {
		enc.PutStr(constants.TagUsername, p.Username)
	}
	if p.Password != "" {
		enc.PutStr(constants.TagPassword, p.Password)
	}
	if p.Secret != "" {
		enc.PutStr(constants.TagHmac, signLogon(h, p))
	}
	return enc.Finish(h.BeginString)
}

// signLogon computes the HMAC-SHA256 signature a counterparty's
// authenticated gateway expects over the logon's identifying fields,
// base64-encoded, the way a prime-brokerage-style utils.Sign helper
// signs the same (SendingTime, MsgType, MsgSeqNum, SenderCompID,
// TargetCompID, Password) tuple over an API-key secret.
func signLogon(h Header, p LogonParams) string {
	msg := strings.Join([]string{
		h.SendingTime.String(),
		constants.MsgTypeLogon,
		strconv.FormatUint(uint64(h.MsgSeqNum), 10),
		h.SenderCompID,
		h.TargetCompID,
		p.Password,
	}, "\x01")

	mac := hmac.New(sha256.New, []byte(p.Secret))
	mac.Write([]byte(msg))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// BuildHeartbeat encodes a Heartbeat message, echoing testReqID when
// responding to a TestRequest (empty if unsolicited).
func BuildHeartbeat(h Header, testReqID string) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeHeartbeat, h)
	if testReqID != "" {
		enc.PutStr(constants.TagTestReqID, testReqID)
	}
	return enc.Finish(h.BeginString)
}

// BuildTestRequest encodes a TestRequest message carrying testReqID,
// which the counterparty must echo back on its Heartbeat.
func BuildTestRequest(h Header, testReqID string) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeTestRequest, h)
	enc.PutStr(constants.TagTestReqID, testReqID)
	return enc.Finish(h.BeginString)
}

// BuildResendRequest encodes a ResendRequest for the inclusive range
// [beginSeqNo, endSeqNo]; endSeqNo of 0 means "through the current
// end of stream" per the store contract.
func BuildResendRequest(h Header, beginSeqNo, endSeqNo fixcore.SeqNum) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeResendRequest, h)
	enc.PutUint(constants.TagBeginSeqNo, uint64(beginSeqNo))
	enc.PutUint(constants.TagEndSeqNo, uint64(endSeqNo))
	return enc.Finish(h.BeginString)
}

// BuildSequenceReset encodes a SequenceReset message. gapFill marks it
// as a GapFill (used to skip over administrative messages during
// resend) as opposed to a hard Reset.
func BuildSequenceReset(h Header, newSeqNo fixcore.SeqNum, gapFill bool) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeSequenceReset, h)
	enc.PutBool(constants.TagGapFillFlag, gapFill)
	enc.PutUint(constants.TagNewSeqNo, uint64(newSeqNo))
	return enc.Finish(h.BeginString)
}

// LogoutParams carries the optional text explaining why the session
// is ending.
type LogoutParams struct {
	Text string
}

// BuildLogout encodes a Logout message.
func BuildLogout(h Header, p LogoutParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeLogout, h)
	if p.Text != "" {
		enc.PutStr(constants.TagText, p.Text)
	}
	return enc.Finish(h.BeginString)
}

// RejectParams carries the fields a session-level Reject (3) message
// needs to describe which inbound message and tag triggered it.
type RejectParams struct {
	RefSeqNum         fixcore.SeqNum
	RefTagID          fixcore.FieldTag
	RefMsgType        string
	SessionRejectCode string
	Text              string
}

// BuildReject encodes a session-level Reject message.
func BuildReject(h Header, p RejectParams) []byte {
	enc := tagvalue.NewEncoder()
	putHeader(enc, constants.MsgTypeReject, h)
	enc.PutUint(constants.TagRefSeqNum, uint64(p.RefSeqNum))
	if p.RefTagID != 0 {
		enc.PutInt(constants.TagRefTagID, int64(p.RefTagID))
	}
	if p.RefMsgType != "" {
		enc.PutStr(constants.TagRefMsgType, p.RefMsgType)
	}
	if p.SessionRejectCode != "" {
		enc.PutStr(constants.TagSessionRejectReason, p.SessionRejectCode)
	}
	if p.Text != "" {
		enc.PutStr(constants.TagText, p.Text)
	}
	return enc.Finish(h.BeginString)
}
