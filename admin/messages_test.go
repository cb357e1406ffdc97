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

package admin

import (
	"testing"

	"github.com/coinbase-samples/ironfix-go/constants"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/tagvalue"
)

func testHeader(seq fixcore.SeqNum) Header {
	return Header{
		BeginString:  "FIX.4.4",
		SenderCompID: "SENDER",
		TargetCompID: "TARGET",
		MsgSeqNum:    seq,
		SendingTime:  fixcore.NowTimestamp(),
	}
}

func decodeOrFail(t *testing.T, frame []byte) *fixcore.RawMessage {
	t.Helper()
	msg, err := tagvalue.NewDecoder().Decode(frame)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return msg
}

func TestBuildLogonPlain(t *testing.T) {
	frame := BuildLogon(testHeader(1), LogonParams{
		HeartBtIntSeconds: 30,
		Username:          "user1",
		Password:          "pass1",
	})
	msg := decodeOrFail(t, frame)
	if f, ok := msg.Get(constants.TagUsername); !ok || f.String() != "user1" {
		t.Fatalf("Username = %+v, want user1", f)
	}
	if _, ok := msg.Get(constants.TagHmac); ok {
		t.Fatalf("Hmac tag should be absent without a Secret")
	}
}

func TestBuildLogonSigned(t *testing.T) {
	h := testHeader(1)
	p := LogonParams{
		HeartBtIntSeconds: 30,
		Password:          "pass1",
		Secret:            "shared-secret",
	}
	frame := BuildLogon(h, p)
	msg := decodeOrFail(t, frame)

	sig, ok := msg.Get(constants.TagHmac)
	if !ok || sig.String() == "" {
		t.Fatalf("expected non-empty Hmac tag")
	}
	if sig.String() != signLogon(h, p) {
		t.Fatalf("Hmac = %s, want %s", sig.String(), signLogon(h, p))
	}

	// Changing the password must change the signature.
	p2 := p
	p2.Password = "different"
	if signLogon(h, p2) == sig.String() {
		t.Fatalf("signature should depend on Password")
	}
}

func TestBuildHeartbeatEchoesTestReqID(t *testing.T) {
	frame := BuildHeartbeat(testHeader(2), "test-1")
	msg := decodeOrFail(t, frame)
	if f, ok := msg.Get(constants.TagTestReqID); !ok || f.String() != "test-1" {
		t.Fatalf("TestReqID = %+v, want test-1", f)
	}
}

func TestBuildResendRequestRange(t *testing.T) {
	frame := BuildResendRequest(testHeader(3), 5, 10)
	msg := decodeOrFail(t, frame)
	if f, ok := msg.Get(constants.TagBeginSeqNo); !ok || f.String() != "5" {
		t.Fatalf("BeginSeqNo = %+v, want 5", f)
	}
	if f, ok := msg.Get(constants.TagEndSeqNo); !ok || f.String() != "10" {
		t.Fatalf("EndSeqNo = %+v, want 10", f)
	}
}

func TestBuildSequenceResetGapFill(t *testing.T) {
	frame := BuildSequenceReset(testHeader(4), 20, true)
	msg := decodeOrFail(t, frame)
	if f, ok := msg.Get(constants.TagGapFillFlag); !ok || f.String() != "Y" {
		t.Fatalf("GapFillFlag = %+v, want Y", f)
	}
	if f, ok := msg.Get(constants.TagNewSeqNo); !ok || f.String() != "20" {
		t.Fatalf("NewSeqNo = %+v, want 20", f)
	}
}

func TestBuildLogout(t *testing.T) {
	frame := BuildLogout(testHeader(5), LogoutParams{Text: "done for the day"})
	msg := decodeOrFail(t, frame)
	mt, _ := msg.MsgType()
	if mt != constants.MsgTypeLogout {
		t.Fatalf("MsgType = %q, want %q", mt, constants.MsgTypeLogout)
	}
	if f, ok := msg.Get(constants.TagText); !ok || f.String() != "done for the day" {
		t.Fatalf("Text = %+v, want 'done for the day'", f)
	}
}

func TestBuildReject(t *testing.T) {
	frame := BuildReject(testHeader(6), RejectParams{
		RefSeqNum:         4,
		RefTagID:          58,
		RefMsgType:        constants.MsgTypeNewOrderSingle,
		SessionRejectCode: "5",
		Text:              "invalid tag",
	})
	msg := decodeOrFail(t, frame)
	if f, ok := msg.Get(constants.TagRefSeqNum); !ok || f.String() != "4" {
		t.Fatalf("RefSeqNum = %+v, want 4", f)
	}
	if f, ok := msg.Get(constants.TagRefTagID); !ok || f.String() != "58" {
		t.Fatalf("RefTagID = %+v, want 58", f)
	}
}
