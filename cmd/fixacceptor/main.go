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

// Command fixacceptor is a minimal TCP acceptor demo: it listens for
// an initiator and logs each session on. Each accepted connection runs
// a Session that sends its own Logon, with its own configured
// HeartBtInt, as soon as it connects. It exists to exercise engine.Session from the
// acceptor side and as a counterparty for cmd/fixrepl in local
// testing; prime-fix-md-go's fixclient package is initiator-only and
// has no analogous file, so this is written in its general idiom
// (flat main.go, log.Printf status lines) rather than ported from any
// single source.
package main

import (
	"log"
	"net"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/coinbase-samples/ironfix-go/engine"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/session"
	"github.com/coinbase-samples/ironfix-go/store"
)

var (
	app = kingpin.New("fixacceptor", "Demo FIX acceptor")

	listenAddr   = app.Flag("listen", "address to listen on").Default(":9878").String()
	senderCompID = app.Flag("sender", "SenderCompID").Default("ACCEPTOR").String()
	targetCompID = app.Flag("target", "TargetCompID").Default("INITIATOR").String()
	beginString  = app.Flag("begin-string", "FIX BeginString").Default("FIX.4.4").String()
)

type loggingApplication struct {
	engine.NoOpApplication
}

func (loggingApplication) OnCreate(id fixcore.SessionID) { log.Printf("session created: %s", id) }
func (loggingApplication) OnLogon(id fixcore.SessionID)  { log.Printf("logon: %s", id) }
func (loggingApplication) OnLogout(id fixcore.SessionID) { log.Printf("logout: %s", id) }

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", *listenAddr, err)
	}
	log.Printf("fixacceptor listening on %s", *listenAddr)

	cfg := session.NewConfig(fixcore.CompID(*senderCompID), fixcore.CompID(*targetCompID), *beginString)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("accept: %v", err)
			continue
		}
		go serve(cfg, conn)
	}
}

func serve(cfg *session.Config, conn net.Conn) {
	sess := engine.NewBuilder(cfg).
		WithApplication(loggingApplication{}).
		WithStore(store.NewMemoryStore()).
		Build()

	if err := sess.Connect(conn, false); err != nil {
		log.Printf("session %s ended: %v", cfg.SessionID(), err)
	}
}
