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

// Command fixrepl is an interactive FIX client: it logs on to a
// counterparty over TCP and drives order entry, quoting and market
// data from a readline prompt.
//
// Grounded on prime-fix-md-go's fixclient package (repl.go/fixapp.go/
// orderstore.go), generalized off quickfixgo onto this module's own
// engine.Session/fixmsg stack.
package main

import (
	"log"
	"net"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/coinbase-samples/ironfix-go/engine"
	"github.com/coinbase-samples/ironfix-go/fixcore"
	"github.com/coinbase-samples/ironfix-go/session"
	"github.com/coinbase-samples/ironfix-go/store"
)

var (
	app = kingpin.New("fixrepl", "Interactive FIX client REPL")

	addr         = app.Flag("addr", "counterparty host:port").Default("127.0.0.1:9878").String()
	senderCompID = app.Flag("sender", "SenderCompID").Envar("FIXREPL_SENDER_COMP_ID").Required().String()
	targetCompID = app.Flag("target", "TargetCompID").Envar("FIXREPL_TARGET_COMP_ID").Required().String()
	beginString  = app.Flag("begin-string", "FIX BeginString").Default("FIX.4.4").String()
	heartbeat    = app.Flag("heartbeat", "heartbeat interval").Default("30s").Duration()
	resetSeqNums = app.Flag("reset", "reset sequence numbers on logon").Bool()
	envFile      = app.Flag("env-file", "path to a .env file with credentials").Default(".env").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("no .env file loaded from %s: %v", *envFile, err)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	cfg := session.NewConfig(fixcore.CompID(*senderCompID), fixcore.CompID(*targetCompID), *beginString)
	cfg.HeartbeatInterval = *heartbeat
	cfg.Username = os.Getenv("FIXREPL_USERNAME")
	cfg.Password = os.Getenv("FIXREPL_PASSWORD")
	cfg.Secret = os.Getenv("FIXREPL_SECRET")

	fixApp := NewApp(Creds{
		Username: cfg.Username,
		Password: cfg.Password,
		Secret:   cfg.Secret,
	})

	sess := engine.NewBuilder(cfg).
		WithApplication(fixApp).
		WithStore(store.NewMemoryStore()).
		Build()

	conn, err := net.DialTimeout("tcp", *addr, 10*time.Second)
	if err != nil {
		log.Fatalf("dial %s: %v", *addr, err)
	}

	go func() {
		if err := sess.Connect(conn, *resetSeqNums); err != nil {
			log.Printf("session ended: %v", err)
		}
	}()

	select {
	case <-fixApp.WaitLogon():
	case <-time.After(cfg.LogonTimeout + 5*time.Second):
		log.Println("warning: logon not confirmed, starting REPL anyway")
	}

	Repl(sess, fixApp)
	sess.Stop()
}
