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

import (
	"time"

	"github.com/coinbase-samples/ironfix-go/fixcore"
)

// Config holds the per-session options a FIX session needs. Required
// fields have no default and must be supplied by the caller; the rest
// follow conventional FIX engine defaults.
type Config struct {
	SenderCompID fixcore.CompID
	TargetCompID fixcore.CompID
	BeginString  string

	SenderSubID      string
	TargetSubID      string
	SenderLocationID string
	TargetLocationID string

	HeartbeatInterval time.Duration
	ResetOnLogon      bool
	ResetOnLogout     bool
	ResetOnDisconnect bool
	MaxMessageSize    int
	LogonTimeout      time.Duration
	LogoutTimeout     time.Duration
	ValidateChecksum  bool
	ValidateLength    bool

	// Username, Password and Secret are stamped into every outbound
	// Logon via admin.LogonParams. Secret, when non-empty, additionally
	// signs the logon (admin.TagHmac) the way a counterparty's
	// HMAC-authenticated gateway expects.
	Username string
	Password string
	Secret   string
}

// NewConfig returns a Config for the required fields, with every
// optional field set to a conventional default. This mirrors
// prime-fix-md-go's NewConfig constructor shape (required positional
// arguments, defaulted struct fields) generalized to the FIX session
// layer instead of a market-data client.
func NewConfig(senderCompID, targetCompID fixcore.CompID, beginString string) *Config {
	return &Config{
		SenderCompID:      senderCompID,
		TargetCompID:      targetCompID,
		BeginString:       beginString,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    1 << 20,
		LogonTimeout:      10 * time.Second,
		LogoutTimeout:     10 * time.Second,
		ValidateChecksum:  true,
		ValidateLength:    true,
	}
}

// SessionID derives the SessionID triple this Config identifies.
func (c *Config) SessionID() fixcore.SessionID {
	return fixcore.SessionID{
		BeginString:  c.BeginString,
		SenderCompID: c.SenderCompID,
		TargetCompID: c.TargetCompID,
	}
}

// ConfigBuilder assembles a Config fluently, mirroring
// ironfix-session/src/config.rs's builder shape.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder starts a builder from NewConfig's defaults.
func NewConfigBuilder(senderCompID, targetCompID fixcore.CompID, beginString string) *ConfigBuilder {
	return &ConfigBuilder{cfg: NewConfig(senderCompID, targetCompID, beginString)}
}

func (b *ConfigBuilder) HeartbeatInterval(d time.Duration) *ConfigBuilder {
	b.cfg.HeartbeatInterval = d
	return b
}

func (b *ConfigBuilder) ResetOnLogon(v bool) *ConfigBuilder {
	b.cfg.ResetOnLogon = v
	return b
}

func (b *ConfigBuilder) ResetOnLogout(v bool) *ConfigBuilder {
	b.cfg.ResetOnLogout = v
	return b
}

func (b *ConfigBuilder) ResetOnDisconnect(v bool) *ConfigBuilder {
	b.cfg.ResetOnDisconnect = v
	return b
}

func (b *ConfigBuilder) MaxMessageSize(n int) *ConfigBuilder {
	b.cfg.MaxMessageSize = n
	return b
}

func (b *ConfigBuilder) SubIDs(senderSubID, targetSubID string) *ConfigBuilder {
	b.cfg.SenderSubID = senderSubID
	b.cfg.TargetSubID = targetSubID
	return b
}

func (b *ConfigBuilder) LocationIDs(senderLocationID, targetLocationID string) *ConfigBuilder {
	b.cfg.SenderLocationID = senderLocationID
	b.cfg.TargetLocationID = targetLocationID
	return b
}

// Build returns the assembled Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}
