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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the per-process Prometheus collectors shared across
// every session the engine drives. Callers register Metrics with
// their own prometheus.Registerer once at startup; sessions look up
// their own label set on each mutation rather than holding their own
// collector instances.
type Metrics struct {
	MessagesSent     *prometheus.CounterVec
	MessagesReceived *prometheus.CounterVec
	State            *prometheus.GaugeVec
	SenderSeq        *prometheus.GaugeVec
	TargetSeq        *prometheus.GaugeVec
	HeartbeatMisses  *prometheus.CounterVec
}

// NewMetrics constructs the collector set with a "session" label
// identifying the SessionID.String() the metric belongs to.
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ironfix",
			Name:      "messages_sent_total",
			Help:      "Outbound FIX messages sent, by session.",
		}, []string{"session"}),
		MessagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ironfix",
			Name:      "messages_received_total",
			Help:      "Inbound FIX messages received, by session.",
		}, []string{"session"}),
		State: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ironfix",
			Name:      "session_state",
			Help:      "Current session FSM state (numeric), by session.",
		}, []string{"session"}),
		SenderSeq: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ironfix",
			Name:      "next_sender_seq",
			Help:      "Next outbound MsgSeqNum, by session.",
		}, []string{"session"}),
		TargetSeq: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ironfix",
			Name:      "next_target_seq",
			Help:      "Next expected inbound MsgSeqNum, by session.",
		}, []string{"session"}),
		HeartbeatMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ironfix",
			Name:      "heartbeat_misses_total",
			Help:      "TestRequest timeouts observed, by session.",
		}, []string{"session"}),
	}
}

// MustRegister registers every collector against reg.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.MessagesSent, m.MessagesReceived, m.State, m.SenderSeq, m.TargetSeq, m.HeartbeatMisses)
}
