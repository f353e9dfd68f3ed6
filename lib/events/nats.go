// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubjectPrefix is the subject root for forwarded events.
const DefaultSubjectPrefix = "widgets"

// Publisher is the part of *nats.Conn used by NATSSink.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSSink forwards events to a NATS server as JSON messages.
type NATSSink struct {
	publisher Publisher
	prefix    string
}

// NewNATSSink returns a sink publishing through publisher under prefix.
// An empty prefix uses DefaultSubjectPrefix.
func NewNATSSink(publisher Publisher, prefix string) *NATSSink {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSSink{publisher: publisher, prefix: prefix}
}

// Subject returns the subject an event is published on:
// <prefix>.<group>.<event name>. Groups are reduced to a single subject
// token; events without a group use "_".
func (s *NATSSink) Subject(event Event) string {
	return s.prefix + "." + subjectToken(event.Group) + "." + string(event.Name)
}

// Publish encodes event as JSON and publishes it. NATS buffers
// outgoing messages, so this does not wait for delivery.
func (s *NATSSink) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event.Name, err)
	}
	subject := s.Subject(event)
	if err := s.publisher.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}

// subjectToken maps group to a NATS subject token. Dots separate
// tokens and '*' and '>' are wildcards, so those (and whitespace) are
// replaced.
func subjectToken(group string) string {
	if group == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, group)
}

// ConnectNATS dials a NATS server for event forwarding. The connection
// retries and reconnects indefinitely so that a server restart does not
// stop the daemon.
func ConnectNATS(url, name string, timeout time.Duration) (*nats.Conn, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(timeout),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return conn, nil
}
