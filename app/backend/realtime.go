// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lumenmatch/conncheck/app/config"
)

// Message is one frame on a realtime channel. The broker echoes broadcast
// frames back to every subscriber of the topic, including the sender.
type Message struct {
	Topic   string         `json:"topic"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
	Ref     string         `json:"ref,omitempty"`
}

// Broker events understood by the realtime service.
const (
	EventJoin      = "join"
	EventLeave     = "leave"
	EventBroadcast = "broadcast"
)

// Channel is a joined realtime topic. Messages delivers frames addressed to
// the topic; the channel stops delivering once Close is called. Close is
// idempotent.
type Channel interface {
	Publish(ctx context.Context, event string, payload map[string]any) error
	Messages() <-chan Message
	Close() error
}

// RealtimeClient joins transient pub/sub channels on the realtime broker.
type RealtimeClient interface {
	Join(ctx context.Context, topic string) (Channel, error)
}

// WebsocketClient is a RealtimeClient on the backend's websocket broker.
type WebsocketClient struct {
	url    string
	apiKey string
	dialer *websocket.Dialer
}

// NewWebsocketClient builds a realtime client from the backend settings.
func NewWebsocketClient(cfg *config.Backend) *WebsocketClient {
	return &WebsocketClient{
		url:    cfg.RealtimeURL,
		apiKey: cfg.APIKey,
		dialer: websocket.DefaultDialer,
	}
}

// Join dials the broker and announces the topic subscription. The returned
// channel must be closed by the caller on every exit path.
func (c *WebsocketClient) Join(ctx context.Context, topic string) (Channel, error) {
	header := http.Header{}
	header.Set("apikey", c.apiKey)

	conn, resp, err := c.dialer.DialContext(ctx, c.url, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial realtime broker at %s", c.url)
	}

	ch := &wsChannel{
		conn:  conn,
		topic: topic,
		msgs:  make(chan Message, 16),
	}

	join := Message{Topic: topic, Event: EventJoin, Ref: uuid.NewString()}
	if err := ch.writeJSON(join); err != nil {
		_ = ch.Close()
		return nil, errors.Wrap(err, "failed to join channel")
	}

	go ch.readLoop()
	return ch, nil
}

type wsChannel struct {
	conn  *websocket.Conn
	topic string
	msgs  chan Message

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func (ch *wsChannel) Publish(ctx context.Context, event string, payload map[string]any) error {
	msg := Message{Topic: ch.topic, Event: event, Payload: payload, Ref: uuid.NewString()}
	if deadline, ok := ctx.Deadline(); ok {
		ch.writeMu.Lock()
		_ = ch.conn.SetWriteDeadline(deadline)
		ch.writeMu.Unlock()
	}
	if err := ch.writeJSON(msg); err != nil {
		return errors.Wrap(err, "failed to publish")
	}
	return nil
}

func (ch *wsChannel) Messages() <-chan Message {
	return ch.msgs
}

// Close leaves the topic and tears down the connection. Safe to call from
// any path, any number of times.
func (ch *wsChannel) Close() error {
	ch.closeOnce.Do(func() {
		// best-effort leave so the broker can reap the subscription
		_ = ch.writeJSON(Message{Topic: ch.topic, Event: EventLeave})
		ch.closeErr = ch.conn.Close()
	})
	return ch.closeErr
}

// readLoop pumps frames for our topic until the connection dies, then closes
// the delivery channel. The loop is the only closer of msgs.
func (ch *wsChannel) readLoop() {
	defer close(ch.msgs)
	for {
		var msg Message
		if err := ch.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Topic != ch.topic {
			continue
		}
		select {
		case ch.msgs <- msg:
		default:
			// consumer is lagging; drop rather than block the pump
		}
	}
}

func (ch *wsChannel) writeJSON(msg Message) error {
	ch.writeMu.Lock()
	defer ch.writeMu.Unlock()
	return ch.conn.WriteJSON(msg)
}
