// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/olegiv/estofamais/internal/model"
)

// Routing keys of published events.
const (
	KeyQuoteSubmitted  = "quote.submitted"
	KeyContactReceived = "contact.received"
)

// Event is the JSON envelope published to the broker.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends events to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// NewPublisher dials the broker and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

// QuoteSubmitted implements Notifier.
func (p *Publisher) QuoteSubmitted(ctx context.Context, q model.Quote) error {
	return p.publish(ctx, KeyQuoteSubmitted, q)
}

// ContactReceived implements Notifier.
func (p *Publisher) ContactReceived(ctx context.Context, m model.ContactMessage) error {
	return p.publish(ctx, KeyContactReceived, m)
}

func (p *Publisher) publish(ctx context.Context, key string, payload any) error {
	now := p.now()
	b, err := json.Marshal(Event{Type: key, OccurredAt: now, Payload: payload})
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", key, err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Body:         b,
	})
	if err != nil {
		return fmt.Errorf("publishing %s: %w", key, err)
	}
	return nil
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
