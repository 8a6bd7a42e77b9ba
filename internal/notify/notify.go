// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify tells the business about new quote requests and contact
// messages by e-mail and through a message broker.
package notify

import (
	"context"
	"errors"

	"github.com/olegiv/estofamais/internal/model"
)

// Notifier receives site events.
type Notifier interface {
	QuoteSubmitted(ctx context.Context, q model.Quote) error
	ContactReceived(ctx context.Context, m model.ContactMessage) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) QuoteSubmitted(context.Context, model.Quote) error            { return nil }
func (Nop) ContactReceived(context.Context, model.ContactMessage) error { return nil }

// Multi delivers each event to all notifiers and joins their errors.
type Multi []Notifier

// QuoteSubmitted implements Notifier.
func (m Multi) QuoteSubmitted(ctx context.Context, q model.Quote) error {
	var errs []error
	for _, n := range m {
		if err := n.QuoteSubmitted(ctx, q); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ContactReceived implements Notifier.
func (m Multi) ContactReceived(ctx context.Context, msg model.ContactMessage) error {
	var errs []error
	for _, n := range m {
		if err := n.ContactReceived(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Combine returns a single notifier for ns, skipping nils.
func Combine(ns ...Notifier) Notifier {
	var out Multi
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	switch len(out) {
	case 0:
		return Nop{}
	case 1:
		return out[0]
	default:
		return out
	}
}
