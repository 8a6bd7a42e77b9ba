// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Quote statuses. Admins may move a quote between any of them.
const (
	QuoteStatusPending   = "pending"
	QuoteStatusContacted = "contacted"
	QuoteStatusApproved  = "approved"
	QuoteStatusRejected  = "rejected"
)

// QuoteStatuses lists every valid status in display order.
var QuoteStatuses = []string{
	QuoteStatusPending,
	QuoteStatusContacted,
	QuoteStatusApproved,
	QuoteStatusRejected,
}

// IsValidQuoteStatus reports whether s is a known status.
func IsValidQuoteStatus(s string) bool {
	for _, v := range QuoteStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Minimum lengths enforced by the quote form.
const (
	MinQuoteNameLength        = 2
	MinQuotePhoneLength       = 10
	MinQuoteDescriptionLength = 10
)

// Quote is a customer's request for a price estimate.
type Quote struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	ServiceType string   `json:"serviceType"`
	Material    string   `json:"material"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	Materials   []string `json:"materials,omitempty"`
	PriceMin    *float64 `json:"priceMin,omitempty"`
	PriceMax    *float64 `json:"priceMax,omitempty"`
	Country     string   `json:"country,omitempty"`
	Device      string   `json:"device,omitempty"`
}

// QuoteForm holds the customer-editable quote fields.
type QuoteForm struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ServiceType string `json:"serviceType"`
	Material    string `json:"material"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Validate runs the quote form checks.
func (f QuoteForm) Validate() error {
	c := newChecker()
	c.minLen("name", f.Name, MinQuoteNameLength, "Nome deve ter pelo menos 2 caracteres")
	c.email("email", f.Email)
	c.minLen("phone", f.Phone, MinQuotePhoneLength, "Telefone deve ter pelo menos 10 dígitos")
	c.required("serviceType", f.ServiceType, "Selecione o tipo de serviço")
	c.minLen("description", f.Description, MinQuoteDescriptionLength, "Descrição deve ter pelo menos 10 caracteres")
	return c.err()
}

// NewQuote validates the form and returns a pending quote dated now.
func NewQuote(f QuoteForm, now time.Time) (Quote, error) {
	if err := f.Validate(); err != nil {
		return Quote{}, err
	}
	return Quote{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		ServiceType: strings.TrimSpace(f.ServiceType),
		Material:    strings.TrimSpace(f.Material),
		Color:       strings.TrimSpace(f.Color),
		Description: strings.TrimSpace(f.Description),
		Date:        FormatDate(now),
		Status:      QuoteStatusPending,
		Images:      []string{},
	}, nil
}
