// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Date    string `json:"date"`
	IsRead  bool   `json:"isRead"`
}

// NewContactMessage validates the contact form and stamps the date.
func NewContactMessage(in ContactMessage, now time.Time) (ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	c := newChecker()
	c.minLen("name", in.Name, 2, "Nome deve ter pelo menos 2 caracteres")
	c.email("email", in.Email)
	c.minLen("subject", in.Subject, 3, "Assunto deve ter pelo menos 3 caracteres")
	c.minLen("message", in.Message, 10, "Mensagem deve ter pelo menos 10 caracteres")
	if err := c.err(); err != nil {
		return ContactMessage{}, err
	}

	in.ID = 0
	in.IsRead = false
	in.Date = FormatDate(now)
	return in, nil
}
