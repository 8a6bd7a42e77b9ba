// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/olegiv/estofamais/internal/model"
)

// SMTPConfig configures outgoing mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

type sendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

// Mailer sends plain-text notification e-mails to the business inbox.
type Mailer struct {
	cfg  SMTPConfig
	send sendFunc
	now  func() time.Time
}

// NewMailer creates a mailer. Authentication is skipped without a username.
func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail, now: time.Now}
}

// QuoteSubmitted implements Notifier.
func (m *Mailer) QuoteSubmitted(_ context.Context, q model.Quote) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Novo pedido de orçamento #%d (%s)\n\n", q.ID, q.Date)
	fmt.Fprintf(&b, "Nome: %s\nE-mail: %s\nTelefone: %s\n", q.Name, q.Email, q.Phone)
	fmt.Fprintf(&b, "Serviço: %s\n", q.ServiceType)
	if q.Material != "" {
		fmt.Fprintf(&b, "Material: %s\n", q.Material)
	}
	if q.Color != "" {
		fmt.Fprintf(&b, "Cor: %s\n", q.Color)
	}
	if len(q.Materials) > 0 {
		fmt.Fprintf(&b, "Materiais selecionados: %s\n", strings.Join(q.Materials, ", "))
	}
	if q.PriceMin != nil && q.PriceMax != nil {
		fmt.Fprintf(&b, "Faixa de preço: R$ %.0f a R$ %.0f\n", *q.PriceMin, *q.PriceMax)
	}
	fmt.Fprintf(&b, "\n%s\n", q.Description)
	for _, img := range q.Images {
		fmt.Fprintf(&b, "\nFoto: %s", img)
	}

	return m.deliver(q.Email, "Novo orçamento: "+q.Name, b.String())
}

// ContactReceived implements Notifier.
func (m *Mailer) ContactReceived(_ context.Context, c model.ContactMessage) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Nova mensagem de contato (%s)\n\n", c.Date)
	fmt.Fprintf(&b, "Nome: %s\nE-mail: %s\n", c.Name, c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Telefone: %s\n", c.Phone)
	}
	fmt.Fprintf(&b, "Assunto: %s\n\n%s\n", c.Subject, c.Message)

	return m.deliver(c.Email, "Contato: "+c.Subject, b.String())
}

func (m *Mailer) deliver(replyTo, subject, body string) error {
	if len(m.cfg.To) == 0 {
		return nil
	}

	var auth sasl.Client
	if m.cfg.Username != "" {
		auth = sasl.NewLoginClient(m.cfg.Username, m.cfg.Password)
	}

	msg := m.buildMessage(replyTo, subject, body)
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, m.cfg.To, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("sending mail %q: %w", subject, err)
	}
	return nil
}

func (m *Mailer) buildMessage(replyTo, subject, body string) []byte {
	var b bytes.Buffer
	header := func(k, v string) {
		b.WriteString(k + ": " + headerSafe(v) + "\r\n")
	}

	header("From", m.cfg.From)
	header("To", strings.Join(m.cfg.To, ", "))
	if model.IsValidEmail(replyTo) {
		header("Reply-To", replyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", headerSafe(subject)))
	header("Date", m.now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.Bytes()
}

// headerSafe removes line breaks so form values cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
