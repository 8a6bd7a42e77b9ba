// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// Settings holds the business details shown in the footer and contact page.
type Settings struct {
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
	WhatsApp     string `json:"whatsapp"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	OpeningHours string `json:"openingHours"`
}

// NewSettings validates the settings form.
func NewSettings(in Settings) (Settings, error) {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.WhatsApp = strings.TrimSpace(in.WhatsApp)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.OpeningHours = strings.TrimSpace(in.OpeningHours)

	c := newChecker()
	c.required("businessName", in.BusinessName, "Nome da empresa é obrigatório")
	c.required("phone", in.Phone, "Telefone é obrigatório")
	c.email("email", in.Email)
	if err := c.err(); err != nil {
		return Settings{}, err
	}
	return in, nil
}

// WhatsAppLink returns a wa.me link built from the WhatsApp number's digits.
func (s Settings) WhatsAppLink() string {
	var b strings.Builder
	for _, r := range s.WhatsApp {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + b.String()
}
