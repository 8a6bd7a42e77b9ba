// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"encoding/gob"

	"github.com/olegiv/estofamais/internal/model"
)

func init() {
	// scs gob-encodes session values
	gob.Register(model.SessionUser{})
}
