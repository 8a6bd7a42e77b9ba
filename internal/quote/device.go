// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package quote

import (
	"strings"

	"github.com/mileusna/useragent"
)

// Device types reported by DescribeDevice.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
	DeviceDesktop = "desktop"
)

// DescribeDevice summarizes a User-Agent as "browser / os / type" for the
// admin quote list. An empty header yields "".
func DescribeDevice(uaString string) string {
	if strings.TrimSpace(uaString) == "" {
		return ""
	}
	ua := useragent.Parse(uaString)

	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}

	var kind string
	switch {
	case ua.Mobile:
		kind = DeviceMobile
	case ua.Tablet:
		kind = DeviceTablet
	case ua.Bot:
		kind = DeviceBot
	default:
		kind = DeviceDesktop
	}

	return browser + " / " + os + " / " + kind
}
