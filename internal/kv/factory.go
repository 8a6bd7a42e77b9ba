// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	DBPath   string
	MySQLDSN string
	RedisURL string
	Prefix   string
}

// Open creates the store selected by opts.Backend.
// SQL backends are migrated before they are returned.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil

	case BackendSQLite:
		if dir := filepath.Dir(opts.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		db, err := OpenSQLite(opts.DBPath)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db, DialectSQLite); err != nil {
			_ = db.Close()
			return nil, err
		}
		return NewSQLStore(db, DialectSQLite), nil

	case BackendMySQL:
		db, err := OpenMySQL(opts.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db, DialectMySQL); err != nil {
			_ = db.Close()
			return nil, err
		}
		return NewSQLStore(db, DialectMySQL), nil

	case BackendRedis:
		ropts := DefaultRedisOptions()
		ropts.URL = opts.RedisURL
		if opts.Prefix != "" {
			ropts.Prefix = opts.Prefix
		}
		return NewRedisStore(ctx, ropts)

	default:
		return nil, fmt.Errorf("unknown kv backend %q", opts.Backend)
	}
}
