// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db, DialectSQLite))

	s := NewSQLStore(db, DialectSQLite)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLStore_SetGetDelete(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "estofamais_users", []byte(`[]`)))
	got, err := s.Get(ctx, "estofamais_users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Set(ctx, "estofamais_users", []byte(`[{"id":"1"}]`)))
	got, err = s.Get(ctx, "estofamais_users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, s.Delete(ctx, "estofamais_users"))
	_, err = s.Get(ctx, "estofamais_users")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "never-set"))
}

func TestSQLStore_SessionsTableCreated(t *testing.T) {
	s := newTestSQLStore(t)

	var name string
	err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='sessions'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "sessions", name)
}

func TestSQLStore_Closed(t *testing.T) {
	s := newTestSQLStore(t)
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set(context.Background(), "k", nil), ErrClosed)
	assert.NoError(t, s.Close(), "second Close should be a no-op")
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	_ = s.Close()

	s, err = Open(ctx, Options{Backend: BackendSQLite, DBPath: filepath.Join(t.TempDir(), "sub", "estofamais.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	_ = s.Close()

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: BackendMySQL, MySQLDSN: "::not a dsn::"})
	assert.Error(t, err)
}
