// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package crud provides the in-memory collections behind every catalog and
// the per-request state machine admin views drive them with.
package crud

import (
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Entity is a record with an integer id.
type Entity[T any] interface {
	EntityID() int64
	WithID(id int64) T
}

// Collection is a mutex-guarded, insertion-ordered list of records.
type Collection[T Entity[T]] struct {
	mu     sync.RWMutex
	items  []T
	nextID int64
}

// NewCollection creates a collection seeded with items. Records with a zero
// id are assigned one.
func NewCollection[T Entity[T]](items ...T) *Collection[T] {
	c := &Collection[T]{nextID: 1}
	for _, it := range items {
		c.nextID = max(c.nextID, it.EntityID()+1)
	}
	for _, it := range items {
		if it.EntityID() == 0 {
			it = it.WithID(c.nextID)
			c.nextID++
		}
		c.items = append(c.items, it)
	}
	return c
}

// List returns a copy of all records in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the record with id.
func (c *Collection[T]) Get(id int64) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.index(id); i >= 0 {
		return c.items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Save replaces the record with the same id, or appends it with a fresh id
// when its id is zero. Saving a non-zero id that does not exist fails.
func (c *Collection[T]) Save(item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.EntityID() == 0 {
		item = item.WithID(c.nextID)
		c.nextID++
		c.items = append(c.items, item)
		return item, nil
	}

	i := c.index(item.EntityID())
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	c.items[i] = item
	return item, nil
}

// Update applies fn to the record with id under the write lock.
func (c *Collection[T]) Update(id int64, fn func(T) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	updated, err := fn(c.items[i])
	if err != nil {
		return zero, err
	}
	c.items[i] = updated.WithID(id)
	return c.items[i], nil
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

// DeleteFunc removes every record for which fn returns true and reports
// how many were removed.
func (c *Collection[T]) DeleteFunc(fn func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, fn)
	return before - len(c.items)
}

// Select returns the records for which fn returns true.
func (c *Collection[T]) Select(fn func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for _, it := range c.items {
		if fn(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Collection[T]) index(id int64) int {
	return slices.IndexFunc(c.items, func(it T) bool { return it.EntityID() == id })
}
