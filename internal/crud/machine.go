// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package crud

import (
	"errors"
	"fmt"
)

// State of an admin view.
type State int

const (
	// Idle shows the list.
	Idle State = iota
	// Editing shows the add or edit form.
	Editing
	// Confirming shows the delete confirmation.
	Confirming
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Confirming:
		return "confirming"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInvalidTransition is returned when an action is not allowed in the
// current state.
var ErrInvalidTransition = errors.New("invalid transition")

// Validator normalizes a record and returns a *model.ValidationError when
// the form is incomplete.
type Validator[T any] func(T) (T, error)

// Machine drives one admin view over a collection:
//
//	idle -> editing     OpenAdd, OpenEdit
//	idle -> confirming  OpenDelete
//	editing -> idle     Save, Cancel
//	confirming -> idle  Confirm, Cancel
//
// A failed Save leaves the machine in editing.
type Machine[T Entity[T]] struct {
	coll     *Collection[T]
	validate Validator[T]

	state   State
	target  int64
	current T
}

// NewMachine creates an idle machine. validate may be nil.
func NewMachine[T Entity[T]](coll *Collection[T], validate Validator[T]) *Machine[T] {
	return &Machine[T]{coll: coll, validate: validate}
}

// State returns the current state.
func (m *Machine[T]) State() State { return m.state }

// Target returns the id being edited or deleted; zero while adding.
func (m *Machine[T]) Target() int64 { return m.target }

// Current returns the record loaded by OpenEdit or OpenDelete.
func (m *Machine[T]) Current() T { return m.current }

// IsNew reports whether the form is adding a record.
func (m *Machine[T]) IsNew() bool { return m.state == Editing && m.target == 0 }

func (m *Machine[T]) require(s State, action string) error {
	if m.state != s {
		return fmt.Errorf("%s from %s: %w", action, m.state, ErrInvalidTransition)
	}
	return nil
}

// OpenAdd opens a blank form.
func (m *Machine[T]) OpenAdd() error {
	if err := m.require(Idle, "open add"); err != nil {
		return err
	}
	var zero T
	m.current = zero
	m.target = 0
	m.state = Editing
	return nil
}

// OpenEdit opens the form pre-filled with record id.
func (m *Machine[T]) OpenEdit(id int64) error {
	if err := m.require(Idle, "open edit"); err != nil {
		return err
	}
	item, err := m.coll.Get(id)
	if err != nil {
		return err
	}
	m.current = item
	m.target = id
	m.state = Editing
	return nil
}

// OpenDelete asks for confirmation before deleting record id.
func (m *Machine[T]) OpenDelete(id int64) error {
	if err := m.require(Idle, "open delete"); err != nil {
		return err
	}
	item, err := m.coll.Get(id)
	if err != nil {
		return err
	}
	m.current = item
	m.target = id
	m.state = Confirming
	return nil
}

// Save validates item and appends it (add) or replaces the target (edit).
func (m *Machine[T]) Save(item T) (T, error) {
	var zero T
	if err := m.require(Editing, "save"); err != nil {
		return zero, err
	}

	item = item.WithID(m.target)
	if m.validate != nil {
		validated, err := m.validate(item)
		if err != nil {
			return zero, err
		}
		item = validated.WithID(m.target)
	}

	saved, err := m.coll.Save(item)
	if err != nil {
		return zero, err
	}
	m.reset()
	return saved, nil
}

// Confirm deletes the target record.
func (m *Machine[T]) Confirm() error {
	if err := m.require(Confirming, "confirm"); err != nil {
		return err
	}
	if err := m.coll.Delete(m.target); err != nil {
		return err
	}
	m.reset()
	return nil
}

// Cancel returns to idle without changes.
func (m *Machine[T]) Cancel() error {
	if m.state == Idle {
		return fmt.Errorf("cancel from idle: %w", ErrInvalidTransition)
	}
	m.reset()
	return nil
}

func (m *Machine[T]) reset() {
	var zero T
	m.current = zero
	m.target = 0
	m.state = Idle
}
