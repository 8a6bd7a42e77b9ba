// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package crud

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/estofamais/internal/model"
)

type item struct {
	ID   int64
	Name string
}

func (i item) EntityID() int64      { return i.ID }
func (i item) WithID(id int64) item { i.ID = id; return i }

var errEmptyName = errors.New("name required")

func validateItem(i item) (item, error) {
	if i.Name == "" {
		return item{}, errEmptyName
	}
	return i, nil
}

func TestNewCollection_AssignsIDs(t *testing.T) {
	c := NewCollection(item{ID: 5, Name: "a"}, item{Name: "b"}, item{ID: 2, Name: "c"})

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, int64(5), list[0].ID)
	assert.Equal(t, int64(6), list[1].ID)
	assert.Equal(t, int64(2), list[2].ID)

	saved, err := c.Save(item{Name: "d"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.ID)
}

func TestCollection_SaveReplaceAndAppend(t *testing.T) {
	c := NewCollection(item{ID: 1, Name: "sofá"})

	_, err := c.Save(item{ID: 1, Name: "poltrona"})
	require.NoError(t, err)
	got, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "poltrona", got.Name)
	assert.Equal(t, 1, c.Len())

	_, err = c.Save(item{ID: 42, Name: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_ListIsACopy(t *testing.T) {
	c := NewCollection(item{ID: 1, Name: "a"})
	list := c.List()
	list[0].Name = "mutated"

	got, _ := c.Get(1)
	assert.Equal(t, "a", got.Name)
}

func TestCollection_DeleteAndSelect(t *testing.T) {
	c := NewCollection(item{ID: 1, Name: "a"}, item{ID: 2, Name: "b"}, item{ID: 3, Name: "a"})

	require.NoError(t, c.Delete(2))
	assert.ErrorIs(t, c.Delete(2), ErrNotFound)

	as := c.Select(func(i item) bool { return i.Name == "a" })
	assert.Len(t, as, 2)

	n := c.DeleteFunc(func(i item) bool { return i.Name == "a" })
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, c.Len())
}

func TestCollection_Update(t *testing.T) {
	c := NewCollection(item{ID: 1, Name: "a"})

	updated, err := c.Update(1, func(i item) (item, error) {
		i.Name = "b"
		i.ID = 99 // ids cannot change
		return i, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "b", updated.Name)

	_, err = c.Update(1, func(i item) (item, error) { return i, errEmptyName })
	assert.ErrorIs(t, err, errEmptyName)

	_, err = c.Update(9, func(i item) (item, error) { return i, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_ConcurrentSave(t *testing.T) {
	c := NewCollection[item]()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Save(item{Name: "x"})
		}()
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, it := range c.List() {
		assert.False(t, seen[it.ID])
		seen[it.ID] = true
	}
	assert.Len(t, seen, 50)
}

func TestMachine_AddFlow(t *testing.T) {
	c := NewCollection[item]()
	m := NewMachine(c, validateItem)

	assert.Equal(t, Idle, m.State())
	require.NoError(t, m.OpenAdd())
	assert.Equal(t, Editing, m.State())
	assert.True(t, m.IsNew())

	// Failed validation stays in editing
	_, err := m.Save(item{})
	assert.ErrorIs(t, err, errEmptyName)
	assert.Equal(t, Editing, m.State())

	saved, err := m.Save(item{Name: "veludo"})
	require.NoError(t, err)
	assert.Equal(t, Idle, m.State())
	assert.NotZero(t, saved.ID)
	assert.Equal(t, 1, c.Len())
}

func TestMachine_EditFlow(t *testing.T) {
	c := NewCollection(item{ID: 3, Name: "linho"})
	m := NewMachine(c, validateItem)

	require.NoError(t, m.OpenEdit(3))
	assert.Equal(t, "linho", m.Current().Name)
	assert.False(t, m.IsNew())

	// The submitted id is ignored in favour of the target
	saved, err := m.Save(item{ID: 77, Name: "linho premium"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), saved.ID)

	got, _ := c.Get(3)
	assert.Equal(t, "linho premium", got.Name)
	assert.Equal(t, 1, c.Len())
}

func TestMachine_DeleteFlow(t *testing.T) {
	c := NewCollection(item{ID: 1, Name: "a"}, item{ID: 2, Name: "b"})
	m := NewMachine[item](c, nil)

	require.NoError(t, m.OpenDelete(1))
	assert.Equal(t, Confirming, m.State())
	require.NoError(t, m.Cancel())
	assert.Equal(t, 2, c.Len())

	require.NoError(t, m.OpenDelete(1))
	require.NoError(t, m.Confirm())
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, 1, c.Len())
}

func TestMachine_InvalidTransitions(t *testing.T) {
	c := NewCollection(item{ID: 1, Name: "a"})

	tests := []struct {
		name string
		run  func(m *Machine[item]) error
	}{
		{"save from idle", func(m *Machine[item]) error { _, err := m.Save(item{Name: "x"}); return err }},
		{"confirm from idle", func(m *Machine[item]) error { return m.Confirm() }},
		{"cancel from idle", func(m *Machine[item]) error { return m.Cancel() }},
		{"add while editing", func(m *Machine[item]) error { _ = m.OpenAdd(); return m.OpenAdd() }},
		{"delete while editing", func(m *Machine[item]) error { _ = m.OpenEdit(1); return m.OpenDelete(1) }},
		{"confirm while editing", func(m *Machine[item]) error { _ = m.OpenAdd(); return m.Confirm() }},
		{"save while confirming", func(m *Machine[item]) error {
			_ = m.OpenDelete(1)
			_, err := m.Save(item{Name: "x"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(c, validateItem)
			assert.ErrorIs(t, tt.run(m), ErrInvalidTransition)
		})
	}
}

func TestMachine_OpenMissing(t *testing.T) {
	m := NewMachine(NewCollection[item](), validateItem)

	assert.ErrorIs(t, m.OpenEdit(1), ErrNotFound)
	assert.ErrorIs(t, m.OpenDelete(1), ErrNotFound)
	assert.Equal(t, Idle, m.State())
}

func TestMachine_WithModelValidation(t *testing.T) {
	c := NewCollection[model.Material]()
	m := NewMachine(c, model.NewMaterial)

	require.NoError(t, m.OpenAdd())
	_, err := m.Save(model.Material{Title: "Couro"})

	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Field("description"))
	assert.Equal(t, Editing, m.State())

	saved, err := m.Save(model.Material{Title: " Couro ", Description: "Natural", Type: "couro", Price: 250})
	require.NoError(t, err)
	assert.Equal(t, "Couro", saved.Title)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "editing", Editing.String())
	assert.Equal(t, "confirming", Confirming.String())
	assert.Equal(t, "State(9)", State(9).String())
}
