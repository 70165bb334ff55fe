package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryService(t *testing.T) {
	t.Run("load_empty", func(t *testing.T) {
		service := NewMemoryService()
		store := service.NewStore("test")

		j := 0
		err := store.Load(&j)
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrPersistenceNotExists)
	})

	t.Run("save_and_load", func(t *testing.T) {
		service := NewMemoryService()
		store := service.NewStore("test")

		i := 3
		err := store.Save(i)

		assert.NoError(t, err)

		var j = 0
		err = store.Load(&j)
		assert.NoError(t, err)
		assert.Equal(t, i, j)
	})

	t.Run("reset", func(t *testing.T) {
		service := NewMemoryService()
		store := service.NewStore("test")

		assert.NoError(t, store.Save(42))
		assert.NoError(t, store.Reset())

		var j = 0
		err := store.Load(&j)
		assert.ErrorIs(t, err, ErrPersistenceNotExists)
	})
}
