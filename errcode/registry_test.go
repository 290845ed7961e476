package errcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Register(t *testing.T) {
	r := &Registry{codes: make(map[int]string)}

	err := New(71, 1, "config", "error.config.invalid", "invalid config")
	r.Register(err)

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, "config:error.config.invalid", r.GetAll()[710001])
}

func TestRegistry_RegisterIdempotent(t *testing.T) {
	r := &Registry{codes: make(map[int]string)}
	err := New(71, 2, "config", "error.config.missing", "missing")

	r.Register(err)
	assert.NotPanics(t, func() { r.Register(err) })
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_RegisterConflict(t *testing.T) {
	r := &Registry{codes: make(map[int]string)}
	r.Register(New(71, 3, "config", "error.config.a", "a"))

	assert.Panics(t, func() {
		r.Register(New(71, 3, "config", "error.config.b", "b"))
	})
}

func TestRegistry_Lock(t *testing.T) {
	r := &Registry{codes: make(map[int]string)}
	r.Lock()

	assert.True(t, r.IsLocked())
	assert.Panics(t, func() {
		r.Register(New(71, 4, "config", "error.config.c", "c"))
	})

	r.Unlock()
	assert.NotPanics(t, func() {
		r.Register(New(71, 4, "config", "error.config.c", "c"))
	})
}

func TestRegistry_Clear(t *testing.T) {
	r := &Registry{codes: make(map[int]string)}
	r.Register(New(71, 5, "config", "error.config.d", "d"))
	r.Lock()

	r.Clear()

	assert.Equal(t, 0, r.Count())
	assert.False(t, r.IsLocked())
}
