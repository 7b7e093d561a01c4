package registry_test

import (
	"testing"

	"github.com/nfrund/gallery/internal/config"
	"github.com/nfrund/gallery/internal/registry"
	"github.com/stretchr/testify/assert"
)

type greeter interface{ Greet() string }

type english struct{}

func (english) Greet() string { return "hello" }

func TestRegistry(t *testing.T) {
	cfg := &config.Config{Language: "en"}
	reg := registry.New(cfg)
	assert.Equal(t, "en", reg.Config().GetLanguage())

	key := registry.Key[greeter]("test.greeter")
	_, ok := registry.Get(reg, key)
	assert.False(t, ok)

	registry.Set[greeter](reg, key, english{})
	got, ok := registry.Get(reg, key)
	assert.True(t, ok)
	assert.Equal(t, "hello", got.Greet())
	assert.Equal(t, "hello", registry.MustGet(reg, key).Greet())

	assert.Panics(t, func() { registry.MustGet(reg, registry.Key[int]("missing")) })
}

func TestRegistry_TypeMismatch(t *testing.T) {
	reg := registry.New(&config.Config{})
	registry.Set(reg, registry.Key[string]("shared"), "text")

	_, ok := registry.Get(reg, registry.Key[int]("shared"))
	assert.False(t, ok, "a key with the same name but another type must not match")
}
