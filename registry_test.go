package formation_test

import (
	"strings"
	"testing"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Create(t *testing.T) {
	reg := newRegistry("Static", "Mirror5")

	_, err := reg.Create("unregistered")
	assert.ErrorIs(t, err, domain.ErrUnknownType)

	f, err := reg.Create("Mirror5")
	require.NoError(t, err)
	assert.Equal(t, "Mirror5", f.MethodName())
	assert.Equal(t, []string{"Mirror5", "Static"}, reg.Names())
}

func TestRegistry_Register(t *testing.T) {
	reg := newRegistry("Static")

	assert.ErrorIs(t, reg.Register("Static", linear("Static")), domain.ErrTypeExists)
	assert.Error(t, reg.Register("", linear("")))
	assert.Error(t, reg.Register("Other", nil))
	assert.Error(t, reg.Register("Other", linear("Static")), "name must match the model's method name")
	assert.Error(t, reg.Register("Nil", func() ports.Model { return nil }))
	assert.Panics(t, func() { reg.MustRegister("Static", linear("Static")) })
}

func TestRegistry_DecodeDispatchesOnHeader(t *testing.T) {
	reg := newRegistry("Static", "Mirror5")
	src := mustCreate(reg, "Mirror5")
	require.NoError(t, src.CreateDefaultData())
	doc, err := src.Encode()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(doc), "Mirror5 1\n"))

	f, err := reg.Decode(strings.NewReader("# saved formation\n" + string(doc)))
	require.NoError(t, err)
	assert.Equal(t, "Mirror5", f.MethodName())
	assert.Equal(t, src.Roles(), f.Roles())
}

func TestRegistry_DecodeFailures(t *testing.T) {
	reg := newRegistry("Static")

	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"empty", "", domain.ErrFormat},
		{"comments only", "# nothing\n\n", domain.ErrFormat},
		{"bad header", "Static\n", domain.ErrFormat},
		{"future version", "Static 7\n", domain.ErrFormat},
		{"unknown method", "Mirror5 1\n", domain.ErrUnknownType},
		{"truncated body", "Static 1\nBegin Roles\n", domain.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := reg.Decode(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, f)
		})
	}
}

func TestNew_RequiresConstructor(t *testing.T) {
	_, err := formation.New(nil)
	assert.Error(t, err)

	_, err = formation.New(func() ports.Model { return nil })
	assert.Error(t, err)
}
