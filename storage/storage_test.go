package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		into  func() interface{}
	}{
		{"float", 2.5, func() interface{} { return new(float64) }},
		{"int", 42, func() interface{} { return new(int) }},
		{"bool", true, func() interface{} { return new(bool) }},
		{"string", "hello world", func() interface{} { return new(string) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Encode(tt.value)
			require.NoError(t, err)
			assert.NotContains(t, payload, "\n\n")

			out := tt.into()
			require.NoError(t, Decode(payload, out))
			assert.Equal(t, tt.value, derefAny(out))
		})
	}
}

func derefAny(v interface{}) interface{} {
	switch p := v.(type) {
	case *float64:
		return *p
	case *int:
		return *p
	case *bool:
		return *p
	case *string:
		return *p
	}
	return nil
}

func TestCodec_StructDeref(t *testing.T) {
	type point struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}
	payload, err := Encode(point{X: 3, Y: -1.5})
	require.NoError(t, err)

	var out point
	require.NoError(t, Decode(payload, &out))
	assert.Equal(t, point{X: 3, Y: -1.5}, out)
}

func TestDecode_Invalid(t *testing.T) {
	var f float64
	assert.Error(t, Decode("not a number", &f))

	var s struct {
		X int `yaml:"x"`
	}
	assert.Error(t, Decode("x: 1\nunknown: 2", &s), "unknown fields are rejected")
}

func TestLayerEntity_GetOrCreateProperty(t *testing.T) {
	layer := &LayerEntity{Name: "background"}

	e, created := layer.GetOrCreateProperty("color")
	assert.True(t, created)
	assert.Equal(t, "color", e.Path)

	again, created := layer.GetOrCreateProperty("color")
	assert.False(t, created)
	assert.Same(t, e, again)
	assert.Len(t, layer.Properties, 1)
	assert.Nil(t, layer.Property("missing"))
}

func TestPropertyEntity_DataBinding(t *testing.T) {
	e := &PropertyEntity{
		DataBindingEntities: []DataBindingEntity{{Identifier: "X", Expression: "cpu"}},
	}
	require.NotNil(t, e.DataBinding("X"))
	assert.Equal(t, "cpu", e.DataBinding("X").Expression)
	assert.Nil(t, e.DataBinding("Y"))
}

func TestRepository_RoundTrip(t *testing.T) {
	repo := NewRepository(t.TempDir())
	value := "0.5"

	profile := &ProfileEntity{
		Name: "xmas",
		Layers: []*LayerEntity{{
			Name:           "glow",
			Brush:          "solid",
			TimelineLength: 10 * time.Second,
			Properties: []*PropertyEntity{{
				Path:             "brightness",
				Value:            &value,
				KeyframesEnabled: true,
				KeyframeEntities: []KeyframeEntity{
					{Value: "0", Position: 0, EasingFunction: 0},
					{Value: "1", Position: 5 * time.Second, EasingFunction: 6},
				},
				DataBindingEntities: []DataBindingEntity{{Identifier: "", Expression: "level / 100"}},
			}},
		}},
	}

	require.NoError(t, repo.Save("profiles/xmas.yaml", profile))

	loaded, err := repo.Load("profiles/xmas.yaml")
	require.NoError(t, err)
	assert.Equal(t, profile, loaded)
	require.NotNil(t, loaded.Layer("glow"))
	assert.Nil(t, loaded.Layer("missing"))
}

func TestRepository_Load_NotFound(t *testing.T) {
	repo := NewRepository(t.TempDir())

	_, err := repo.Load("missing.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProfileNotFound))
}

func TestRepository_Load_Malformed(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository("")
	path := filepath.Join(dir, "bad.yaml")

	require.NoError(t, os.WriteFile(path, []byte("layers: [unclosed"), 0o600))
	_, err := repo.Load(path)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrProfileNotFound))
}
