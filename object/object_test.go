package object_test

import (
	"testing"

	"github.com/modil-io/devutils/object"
	"github.com/modil-io/devutils/value"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	require.Equal(t, []string{`h`}, object.Keys(value.NewMap(`h`, `test`)))
	require.Equal(t, []string{}, object.Keys(value.NewMap()))
	require.Equal(t, []string{}, object.Keys(value.NewArray(`a`, `b`)))
	require.Equal(t, []string{}, object.Keys(value.Null))
}

func TestValues(t *testing.T) {
	require.Equal(t, []value.Value{value.String(`x`), value.Number(1)}, object.Values(value.NewMap(`h`, `x`, `a`, 1)))
	require.Empty(t, object.Values(nil))
}

func TestContainsKey(t *testing.T) {
	require.True(t, object.ContainsKey(value.NewMap(`h`, `test`), `h`))
	require.False(t, object.ContainsKey(value.NewMap(), `l`))
	require.False(t, object.ContainsKey(nil, `l`))
}

func TestGetValue(t *testing.T) {
	require.Equal(t, value.String(`test`), object.GetValue(value.NewMap(`h`, `test`), `h`, nil))
	require.Equal(t, value.Null, object.GetValue(value.NewMap(), `l`, nil))
	require.Equal(t, value.Null, object.GetValue(nil, `l`, nil))
	require.Equal(t, value.String(`q`), object.GetValue(nil, `l`, value.String(`q`)))
}

func TestIsPlainObjectArray(t *testing.T) {
	require.True(t, object.IsPlainObjectArray(value.NewArray(value.NewMap(`h`, `test`)), false))
	nested := value.NewArray(value.NewMap(`h`, `test`), value.NewArray(value.NewMap(`k`, `test`)))
	require.True(t, object.IsPlainObjectArray(nested, true))
	require.False(t, object.IsPlainObjectArray(nested, false))
	require.False(t, object.IsPlainObjectArray(value.NewMap(`h`, `test`), false))
	require.True(t, object.IsPlainObjectArray(value.NewArray(), false))
	require.False(t, object.IsPlainObjectArray(value.NewArray(`a`), false))
	require.False(t, object.IsPlainObjectArray(value.NewArray(value.NewMap(), nil), false))
}
