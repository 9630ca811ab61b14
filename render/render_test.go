package render_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/modil-io/devutils/render"
	"github.com/modil-io/devutils/value"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, renderAs render.Name, v value.Value) string {
	t.Helper()
	out := bytes.Buffer{}
	require.NoError(t, render.Render(renderAs, v, &out))
	return out.String()
}

func TestRender(t *testing.T) {
	v := value.NewMap(`a`, `x`, `n`, 1, `l`, value.NewArray(true, nil))
	require.Equal(t, "a: x\nn: 1\nl:\n    - true\n    - null\n", renderString(t, render.YAML, v))
	require.Equal(t, "{\"a\":\"x\",\"n\":1,\"l\":[true,null]}\n", renderString(t, render.JSON, v))
	require.Equal(t, "[object Object]\n", renderString(t, render.Text, v))
	require.Equal(t, "1.5\n", renderString(t, render.Text, value.Number(1.5)))
}

func TestRender_undefined(t *testing.T) {
	require.Equal(t, "null\n", renderString(t, render.JSON, nil))
	require.Equal(t, "\n", renderString(t, render.YAML, nil))
	require.Equal(t, "undefined\n", renderString(t, render.Text, nil))
}

func TestRender_unknown(t *testing.T) {
	err := render.Render(`binary`, value.Null, &bytes.Buffer{})
	require.EqualError(t, err, `unknown rendering 'binary'`)

	err = render.Render(`native`, value.Null, &bytes.Buffer{})
	require.EqualError(t, err, `unknown rendering 'native'`)
}

func TestDiff(t *testing.T) {
	out := bytes.Buffer{}
	require.NoError(t, render.Diff(value.NewMap(`a`, 1, `b`, `x`), value.NewMap(`a`, 2, `b`, `x`), &out, false))
	require.Equal(t, "- a: 1\n+ a: 2\n  b: x\n", out.String())
}

func TestDiff_colored(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	out := bytes.Buffer{}
	require.NoError(t, render.Diff(value.NewMap(`a`, 1), value.NewMap(`a`, 2), &out, true))
	require.Contains(t, out.String(), "\x1b[31m- a: 1\x1b[0m\n")
	require.Contains(t, out.String(), "\x1b[32m+ a: 2\x1b[0m\n")
	require.True(t, strings.HasSuffix(out.String(), "\x1b[0m\n"))
}

func TestPatch(t *testing.T) {
	p, err := render.Patch(value.NewMap(`a`, 1, `b`, `x`), value.NewMap(`a`, 2, `c`, value.NewMap(`d`, true)))
	require.NoError(t, err)
	require.JSONEq(t, `{"a":2,"b":null,"c":{"d":true}}`, string(p))
}

func TestUseColor(t *testing.T) {
	require.False(t, render.UseColor(&bytes.Buffer{}))
	f, err := os.CreateTemp(``, `devutils`)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
		_ = os.Remove(f.Name())
	}()
	require.False(t, render.UseColor(f))
}
