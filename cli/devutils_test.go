package cli_test

import (
	"testing"

	"github.com/modil-io/devutils/cli"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	result, err := cli.ExecuteCommand()
	require.NoError(t, err)
	require.Contains(t, string(result), `Available Commands:`)
	require.Contains(t, string(result), `interpolate`)
}

func TestVersion(t *testing.T) {
	result, err := cli.ExecuteCommand(`--version`)
	require.NoError(t, err)
	require.Equal(t, "devutils version dirty\n", string(result))
}

func TestMerge_shallow(t *testing.T) {
	result, err := cli.ExecuteCommand(`merge`, `testdata/base.yaml`, `testdata/override.json`)
	require.NoError(t, err)
	require.Equal(t, "a: \"1\"\nb:\n    d: 2\nc:\n    - 1\n    - 2\n", string(result))
}

func TestMerge_deep(t *testing.T) {
	result, err := cli.ExecuteCommand(`merge`, `--strategy`, `deep`, `--render-as`, `json`, `testdata/base.yaml`, `testdata/override.json`)
	require.NoError(t, err)
	require.Equal(t, `{"a":"1","b":{"c":"1","d":2},"c":[1,2]}`+"\n", string(result))
}

func TestMerge_flags(t *testing.T) {
	result, err := cli.ExecuteCommand(`merge`, `--recursive`, `--not-override`, `--render-as`, `json`,
		`testdata/override.json`, `testdata/base.yaml`)
	require.NoError(t, err)
	require.Equal(t, `{"b":{"d":2,"c":"1"},"c":[1,2],"a":"1"}`+"\n", string(result))
}

func TestMerge_config(t *testing.T) {
	result, err := cli.ExecuteCommand(`merge`, `--config`, `testdata/devutils.yaml`, `testdata/base.yaml`, `testdata/override.json`)
	require.NoError(t, err)
	require.Equal(t, `{"a":"1","b":{"c":"1","d":2},"c":[1,2]}`+"\n", string(result))
}

func TestMerge_flagOverridesConfig(t *testing.T) {
	result, err := cli.ExecuteCommand(`merge`, `--config`, `testdata/devutils.yaml`, `--render-as`, `s`, `testdata/base.yaml`)
	require.NoError(t, err)
	require.Equal(t, "[object Object]\n", string(result))
}

func TestMerge_patch(t *testing.T) {
	result, err := cli.ExecuteCommand(`merge`, `--strategy`, `deep`, `--patch`, `testdata/base.yaml`, `testdata/override.json`)
	require.NoError(t, err)
	require.JSONEq(t, `{"b":{"d":2},"c":[1,2]}`, string(result))
}

func TestMerge_unknownStrategy(t *testing.T) {
	_, err := cli.ExecuteCommand(`merge`, `--strategy`, `first`, `testdata/base.yaml`)
	require.EqualError(t, err, `unknown merge strategy 'first'`)
}

func TestMerge_noArgs(t *testing.T) {
	_, err := cli.ExecuteCommand(`merge`)
	require.Error(t, err)
}

func TestInterpolate(t *testing.T) {
	result, err := cli.ExecuteCommand(`interpolate`, `--var`, `greeting=hello`, `--vars`, `testdata/vars.toml`,
		`${greeting} ${who} ${count + 1}`)
	require.NoError(t, err)
	require.Equal(t, "hello world 4\n", string(result))
}

func TestInterpolate_json(t *testing.T) {
	result, err := cli.ExecuteCommand(`interpolate`, `--var`, `who=world`, `--render-as`, `json`, `hello ${who}`)
	require.NoError(t, err)
	require.Equal(t, "\"hello world\"\n", string(result))
}

func TestInterpolate_undefined(t *testing.T) {
	_, err := cli.ExecuteCommand(`interpolate`, `hello ${who}`)
	require.EqualError(t, err, `who is not defined`)
}

func TestQuery(t *testing.T) {
	result, err := cli.ExecuteCommand(`query`, `--render-as`, `s`, `testdata/base.yaml`, `b.c`)
	require.NoError(t, err)
	require.Equal(t, "1\n", string(result))

	result, err = cli.ExecuteCommand(`query`, `--render-as`, `json`, `testdata/override.json`, `c`)
	require.NoError(t, err)
	require.Equal(t, "[1,2]\n", string(result))
}

func TestQuery_notFound(t *testing.T) {
	_, err := cli.ExecuteCommand(`query`, `testdata/base.yaml`, `b.x`)
	require.EqualError(t, err, `no value found at 'b.x' in 'testdata/base.yaml'`)
}

func TestRegexp(t *testing.T) {
	result, err := cli.ExecuteCommand(`regexp`, `list`)
	require.NoError(t, err)
	require.Equal(t, "date\nemail\nextension\npercentage\nphone\ntime\nzip4\nzip5\n", string(result))

	result, err = cli.ExecuteCommand(`regexp`, `get`, `zip5`)
	require.NoError(t, err)
	require.Equal(t, "^\\d{5}$\n", string(result))

	_, err = cli.ExecuteCommand(`regexp`, `get`, `zip9`)
	require.EqualError(t, err, `no regular expression is registered under the name 'zip9'`)
}

func TestRegexp_test(t *testing.T) {
	result, err := cli.ExecuteCommand(`regexp`, `test`, `zip5`, `12345`)
	require.NoError(t, err)
	require.Equal(t, "true\n", string(result))

	result, err = cli.ExecuteCommand(`regexp`, `test`, `^a+b$`, `aac`)
	require.NoError(t, err)
	require.Equal(t, "false\n", string(result))
}
