package regexputil_test

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/modil-io/devutils/regexputil"
	"github.com/modil-io/devutils/value"
	"github.com/stretchr/testify/require"
)

func ExampleTest() {
	phone, _ := regexputil.GetRegexp(`phone`)
	fmt.Println(regexputil.Test(phone, value.String(`111-111-1111`)))
	fmt.Println(regexputil.Test(phone, value.String(`111-1111-111`)))
	// Output:
	// true
	// false
}

func TestGetRegexp(t *testing.T) {
	p, ok := regexputil.GetRegexp(`zip4`)
	require.True(t, ok)
	require.Equal(t, `^\d{4}$`, p)

	p, ok = regexputil.GetRegexp(`time`)
	require.True(t, ok)
	require.Equal(t, `^(1[0-2]|0[1-9]):[0-5][0-9]s(AM|am|PM|pm)$`, p)

	_, ok = regexputil.GetRegexp(`ssn`)
	require.False(t, ok)
}

func TestNames(t *testing.T) {
	require.Equal(t,
		[]string{`date`, `email`, `extension`, `percentage`, `phone`, `time`, `zip4`, `zip5`},
		regexputil.Names())
}

func TestAllPatternsCompile(t *testing.T) {
	for _, n := range regexputil.Names() {
		p, _ := regexputil.GetRegexp(n)
		_, err := regexp.Compile(p)
		require.NoError(t, err, n)
	}
}

func requireMatch(t *testing.T, name string, expected bool, text string) {
	t.Helper()
	p, ok := regexputil.GetRegexp(name)
	require.True(t, ok)
	require.Equal(t, expected, regexputil.Test(p, value.String(text)), `%s: %q`, name, text)
}

func TestTest_registry(t *testing.T) {
	requireMatch(t, `zip4`, true, `1234`)
	requireMatch(t, `zip4`, false, `12345`)
	requireMatch(t, `zip5`, true, `12345`)
	requireMatch(t, `extension`, true, `54321`)
	requireMatch(t, `phone`, true, `111-111-1111`)
	requireMatch(t, `date`, true, `12/31/1999`)
	requireMatch(t, `date`, true, `01-02-2003`)
	requireMatch(t, `date`, false, `13/01/2003`)
	requireMatch(t, `time`, true, `10:30sAM`)
	requireMatch(t, `time`, false, `10:30 AM`)
	requireMatch(t, `email`, true, `john.doe@example.com`)
	requireMatch(t, `email`, false, `john.doe.example.com`)
	requireMatch(t, `percentage`, true, `0`)
	requireMatch(t, `percentage`, true, `99`)
	requireMatch(t, `percentage`, true, `100`)
	requireMatch(t, `percentage`, false, `101`)
	requireMatch(t, `percentage`, false, `05`)
}

func TestTest_coercion(t *testing.T) {
	zip4, _ := regexputil.GetRegexp(`zip4`)
	require.False(t, regexputil.Test(zip4, nil))
	require.False(t, regexputil.Test(zip4, value.Null))
	require.True(t, regexputil.Test(zip4, value.Number(1234)))

	require.True(t, regexputil.Test(``, nil))
	require.True(t, regexputil.Test(``, value.String(`a`)))
	require.True(t, regexputil.Test(``, value.Bool(false)))
	require.False(t, regexputil.Test(``, value.Null))
	require.True(t, regexputil.Test(`^undefined$`, nil))
}

func TestTest_invalidPattern(t *testing.T) {
	out := bytes.Buffer{}
	old := hclog.Default()
	hclog.SetDefault(hclog.New(&hclog.LoggerOptions{Output: &out, Level: hclog.Error}))
	defer hclog.SetDefault(old)

	require.False(t, regexputil.Test(`(a`, value.String(`a`)))
	require.False(t, regexputil.Test(`(?<=a)b`, value.String(`ab`)))
	require.Contains(t, out.String(), `[ERROR] invalid regular expression: pattern=(a`)
}
