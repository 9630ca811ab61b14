package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modil-io/devutils/server"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rq *http.Request
	if body == `` {
		rq = httptest.NewRequest(method, path, nil)
	} else {
		rq = httptest.NewRequest(method, path, strings.NewReader(body))
		rq.Header.Set(`Content-Type`, `application/json`)
	}
	rec := httptest.NewRecorder()
	server.New().ServeHTTP(rec, rq)
	return rec
}

func TestMerge(t *testing.T) {
	rec := call(t, http.MethodPost, `/merge`, `{
		"target": {"a": "1", "b": {"c": "1"}},
		"source": {"b": {"c": "2", "d": "2"}},
		"options": {"recursive": true}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"a":"1","b":{"c":"2","d":"2"}}`, rec.Body.String())
}

func TestMerge_strategy(t *testing.T) {
	rec := call(t, http.MethodPost, `/merge`, `{
		"target": {"a": "1", "b": {"c": "1"}},
		"sources": [{"b": {"c": "2", "d": "2"}}, {"a": null, "e": "3"}],
		"strategy": "defaults"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"a":"1","b":{"c":"1","d":"2"},"e":"3"}`, rec.Body.String())
}

func TestMerge_nullTarget(t *testing.T) {
	rec := call(t, http.MethodPost, `/merge`, `{"target": null, "source": {"a": 1}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `null`, rec.Body.String())
}

func TestMerge_badRequest(t *testing.T) {
	rec := call(t, http.MethodPost, `/merge`, `{"target": {}, "strategy": "first"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"unknown merge strategy 'first'"}`, rec.Body.String())

	rec = call(t, http.MethodPost, `/merge`, `{"target": [1, 2]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `expected a JSON object`)

	rec = call(t, http.MethodPost, `/merge`, ``)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Request body can't be empty"}`, rec.Body.String())
}

func TestInterpolate(t *testing.T) {
	rec := call(t, http.MethodPost, `/interpolate`, `{"template": "${a} + ${b} = ${a + b}", "params": {"a": 2, "b": 3}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"result":"2 + 3 = 5"}`, rec.Body.String())
}

func TestInterpolate_templateNotAString(t *testing.T) {
	rec := call(t, http.MethodPost, `/interpolate`, `{"template": 42, "params": {"a": 2}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"result":null}`, rec.Body.String())

	rec = call(t, http.MethodPost, `/interpolate`, `{"params": {"a": 2}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"result":null}`, rec.Body.String())
}

func TestInterpolate_paramNamedLikeBuiltin(t *testing.T) {
	rec := call(t, http.MethodPost, `/interpolate`, `{"template": "${count + 1} ${nil}", "params": {"count": 2, "nil": 7}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"result":"3 7"}`, rec.Body.String())
}

func TestInterpolate_undefined(t *testing.T) {
	rec := call(t, http.MethodPost, `/interpolate`, `{"template": "${a}", "params": {"b": 3}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"a is not defined"}`, rec.Body.String())
}

func TestQuery(t *testing.T) {
	rec := call(t, http.MethodPost, `/query`, `{"document": {"a": [{"b": "x"}]}, "path": "a[0].b"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"result":"x"}`, rec.Body.String())

	rec = call(t, http.MethodPost, `/query`, `{"document": {"a": [{"b": "x"}]}, "path": "a[1].b"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, http.MethodPost, `/query`, `{"document": {}, "path": "a[1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegexp(t *testing.T) {
	rec := call(t, http.MethodGet, `/regexp`, ``)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"names":["date","email","extension","percentage","phone","time","zip4","zip5"]}`, rec.Body.String())

	rec = call(t, http.MethodGet, `/regexp/zip5`, ``)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"name":"zip5","pattern":"^\\d{5}$"}`, rec.Body.String())

	rec = call(t, http.MethodGet, `/regexp/zip9`, ``)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"no regular expression is registered under the name 'zip9'"}`, rec.Body.String())
}

func TestRegexp_test(t *testing.T) {
	rec := call(t, http.MethodPost, `/regexp/test`, `{"name": "zip5", "text": "12345"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":true}`, rec.Body.String())

	rec = call(t, http.MethodPost, `/regexp/test`, `{"pattern": "zip4", "text": 1234}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":true}`, rec.Body.String())

	rec = call(t, http.MethodPost, `/regexp/test`, `{"pattern": "^a+$", "text": null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":false}`, rec.Body.String())

	rec = call(t, http.MethodPost, `/regexp/test`, `{"name": "zip9", "text": "1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStart_badTLS(t *testing.T) {
	err := server.Start(&server.Options{Port: 0, SSLCert: `testdata/missing.crt`, SSLKey: `testdata/missing.key`})
	require.Error(t, err)
}
