// Package server contains the REST server that exposes the merge, interpolation, query, and regular
// expression helpers.
package server

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo"
	"github.com/modil-io/devutils/api"
	"github.com/modil-io/devutils/lang"
	"github.com/modil-io/devutils/merge"
	"github.com/modil-io/devutils/regexputil"
	"github.com/modil-io/devutils/stringutil"
	"github.com/modil-io/devutils/tool"
	"github.com/modil-io/devutils/value"
	"github.com/pkg/errors"
)

type (
	mergeRequest struct {
		Target   *value.Map     `json:"target"`
		Source   *value.Map     `json:"source"`
		Sources  []*value.Map   `json:"sources"`
		Options  *merge.Options `json:"options"`
		Strategy string         `json:"strategy"`
	}

	interpolateRequest struct {
		Template json.RawMessage `json:"template"`
		Params   *value.Map      `json:"params"`
	}

	queryRequest struct {
		Document *value.Map `json:"document"`
		Path     string     `json:"path"`
	}

	regexpTestRequest struct {
		Name    string          `json:"name"`
		Pattern string          `json:"pattern"`
		Text    json.RawMessage `json:"text"`
	}
)

// New creates the echo server and registers its routes
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.POST(`/merge`, doMerge)
	e.POST(`/interpolate`, doInterpolate)
	e.POST(`/query`, doQuery)
	e.GET(`/regexp`, listRegexps)
	e.GET(`/regexp/:name`, getRegexp)
	e.POST(`/regexp/test`, testRegexp)
	return e
}

// Options controls where the server listens and how it sets up TLS
type Options struct {
	Addr             string
	Port             int
	SSLKey           string
	SSLCert          string
	ClientCA         string
	ClientCertVerify bool
}

// Start creates the echo server and starts it using the given options. The server uses TLS when
// both SSLKey and SSLCert are set.
func Start(opts *Options) error {
	tlsConfig, err := makeTLSConfig(opts)
	if err != nil {
		return err
	}
	e := New()
	e.HidePort = true
	address := opts.Addr + `:` + strconv.Itoa(opts.Port)
	hclog.Default().Info(`starting REST server`, `address`, address, `tls`, tlsConfig != nil)
	if tlsConfig == nil {
		return e.Start(address)
	}
	e.TLSServer.Addr = address
	e.TLSServer.TLSConfig = tlsConfig
	return e.StartServer(e.TLSServer)
}

func loadCertPool(pemFile string) (*x509.CertPool, error) {
	data, err := os.ReadFile(pemFile)
	if err != nil {
		return nil, errors.Wrapf(err, `unable to read %q`, pemFile)
	}

	certPool := x509.NewCertPool()
	if !certPool.AppendCertsFromPEM(data) {
		return nil, errors.Errorf(`failed to load certificate %q`, pemFile)
	}
	return certPool, nil
}

func makeTLSConfig(opts *Options) (*tls.Config, error) {
	if opts.SSLCert == `` || opts.SSLKey == `` {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(opts.SSLCert, opts.SSLKey)
	if err != nil {
		return nil, errors.Wrap(err, `unable to load key pair`)
	}
	tlsConfig := &tls.Config{Certificates: []tls.Certificate{cert}}

	if opts.ClientCertVerify {
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}

	if opts.ClientCA != `` {
		certPool, err := loadCertPool(opts.ClientCA)
		if err != nil {
			return nil, err
		}
		tlsConfig.ClientCAs = certPool
	}
	return tlsConfig, nil
}

func badRequest(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		if m, ok := he.Message.(string); ok {
			err = errors.New(m)
		}
	}
	hclog.Default().Debug(`bad request`, `path`, c.Path(), `error`, err.Error())
	return c.JSON(http.StatusBadRequest, map[string]string{`message`: err.Error()})
}

func respond(c echo.Context, code int, v value.Value) error {
	bs, err := value.ToJSON(v)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSONBlob(code, bs)
}

func doMerge(c echo.Context) error {
	rq := &mergeRequest{}
	if err := c.Bind(rq); err != nil {
		return badRequest(c, err)
	}

	opts := merge.Options{}
	switch {
	case rq.Options != nil:
		opts = *rq.Options
	case rq.Strategy != ``:
		var err error
		if opts, err = merge.GetStrategy(rq.Strategy); err != nil {
			return badRequest(c, err)
		}
	}

	if rq.Target == nil {
		return respond(c, http.StatusOK, value.Null)
	}
	sources := make([]value.Value, 0, len(rq.Sources)+1)
	if rq.Source != nil {
		sources = append(sources, rq.Source)
	}
	for _, s := range rq.Sources {
		if s != nil {
			sources = append(sources, s)
		}
	}
	merge.All(rq.Target, opts, sources...)
	return respond(c, http.StatusOK, rq.Target)
}

func doInterpolate(c echo.Context) error {
	rq := &interpolateRequest{}
	if err := c.Bind(rq); err != nil {
		return badRequest(c, err)
	}
	var template value.Value
	if len(rq.Template) > 0 {
		var err error
		if template, err = value.FromJSON(rq.Template); err != nil {
			return badRequest(c, err)
		}
	}
	var params value.Value
	if rq.Params != nil {
		params = rq.Params
	}
	s, err := stringutil.Interpolate(template, params)
	if err != nil {
		return badRequest(c, err)
	}
	return respond(c, http.StatusOK, value.NewMap(`result`, s))
}

func doQuery(c echo.Context) error {
	rq := &queryRequest{}
	if err := c.Bind(rq); err != nil {
		return badRequest(c, err)
	}
	if _, err := lang.ParsePath(rq.Path); err != nil {
		return badRequest(c, err)
	}
	var doc value.Value = value.Null
	if rq.Document != nil {
		doc = rq.Document
	}
	found := lang.Query(doc, value.String(rq.Path))
	if found == nil {
		return c.NoContent(http.StatusNotFound)
	}
	return respond(c, http.StatusOK, value.NewMap(`result`, found))
}

func listRegexps(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{`names`: regexputil.Names()})
}

func getRegexp(c echo.Context) error {
	name := c.Param(`name`)
	p, ok := regexputil.GetRegexp(name)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{`message`: api.UnknownRegexp(name).Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{`name`: name, `pattern`: p})
}

func testRegexp(c echo.Context) error {
	rq := &regexpTestRequest{}
	if err := c.Bind(rq); err != nil {
		return badRequest(c, err)
	}
	pattern := rq.Pattern
	if rq.Name != `` {
		p, ok := regexputil.GetRegexp(rq.Name)
		if !ok {
			return badRequest(c, api.UnknownRegexp(rq.Name))
		}
		pattern = p
	} else {
		pattern = tool.ResolvePattern(pattern)
	}

	var text value.Value
	if len(rq.Text) > 0 {
		var err error
		if text, err = value.FromJSON(rq.Text); err != nil {
			return badRequest(c, err)
		}
	}
	return c.JSON(http.StatusOK, map[string]bool{`result`: regexputil.Test(pattern, text)})
}
