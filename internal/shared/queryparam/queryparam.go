// Package queryparam reads and validates request parameters. Every reader
// returns the value, whether the parameter was present, and an
// errx.ErrReqParamERR when a present value is malformed or a required one is
// missing.
package queryparam

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shamtool/modules/kit/errx"
)

// Source looks a parameter up by name.
type Source interface {
	Lookup(name string) (string, bool)
}

// SourceFunc adapts a lookup function such as (*gin.Context).GetQuery.
type SourceFunc func(name string) (string, bool)

func (f SourceFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// FromGin reads the query string first, then a posted form.
func FromGin(c *gin.Context) Source {
	return SourceFunc(func(name string) (string, bool) {
		if v, ok := c.GetQuery(name); ok {
			return v, true
		}
		return c.GetPostForm(name)
	})
}

// Values is a fixed parameter set, mostly for tests.
type Values map[string]string

func (v Values) Lookup(name string) (string, bool) {
	s, ok := v[name]
	return s, ok
}

func invalid(name, kind, got string) error {
	return errx.ErrReqParamERR.
		WithData("param", name).
		WithCause(fmt.Errorf("expected %s for '%s', got '%s' instead", kind, name, got))
}

func missing(name, kind string) error {
	return errx.ErrReqParamERR.
		WithData("param", name).
		WithCause(fmt.Errorf("expected %s for '%s', got empty instead", kind, name))
}

// Parse reads name through parse. An empty value counts as absent.
func Parse[T any](src Source, name string, required bool, kind string, parse func(string) (T, bool)) (T, bool, error) {
	var zero T
	raw, ok := src.Lookup(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		if required {
			return zero, false, missing(name, kind)
		}
		return zero, false, nil
	}
	v, ok := parse(raw)
	if !ok {
		return zero, false, invalid(name, kind, raw)
	}
	return v, true, nil
}

func String(src Source, name string, required bool) (string, bool, error) {
	return Parse(src, name, required, "String", func(s string) (string, bool) { return s, true })
}

// Bool accepts 1/0, true/false, on/off and yes/no in any case.
func Bool(src Source, name string, required bool) (bool, bool, error) {
	return Parse(src, name, required, "Boolean", parseBool)
}

func Int(src Source, name string, required bool) (int64, bool, error) {
	return Parse(src, name, required, "Integer", func(s string) (int64, bool) {
		v, err := strconv.ParseInt(s, 10, 64)
		return v, err == nil
	})
}

func Float(src Source, name string, required bool) (float64, bool, error) {
	return Parse(src, name, required, "Float", func(s string) (float64, bool) {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	})
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no":
		return false, true
	}
	return false, false
}
