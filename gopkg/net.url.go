package gopkg

import (
	"net/url"
	"reflect"
)

func init() {
	Packages["net/url"] = map[string]reflect.Value{
		"PathEscape":    reflect.ValueOf(url.PathEscape),
		"PathUnescape":  reflect.ValueOf(url.PathUnescape),
		"QueryEscape":   reflect.ValueOf(url.QueryEscape),
		"QueryUnescape": reflect.ValueOf(url.QueryUnescape),
		"Parse":         reflect.ValueOf(url.Parse),
	}
}
