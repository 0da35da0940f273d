package gopkg

import (
	"reflect"
	"regexp"
)

func init() {
	Packages["regexp"] = map[string]reflect.Value{
		"MatchString": reflect.ValueOf(regexp.MatchString),
		"QuoteMeta":   reflect.ValueOf(regexp.QuoteMeta),
		"Compile":     reflect.ValueOf(regexp.Compile),
		"MustCompile": reflect.ValueOf(regexp.MustCompile),
	}
}
