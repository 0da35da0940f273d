package gopkg

import (
	"reflect"
	"strings"
)

func init() {
	Packages["strings"] = map[string]reflect.Value{
		"Contains":   reflect.ValueOf(strings.Contains),
		"Count":      reflect.ValueOf(strings.Count),
		"Fields":     reflect.ValueOf(strings.Fields),
		"HasPrefix":  reflect.ValueOf(strings.HasPrefix),
		"HasSuffix":  reflect.ValueOf(strings.HasSuffix),
		"Index":      reflect.ValueOf(strings.Index),
		"Join":       reflect.ValueOf(strings.Join),
		"Repeat":     reflect.ValueOf(strings.Repeat),
		"Replace":    reflect.ValueOf(strings.Replace),
		"ReplaceAll": reflect.ValueOf(strings.ReplaceAll),
		"Split":      reflect.ValueOf(strings.Split),
		"Title":      reflect.ValueOf(strings.Title),
		"ToLower":    reflect.ValueOf(strings.ToLower),
		"ToUpper":    reflect.ValueOf(strings.ToUpper),
		"TrimSpace":  reflect.ValueOf(strings.TrimSpace),
	}
}
