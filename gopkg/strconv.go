package gopkg

import (
	"reflect"
	"strconv"
)

func init() {
	Packages["strconv"] = map[string]reflect.Value{
		"FormatBool":  reflect.ValueOf(strconv.FormatBool),
		"FormatFloat": reflect.ValueOf(strconv.FormatFloat),
		"FormatInt":   reflect.ValueOf(strconv.FormatInt),
		"Itoa":        reflect.ValueOf(strconv.Itoa),
		"Atoi":        reflect.ValueOf(strconv.Atoi),
		"ParseBool":   reflect.ValueOf(strconv.ParseBool),
		"ParseFloat":  reflect.ValueOf(strconv.ParseFloat),
		"ParseInt":    reflect.ValueOf(strconv.ParseInt),
		"Quote":       reflect.ValueOf(strconv.Quote),
	}
}
