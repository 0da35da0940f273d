package gopkg

import (
	"reflect"
	"runtime"
)

func init() {
	Packages["runtime"] = map[string]reflect.Value{
		"GOARCH":       reflect.ValueOf(runtime.GOARCH),
		"GOOS":         reflect.ValueOf(runtime.GOOS),
		"NumCPU":       reflect.ValueOf(runtime.NumCPU),
		"NumGoroutine": reflect.ValueOf(runtime.NumGoroutine),
		"Version":      reflect.ValueOf(runtime.Version),
	}
}
