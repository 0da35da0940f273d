package gopkg

import (
	"os"
	"reflect"
)

func init() {
	Packages["os"] = map[string]reflect.Value{
		"Getenv":    reflect.ValueOf(os.Getenv),
		"Getpid":    reflect.ValueOf(os.Getpid),
		"Getwd":     reflect.ValueOf(os.Getwd),
		"Hostname":  reflect.ValueOf(os.Hostname),
		"LookupEnv": reflect.ValueOf(os.LookupEnv),
		"ReadFile":  reflect.ValueOf(os.ReadFile),
	}
}
