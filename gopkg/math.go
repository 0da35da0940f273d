package gopkg

import (
	"math"
	"reflect"
)

func init() {
	Packages["math"] = map[string]reflect.Value{
		"Abs":   reflect.ValueOf(math.Abs),
		"Ceil":  reflect.ValueOf(math.Ceil),
		"Floor": reflect.ValueOf(math.Floor),
		"Inf":   reflect.ValueOf(math.Inf),
		"IsNaN": reflect.ValueOf(math.IsNaN),
		"Max":   reflect.ValueOf(math.Max),
		"Min":   reflect.ValueOf(math.Min),
		"Mod":   reflect.ValueOf(math.Mod),
		"NaN":   reflect.ValueOf(math.NaN),
		"Pow":   reflect.ValueOf(math.Pow),
		"Round": reflect.ValueOf(math.Round),
		"Sqrt":  reflect.ValueOf(math.Sqrt),
		"Trunc": reflect.ValueOf(math.Trunc),
		"Pi":    reflect.ValueOf(math.Pi),
		"E":     reflect.ValueOf(math.E),
	}
}
