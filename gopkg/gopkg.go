// Package gopkg holds the Go functions and constants that Scheme code can
// call. Each entry of Packages maps an import path to its exported members.
package gopkg

import (
	"reflect"
	"sort"
)

var Packages = map[string]map[string]reflect.Value{}

// Names returns the import paths of every registered package, sorted.
func Names() []string {
	names := make([]string, 0, len(Packages))
	for name := range Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
