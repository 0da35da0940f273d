package goscheme

import (
	"embed"
	"fmt"
	"io"
	iofs "io/fs"
	"net/http"
	"path"
	"sort"

	"github.com/rakyll/statik/fs"
)

//go:embed lib/*.scm
var libFiles embed.FS

// LoadLib evaluates the bundled Scheme prelude in env.
func LoadLib(env *Env) error {
	sub, err := iofs.Sub(libFiles, "lib")
	if err != nil {
		return err
	}
	return LoadFS(env, http.FS(sub))
}

// LoadFS evaluates every .scm file at the root of hfs in env, in name order.
func LoadFS(env *Env, hfs http.FileSystem) error {
	dir, err := hfs.Open("/")
	if err != nil {
		return err
	}
	defer dir.Close()

	fis, err := dir.Readdir(-1)
	if err != nil {
		return err
	}
	sort.Slice(fis, func(i, j int) bool {
		return fis[i].Name() < fis[j].Name()
	})
	for _, fi := range fis {
		if fi.IsDir() || path.Ext(fi.Name()) != ".scm" {
			continue
		}
		b, err := fs.ReadFile(hfs, path.Join("/", fi.Name()))
		if err != nil {
			return err
		}
		_, err = env.EvalString(string(b))
		if err != nil {
			return fmt.Errorf("%s: %w", fi.Name(), err)
		}
	}

	return nil
}

// NewDefaultEnv returns a global environment holding the builtins, the Go
// package bridge and frame-count. It does not load the prelude.
func NewDefaultEnv(out io.Writer) (*Env, error) {
	env := NewEnv(Builtins(out))
	arena := env.Arena()
	err := env.Define("frame-count", NewPrimitive("frame-count", func(args []Value) (Value, error) {
		if err := checkArity("frame-count", args, 0); err != nil {
			return Void, err
		}
		return NewNumber(float64(arena.Len())), nil
	}))
	if err != nil {
		return nil, err
	}
	if err := ImportPackages(env); err != nil {
		return nil, err
	}
	return env, nil
}
