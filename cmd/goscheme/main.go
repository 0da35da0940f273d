package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/mattn/goscheme"
	"github.com/peterh/liner"
)

const version = "0.1.0"

const usage = `goscheme

Usage:
  goscheme [-n] [FILE]
  goscheme -h
  goscheme --version

Arguments:
  FILE  Script to evaluate. Reads stdin when omitted.

Options:
  -n, --no-prelude  Do not load the bundled prelude.
  -h, --help        Display this help.
  --version         Print goscheme version.

If stdin is a TTY and no FILE is given, an interactive session is started.
`

func newEnv(prelude bool) *goscheme.Env {
	env, err := goscheme.NewDefaultEnv(os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if prelude {
		if err := goscheme.LoadLib(env); err != nil {
			log.Fatal(err)
		}
	}
	return env
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".goscheme_history")
}

func completer(env *goscheme.Env) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		head, tail := line[:pos], line[pos:]
		i := strings.LastIndexAny(head, " ()'") + 1
		prefix := head[i:]
		if prefix == "" {
			return head, nil, tail
		}
		var cs []string
		for _, name := range env.Names() {
			if strings.HasPrefix(name, prefix) {
				cs = append(cs, name)
			}
		}
		sort.Strings(cs)
		return head[:i], cs, tail
	}
}

// readExpr prompts until the accumulated input parses completely.
func readExpr(ln *liner.State) (string, error) {
	var b strings.Builder
	prompt := "> "
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if _, err := goscheme.ParseString(b.String()); !errors.Is(err, goscheme.EOF) {
			return b.String(), nil
		}
		prompt = ". "
	}
}

func repl(env *goscheme.Env) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(completer(env))

	hpath := historyPath()
	if hpath != "" {
		if f, err := os.Open(hpath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	for {
		src, err := readExpr(ln)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			log.Print(err)
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(src)

		ret, err := env.EvalString(src)
		if err != nil {
			log.Print(err)
			continue
		}
		if !ret.IsVoid() {
			fmt.Println(ret)
		}
	}

	if hpath != "" {
		if f, err := os.Create(hpath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("goscheme: ")

	opts, err := docopt.ParseArgs(usage, nil, version)
	if err != nil {
		log.Fatal(err)
	}
	noPrelude, _ := opts.Bool("--no-prelude")
	file, _ := opts.String("FILE")

	env := newEnv(!noPrelude)

	var f *os.File
	if file == "" {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			repl(env)
			return
		}
		f = os.Stdin
	} else {
		f, err = os.Open(file)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	if _, err := env.EvalReader(f); err != nil {
		log.Fatal(err)
	}
}
