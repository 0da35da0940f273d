package goscheme

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// Future is a deferred computation producing a Value. Futures are created by
// host primitives and driven by exec-async.
type Future struct {
	name  string
	run   func(ctx context.Context) (Value, error)
	holds []Value
}

// NewFuture returns a future that computes its value with run.
func NewFuture(name string, run func(ctx context.Context) (Value, error)) *Future {
	return &Future{name: name, run: run}
}

func (f *Future) Clone() CustomType {
	return &Future{name: f.name, run: f.run, holds: f.holds}
}

func (f *Future) TraceValues(visit func(Value)) {
	for _, v := range f.holds {
		visit(v)
	}
}

func (f *Future) TypeName() string {
	return "future<" + f.name + ">"
}

// Await runs every future concurrently and returns the results in order.
// The first failure cancels the others. Each future runs on its own
// goroutine and must not touch an Env or Arena; the caller blocks until all
// of them are done, so evaluation itself stays on one goroutine.
func Await(ctx context.Context, futures ...*Future) ([]Value, error) {
	results := make([]Value, len(futures))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range futures {
		i, f := i, f
		g.Go(func() error {
			v, err := f.run(ctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func doFutureReady(args []Value) (Value, error) {
	if err := checkArity("future-ready", args, 1); err != nil {
		return Void, err
	}
	v := args[0]
	f := NewFuture("ready", func(context.Context) (Value, error) {
		return v, nil
	})
	f.holds = []Value{v}
	return Wrap(f), nil
}

func doFutureSleep(args []Value) (Value, error) {
	if err := checkArity("future-sleep", args, 2); err != nil {
		return Void, err
	}
	ms, err := numberArg("future-sleep", args[0])
	if err != nil {
		return Void, err
	}
	v := args[1]
	d := time.Duration(ms * float64(time.Millisecond))
	f := NewFuture("sleep", func(ctx context.Context) (Value, error) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return v, nil
		case <-ctx.Done():
			return Void, ctx.Err()
		}
	})
	f.holds = []Value{v}
	return Wrap(f), nil
}

func doFutureReadFile(args []Value) (Value, error) {
	if err := checkArity("future-read-file", args, 1); err != nil {
		return Void, err
	}
	name, err := stringArg("future-read-file", args[0])
	if err != nil {
		return Void, err
	}
	return Wrap(NewFuture("read-file", func(context.Context) (Value, error) {
		b, err := os.ReadFile(name)
		if err != nil {
			return Void, err
		}
		return NewString(string(b)), nil
	})), nil
}

func doExecAsync(args []Value) (Value, error) {
	futures := make([]*Future, 0, len(args))
	for _, arg := range args {
		f, err := Unwrap[*Future](arg)
		if err != nil {
			return Void, err
		}
		futures = append(futures, f)
	}
	results, err := Await(context.Background(), futures...)
	if err != nil {
		return Void, wrapError("exec-async", err)
	}
	return NewList(results...), nil
}
