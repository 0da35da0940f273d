package goscheme

import (
	"fmt"
	"reflect"
)

// FrameRef addresses a frame inside an Arena. A reference to a reclaimed
// frame is detected through the generation and reported as an error.
type FrameRef struct {
	index int
	gen   uint32
}

var noFrame = FrameRef{index: -1}

func (r FrameRef) String() string {
	return fmt.Sprintf("frame#%d.%d", r.index, r.gen)
}

type frame struct {
	vars   map[string]Value
	parent FrameRef
	gen    uint32
	used   bool
	mark   bool
}

const defaultCollectThreshold = 1024

// DefaultMaxDepth bounds the nesting of non-tail evaluations.
const DefaultMaxDepth = 100000

// Arena owns every frame of one global environment. Closures address frames
// by FrameRef; reachability from the root frame, the pinned handles and the
// value being returned decides what survives a collection.
//
// Collection only happens when the outermost evaluation returns, so a frame
// can never be reclaimed while a call that uses it is still running.
type Arena struct {
	frames    []frame
	free      []int
	root      FrameRef
	live      int
	depth     int
	calls     int
	maxDepth  int
	threshold int
	minimum   int

	handles map[*Handle]struct{}
}

func newArena() *Arena {
	a := &Arena{
		maxDepth:  DefaultMaxDepth,
		threshold: defaultCollectThreshold,
		minimum:   defaultCollectThreshold,
		handles:   make(map[*Handle]struct{}),
	}
	a.root = a.alloc(noFrame, nil)
	return a
}

// SetCollectThreshold sets the live frame count above which a collection
// runs at the end of the next outermost evaluation. n <= 0 disables
// automatic collection.
func (a *Arena) SetCollectThreshold(n int) {
	a.threshold = n
	a.minimum = n
}

// SetMaxDepth sets how deeply non-tail evaluations may nest before the
// evaluation fails.
func (a *Arena) SetMaxDepth(n int) {
	a.maxDepth = n
}

// Len returns the number of live frames.
func (a *Arena) Len() int {
	return a.live
}

func (a *Arena) alloc(parent FrameRef, vars map[string]Value) FrameRef {
	if vars == nil {
		vars = make(map[string]Value)
	}
	a.live++
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		f := &a.frames[i]
		f.vars = vars
		f.parent = parent
		f.used = true
		return FrameRef{index: i, gen: f.gen}
	}
	a.frames = append(a.frames, frame{vars: vars, parent: parent, used: true})
	return FrameRef{index: len(a.frames) - 1}
}

func (a *Arena) frame(ref FrameRef) (*frame, error) {
	if ref.index < 0 || ref.index >= len(a.frames) {
		return nil, Errorf(EvalError, "invalid %v", ref)
	}
	f := &a.frames[ref.index]
	if !f.used || f.gen != ref.gen {
		return nil, Errorf(EvalError, "stale %v", ref)
	}
	return f, nil
}

func (a *Arena) enter() {
	a.depth++
}

func (a *Arena) leave(env FrameRef, result Value) {
	a.depth--
	if a.depth == 0 && a.threshold > 0 && a.live > a.threshold {
		a.collect([]FrameRef{env}, []Value{result})
		if t := 2 * a.live; t > a.minimum {
			a.threshold = t
		} else {
			a.threshold = a.minimum
		}
	}
}

// Collect reclaims every frame not reachable from the root frame, the live
// handles or roots, and returns how many were reclaimed. It must not be
// called while an evaluation is in progress.
func (a *Arena) Collect(roots ...Value) int {
	if a.depth > 0 {
		return 0
	}
	return a.collect(nil, roots)
}

func (a *Arena) collect(frames []FrameRef, roots []Value) int {
	var (
		stack  []FrameRef
		values []Value
		lists  = make(map[listKey]bool)
		traced = make(map[interface{}]bool)
	)
	markFrame := func(ref FrameRef) {
		if ref.index < 0 || ref.index >= len(a.frames) {
			return
		}
		f := &a.frames[ref.index]
		if f.used && f.gen == ref.gen && !f.mark {
			f.mark = true
			stack = append(stack, ref)
		}
	}
	pushValue := func(v Value) {
		values = append(values, v)
	}
	markValues := func() {
		for len(values) > 0 {
			v := values[len(values)-1]
			values = values[:len(values)-1]
			switch v.Type() {
			case ValueClosure:
				c, _ := v.Closure()
				markFrame(c.env)
			case ValueList:
				l, _ := v.List()
				if len(l) == 0 {
					continue
				}
				k := listKey{&l[0], len(l)}
				if lists[k] {
					continue
				}
				lists[k] = true
				values = append(values, l...)
			case ValueCustom:
				c, _ := v.Custom()
				t, ok := c.(Tracer)
				if !ok {
					continue
				}
				if k, ok := identity(c); ok {
					if traced[k] {
						continue
					}
					traced[k] = true
				}
				t.TraceValues(pushValue)
			}
		}
	}

	markFrame(a.root)
	for h := range a.handles {
		if h.hasFrame {
			markFrame(h.frame)
		}
		pushValue(h.value)
	}
	for _, ref := range frames {
		markFrame(ref)
	}
	values = append(values, roots...)
	markValues()
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f := &a.frames[ref.index]
		markFrame(f.parent)
		for _, v := range f.vars {
			pushValue(v)
		}
		markValues()
	}

	n := 0
	for i := range a.frames {
		f := &a.frames[i]
		if !f.used {
			continue
		}
		if f.mark {
			f.mark = false
			continue
		}
		f.vars = nil
		f.parent = noFrame
		f.used = false
		f.gen++
		a.free = append(a.free, i)
		a.live--
		n++
	}
	return n
}

// listKey identifies a list by its backing array, so shared sublists are
// marked once.
type listKey struct {
	first *Value
	n     int
}

type ptrKey struct {
	t reflect.Type
	p uintptr
}

// identity returns a map key standing for the payload c: the pointer for
// pointer payloads, the value itself for other comparable payloads.
func identity(c CustomType) (interface{}, bool) {
	rv := reflect.ValueOf(c)
	if rv.Kind() == reflect.Ptr {
		return ptrKey{rv.Type(), rv.Pointer()}, true
	}
	if rv.Comparable() {
		return c, true
	}
	return nil, false
}

// Handle is a counted reference that keeps a value, or a frame, alive across
// collections. The pin is dropped when the count reaches zero.
type Handle struct {
	arena    *Arena
	refs     int
	value    Value
	frame    FrameRef
	hasFrame bool
}

// Retain pins v and everything it reaches.
func (a *Arena) Retain(v Value) *Handle {
	h := &Handle{arena: a, refs: 1, value: v}
	a.handles[h] = struct{}{}
	return h
}

func (a *Arena) retainFrame(ref FrameRef) *Handle {
	h := &Handle{arena: a, refs: 1, frame: ref, hasFrame: true}
	a.handles[h] = struct{}{}
	return h
}

func (h *Handle) Value() Value {
	return h.value
}

// Clone adds a reference to h and returns it.
func (h *Handle) Clone() *Handle {
	if h.refs > 0 {
		h.refs++
	}
	return h
}

// Release drops one reference. Once the last one is gone the next
// collection may reclaim what h kept alive.
func (h *Handle) Release() {
	if h.refs == 0 {
		return
	}
	h.refs--
	if h.refs == 0 {
		delete(h.arena.handles, h)
		h.value = Void
	}
}

// Refs returns the number of outstanding references.
func (h *Handle) Refs() int {
	return h.refs
}
