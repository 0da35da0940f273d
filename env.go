package goscheme

// Env is a view of one frame of an Arena. Copies of an Env refer to the same
// frame, so a definition made through one is visible through all of them.
type Env struct {
	arena *Arena
	ref   FrameRef
}

// NewEnv creates a global environment in a fresh arena, seeded with
// bindings.
func NewEnv(bindings map[string]Value) *Env {
	a := newArena()
	vars := a.frames[a.root.index].vars
	for name, v := range bindings {
		vars[name] = v
	}
	return &Env{arena: a, ref: a.root}
}

func (e *Env) Arena() *Arena {
	return e.arena
}

// Global returns the root environment of e's arena.
func (e *Env) Global() *Env {
	return &Env{arena: e.arena, ref: e.arena.root}
}

// Parent returns the enclosing environment, or nil for the global one.
func (e *Env) Parent() *Env {
	f, err := e.arena.frame(e.ref)
	if err != nil || f.parent.index < 0 {
		return nil
	}
	return &Env{arena: e.arena, ref: f.parent}
}

// Define binds name in this frame, replacing any previous binding.
func (e *Env) Define(name string, v Value) error {
	f, err := e.arena.frame(e.ref)
	if err != nil {
		return err
	}
	f.vars[name] = v
	return nil
}

// Lookup returns the nearest binding of name.
func (e *Env) Lookup(name string) (Value, error) {
	ref := e.ref
	for ref.index >= 0 {
		f, err := e.arena.frame(ref)
		if err != nil {
			return Void, err
		}
		if v, ok := f.vars[name]; ok {
			return v, nil
		}
		ref = f.parent
	}
	return Void, Errorf(UnboundIdentifier, "%s", name)
}

// Assign replaces the nearest existing binding of name. It never creates a
// binding.
func (e *Env) Assign(name string, v Value) error {
	ref := e.ref
	for ref.index >= 0 {
		f, err := e.arena.frame(ref)
		if err != nil {
			return err
		}
		if _, ok := f.vars[name]; ok {
			f.vars[name] = v
			return nil
		}
		ref = f.parent
	}
	return Errorf(UnboundIdentifier, "%s", name)
}

// Child creates a frame under e holding bindings. The map is owned by the
// new frame afterwards.
func (e *Env) Child(bindings map[string]Value) *Env {
	return &Env{arena: e.arena, ref: e.arena.alloc(e.ref, bindings)}
}

// Retain pins the frame of e so it survives collections until the handle is
// released.
func (e *Env) Retain() *Handle {
	return e.arena.retainFrame(e.ref)
}

// Names returns the names bound directly in this frame.
func (e *Env) Names() []string {
	f, err := e.arena.frame(e.ref)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(f.vars))
	for name := range f.vars {
		names = append(names, name)
	}
	return names
}
