package goscheme

type boxCell struct {
	v Value
}

// Box is a mutable slot. Copies of a Box share the slot, so set-box!
// through one copy is seen through all of them.
type Box struct {
	cell *boxCell
}

func NewBox(v Value) Box {
	return Box{cell: &boxCell{v: v}}
}

func (b Box) Clone() CustomType {
	return Box{cell: b.cell}
}

func (b Box) TypeName() string {
	return "box"
}

func (b Box) Get() Value {
	return b.cell.v
}

func (b Box) Set(v Value) Value {
	old := b.cell.v
	b.cell.v = v
	return old
}

// Equal compares the boxed values. A box is equal to itself and to any
// box sharing its slot, whatever it holds.
func (b Box) Equal(other CustomType) bool {
	return customEquals(b, other, nil)
}

func (b Box) equalWith(other CustomType, eq func(x, y Value) bool) bool {
	o, ok := other.(Box)
	if !ok {
		return false
	}
	if b.cell == o.cell {
		return true
	}
	return eq(b.cell.v, o.cell.v)
}

func (b Box) TraceValues(visit func(Value)) {
	visit(b.cell.v)
}

func doBox(args []Value) (Value, error) {
	if err := checkArity("box", args, 1); err != nil {
		return Void, err
	}
	return Wrap(NewBox(args[0])), nil
}

func doUnbox(args []Value) (Value, error) {
	if err := checkArity("unbox", args, 1); err != nil {
		return Void, err
	}
	b, err := Unwrap[Box](args[0])
	if err != nil {
		return Void, err
	}
	return b.Get(), nil
}

// set-box! returns the previous contents.
func doSetBox(args []Value) (Value, error) {
	if err := checkArity("set-box!", args, 2); err != nil {
		return Void, err
	}
	b, err := Unwrap[Box](args[0])
	if err != nil {
		return Void, err
	}
	return b.Set(args[1]), nil
}
