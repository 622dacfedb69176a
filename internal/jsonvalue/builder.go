package jsonvalue

// Builder assembles a Node tree through a fluent call sequence:
// StartDict/Key/Value/EndDict and StartArray/Value/EndArray, terminated
// by Build. Calling a method out of sequence is a programmer error in
// the responder, not a reportable runtime condition, so the Builder
// panics with the same messages the original tool used rather than
// returning an error every caller would have to check.
type Builder struct {
	root    Node
	stack   []Node
	hasRoot bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) top() (Node, bool) {
	if len(b.stack) == 0 {
		return Node{}, false
	}
	return b.stack[len(b.stack)-1], true
}

func (b *Builder) push(n Node) {
	b.stack = append(b.stack, n)
}

func (b *Builder) pop() Node {
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return n
}

// Key opens a pending value slot for key inside the dict currently on
// top of the stack.
func (b *Builder) Key(key string) *Builder {
	top, ok := b.top()
	if !ok || !top.IsDict() {
		panic("node stack error")
	}
	b.push(String(key))
	return b
}

// Value attaches a completed value: as the whole tree if the stack is
// empty, as the next array element if the top of the stack is an array,
// or as the value for a pending Key if the top of the stack is a
// dangling key string.
func (b *Builder) Value(v Node) *Builder {
	if b.hasRoot {
		panic("build error")
	}

	top, ok := b.top()
	if !ok {
		b.root = v
		b.hasRoot = true
		return b
	}

	if top.IsArray() {
		arr := b.pop()
		arr.arr = append(arr.arr, v)
		b.push(arr)
		return b
	}

	if top.IsString() {
		key := b.pop()
		dictTop, ok := b.top()
		if !ok || !dictTop.IsDict() {
			panic("not a node value")
		}
		dictTop.dict.Set(key.s, v)
		return b
	}

	panic("not a node value")
}

// StartDict opens a new dict context.
func (b *Builder) StartDict() *Builder {
	b.push(DictNode(NewDict()))
	return b
}

// StartArray opens a new array context.
func (b *Builder) StartArray() *Builder {
	b.push(Array(nil))
	return b
}

// EndDict closes the dict on top of the stack and attaches it as a
// completed value via the same rules as Value.
func (b *Builder) EndDict() *Builder {
	top, ok := b.top()
	if !ok || !top.IsDict() {
		panic("map error")
	}
	return b.Value(b.pop())
}

// EndArray closes the array on top of the stack and attaches it as a
// completed value via the same rules as Value.
func (b *Builder) EndArray() *Builder {
	top, ok := b.top()
	if !ok || !top.IsArray() {
		panic("array error")
	}
	return b.Value(b.pop())
}

// Build returns the finished tree. The stack must be empty and exactly
// one value must have been attached.
func (b *Builder) Build() Node {
	if !b.hasRoot || len(b.stack) != 0 {
		panic("build error")
	}
	return b.root
}
