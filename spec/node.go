package spec

import (
	"errors"
	"iter"
	"slices"
)

var (
	ErrNilNode      = errors.New("nil spec node")
	ErrAlreadyOwned = errors.New("spec node already has an owner")
	ErrCycle        = errors.New("spec node would contain itself")
	ErrUnknownKind  = errors.New("unknown spec node kind")
)

// Node is a spec node. The set of implementations is closed: *Composite,
// *Array, *String, *Boolean and *Integer.
type Node interface {
	Kind() Kind
	Title() string
	SetTitle(string)
	Description() string
	SetDescription(string)

	hdr() *header
}

// header holds the attributes shared by every node kind along with the
// node's position under its owner.
type header struct {
	title       string
	description string

	parent      Node
	parentField string
	alt         bool
}

func (h *header) Title() string { return h.title }
func (h *header) SetTitle(v string) { h.title = v }
func (h *header) Description() string { return h.description }
func (h *header) SetDescription(v string) { h.description = v }
func (h *header) hdr() *header { return h }

// Parent returns the node owning this one, or nil for a root.
func (h *header) Parent() Node { return h.parent }

func (h *header) release() {
	h.parent = nil
	h.parentField = ""
	h.alt = false
}

// attach checks that child may be placed under parent.
func attach(parent, child Node) error {
	if err := checkKind(child); err != nil {
		return err
	}
	if child.hdr().parent != nil {
		return ErrAlreadyOwned
	}
	for p := parent; p != nil; p = p.hdr().parent {
		if p == child {
			return ErrCycle
		}
	}
	return nil
}

// checkKind rejects nil nodes and nodes not built by this package.
func checkKind(n Node) error {
	var isNil bool
	switch x := n.(type) {
	case nil:
		return ErrNilNode
	case *Composite:
		isNil = x == nil
	case *Array:
		isNil = x == nil
	case *String:
		isNil = x == nil
	case *Boolean:
		isNil = x == nil
	case *Integer:
		isNil = x == nil
	default:
		return ErrUnknownKind
	}
	if isNil {
		return ErrNilNode
	}
	return nil
}

// Composite is an object shaped schema node.
type Composite struct {
	header
	required []string
	names    []string
	props    map[string]Node
	valid    []*Composite
}

func NewComposite(title, description string) *Composite {
	return &Composite{
		header: header{title: title, description: description},
		props:  map[string]Node{},
	}
}

func (c *Composite) Kind() Kind { return CompositeKind }

// Required returns a copy of the required property names.
func (c *Composite) Required() []string {
	return slices.Clone(c.required)
}

func (c *Composite) AddRequired(names ...string) {
	c.required = append(c.required, names...)
}

func (c *Composite) Property(name string) (Node, bool) {
	n, ok := c.props[name]
	return n, ok
}

// Properties iterates the properties in insertion order.
func (c *Composite) Properties() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, name := range c.names {
			if !yield(name, c.props[name]) {
				return
			}
		}
	}
}

func (c *Composite) PropertyNames() []string {
	return slices.Clone(c.names)
}

func (c *Composite) NumProperties() int {
	return len(c.names)
}

// SetProperty inserts n under name. Replacing an existing property keeps
// its position and releases the old node.
func (c *Composite) SetProperty(name string, n Node) error {
	if old, ok := c.props[name]; ok && old == n {
		return nil
	}
	if err := attach(c, n); err != nil {
		return err
	}
	if c.props == nil {
		c.props = map[string]Node{}
	}
	if old, ok := c.props[name]; ok {
		old.hdr().release()
	} else {
		c.names = append(c.names, name)
	}
	c.props[name] = n
	h := n.hdr()
	h.parent = c
	h.parentField = name
	return nil
}

// RemoveProperty removes and releases the named property.
func (c *Composite) RemoveProperty(name string) bool {
	old, ok := c.props[name]
	if !ok {
		return false
	}
	old.hdr().release()
	delete(c.props, name)
	if i := slices.Index(c.names, name); i >= 0 {
		c.names = slices.Delete(c.names, i, i+1)
	}
	return true
}

// ValidSpecs returns a copy of the alternative whole-shape specs.
func (c *Composite) ValidSpecs() []*Composite {
	return slices.Clone(c.valid)
}

func (c *Composite) AddValidSpec(v *Composite) error {
	if v == nil {
		return ErrNilNode
	}
	if err := attach(c, v); err != nil {
		return err
	}
	v.parent = c
	v.alt = true
	c.valid = append(c.valid, v)
	return nil
}

// Array is a homogeneous sequence schema node.
type Array struct {
	header
	items Node
}

func NewArray(title, description string) *Array {
	return &Array{header: header{title: title, description: description}}
}

func (a *Array) Kind() Kind { return ArrayKind }

// Items returns the element shape, or nil when elements are unconstrained.
func (a *Array) Items() Node { return a.items }

// SetItems replaces the element shape. A nil n clears it.
func (a *Array) SetItems(n Node) error {
	if n != nil && n == a.items {
		return nil
	}
	if n != nil {
		if err := attach(a, n); err != nil {
			return err
		}
	}
	if a.items != nil {
		a.items.hdr().release()
	}
	a.items = n
	if n != nil {
		n.hdr().parent = a
	}
	return nil
}

// String is a string scalar schema node, optionally enumerated.
type String struct {
	header
	valid []string
}

func NewString(title, description string, valid ...string) *String {
	return &String{
		header: header{title: title, description: description},
		valid:  slices.Clone(valid),
	}
}

func (s *String) Kind() Kind { return StringKind }

func (s *String) ValidValues() []string { return slices.Clone(s.valid) }

func (s *String) AddValidValues(vs ...string) {
	s.valid = append(s.valid, vs...)
}

// Allows reports whether v is acceptable. An empty value list accepts anything.
func (s *String) Allows(v string) bool {
	return len(s.valid) == 0 || slices.Contains(s.valid, v)
}

// Boolean is a boolean scalar schema node.
type Boolean struct {
	header
	valid []bool
}

func NewBoolean(title, description string, valid ...bool) *Boolean {
	return &Boolean{
		header: header{title: title, description: description},
		valid:  slices.Clone(valid),
	}
}

func (b *Boolean) Kind() Kind { return BooleanKind }

func (b *Boolean) ValidValues() []bool { return slices.Clone(b.valid) }

func (b *Boolean) AddValidValues(vs ...bool) {
	b.valid = append(b.valid, vs...)
}

func (b *Boolean) Allows(v bool) bool {
	return len(b.valid) == 0 || slices.Contains(b.valid, v)
}

// Integer is an integer scalar schema node.
type Integer struct {
	header
	valid []int64
}

func NewInteger(title, description string, valid ...int64) *Integer {
	return &Integer{
		header: header{title: title, description: description},
		valid:  slices.Clone(valid),
	}
}

func (i *Integer) Kind() Kind { return IntegerKind }

func (i *Integer) ValidValues() []int64 { return slices.Clone(i.valid) }

func (i *Integer) AddValidValues(vs ...int64) {
	i.valid = append(i.valid, vs...)
}

func (i *Integer) Allows(v int64) bool {
	return len(i.valid) == 0 || slices.Contains(i.valid, v)
}
