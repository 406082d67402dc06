package spec

import (
	"github.com/paddle-build/paddle-plugin-go/debug"
	"github.com/paddle-build/paddle-plugin-go/spec/specpath"
)

// Tree resolves path keys against a root Composite.
//
// A Composite consumes a property segment. An Array consumes an element
// segment ("[*]" or "[n]") or, when the next segment names a property,
// passes through to its items without consuming anything. Scalars end the
// walk. Valid specs are alternative shapes and are never traversed.
//
// Lookups that find nothing, or find a node of another kind than asked for,
// return nil without an error. Only malformed keys are errors.
type Tree struct {
	Root *Composite
}

// NewTree returns a tree rooted at root, or at an empty Composite if root
// is nil.
func NewTree(root *Composite) *Tree {
	if root == nil {
		root = NewComposite("", "")
	}
	return &Tree{Root: root}
}

// Contains reports whether key resolves to a node.
func (t *Tree) Contains(key string) (bool, error) {
	n, err := t.Get(key)
	if err != nil {
		return false, err
	}
	return n != nil, nil
}

// Get returns the node at key, or nil if there is none.
func (t *Tree) Get(key string) (Node, error) {
	p, err := specpath.Parse(key)
	if err != nil {
		return nil, err
	}
	n, rest := t.walk(p)
	if debug.Resolve() {
		debug.Logf("get %q: reached %q remainder %q\n", key, PathOf(n), rest.String())
	}
	if rest != nil {
		return nil, nil
	}
	return n, nil
}

// GetNearest returns the deepest node reached along key together with the
// canonical remainder of key starting at the first unresolved segment.
// When key fully resolves the remainder is empty. The root is returned
// when nothing resolves.
func (t *Tree) GetNearest(key string) (Node, string, error) {
	p, err := specpath.Parse(key)
	if err != nil {
		return nil, "", err
	}
	n, rest := t.walk(p)
	if debug.Resolve() {
		debug.Logf("nearest %q: reached %q remainder %q\n", key, PathOf(n), rest.String())
	}
	return n, rest.String(), nil
}

func (t *Tree) GetArray(key string) (*Array, error) {
	return getAs[*Array](t, key)
}

func (t *Tree) GetComposite(key string) (*Composite, error) {
	return getAs[*Composite](t, key)
}

func (t *Tree) GetString(key string) (*String, error) {
	return getAs[*String](t, key)
}

func (t *Tree) GetBoolean(key string) (*Boolean, error) {
	return getAs[*Boolean](t, key)
}

func (t *Tree) GetInteger(key string) (*Integer, error) {
	return getAs[*Integer](t, key)
}

func getAs[T Node](t *Tree, key string) (T, error) {
	var zero T
	n, err := t.Get(key)
	if err != nil || n == nil {
		return zero, err
	}
	res, ok := n.(T)
	if !ok {
		return zero, nil
	}
	return res, nil
}

func (t *Tree) walk(p *specpath.Path) (Node, *specpath.Path) {
	if t.Root == nil {
		return nil, p
	}
	var cur Node = t.Root
	for p != nil {
		next, consumed := step(cur, p)
		if next == nil {
			break
		}
		cur = next
		if consumed {
			p = p.Next
		}
	}
	return cur, p
}

// step moves from n along seg. It returns the node reached, or nil, and
// whether seg was consumed.
func step(n Node, seg *specpath.Path) (Node, bool) {
	switch x := n.(type) {
	case *Composite:
		if seg.Field == nil {
			return nil, false
		}
		child, ok := x.props[*seg.Field]
		if !ok {
			return nil, false
		}
		return child, true
	case *Array:
		if x.items == nil {
			return nil, false
		}
		return x.items, seg.IsElem()
	default:
		return nil, false
	}
}
