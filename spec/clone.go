package spec

import "slices"

// Clone returns a deep copy of n with no owner. It returns nil for nil.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	switch x := n.(type) {
	case *Composite:
		return CloneComposite(x)
	case *Array:
		res := NewArray(x.title, x.description)
		if x.items != nil {
			res.items = Clone(x.items)
			res.items.hdr().parent = res
		}
		return res
	case *String:
		return NewString(x.title, x.description, x.valid...)
	case *Boolean:
		return NewBoolean(x.title, x.description, x.valid...)
	case *Integer:
		return NewInteger(x.title, x.description, x.valid...)
	}
	return nil
}

// CloneComposite is Clone for a Composite.
func CloneComposite(c *Composite) *Composite {
	if c == nil {
		return nil
	}
	res := NewComposite(c.title, c.description)
	res.required = slices.Clone(c.required)
	res.names = slices.Clone(c.names)
	for _, name := range c.names {
		child := Clone(c.props[name])
		h := child.hdr()
		h.parent = res
		h.parentField = name
		res.props[name] = child
	}
	for _, v := range c.valid {
		dst := CloneComposite(v)
		dst.parent = res
		dst.alt = true
		res.valid = append(res.valid, dst)
	}
	return res
}
