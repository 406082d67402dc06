package spec

import "slices"

// Equal reports whether a and b are structurally equal: same kinds, same
// titles and descriptions, and the same required names, properties, valid
// specs and valid values in the same order. Owners are not compared.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Title() != b.Title() || a.Description() != b.Description() {
		return false
	}
	switch x := a.(type) {
	case *Composite:
		return equalComposite(x, b.(*Composite))
	case *Array:
		return Equal(x.items, b.(*Array).items)
	case *String:
		return slices.Equal(x.valid, b.(*String).valid)
	case *Boolean:
		return slices.Equal(x.valid, b.(*Boolean).valid)
	case *Integer:
		return slices.Equal(x.valid, b.(*Integer).valid)
	}
	return false
}

func equalComposite(a, b *Composite) bool {
	if !slices.Equal(a.required, b.required) {
		return false
	}
	if !slices.Equal(a.names, b.names) {
		return false
	}
	for _, name := range a.names {
		if !Equal(a.props[name], b.props[name]) {
			return false
		}
	}
	return slices.EqualFunc(a.valid, b.valid, func(x, y *Composite) bool {
		return Equal(x, y)
	})
}
