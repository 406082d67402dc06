package spec

import (
	"errors"
	"fmt"

	"github.com/paddle-build/paddle-plugin-go/spec/specpath"
)

var ErrInconsistent = errors.New("inconsistent spec")

// Check verifies the well-formedness of the tree rooted at root: required
// names refer to existing properties and appear once, and enumerated scalar
// values are distinct. Valid specs are checked as trees of their own. All
// problems found are returned joined.
func Check(root *Composite) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrInconsistent)
	}
	var errs []error
	check(root, nil, &errs)
	return errors.Join(errs...)
}

func check(n Node, at *specpath.Path, errs *[]error) {
	fail := func(format string, args ...any) {
		loc := at.String()
		if loc == "" {
			loc = "<root>"
		}
		*errs = append(*errs, fmt.Errorf("%w at %s: %s", ErrInconsistent, loc, fmt.Sprintf(format, args...)))
	}
	switch x := n.(type) {
	case *Composite:
		seen := map[string]bool{}
		for _, r := range x.required {
			if seen[r] {
				fail("required property %q listed twice", r)
				continue
			}
			seen[r] = true
			if _, ok := x.props[r]; !ok {
				fail("required property %q is not defined", r)
			}
		}
		for _, name := range x.names {
			check(x.props[name], at.Append(specpath.Field(name)), errs)
		}
		for i, v := range x.valid {
			var vErrs []error
			check(v, at, &vErrs)
			for _, err := range vErrs {
				*errs = append(*errs, fmt.Errorf("valid spec %d: %w", i, err))
			}
		}
	case *Array:
		if x.items != nil {
			check(x.items, at.Append(specpath.Elem()), errs)
		}
	case *String:
		if d, ok := firstDup(x.valid); ok {
			fail("duplicate valid value %q", d)
		}
	case *Boolean:
		if d, ok := firstDup(x.valid); ok {
			fail("duplicate valid value %t", d)
		}
	case *Integer:
		if d, ok := firstDup(x.valid); ok {
			fail("duplicate valid value %d", d)
		}
	}
}

func firstDup[T comparable](vs []T) (T, bool) {
	seen := make(map[T]bool, len(vs))
	for _, v := range vs {
		if seen[v] {
			return v, true
		}
		seen[v] = true
	}
	var zero T
	return zero, false
}
