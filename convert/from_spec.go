package convert

import (
	"fmt"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/debug"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

// FromSpec converts a spec tree into its wire form. Lists in the result are
// never nil.
func FromSpec(c *spec.Composite) (*api.CompositeSpecNode, error) {
	if c == nil {
		return nil, fmt.Errorf("%w at <root>", spec.ErrNilNode)
	}
	return fromComposite(c)
}

// FromSpecNode converts a spec node of any kind into a wire holder.
func FromSpecNode(n spec.Node) (*api.SpecNode, error) {
	if n == nil {
		return nil, spec.ErrNilNode
	}
	return fromNode(n)
}

// fromNode is the single dispatch site from spec kinds to wire kinds.
func fromNode(n spec.Node) (*api.SpecNode, error) {
	if debug.Convert() {
		debug.Logf("from spec: %s at %q\n", n.Kind(), spec.PathOf(n))
	}
	switch x := n.(type) {
	case *spec.Composite:
		c, err := fromComposite(x)
		if err != nil {
			return nil, err
		}
		return &api.SpecNode{Composite: c}, nil
	case *spec.Array:
		a := &api.ArraySpecNode{Title: x.Title(), Description: x.Description()}
		if items := x.Items(); items != nil {
			w, err := fromNode(items)
			if err != nil {
				return nil, err
			}
			a.Items = w
		}
		return &api.SpecNode{Array: a}, nil
	case *spec.String:
		return &api.SpecNode{String: &api.StringSpecNode{
			Title:       x.Title(),
			Description: x.Description(),
			Valid:       nonNil(x.ValidValues()),
		}}, nil
	case *spec.Boolean:
		return &api.SpecNode{Boolean: &api.BooleanSpecNode{
			Title:       x.Title(),
			Description: x.Description(),
			Valid:       nonNil(x.ValidValues()),
		}}, nil
	case *spec.Integer:
		return &api.SpecNode{Integer: &api.IntegerSpecNode{
			Title:       x.Title(),
			Description: x.Description(),
			Valid:       nonNil(x.ValidValues()),
		}}, nil
	default:
		return nil, fmt.Errorf("%w %s at %s", ErrUnsupportedNodeKind, n.Kind(), spec.PathOf(n))
	}
}

func fromComposite(c *spec.Composite) (*api.CompositeSpecNode, error) {
	res := &api.CompositeSpecNode{
		Title:       c.Title(),
		Description: c.Description(),
		Required:    nonNil(c.Required()),
		Properties:  make(api.Properties, 0, c.NumProperties()),
		Valid:       []*api.CompositeSpecNode{},
	}
	for name, child := range c.Properties() {
		w, err := fromNode(child)
		if err != nil {
			return nil, err
		}
		res.Properties = append(res.Properties, api.Property{Name: name, Node: w})
	}
	for _, v := range c.ValidSpecs() {
		w, err := fromComposite(v)
		if err != nil {
			return nil, err
		}
		res.Valid = append(res.Valid, w)
	}
	return res, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
