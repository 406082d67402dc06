package convert

import (
	"errors"
	"fmt"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/debug"
	"github.com/paddle-build/paddle-plugin-go/spec"
	"github.com/paddle-build/paddle-plugin-go/spec/specpath"
)

var (
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")
	ErrDuplicateProperty   = errors.New("duplicate property")
)

// ToSpec converts a wire composite into a spec tree.
func ToSpec(msg *api.CompositeSpecNode, opts ...Option) (*spec.Composite, error) {
	return newState(opts).toComposite(msg, nil)
}

// ToSpecNode converts a wire node of any kind. It returns nil without error
// when the node is of an unknown kind and SkipUnsupported is in effect.
func ToSpecNode(n *api.SpecNode, opts ...Option) (spec.Node, error) {
	return newState(opts).toNode(n, nil)
}

func (st *state) toComposite(msg *api.CompositeSpecNode, at *specpath.Path) (*spec.Composite, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w at %s", api.ErrEmptySpecNode, location(at))
	}
	res := spec.NewComposite(msg.Title, msg.Description)
	res.AddRequired(msg.Required...)
	for _, p := range msg.Properties {
		if _, dup := res.Property(p.Name); dup {
			return nil, fmt.Errorf("%w %q at %s", ErrDuplicateProperty, p.Name, location(at))
		}
		child, err := st.toNode(p.Node, at.Append(specpath.Field(p.Name)))
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		if err := res.SetProperty(p.Name, child); err != nil {
			return nil, err
		}
	}
	for i, v := range msg.Valid {
		alt, err := st.toComposite(v, at)
		if err != nil {
			return nil, fmt.Errorf("valid spec %d: %w", i, err)
		}
		if err := res.AddValidSpec(alt); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// toNode is the single dispatch site from wire kinds to spec kinds.
func (st *state) toNode(n *api.SpecNode, at *specpath.Path) (spec.Node, error) {
	kind := n.Kind()
	if debug.Convert() {
		debug.Logf("to spec: %s at %q\n", kind, at.String())
	}
	switch kind {
	case api.KindComposite:
		c, err := st.toComposite(n.Composite, at)
		if err != nil {
			return nil, err
		}
		return c, nil
	case api.KindArray:
		a, err := st.toArray(n.Array, at)
		if err != nil {
			return nil, err
		}
		return a, nil
	case api.KindString:
		return spec.NewString(n.String.Title, n.String.Description, n.String.Valid...), nil
	case api.KindBoolean:
		return spec.NewBoolean(n.Boolean.Title, n.Boolean.Description, n.Boolean.Valid...), nil
	case api.KindInteger:
		return spec.NewInteger(n.Integer.Title, n.Integer.Description, n.Integer.Valid...), nil
	case "":
		return nil, fmt.Errorf("%w at %s", api.ErrEmptySpecNode, location(at))
	default:
		if st.skipUnsupported {
			st.log.Warn("dropping spec node of unsupported kind", "kind", kind, "path", location(at))
			return nil, nil
		}
		return nil, fmt.Errorf("%w %q at %s", ErrUnsupportedNodeKind, kind, location(at))
	}
}

func (st *state) toArray(msg *api.ArraySpecNode, at *specpath.Path) (*spec.Array, error) {
	res := spec.NewArray(msg.Title, msg.Description)
	if msg.Items == nil {
		return res, nil
	}
	items, err := st.toNode(msg.Items, at.Append(specpath.Elem()))
	if err != nil {
		return nil, err
	}
	if items == nil {
		return res, nil
	}
	if err := res.SetItems(items); err != nil {
		return nil, err
	}
	return res, nil
}

func location(at *specpath.Path) string {
	if at == nil {
		return "<root>"
	}
	return at.String()
}
