package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// CompositeSpecNode is the wire form of an object shaped spec node.
type CompositeSpecNode struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Required    []string             `json:"required"`
	Properties  Properties           `json:"properties"`
	Valid       []*CompositeSpecNode `json:"valid"`
}

// ArraySpecNode is the wire form of an array spec node. A nil Items means
// the element shape is unconstrained.
type ArraySpecNode struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Items       *SpecNode `json:"items,omitempty"`
}

type StringSpecNode struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Valid       []string `json:"valid"`
}

type BooleanSpecNode struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Valid       []bool `json:"valid"`
}

type IntegerSpecNode struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Valid       []int64 `json:"valid"`
}

// Wire kind names.
const (
	KindComposite = "composite"
	KindArray     = "array"
	KindString    = "string"
	KindBoolean   = "boolean"
	KindInteger   = "integer"
)

var ErrEmptySpecNode = errors.New("spec node holds no kind")

// SpecNode holds exactly one spec node of any kind. Its JSON form is a
// single-field object keyed by the kind name, e.g. {"string": {...}}.
//
// A node of a kind this package does not know keeps its kind name in
// Unknown and its body in Raw, so that it can be reported or passed on.
type SpecNode struct {
	Composite *CompositeSpecNode
	Array     *ArraySpecNode
	String    *StringSpecNode
	Boolean   *BooleanSpecNode
	Integer   *IntegerSpecNode

	Unknown string
	Raw     json.RawMessage
}

// Kind returns the kind name of the held node, or "" if none is held.
func (n *SpecNode) Kind() string {
	switch {
	case n == nil:
		return ""
	case n.Composite != nil:
		return KindComposite
	case n.Array != nil:
		return KindArray
	case n.String != nil:
		return KindString
	case n.Boolean != nil:
		return KindBoolean
	case n.Integer != nil:
		return KindInteger
	}
	return n.Unknown
}

func (n *SpecNode) count() int {
	c := 0
	for _, set := range []bool{
		n.Composite != nil,
		n.Array != nil,
		n.String != nil,
		n.Boolean != nil,
		n.Integer != nil,
		n.Unknown != "",
	} {
		if set {
			c++
		}
	}
	return c
}

func (n *SpecNode) MarshalJSON() ([]byte, error) {
	switch n.count() {
	case 0:
		return nil, ErrEmptySpecNode
	case 1:
	default:
		return nil, fmt.Errorf("spec node holds %d kinds", n.count())
	}
	var body any
	switch {
	case n.Composite != nil:
		body = n.Composite
	case n.Array != nil:
		body = n.Array
	case n.String != nil:
		body = n.String
	case n.Boolean != nil:
		body = n.Boolean
	case n.Integer != nil:
		body = n.Integer
	default:
		raw := n.Raw
		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}
		body = raw
	}
	return json.Marshal(map[string]any{n.Kind(): body})
}

func (n *SpecNode) UnmarshalJSON(d []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(d, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("spec node must hold exactly one kind, got %d", len(m))
	}
	*n = SpecNode{}
	for kind, body := range m {
		var err error
		switch kind {
		case KindComposite:
			n.Composite = &CompositeSpecNode{}
			err = json.Unmarshal(body, n.Composite)
		case KindArray:
			n.Array = &ArraySpecNode{}
			err = json.Unmarshal(body, n.Array)
		case KindString:
			n.String = &StringSpecNode{}
			err = json.Unmarshal(body, n.String)
		case KindBoolean:
			n.Boolean = &BooleanSpecNode{}
			err = json.Unmarshal(body, n.Boolean)
		case KindInteger:
			n.Integer = &IntegerSpecNode{}
			err = json.Unmarshal(body, n.Integer)
		default:
			if kind == "" {
				return fmt.Errorf("spec node with empty kind name")
			}
			n.Unknown = kind
			n.Raw = slices.Clone(body)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	return nil
}

// ParseCompositeSpec decodes a JSON CompositeSpecNode document.
func ParseCompositeSpec(d []byte) (*CompositeSpecNode, error) {
	res := &CompositeSpecNode{}
	if err := json.Unmarshal(d, res); err != nil {
		return nil, err
	}
	return res, nil
}

// MarshalIndent encodes c as indented JSON, the canonical form used for
// files and diffs.
func (c *CompositeSpecNode) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
