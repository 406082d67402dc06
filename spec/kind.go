package spec

import "fmt"

// Kind identifies one of the closed set of spec node kinds.
type Kind int

const (
	CompositeKind Kind = iota
	ArrayKind
	StringKind
	BooleanKind
	IntegerKind
)

var kindNames = map[Kind]string{
	CompositeKind: "composite",
	ArrayKind:     "array",
	StringKind:    "string",
	BooleanKind:   "boolean",
	IntegerKind:   "integer",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, name := range kindNames {
		if name == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

// Kinds returns all node kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		CompositeKind,
		ArrayKind,
		StringKind,
		BooleanKind,
		IntegerKind,
	}
}

// IsScalar reports whether nodes of kind k have no children.
func (k Kind) IsScalar() bool {
	switch k {
	case StringKind, BooleanKind, IntegerKind:
		return true
	default:
		return false
	}
}
