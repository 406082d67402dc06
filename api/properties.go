package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Property is a named child of a CompositeSpecNode.
type Property struct {
	Name string
	Node *SpecNode
}

// Properties is an ordered property map. It encodes as a JSON object and
// keeps the object's key order when decoded.
type Properties []Property

// Get returns the node named name, or nil.
func (ps Properties) Get(name string) *SpecNode {
	i := ps.index(name)
	if i < 0 {
		return nil
	}
	return ps[i].Node
}

// Set replaces the node named name in place, or appends it.
func (ps *Properties) Set(name string, n *SpecNode) {
	if i := ps.index(name); i >= 0 {
		(*ps)[i].Node = n
		return
	}
	*ps = append(*ps, Property{Name: name, Node: n})
}

func (ps Properties) Names() []string {
	res := make([]string, len(ps))
	for i := range ps {
		res[i] = ps[i].Name
	}
	return res
}

func (ps Properties) index(name string) int {
	return slices.IndexFunc(ps, func(p Property) bool { return p.Name == name })
}

func (ps Properties) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i := range ps {
		p := &ps[i]
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.Node)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ps *Properties) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*ps = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}
	res := Properties{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: expected name, got %v", tok)
		}
		if res.index(name) >= 0 {
			return fmt.Errorf("properties: duplicate property %q", name)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("property %q: %w", name, ErrEmptySpecNode)
		}
		n := &SpecNode{}
		if err := json.Unmarshal(raw, n); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		res = append(res, Property{Name: name, Node: n})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ps = res
	return nil
}
