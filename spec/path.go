package spec

import "github.com/paddle-build/paddle-plugin-go/spec/specpath"

// PathOf returns the canonical key of n relative to its root.
//
// Examples:
//   - root → ""
//   - property b of property a → "a.b"
//   - element shape of array a → "a[*]"
//
// Nodes held in a Composite's valid specs describe the same location as
// their owner and so share its key.
func PathOf(n Node) string {
	return pathOf(n).String()
}

func pathOf(n Node) *specpath.Path {
	var segs []*specpath.Path
	for x := n; x != nil; x = x.hdr().parent {
		h := x.hdr()
		switch {
		case h.parent == nil, h.alt:
		case h.parent.Kind() == ArrayKind:
			segs = append(segs, specpath.Elem())
		default:
			segs = append(segs, specpath.Field(h.parentField))
		}
	}
	var res *specpath.Path
	for i := len(segs) - 1; i >= 0; i-- {
		res = res.Append(segs[i])
	}
	return res
}
