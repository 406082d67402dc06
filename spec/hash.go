package spec

import (
	"encoding/binary"
	"hash/maphash"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a structural 64-bit hash of n. Structurally equal nodes hash
// equally within one process. It panics if n is nil.
func Hash(n Node) uint64 {
	if n == nil {
		panic("spec: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)

	h.WriteByte(byte(n.Kind()))
	writeString(&h, n.Title())
	writeString(&h, n.Description())

	var b [8]byte
	switch x := n.(type) {
	case *Composite:
		writeUint(&h, uint64(len(x.required)))
		for _, r := range x.required {
			writeString(&h, r)
		}
		writeUint(&h, uint64(len(x.names)))
		for _, name := range x.names {
			writeString(&h, name)
			binary.LittleEndian.PutUint64(b[:], Hash(x.props[name]))
			h.Write(b[:])
		}
		writeUint(&h, uint64(len(x.valid)))
		for _, v := range x.valid {
			binary.LittleEndian.PutUint64(b[:], Hash(v))
			h.Write(b[:])
		}
	case *Array:
		if x.items == nil {
			h.WriteByte(0)
			break
		}
		h.WriteByte(1)
		binary.LittleEndian.PutUint64(b[:], Hash(x.items))
		h.Write(b[:])
	case *String:
		writeUint(&h, uint64(len(x.valid)))
		for _, v := range x.valid {
			writeString(&h, v)
		}
	case *Boolean:
		writeUint(&h, uint64(len(x.valid)))
		for _, v := range x.valid {
			if v {
				h.WriteByte(1)
			} else {
				h.WriteByte(0)
			}
		}
	case *Integer:
		writeUint(&h, uint64(len(x.valid)))
		for _, v := range x.valid {
			writeUint(&h, uint64(v))
		}
	}
	return h.Sum64()
}

// writeString length-prefixes s so adjacent strings cannot run together.
func writeString(h *maphash.Hash, s string) {
	writeUint(h, uint64(len(s)))
	h.WriteString(s)
}

func writeUint(h *maphash.Hash, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}
