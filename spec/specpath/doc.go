// Package specpath parses and formats path keys into a configuration
// specification tree.
//
// A path key names properties joined by '.', with optional element steps
// into an array's element shape:
//   - "a.b"          property b of property a
//   - "servers[*]"   the element shape of array servers
//   - "servers[0]"   same as above; indices carry no schema meaning
//   - "\"a.b\".c"    quoted property names may contain separators
//   - ""             the root
//
// # Usage
//
//	p, err := specpath.Parse("servers[*].port")
//	first, rest := p, p.Next
//	fmt.Println(p.String()) // servers[*].port
//
// Malformed keys (empty segments, unterminated quotes, bad brackets) fail
// with an error wrapping ErrMalformedPath.
package specpath
