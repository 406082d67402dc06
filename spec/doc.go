// Package spec provides the configuration specification tree exchanged
// between a paddle host and its plugins.
//
// # Overview
//
// A configuration specification describes the shape of a project's
// configuration: which properties exist, what they contain, and which values
// they may take. It is a tree of nodes drawn from a closed set of kinds:
//
//   - Composite: an object with named properties, a list of required
//     property names, and alternative whole-shape specs (valid specs)
//   - Array: a homogeneous sequence whose element shape is Items, or
//     unconstrained when Items is nil
//   - String, Boolean, Integer: scalars with an optional list of valid values
//
// Every node has a title and a description.
//
// # Creating Nodes
//
//	root := spec.NewComposite("project", "")
//	root.AddRequired("name")
//	root.SetProperty("name", spec.NewString("Name", "project name"))
//	root.SetProperty("retries", spec.NewInteger("Retries", "", 1, 2, 3))
//
// # Ownership
//
// A node is owned by at most one parent, through a property, an array's
// items, or a valid spec. Attaching a node that already has an owner fails
// with ErrAlreadyOwned. Removing or replacing a child releases it. Use Clone
// to copy a subtree under another owner.
//
// The collections of a node are only changed through its methods; accessors
// such as Required and ValidValues return copies.
//
// # Valid Values
//
// An empty list of valid values means the scalar is unconstrained, not that
// no value is allowed. See String.Allows.
//
// # Lookup
//
// Tree resolves path keys (see package specpath) against a root:
//
//	t := spec.NewTree(root)
//	n, err := t.Get("servers[*].port")
//	near, rest, err := t.GetNearest("servers.port.max")
//
// # Concurrency
//
// Nodes and trees are not safe for concurrent mutation. A tree may be read
// from several goroutines once mutation has stopped.
//
// # Related Packages
//
//   - github.com/paddle-build/paddle-plugin-go/spec/specpath - path keys
//   - github.com/paddle-build/paddle-plugin-go/convert - wire conversion
package spec
