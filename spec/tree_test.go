package spec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/paddle-build/paddle-plugin-go/spec/specpath"
)

// exampleRoot builds
//
//	a: Composite
//	  b: String
//	  c: Integer [1 2 3]
//	servers: Array
//	  [*]: Composite
//	    port: Integer
//	    tags: Array of String
//	flags: Array (unconstrained)
//	enabled: Boolean
func exampleRoot(t *testing.T) *Composite {
	t.Helper()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	root := NewComposite("root", "")
	a := NewComposite("A", "")
	must(a.SetProperty("b", NewString("B", "")))
	must(a.SetProperty("c", NewInteger("C", "", 1, 2, 3)))
	must(root.SetProperty("a", a))

	server := NewComposite("Server", "")
	must(server.SetProperty("port", NewInteger("Port", "")))
	tags := NewArray("Tags", "")
	must(tags.SetItems(NewString("Tag", "")))
	must(server.SetProperty("tags", tags))
	servers := NewArray("Servers", "")
	must(servers.SetItems(server))
	must(root.SetProperty("servers", servers))

	must(root.SetProperty("flags", NewArray("Flags", "")))
	must(root.SetProperty("enabled", NewBoolean("Enabled", "")))
	return root
}

// exampleGets lists keys of exampleRoot with the title of the node each
// resolves to, "" when nothing is expected.
var exampleGets = []struct {
	key   string
	title string
}{
	{"", "root"},
	{"a", "A"},
	{"a.b", "B"},
	{"a.c", "C"},
	{"a.d", ""},
	{"a.b.x", ""},
	{"servers", "Servers"},
	{"servers[*]", "Server"},
	{"servers[3]", "Server"},
	{"servers.port", "Port"},
	{"servers[*].port", "Port"},
	{"servers.tags[*]", "Tag"},
	{"servers.tags", "Tags"},
	{"flags[*]", ""},
	{"flags.x", ""},
	{"enabled", "Enabled"},
	{"a[*]", ""},
	{"missing", ""},
}

func TestTreeGet(t *testing.T) {
	tree := NewTree(exampleRoot(t))
	for _, tc := range exampleGets {
		t.Run(tc.key, func(t *testing.T) {
			n, err := tree.Get(tc.key)
			if err != nil {
				t.Fatalf("Get(%q): %v", tc.key, err)
			}
			got := ""
			if n != nil {
				got = n.Title()
			}
			if got != tc.title {
				t.Errorf("Get(%q) = %q, want %q", tc.key, got, tc.title)
			}
			ok, err := tree.Contains(tc.key)
			if err != nil {
				t.Fatalf("Contains(%q): %v", tc.key, err)
			}
			if ok != (tc.title != "") {
				t.Errorf("Contains(%q) = %t", tc.key, ok)
			}
		})
	}
}

func TestTreeGetNearest(t *testing.T) {
	tree := NewTree(exampleRoot(t))
	tests := []struct {
		key       string
		path      string
		remainder string
	}{
		{"", "", ""},
		{"a", "a", ""},
		{"a.c", "a.c", ""},
		{"a.c.d", "a.c", "d"},
		{"a.x.y", "a", "x.y"},
		{"nope", "", "nope"},
		{"servers.port.max", "servers[*].port", "max"},
		{"servers[*].nope", "servers[*]", "nope"},
		{"flags[*].x", "flags", "[*].x"},
		{`a."x.y"`, "a", `"x.y"`},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			n, rest, err := tree.GetNearest(tc.key)
			if err != nil {
				t.Fatalf("GetNearest(%q): %v", tc.key, err)
			}
			if n == nil {
				t.Fatalf("GetNearest(%q) returned nil", tc.key)
			}
			if got := PathOf(n); got != tc.path {
				t.Errorf("GetNearest(%q) node at %q, want %q", tc.key, got, tc.path)
			}
			if rest != tc.remainder {
				t.Errorf("GetNearest(%q) remainder %q, want %q", tc.key, rest, tc.remainder)
			}
		})
	}
}

func TestTreeNearestResolvesExactly(t *testing.T) {
	tree := NewTree(exampleRoot(t))
	for _, key := range []string{"a", "a.b", "servers[*].port", "servers.tags[*]"} {
		n, err := tree.Get(key)
		if err != nil {
			t.Fatal(err)
		}
		near, rest, err := tree.GetNearest(key)
		if err != nil {
			t.Fatal(err)
		}
		if near != n || rest != "" {
			t.Errorf("GetNearest(%q) = (%v, %q), want (%v, \"\")", key, near, rest, n)
		}
	}
}

func TestTreeTypedGettersMatchGet(t *testing.T) {
	tree := NewTree(exampleRoot(t))
	for _, tc := range exampleGets {
		t.Run(tc.key, func(t *testing.T) {
			n, err := tree.Get(tc.key)
			if err != nil {
				t.Fatal(err)
			}
			var kind Kind = -1
			if n != nil {
				kind = n.Kind()
			}
			getters := []struct {
				kind Kind
				get  func(string) (Node, error)
			}{
				{CompositeKind, func(k string) (Node, error) { return asNode(tree.GetComposite(k)) }},
				{ArrayKind, func(k string) (Node, error) { return asNode(tree.GetArray(k)) }},
				{StringKind, func(k string) (Node, error) { return asNode(tree.GetString(k)) }},
				{BooleanKind, func(k string) (Node, error) { return asNode(tree.GetBoolean(k)) }},
				{IntegerKind, func(k string) (Node, error) { return asNode(tree.GetInteger(k)) }},
			}
			for _, g := range getters {
				got, err := g.get(tc.key)
				if err != nil {
					t.Fatalf("%s getter: %v", g.kind, err)
				}
				var want Node
				if g.kind == kind {
					want = n
				}
				if got != want {
					t.Errorf("%s getter = %v, want %v", g.kind, got, want)
				}
			}
		})
	}
}

// asNode turns a typed getter result into a Node, keeping nil untyped.
func asNode[T Node](n T, err error) (Node, error) {
	var zero T
	if any(n) == any(zero) {
		return nil, err
	}
	return n, err
}

func TestTreeTypedGetters(t *testing.T) {
	tree := NewTree(exampleRoot(t))

	c, err := tree.GetInteger("a.c")
	if err != nil {
		t.Fatal(err)
	}
	if c == nil {
		t.Fatal("GetInteger(a.c) = nil")
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, c.ValidValues()); diff != "" {
		t.Errorf("valid values (-want +got):\n%s", diff)
	}

	// kind mismatch is not an error
	s, err := tree.GetString("a.c")
	if err != nil || s != nil {
		t.Errorf("GetString(a.c) = (%v, %v), want (nil, nil)", s, err)
	}
	comp, err := tree.GetComposite("a")
	if err != nil || comp == nil || comp.Title() != "A" {
		t.Errorf("GetComposite(a) = (%v, %v)", comp, err)
	}
	arr, err := tree.GetArray("servers")
	if err != nil || arr == nil || arr.Items() == nil {
		t.Errorf("GetArray(servers) = (%v, %v)", arr, err)
	}
	b, err := tree.GetBoolean("enabled")
	if err != nil || b == nil {
		t.Errorf("GetBoolean(enabled) = (%v, %v)", b, err)
	}
	b, err = tree.GetBoolean("missing")
	if err != nil || b != nil {
		t.Errorf("GetBoolean(missing) = (%v, %v), want (nil, nil)", b, err)
	}
}

func TestTreeIdentity(t *testing.T) {
	root := exampleRoot(t)
	tree := NewTree(root)
	a, _ := tree.GetComposite("a")
	viaTree, _ := tree.Get("a.b")
	sub := NewTree(a)
	viaSub, _ := sub.Get("b")
	if viaTree != viaSub {
		t.Errorf("resolving through a subtree gave a different node")
	}
	if err := a.SetProperty("late", NewString("Late", "")); err != nil {
		t.Fatal(err)
	}
	if ok, _ := tree.Contains("a.late"); !ok {
		t.Errorf("mutation through a resolved node not visible from the root")
	}
}

func TestTreeMalformed(t *testing.T) {
	tree := NewTree(exampleRoot(t))
	for _, key := range []string{"a..b", "a.", ".a", "a[x]", "a[", `a."b`} {
		if _, err := tree.Get(key); !errors.Is(err, specpath.ErrMalformedPath) {
			t.Errorf("Get(%q) error = %v, want ErrMalformedPath", key, err)
		}
		if _, _, err := tree.GetNearest(key); !errors.Is(err, specpath.ErrMalformedPath) {
			t.Errorf("GetNearest(%q) error = %v, want ErrMalformedPath", key, err)
		}
		if _, err := tree.Contains(key); !errors.Is(err, specpath.ErrMalformedPath) {
			t.Errorf("Contains(%q) error = %v, want ErrMalformedPath", key, err)
		}
	}
}

func TestNewTreeNilRoot(t *testing.T) {
	tree := NewTree(nil)
	if tree.Root == nil || tree.Root.NumProperties() != 0 {
		t.Fatalf("NewTree(nil) root = %v", tree.Root)
	}
	n, rest, err := tree.GetNearest("a.b")
	if err != nil || n != tree.Root || rest != "a.b" {
		t.Errorf("GetNearest = (%v, %q, %v)", n, rest, err)
	}
}

func TestPathOfResolves(t *testing.T) {
	root := NewComposite("root", "")
	for _, name := range []string{"\uFFFD", "x.y", "", "sp ace", `q"q`, "héllo"} {
		n := NewString(name, "")
		if err := root.SetProperty(name, n); err != nil {
			t.Fatal(err)
		}
		key := PathOf(n)
		got, err := NewTree(root).Get(key)
		if err != nil {
			t.Fatalf("Get(PathOf(%q) = %q): %v", name, key, err)
		}
		if got != n {
			t.Errorf("Get(%q) = %v, want property %q", key, got, name)
		}
	}
}
