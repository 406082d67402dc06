package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

func sampleTree(t *testing.T) *spec.Composite {
	t.Helper()
	root := spec.NewComposite("project", "a project")
	root.AddRequired("name")
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(root.SetProperty("name", spec.NewString("Name", "project name")))
	must(root.SetProperty("retries", spec.NewInteger("Retries", "", 1, 2, 3)))
	hosts := spec.NewArray("Hosts", "")
	must(hosts.SetItems(spec.NewString("Host", "", "a", "b")))
	must(root.SetProperty("hosts", hosts))
	must(root.SetProperty("any", spec.NewArray("Any", "")))
	must(root.SetProperty("debug", spec.NewBoolean("Debug", "", true, false)))

	alt := spec.NewComposite("Alt", "")
	alt.AddRequired("url")
	must(alt.SetProperty("url", spec.NewString("URL", "")))
	must(root.AddValidSpec(alt))
	return root
}

func TestRoundTripFromSpec(t *testing.T) {
	root := sampleTree(t)
	msg, err := FromSpec(root)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ToSpec(msg)
	if err != nil {
		t.Fatal(err)
	}
	if !spec.Equal(root, back) {
		t.Errorf("spec round trip not equal")
	}

	// and through JSON
	d, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := api.ParseCompositeSpec(d)
	if err != nil {
		t.Fatal(err)
	}
	back, err = ToSpec(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if !spec.Equal(root, back) {
		t.Errorf("JSON round trip not equal")
	}
}

func TestRoundTripToSpec(t *testing.T) {
	msg := &api.CompositeSpecNode{
		Title:    "root",
		Required: []string{"a"},
		Properties: api.Properties{
			{Name: "a", Node: &api.SpecNode{Integer: &api.IntegerSpecNode{Title: "A", Valid: []int64{7}}}},
			{Name: "list", Node: &api.SpecNode{Array: &api.ArraySpecNode{
				Items: &api.SpecNode{Composite: &api.CompositeSpecNode{
					Properties: api.Properties{
						{Name: "flag", Node: &api.SpecNode{Boolean: &api.BooleanSpecNode{}}},
					},
				}},
			}}},
		},
	}
	cs, err := ToSpec(msg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromSpec(cs)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(msg, back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	if back.Valid == nil || back.Properties.Get("a").Integer.Valid == nil {
		t.Errorf("FromSpec produced nil lists")
	}
}

func TestEndToEnd(t *testing.T) {
	msg := &api.CompositeSpecNode{
		Required: []string{"name"},
		Properties: api.Properties{
			{Name: "name", Node: &api.SpecNode{String: &api.StringSpecNode{}}},
			{Name: "retries", Node: &api.SpecNode{Integer: &api.IntegerSpecNode{Valid: []int64{1, 2, 3}}}},
		},
	}
	root, err := ToSpec(msg)
	if err != nil {
		t.Fatal(err)
	}
	tree := spec.NewTree(root)
	retries, err := tree.GetInteger("retries")
	if err != nil || retries == nil {
		t.Fatalf("GetInteger(retries) = (%v, %v)", retries, err)
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, retries.ValidValues()); diff != "" {
		t.Errorf("retries valid (-want +got):\n%s", diff)
	}
	n, rest, err := tree.GetNearest("retries.max")
	if err != nil {
		t.Fatal(err)
	}
	if n != spec.Node(retries) || rest != "max" {
		t.Errorf("GetNearest(retries.max) = (%v, %q)", n, rest)
	}
	if diff := cmp.Diff([]string{"name"}, root.Required()); diff != "" {
		t.Errorf("required (-want +got):\n%s", diff)
	}
}

func unknownMsg() *api.CompositeSpecNode {
	return &api.CompositeSpecNode{
		Properties: api.Properties{
			{Name: "ok", Node: &api.SpecNode{String: &api.StringSpecNode{}}},
			{Name: "weird", Node: &api.SpecNode{Unknown: "float", Raw: json.RawMessage(`{}`)}},
			{Name: "list", Node: &api.SpecNode{Array: &api.ArraySpecNode{
				Items: &api.SpecNode{Unknown: "float"},
			}}},
		},
	}
}

func TestUnsupportedNodeKind(t *testing.T) {
	_, err := ToSpec(unknownMsg())
	if !errors.Is(err, ErrUnsupportedNodeKind) {
		t.Fatalf("ToSpec error = %v, want ErrUnsupportedNodeKind", err)
	}
	if !strings.Contains(err.Error(), `"float" at weird`) {
		t.Errorf("error does not locate the node: %v", err)
	}

	var n api.SpecNode
	if err := json.Unmarshal([]byte(`{"float": {}}`), &n); err != nil {
		t.Fatal(err)
	}
	if _, err := ToSpecNode(&n); !errors.Is(err, ErrUnsupportedNodeKind) {
		t.Errorf("ToSpecNode error = %v", err)
	}
}

func TestSkipUnsupported(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	log := slog.New(slog.NewTextHandler(buf, nil))
	cs, err := ToSpec(unknownMsg(), SkipUnsupported(log))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ok", "list"}, cs.PropertyNames()); diff != "" {
		t.Errorf("properties (-want +got):\n%s", diff)
	}
	list, _ := cs.Property("list")
	if list.(*spec.Array).Items() != nil {
		t.Errorf("unsupported items kept")
	}
	out := buf.String()
	if !strings.Contains(out, "path=weird") || !strings.Contains(out, "path=list[*]") {
		t.Errorf("warnings missing, got:\n%s", out)
	}
}

func TestToSpecErrors(t *testing.T) {
	dup := &api.CompositeSpecNode{
		Properties: api.Properties{
			{Name: "a", Node: &api.SpecNode{String: &api.StringSpecNode{}}},
			{Name: "a", Node: &api.SpecNode{String: &api.StringSpecNode{}}},
		},
	}
	if _, err := ToSpec(dup); !errors.Is(err, ErrDuplicateProperty) {
		t.Errorf("duplicate: err = %v", err)
	}
	empty := &api.CompositeSpecNode{
		Properties: api.Properties{{Name: "a", Node: &api.SpecNode{}}},
	}
	if _, err := ToSpec(empty); !errors.Is(err, api.ErrEmptySpecNode) {
		t.Errorf("empty holder: err = %v", err)
	}
	if _, err := ToSpec(nil); !errors.Is(err, api.ErrEmptySpecNode) {
		t.Errorf("nil message: err = %v", err)
	}
	nested := &api.CompositeSpecNode{Valid: []*api.CompositeSpecNode{unknownMsg()}}
	_, err := ToSpec(nested)
	if !errors.Is(err, ErrUnsupportedNodeKind) || !strings.Contains(err.Error(), "valid spec 0") {
		t.Errorf("valid spec: err = %v", err)
	}
}

func TestFromSpecErrors(t *testing.T) {
	if _, err := FromSpec(nil); !errors.Is(err, spec.ErrNilNode) {
		t.Errorf("FromSpec(nil) = %v", err)
	}
	if _, err := FromSpecNode(nil); !errors.Is(err, spec.ErrNilNode) {
		t.Errorf("FromSpecNode(nil) = %v", err)
	}
	w, err := FromSpecNode(spec.NewInteger("i", "", 4))
	if err != nil {
		t.Fatal(err)
	}
	if w.Kind() != api.KindInteger || !cmp.Equal(w.Integer.Valid, []int64{4}) {
		t.Errorf("FromSpecNode(integer) = %+v", w)
	}
}
