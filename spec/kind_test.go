package spec

import "testing"

func TestKindText(t *testing.T) {
	for _, k := range Kinds() {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Kind
		if err := back.UnmarshalText(d); err != nil || back != k {
			t.Errorf("UnmarshalText(%s) = (%v, %v)", d, back, err)
		}
		if k.IsScalar() == (k == CompositeKind || k == ArrayKind) {
			t.Errorf("%s.IsScalar() = %t", k, k.IsScalar())
		}
	}
	if _, err := Kind(99).MarshalText(); err == nil {
		t.Errorf("MarshalText(99) succeeded")
	}
	var k Kind
	if err := k.UnmarshalText([]byte("float")); err == nil {
		t.Errorf("UnmarshalText(float) succeeded")
	}
}
