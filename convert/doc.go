// Package convert converts configuration specifications between their wire
// form (package api) and their in-memory form (package spec).
//
// Conversion is structural and recursive, and preserves the order of
// required names, properties, valid specs and valid values, so that
//
//	ToSpec(FromSpec(t))  is structurally equal to t
//	FromSpec(ToSpec(m))  is equal to m
//
// for any message m using only known node kinds (empty and nil lists are
// not distinguished).
//
// A wire node of a kind this version does not know fails conversion with
// ErrUnsupportedNodeKind. SkipUnsupported opts into dropping such nodes
// instead.
package convert
