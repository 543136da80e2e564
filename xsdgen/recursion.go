package xsdgen

import (
	"github.com/CognitoIQ/go-xsdbind/xsd"
)

// MarkRecursive sets the Recursive flag of every element in seq whose
// type is t itself. seq should be a working copy of t's sequence; t is
// not modified.
//
// Element types are resolved against ctx, so only a type in the target
// namespace can match t. Without a context the type names must be
// equal as written.
//
// Only direct self-reference is found. Types that contain each other
// through an intermediate type are handled by the DetectCycles pass.
func MarkRecursive(t *xsd.ComplexType, seq *xsd.Sequence, ctx *Context) {
	if seq == nil || t.Anonymous() {
		return
	}
	for i := range seq.Elements {
		el := &seq.Elements[i]
		if el.Kind == "" {
			continue
		}
		if ctx == nil {
			el.Recursive = el.Kind == t.Name
			continue
		}
		if local, err := ctx.local(el.Kind); err == nil && local == t.Name {
			el.Recursive = true
		}
	}
}
