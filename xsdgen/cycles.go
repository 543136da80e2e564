package xsdgen

import (
	"github.com/CognitoIQ/go-xsdbind/internal/dependency"
)

// embedsValue reports whether the field holds a generated struct by
// value, so that its type's size depends on the field's.
func embedsValue(f *Field) bool {
	return f.Type.Struct && !f.Type.Plural && !f.Type.Pointer()
}

// breakCycles finds struct types that contain themselves by value
// through other struct types, and turns one field of every such cycle
// into a pointer. The cycle is broken at the field that closes it in a
// depth-first walk of the types in name order.
func (g *generator) breakCycles(decls []TypeDecl) {
	var graph dependency.Graph
	index := make(map[string]int, len(decls))
	for i := range decls {
		index[decls[i].Name] = i
	}
	for i := range decls {
		d := &decls[i]
		for j := range d.Fields {
			f := &d.Fields[j]
			if _, ok := index[f.Type.Name]; ok && embedsValue(f) {
				graph.Add(d.Name, f.Type.Name)
			}
		}
	}
	for _, edge := range graph.BackEdges() {
		d := &decls[index[edge.Target]]
		g.typ = firstNonEmpty(d.XMLName, d.Name)
		for j := range d.Fields {
			f := &d.Fields[j]
			if f.Type.Name == edge.Dependency && embedsValue(f) {
				f.Type.Indirect = true
				g.infof("field %s of %s refers to %s through a pointer to break a type cycle",
					f.Name, d.Name, f.Type.Name)
			}
		}
	}
}
