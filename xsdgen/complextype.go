package xsdgen

import (
	"errors"

	"github.com/CognitoIQ/go-xsdbind/xsd"
)

// Implement generates the Go declaration of a complex type, followed by
// the declarations of any anonymous types hoisted out of it.
//
// Element fields are qualified with ns.URI when it is set. If it is
// empty and prefix is not, the namespace bound to prefix in ctx is used
// instead. Named types are resolved against ctx.
//
// The sequence of t is not modified. A *SchemaError is returned if a
// construct of t cannot be translated, in which case nothing is
// generated.
func (cfg *Config) Implement(t xsd.ComplexType, ns Namespace, prefix string, ctx *Context) (*Fragment, error) {
	ns, err := resolveNamespace(ns, prefix, ctx)
	if err != nil {
		return nil, &SchemaError{Type: t.Name, Construct: construct("prefix", prefix), Err: err}
	}
	g := newGenerator(cfg, ctx, ns, ns.URI != "")
	g.begin(t.Name)
	if t.Anonymous() {
		return nil, g.errorf("", "anonymous complex type must be named before it is implemented")
	}
	name := g.claim(cfg.typeName(t.Name))
	g.complexNames[t.Name] = name

	decl, err := g.complexType(&t, name)
	if err != nil {
		return nil, err
	}
	decl.XMLName = t.Name
	decls := append([]TypeDecl{decl}, g.hoisted...)
	if !cfg.skipCycles {
		g.breakCycles(decls)
	}
	return &Fragment{Decls: decls, Diagnostics: g.diags}, nil
}

// FieldImplementation returns the fields t contributes when it is
// flattened into another type, such as a type derived from it by
// complex content. Fields of base types t derives from are included.
// Anonymous types hoisted out of t are referenced by name but not
// returned.
func (cfg *Config) FieldImplementation(t *xsd.ComplexType, prefix string, ctx *Context) ([]Field, error) {
	ns, err := resolveNamespace(Namespace{}, prefix, ctx)
	if err != nil {
		return nil, &SchemaError{Type: t.Name, Construct: construct("prefix", prefix), Err: err}
	}
	g := newGenerator(cfg, ctx, ns, ns.URI != "")
	g.begin(t.Name)
	fields, err := g.fields(t, g.complexName(t.Name))
	if err != nil {
		return nil, err
	}
	return g.finishFields(fields), nil
}

// IntegratedType returns the type used for t when it is embedded as the
// value of another type rather than referenced by name. Simple content
// collapses to a string, a sequence to a reference to parent, the type
// hoisted out of t, and anything else to a string.
func IntegratedType(t *xsd.ComplexType, parent string) TypeExpr {
	text := TypeExpr{Name: "string", Builtin: true}
	switch {
	case t.SimpleContent != nil:
		return text
	case t.Particles() != nil:
		return TypeExpr{Name: parent, Struct: true}
	}
	return text
}

func resolveNamespace(ns Namespace, prefix string, ctx *Context) (Namespace, error) {
	if ns.Prefix == "" {
		ns.Prefix = prefix
	}
	if ns.URI != "" || prefix == "" {
		return ns, nil
	}
	uri, ok := ctx.Lookup(prefix)
	if !ok {
		return ns, errors.New("namespace prefix is not declared")
	}
	ns.URI = uri
	return ns, nil
}

// complexType generates the struct declaration for t under the Go name
// name.
func (g *generator) complexType(t *xsd.ComplexType, name string) (TypeDecl, error) {
	fields, err := g.fields(t, name)
	if err != nil {
		return TypeDecl{}, err
	}
	if t.Mixed || (t.ComplexContent != nil && t.ComplexContent.Mixed) {
		if t.SimpleContent == nil {
			g.infof("character data of mixed type %s is collected in its Text field", name)
			fields = append(fields, Field{
				Name: "Text",
				Kind: TextField,
				Type: TypeExpr{Name: "string", Builtin: true},
			})
		}
	}
	return TypeDecl{
		Name:      name,
		Doc:       t.Annotation.Doc(),
		Namespace: g.ns,
		Kind:      StructDecl,
		Fields:    g.finishFields(fields),
		Abstract:  t.Abstract,
	}, nil
}

// fields returns the fields of t, including those it inherits, in
// declaration order. Anonymous types are hoisted under names derived
// from parent.
func (g *generator) fields(t *xsd.ComplexType, parent string) ([]Field, error) {
	if !t.Anonymous() {
		if g.bases[t.Name] {
			return nil, g.errorf(construct("complexType", t.Name), "type derives from itself")
		}
		g.bases[t.Name] = true
		defer delete(g.bases, t.Name)
	}
	contents := t.Contents()
	if len(contents) > 1 {
		g.warnf("type %s declares %d content models; fields of all of them are generated", parent, len(contents))
	}
	var fields []Field
	for _, c := range contents {
		f, err := g.content(t, c, parent)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f...)
	}
	attrs, removed, err := g.attributes(t.Attributes, parent)
	if err != nil {
		return nil, err
	}
	return mergeAttributes(fields, attrs, removed), nil
}

// content returns the fields of one content model of t.
func (g *generator) content(t *xsd.ComplexType, c xsd.Content, parent string) ([]Field, error) {
	switch c := c.(type) {
	case *xsd.Sequence:
		seq := c.Copy()
		MarkRecursive(t, seq, g.ctx)
		return g.sequence(seq, parent)
	case *xsd.SimpleContent:
		return g.simpleContent(c, parent)
	case *xsd.ComplexContent:
		return g.complexContent(t, c, parent)
	}
	return nil, nil
}

// flatten returns the fields of a base type, marked as inherited.
func (g *generator) flatten(base *xsd.ComplexType) ([]Field, error) {
	fields, err := g.fields(base, g.complexName(base.Name))
	if err != nil {
		return nil, err
	}
	for i := range fields {
		if fields[i].Inherited == "" {
			fields[i].Inherited = base.Name
		}
	}
	return fields, nil
}

// finishFields orders fields with attributes last and makes their names
// unique.
func (g *generator) finishFields(fields []Field) []Field {
	if len(fields) == 0 {
		return nil
	}
	result := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Kind != AttributeField {
			result = append(result, f)
		}
	}
	for _, f := range fields {
		if f.Kind == AttributeField {
			result = append(result, f)
		}
	}
	taken := map[string]bool{"XMLName": true}
	if !g.cfg.skipMethods {
		taken["Clone"] = true
		taken["Equal"] = true
	}
	for i := range result {
		name := uniqueName(result[i].Name, func(s string) bool { return taken[s] })
		if name != result[i].Name {
			g.infof("%s %q is generated as field %s", result[i].Kind, result[i].XMLName, name)
			result[i].Name = name
		}
		taken[name] = true
	}
	return result
}

// mergeAttributes adds attrs to fields. An attribute replaces an
// attribute field of the same name; removed attributes are dropped.
func mergeAttributes(fields, attrs []Field, removed []string) []Field {
	for _, name := range removed {
		kept := fields[:0]
		for _, f := range fields {
			if f.Kind != AttributeField || f.XMLName != name {
				kept = append(kept, f)
			}
		}
		fields = kept
	}
Attrs:
	for _, attr := range attrs {
		for i, f := range fields {
			if f.Kind == AttributeField && f.XMLName == attr.XMLName && f.Space == attr.Space {
				fields[i] = attr
				continue Attrs
			}
		}
		fields = append(fields, attr)
	}
	return fields
}
