package xsdgen

import (
	"fmt"

	"github.com/CognitoIQ/go-xsdbind/internal/dependency"
	"github.com/CognitoIQ/go-xsdbind/xsd"
)

// A global is a top-level declaration that produces a Go type.
type global struct {
	name    string
	goName  string
	complex *xsd.ComplexType
	simple  *xsd.SimpleType
	element *xsd.Element
}

// Generate declares a Go type for every global complex type, every
// global element with an anonymous type, and every global simple type
// in the schema, in that order, each followed by the types hoisted out
// of it.
//
// Types are generated independently. A type that cannot be generated is
// left out and its *SchemaError is returned, along with any others,
// beside the output of the remaining types. Types that refer to a type
// that was left out, directly or through other types, are left out and
// reported too.
func (cfg *Config) Generate(ctx *Context) (*Output, error) {
	ns, qualify, err := cfg.namespace(ctx)
	if err != nil {
		return nil, err
	}
	g := newGenerator(cfg, ctx, ns, qualify)
	schema := ctx.Schema()
	for _, imp := range schema.Imports {
		g.warnf("import of namespace %q from %q is not followed", imp.Namespace, imp.SchemaLocation)
	}
	for _, inc := range schema.Includes {
		g.warnf("include of %q is not followed", inc.SchemaLocation)
	}

	var globals []global
	for i := range schema.ComplexTypes {
		t := &schema.ComplexTypes[i]
		globals = append(globals, global{name: t.Name, complex: t})
	}
	for i := range schema.Elements {
		el := &schema.Elements[i]
		if el.Inline() {
			globals = append(globals, global{name: el.Name, element: el})
		}
	}
	for i := range schema.SimpleTypes {
		t := &schema.SimpleTypes[i]
		globals = append(globals, global{name: t.Name, simple: t})
	}

	var errs errorList
	var generate []global
	for _, gl := range globals {
		if gl.name == "" {
			errs = append(errs, &SchemaError{Err: fmt.Errorf("global %s has no name", gl.kind())})
			continue
		}
		gl.goName = cfg.typeName(gl.name)
		if g.taken[gl.goName] {
			errs = append(errs, &SchemaError{
				Type:      gl.name,
				Construct: construct(gl.kind(), gl.name),
				Err:       fmt.Errorf("Go type %s is already declared", gl.goName),
			})
			continue
		}
		g.taken[gl.goName] = true
		switch {
		case gl.complex != nil:
			g.complexNames[gl.name] = gl.goName
		case gl.simple != nil:
			g.simpleNames[gl.name] = gl.goName
		default:
			g.elementNames[gl.name] = gl.goName
		}
		generate = append(generate, gl)
	}

	var units []unit
	failed := make(map[string]bool)
	for _, gl := range generate {
		g.begin(gl.name)
		decl, err := g.global(gl)
		if err != nil {
			cfg.errorf("%v", err)
			errs = append(errs, err)
			failed[gl.goName] = true
			g.rollback()
			continue
		}
		decls := append([]TypeDecl{decl}, g.hoisted...)
		units = append(units, unit{global: gl, decls: decls})
		cfg.debugf("generated %s (%d hoisted)", decl.Name, len(g.hoisted))
	}
	units = g.dropDependents(units, failed, &errs)

	out := &Output{Doc: schema.Doc()}
	for _, u := range units {
		out.Decls = append(out.Decls, u.decls...)
	}
	if !cfg.skipCycles {
		g.breakCycles(out.Decls)
	}
	if cfg.filterTypes != nil {
		out.Decls = g.filter(out.Decls)
	}
	out.Diagnostics = g.diags
	return out, errs.result()
}

// A unit is a generated global type and the types hoisted out of it.
type unit struct {
	global
	decls []TypeDecl
}

// dropDependents removes the units whose types refer, directly or
// through other units, to a type in failed, and reports each of them
// as a *SchemaError.
func (g *generator) dropDependents(units []unit, failed map[string]bool, errs *errorList) []unit {
	if len(failed) == 0 {
		return units
	}
	owner := make(map[string]string)
	for _, u := range units {
		for _, d := range u.decls {
			owner[d.Name] = u.goName
		}
	}
	var graph dependency.Graph
	for _, u := range units {
		for _, d := range u.decls {
			for _, ref := range d.refs() {
				if failed[ref] {
					graph.Add(u.goName, ref)
				} else if o, ok := owner[ref]; ok && o != u.goName {
					graph.Add(u.goName, o)
				}
			}
		}
	}
	var kept []unit
	for _, u := range units {
		var cause string
		graph.Flatten(func(name string) {
			if cause == "" && failed[name] {
				cause = name
			}
		}, u.goName)
		if cause == "" {
			kept = append(kept, u)
			continue
		}
		err := &SchemaError{
			Type:      u.name,
			Construct: construct(u.kind(), u.name),
			Err:       fmt.Errorf("depends on type %s, which could not be generated", cause),
		}
		g.cfg.errorf("%v", err)
		*errs = append(*errs, err)
	}
	return kept
}

func (gl *global) kind() string {
	switch {
	case gl.complex != nil:
		return "complexType"
	case gl.simple != nil:
		return "simpleType"
	}
	return "element"
}

func (g *generator) global(gl global) (TypeDecl, error) {
	switch {
	case gl.complex != nil:
		decl, err := g.complexType(gl.complex, gl.goName)
		decl.XMLName = gl.name
		return decl, err
	case gl.simple != nil:
		return g.simpleDecl(gl.simple, gl.goName)
	case gl.element.ComplexType != nil:
		anon := *gl.element.ComplexType
		anon.Name = ""
		decl, err := g.complexType(&anon, gl.goName)
		decl.XMLName = gl.name
		decl.Doc = firstNonEmpty(gl.element.Annotation.Doc(), decl.Doc)
		decl.Abstract = gl.element.Abstract
		return decl, err
	default:
		decl, err := g.simpleDecl(gl.element.SimpleType, gl.goName)
		decl.XMLName = gl.name
		decl.Doc = firstNonEmpty(gl.element.Annotation.Doc(), decl.Doc)
		decl.Abstract = gl.element.Abstract
		return decl, err
	}
}

// namespace returns the namespace attached to generated types, and
// whether element fields are qualified with it.
func (cfg *Config) namespace(ctx *Context) (Namespace, bool, error) {
	if cfg.nsPrefix != "" {
		uri, ok := ctx.Lookup(cfg.nsPrefix)
		if !ok {
			return Namespace{}, false, &ContextError{fmt.Errorf("namespace prefix %q is not declared", cfg.nsPrefix)}
		}
		return Namespace{Prefix: cfg.nsPrefix, URI: uri}, true, nil
	}
	tns := ctx.TargetNamespace()
	prefix, _ := ctx.Prefix(tns)
	return Namespace{Prefix: prefix, URI: tns}, tns != "" && ctx.Qualified(), nil
}

// filter keeps the types matched by the OnlyTypes option and the types
// they depend on.
func (g *generator) filter(decls []TypeDecl) []TypeDecl {
	var graph dependency.Graph
	var roots []string
	for _, d := range decls {
		if d.XMLName != "" && !d.Hoisted && !g.cfg.filterTypes(d.XMLName) {
			roots = append(roots, d.Name)
		}
		for _, f := range d.Fields {
			if _, ok := findDecl(decls, f.Type.Name); ok {
				graph.Add(d.Name, f.Type.Name)
			}
		}
	}
	keep := make(map[string]bool)
	if len(roots) > 0 {
		graph.Flatten(func(name string) { keep[name] = true }, roots...)
	}

	var result []TypeDecl
	for _, d := range decls {
		if keep[d.Name] {
			result = append(result, d)
		} else {
			g.cfg.debugf("type %s is filtered out", d.Name)
		}
	}
	return result
}
