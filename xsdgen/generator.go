package xsdgen

import (
	"fmt"

	"github.com/CognitoIQ/go-xsdbind/xsd"
)

// A generator holds the state of one generation run. Per-type state is
// reset by begin, so that a type that fails leaves no trace.
type generator struct {
	cfg *Config
	ctx *Context
	ns  Namespace
	// qualify element fields with ns.URI
	qualify bool

	// Go type names in use.
	taken map[string]bool
	// Go names of global declarations, by schema name.
	complexNames map[string]string
	simpleNames  map[string]string
	elementNames map[string]string
	// Go names of hoisted anonymous complex types.
	hoistCache map[*xsd.ComplexType]string

	// schema name of the type being generated
	typ string
	// Go names claimed, and anonymous types hoisted, by the type
	// being generated
	claimed []string
	cached  []*xsd.ComplexType
	hoisted []TypeDecl
	// base types being flattened
	bases map[string]bool

	diags []Diagnostic
}

func newGenerator(cfg *Config, ctx *Context, ns Namespace, qualify bool) *generator {
	return &generator{
		cfg:          cfg,
		ctx:          ctx,
		ns:           ns,
		qualify:      qualify,
		taken:        make(map[string]bool),
		complexNames: make(map[string]string),
		simpleNames:  make(map[string]string),
		elementNames: make(map[string]string),
		hoistCache:   make(map[*xsd.ComplexType]string),
		bases:        make(map[string]bool),
	}
}

func (g *generator) begin(typ string) {
	g.typ = typ
	g.claimed = nil
	g.cached = nil
	g.hoisted = nil
}

// rollback releases the names claimed by the current type.
func (g *generator) rollback() {
	for _, name := range g.claimed {
		delete(g.taken, name)
	}
	for _, t := range g.cached {
		delete(g.hoistCache, t)
	}
	g.claimed, g.cached, g.hoisted = nil, nil, nil
}

func (g *generator) claim(name string) string {
	name = uniqueName(name, func(s string) bool { return g.taken[s] })
	g.taken[name] = true
	g.claimed = append(g.claimed, name)
	return name
}

func (g *generator) report(level Level, format string, v ...interface{}) {
	d := Diagnostic{Level: level, Type: g.typ, Message: fmt.Sprintf(format, v...)}
	g.diags = append(g.diags, d)
	g.cfg.log(d)
}

func (g *generator) warnf(format string, v ...interface{}) { g.report(Warning, format, v...) }
func (g *generator) infof(format string, v ...interface{}) { g.report(Info, format, v...) }
func (g *generator) debugf(format string, v ...interface{}) { g.report(Debug, format, v...) }

func (g *generator) errorf(construct, format string, v ...interface{}) error {
	return &SchemaError{Type: g.typ, Construct: construct, Err: fmt.Errorf(format, v...)}
}

func (g *generator) wrap(construct string, err error) error {
	if _, ok := err.(*SchemaError); ok {
		return err
	}
	return &SchemaError{Type: g.typ, Construct: construct, Err: err}
}

func lookupName(names map[string]string, name string, fallback func(string) string) string {
	if goName, ok := names[name]; ok {
		return goName
	}
	return fallback(name)
}

func (g *generator) complexName(name string) string {
	return lookupName(g.complexNames, name, g.cfg.typeName)
}

func (g *generator) simpleName(name string) string {
	return lookupName(g.simpleNames, name, g.cfg.typeName)
}

func (g *generator) elementTypeName(name string) string {
	return lookupName(g.elementNames, name, g.cfg.typeName)
}

// resolveType returns the Go type of a named schema type.
func (g *generator) resolveType(qname string) (TypeExpr, error) {
	name, err := g.ctx.Resolve(qname)
	if err != nil {
		return TypeExpr{}, err
	}
	if name.Space == xsd.Namespace {
		b, err := xsd.ParseBuiltin(name.Local)
		if err != nil {
			return TypeExpr{}, err
		}
		return builtinType(b), nil
	}
	if name.Space != g.ctx.TargetNamespace() {
		return TypeExpr{}, fmt.Errorf("type %s is in namespace %q, which is not declared in this schema", qname, name.Space)
	}
	if t, ok := g.ctx.ComplexType(name.Local); ok {
		return TypeExpr{Name: g.complexName(t.Name), Struct: true}, nil
	}
	if t, ok := g.ctx.SimpleType(name.Local); ok {
		under, err := g.underlying(t, nil)
		if err != nil {
			return TypeExpr{}, err
		}
		return TypeExpr{Name: g.simpleName(t.Name), Underlying: under}, nil
	}
	return TypeExpr{}, fmt.Errorf("type %s is not declared", qname)
}

// underlying returns the builtin Go type a simple type is based on.
// Lists and unions are represented by their lexical form.
func (g *generator) underlying(t *xsd.SimpleType, seen map[*xsd.SimpleType]bool) (string, error) {
	if seen[t] {
		return "", fmt.Errorf("simple type %q derives from itself", t.Name)
	}
	if seen == nil {
		seen = make(map[*xsd.SimpleType]bool)
	}
	seen[t] = true
	r := t.Restriction
	switch {
	case t.List != nil, t.Union != nil, r == nil:
		return "string", nil
	case r.SimpleType != nil:
		return g.underlying(r.SimpleType, seen)
	case r.Base == "":
		return "string", nil
	}
	name, err := g.ctx.Resolve(r.Base)
	if err != nil {
		return "", err
	}
	if name.Space == xsd.Namespace {
		b, err := xsd.ParseBuiltin(name.Local)
		if err != nil {
			return "", err
		}
		return builtinType(b).Name, nil
	}
	if name.Space == g.ctx.TargetNamespace() {
		if base, ok := g.ctx.SimpleType(name.Local); ok {
			return g.underlying(base, seen)
		}
		if _, ok := g.ctx.ComplexType(name.Local); ok {
			return "", fmt.Errorf("simple type %q cannot restrict complex type %s", t.Name, r.Base)
		}
	}
	return "", fmt.Errorf("base type %s is not declared", r.Base)
}

// simpleDecl declares a named Go type for a simple type.
func (g *generator) simpleDecl(t *xsd.SimpleType, name string) (TypeDecl, error) {
	under, err := g.underlying(t, nil)
	if err != nil {
		return TypeDecl{}, g.wrap(construct("simpleType", t.Name), err)
	}
	decl := TypeDecl{
		Name:      name,
		XMLName:   t.Name,
		Doc:       t.Annotation.Doc(),
		Namespace: g.ns,
		Kind:      SimpleDecl,
		Base:      TypeExpr{Name: under, Builtin: true},
		// keeps the text marshaling methods of time.Time
		Alias: under == "time.Time",
	}
	switch {
	case t.List != nil:
		g.infof("list type %s is represented as a string", name)
	case t.Union != nil:
		g.infof("union type %s is represented as a string", name)
	case t.Restriction != nil:
		for _, e := range t.Restriction.Enumerations {
			decl.Enum = append(decl.Enum, e.Value)
		}
	}
	return decl, nil
}
