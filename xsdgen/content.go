package xsdgen

import (
	"github.com/CognitoIQ/go-xsdbind/internal/xmlscope"
	"github.com/CognitoIQ/go-xsdbind/xsd"
)

// sequence returns one field per element of seq.
func (g *generator) sequence(seq *xsd.Sequence, parent string) ([]Field, error) {
	if seq == nil {
		return nil, nil
	}
	for _, p := range seq.Unsupported {
		g.warnf("<%s> particle in %s is not supported and was omitted", p.XMLName.Local, parent)
	}
	var fields []Field
	for i := range seq.Elements {
		el := &seq.Elements[i]
		if g.cfg.filterElements != nil && g.cfg.filterElements(elementName(el)) {
			g.debugf("ignoring element %s of %s", elementName(el), parent)
			continue
		}
		f, err := g.element(el, parent)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func elementName(el *xsd.Element) string {
	if el.Name == "" && el.Refers != "" {
		_, local := xmlscope.Split(el.Refers)
		return local
	}
	return el.Name
}

// element returns the field for a single element.
func (g *generator) element(el *xsd.Element, parent string) (Field, error) {
	where := construct("element", elementName(el))
	min, max, err := el.Occurs()
	if err != nil {
		return Field{}, g.wrap(where, err)
	}
	decl := el
	if el.Refers != "" {
		local, err := g.ctx.local(el.Refers)
		if err != nil {
			return Field{}, g.wrap(where, err)
		}
		ref, ok := g.ctx.Element(local)
		if !ok {
			return Field{}, g.errorf(where, "referenced element %s is not declared", el.Refers)
		}
		decl = ref
	}
	if decl.Name == "" {
		return Field{}, g.errorf(where, "element has no name")
	}
	field := Field{
		Name:    g.cfg.fieldName(decl.Name),
		XMLName: decl.Name,
		Kind:    ElementField,
		Doc:     firstNonEmpty(el.Annotation.Doc(), decl.Annotation.Doc()),
		Default: firstNonEmpty(el.Default, el.Fixed, decl.Default, decl.Fixed),
	}
	if g.qualify {
		field.Space = g.ns.URI
	}

	var typ TypeExpr
	switch {
	case el.Recursive:
		typ = TypeExpr{Name: parent, Struct: true, Indirect: true}
	case decl != el && decl.ComplexType != nil:
		typ = TypeExpr{Name: g.elementTypeName(decl.Name), Struct: true}
	case decl != el && decl.SimpleType != nil:
		under, err := g.underlying(decl.SimpleType, nil)
		if err != nil {
			return Field{}, g.wrap(where, err)
		}
		typ = TypeExpr{Name: g.elementTypeName(decl.Name), Underlying: under}
	case decl.Kind != "":
		if typ, err = g.resolveType(decl.Kind); err != nil {
			return Field{}, g.wrap(where, err)
		}
	case decl.ComplexType != nil:
		if typ, err = g.hoistComplex(parent, decl.Name, decl.ComplexType); err != nil {
			return Field{}, err
		}
	case decl.SimpleType != nil:
		if typ, err = g.hoistSimple(parent, decl.Name, decl.SimpleType); err != nil {
			return Field{}, err
		}
	default:
		typ = builtinType(xsd.AnyType)
	}
	typ.Plural = max == xsd.Unbounded || max > 1
	typ.Optional = min == 0 && !typ.Plural
	field.Type = typ
	g.checkDefault(&field)
	return field, nil
}

// attributes returns one field per attribute, and the names of the
// attributes declared as prohibited.
func (g *generator) attributes(attrs []xsd.Attribute, parent string) ([]Field, []string, error) {
	var fields []Field
	var removed []string
	for i := range attrs {
		attr := &attrs[i]
		f, ok, err := g.attribute(attr, parent)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		if attr.Prohibited() {
			removed = append(removed, f.XMLName)
			continue
		}
		fields = append(fields, f)
	}
	return fields, removed, nil
}

// attribute returns the field for a single attribute. The second return
// value is false if the attribute is filtered out.
func (g *generator) attribute(attr *xsd.Attribute, parent string) (Field, bool, error) {
	decl := attr
	var space string
	if attr.Refers != "" {
		name, err := g.ctx.Resolve(attr.Refers)
		if err != nil {
			return Field{}, false, g.wrap(construct("attribute", attr.Refers), err)
		}
		switch {
		case name.Space == xmlscope.XMLNS:
			decl = &xsd.Attribute{Name: name.Local}
			space = xmlscope.XMLNS
		case name.Space == g.ctx.TargetNamespace():
			ref, ok := g.ctx.Attribute(name.Local)
			if !ok {
				return Field{}, false, g.errorf(construct("attribute", attr.Refers), "referenced attribute is not declared")
			}
			decl = ref
			// global attributes are always qualified
			space = name.Space
		default:
			return Field{}, false, g.errorf(construct("attribute", attr.Refers),
				"namespace %q is not declared in this schema", name.Space)
		}
	}
	where := construct("attribute", decl.Name)
	if decl.Name == "" {
		return Field{}, false, g.errorf(where, "attribute has no name")
	}
	if g.cfg.filterAttributes != nil && g.cfg.filterAttributes(decl.Name) {
		g.debugf("ignoring attribute %s of %s", decl.Name, parent)
		return Field{}, false, nil
	}
	field := Field{
		Name:     g.cfg.fieldName(decl.Name),
		XMLName:  decl.Name,
		Space:    space,
		Kind:     AttributeField,
		Doc:      firstNonEmpty(attr.Annotation.Doc(), decl.Annotation.Doc()),
		Default:  firstNonEmpty(attr.Default, attr.Fixed, decl.Default, decl.Fixed),
		Required: attr.Required(),
	}
	var err error
	switch {
	case attr.Prohibited():
		return field, true, nil
	case decl.Kind != "":
		if field.Type, err = g.resolveType(decl.Kind); err != nil {
			return Field{}, false, g.wrap(where, err)
		}
		if field.Type.Struct {
			return Field{}, false, g.errorf(where, "type %s of an attribute must be a simple type", decl.Kind)
		}
	case decl.SimpleType != nil:
		if field.Type, err = g.hoistSimple(parent, decl.Name, decl.SimpleType); err != nil {
			return Field{}, false, err
		}
	default:
		field.Type = builtinType(xsd.AnySimpleType)
	}
	g.checkDefault(&field)
	return field, true, nil
}

// simpleContent returns a text field holding the content, preceded by
// the fields of a complex base type and followed by the attributes.
func (g *generator) simpleContent(c *xsd.SimpleContent, parent string) ([]Field, error) {
	d, _ := c.Derivation()
	if d == nil {
		g.warnf("simple content of %s has no extension or restriction", parent)
		return []Field{textField(builtinType(xsd.String))}, nil
	}
	where := construct("base", d.Base)
	if d.Base == "" {
		return nil, g.errorf(where, "simple content derivation has no base")
	}
	name, err := g.ctx.Resolve(d.Base)
	if err != nil {
		return nil, g.wrap(where, err)
	}
	var fields []Field
	base, isComplex := g.ctx.ComplexType(name.Local)
	if isComplex && name.Space == g.ctx.TargetNamespace() {
		inherited, err := g.flatten(base)
		if err != nil {
			return nil, err
		}
		fields = inherited
		if !hasText(fields) {
			return nil, g.errorf(where, "base type of simple content does not have simple content")
		}
	} else {
		typ, err := g.resolveType(d.Base)
		if err != nil {
			return nil, g.wrap(where, err)
		}
		fields = append(fields, textField(typ))
	}
	attrs, removed, err := g.attributes(d.Attributes, parent)
	if err != nil {
		return nil, err
	}
	return mergeAttributes(fields, attrs, removed), nil
}

// complexContent returns the fields inherited from the base type
// followed by the local elements and attributes. A restriction keeps
// only the attributes of its base.
func (g *generator) complexContent(t *xsd.ComplexType, c *xsd.ComplexContent, parent string) ([]Field, error) {
	d, extension := c.Derivation()
	if d == nil {
		g.warnf("complex content of %s has no extension or restriction", parent)
		return nil, nil
	}
	where := construct("base", d.Base)
	name, err := g.ctx.Resolve(d.Base)
	if err != nil {
		return nil, g.wrap(where, err)
	}
	var fields []Field
	switch {
	case name.Space == xsd.Namespace && name.Local == "anyType":
	case name.Space == xsd.Namespace:
		return nil, g.errorf(where, "complex content cannot derive from built-in type %s", name.Local)
	case name.Space != g.ctx.TargetNamespace():
		return nil, g.errorf(where, "namespace %q is not declared in this schema", name.Space)
	default:
		base, ok := g.ctx.ComplexType(name.Local)
		if !ok {
			return nil, g.errorf(where, "base type is not a declared complex type")
		}
		inherited, err := g.flatten(base)
		if err != nil {
			return nil, err
		}
		for _, f := range inherited {
			if extension || f.Kind == AttributeField {
				fields = append(fields, f)
			}
		}
	}
	seq := d.Particles().Copy()
	MarkRecursive(t, seq, g.ctx)
	local, err := g.sequence(seq, parent)
	if err != nil {
		return nil, err
	}
	fields = append(fields, local...)

	attrs, removed, err := g.attributes(d.Attributes, parent)
	if err != nil {
		return nil, err
	}
	return mergeAttributes(fields, attrs, removed), nil
}

// hoistComplex returns the type of an element declared with an
// anonymous complex type, declaring the type under a name derived from
// parent and the element name if it needs one.
func (g *generator) hoistComplex(parent, element string, t *xsd.ComplexType) (TypeExpr, error) {
	if t.Particles() == nil && t.ComplexContent == nil && !hasAttributes(t) {
		return IntegratedType(t, parent), nil
	}
	if name, ok := g.hoistCache[t]; ok {
		return TypeExpr{Name: name, Struct: true}, nil
	}
	name := g.claim(parent + g.cfg.typeName(element))
	g.hoistCache[t] = name
	g.cached = append(g.cached, t)

	// reserve a slot so that nested types follow the type they were
	// hoisted out of
	slot := len(g.hoisted)
	g.hoisted = append(g.hoisted, TypeDecl{})
	anon := *t
	anon.Name = ""
	decl, err := g.complexType(&anon, name)
	if err != nil {
		return TypeExpr{}, err
	}
	decl.Hoisted = true
	g.hoisted[slot] = decl
	g.debugf("hoisted anonymous type of %s into %s", element, name)

	if t.Particles() != nil {
		return IntegratedType(t, name), nil
	}
	return TypeExpr{Name: name, Struct: true}, nil
}

// hoistSimple returns the type of an element or attribute declared with
// an anonymous simple type. Enumerations are declared as a named type;
// other restrictions collapse to their base.
func (g *generator) hoistSimple(parent, name string, t *xsd.SimpleType) (TypeExpr, error) {
	where := construct("simpleType", name)
	if t.Restriction == nil || len(t.Restriction.Enumerations) == 0 {
		under, err := g.underlying(t, nil)
		if err != nil {
			return TypeExpr{}, g.wrap(where, err)
		}
		return TypeExpr{Name: under, Builtin: true}, nil
	}
	goName := g.claim(parent + g.cfg.typeName(name))
	decl, err := g.simpleDecl(t, goName)
	if err != nil {
		return TypeExpr{}, err
	}
	decl.Hoisted = true
	g.hoisted = append(g.hoisted, decl)
	return TypeExpr{Name: goName, Underlying: decl.Base.Name}, nil
}

func hasAttributes(t *xsd.ComplexType) bool {
	if len(t.Attributes) > 0 {
		return true
	}
	if t.SimpleContent != nil {
		if d, _ := t.SimpleContent.Derivation(); d != nil && len(d.Attributes) > 0 {
			return true
		}
	}
	return false
}

func hasText(fields []Field) bool {
	for _, f := range fields {
		if f.Kind == TextField {
			return true
		}
	}
	return false
}

func textField(typ TypeExpr) Field {
	return Field{Name: "Value", Kind: TextField, Type: typ}
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}

func (g *generator) checkDefault(f *Field) {
	if f.Default == "" {
		return
	}
	if f.Type.Pointer() || f.Type.Plural {
		g.debugf("default value of optional %s %s is not applied", f.Kind, f.XMLName)
		return
	}
	if _, ok := defaultLiteral(f.Type, f.Default); !ok {
		g.warnf("default value %q of %s %s cannot be assigned to a %s; it is ignored",
			f.Default, f.Kind, f.XMLName, f.Type)
	}
}
