package xsdgen

import (
	"encoding/xml"
	"fmt"

	"github.com/CognitoIQ/go-xsdbind/internal/xmlscope"
	"github.com/CognitoIQ/go-xsdbind/xsd"
)

// A Context holds what is known about a schema document as a whole: its
// target namespace, the namespace prefixes declared on its <schema>
// element, and its global declarations. A Context is read-only once
// created and may be shared between goroutines.
type Context struct {
	scope        *xmlscope.Scope
	schema       *xsd.Schema
	complexTypes map[string]*xsd.ComplexType
	simpleTypes  map[string]*xsd.SimpleType
	elements     map[string]*xsd.Element
	attributes   map[string]*xsd.Attribute
}

// NewContext decodes a schema document and indexes its global
// declarations. A *ContextError is returned if the document is not well
// formed, declares namespaces illegally, or is not an XML schema.
func NewContext(doc []byte) (*Context, error) {
	scope, err := xmlscope.Parse(doc)
	if err != nil {
		return nil, &ContextError{err}
	}
	if scope.Name.Space != xsd.Namespace || scope.Name.Local != "schema" {
		return nil, &ContextError{fmt.Errorf("root element {%s}%s is not an xs:schema",
			scope.Name.Space, scope.Name.Local)}
	}
	schema, err := xsd.Parse(doc)
	if err != nil {
		return nil, &ContextError{err}
	}
	ctx := &Context{
		scope:        scope,
		schema:       schema,
		complexTypes: make(map[string]*xsd.ComplexType, len(schema.ComplexTypes)),
		simpleTypes:  make(map[string]*xsd.SimpleType, len(schema.SimpleTypes)),
		elements:     make(map[string]*xsd.Element, len(schema.Elements)),
		attributes:   make(map[string]*xsd.Attribute, len(schema.Attributes)),
	}
	// The first declaration of a name wins; duplicates are reported
	// when types are generated.
	for i := range schema.ComplexTypes {
		t := &schema.ComplexTypes[i]
		if _, ok := ctx.complexTypes[t.Name]; !ok {
			ctx.complexTypes[t.Name] = t
		}
	}
	for i := range schema.SimpleTypes {
		t := &schema.SimpleTypes[i]
		if _, ok := ctx.simpleTypes[t.Name]; !ok {
			ctx.simpleTypes[t.Name] = t
		}
	}
	for i := range schema.Elements {
		el := &schema.Elements[i]
		if _, ok := ctx.elements[el.Name]; !ok {
			ctx.elements[el.Name] = el
		}
	}
	for i := range schema.Attributes {
		attr := &schema.Attributes[i]
		if _, ok := ctx.attributes[attr.Name]; !ok {
			ctx.attributes[attr.Name] = attr
		}
	}
	return ctx, nil
}

// Schema returns the decoded schema document.
func (ctx *Context) Schema() *xsd.Schema { return ctx.schema }

// TargetNamespace returns the namespace the schema declares types in.
func (ctx *Context) TargetNamespace() string { return ctx.schema.TargetNamespace }

// Qualified reports whether local elements are in the target namespace.
func (ctx *Context) Qualified() bool { return ctx.schema.ElementFormDefault == "qualified" }

// Lookup returns the namespace bound to prefix on the <schema> element.
// The empty prefix returns the default namespace.
func (ctx *Context) Lookup(prefix string) (string, bool) {
	return ctx.scope.Lookup(prefix)
}

// Prefix returns a prefix bound to uri on the <schema> element.
func (ctx *Context) Prefix(uri string) (string, bool) {
	return ctx.scope.Prefix(uri)
}

// Resolve expands a QName such as "tns:Order" into a namespace and
// local name. An unprefixed name takes the default namespace, or the
// target namespace when no default namespace is declared.
func (ctx *Context) Resolve(qname string) (xml.Name, error) {
	name, ok := ctx.scope.ResolveNS(qname)
	if !ok {
		return name, fmt.Errorf("namespace prefix %q is not declared", name.Space)
	}
	if name.Space == "" {
		name.Space = ctx.TargetNamespace()
	}
	return name, nil
}

// local resolves qname and returns its local part if it is in the
// target namespace.
func (ctx *Context) local(qname string) (string, error) {
	name, err := ctx.Resolve(qname)
	if err != nil {
		return "", err
	}
	if name.Space != ctx.TargetNamespace() {
		return "", fmt.Errorf("%s is not declared in this schema (namespace %q)", qname, name.Space)
	}
	return name.Local, nil
}

// ComplexType returns the global complex type with the given local
// name.
func (ctx *Context) ComplexType(name string) (*xsd.ComplexType, bool) {
	t, ok := ctx.complexTypes[name]
	return t, ok
}

// SimpleType returns the global simple type with the given local name.
func (ctx *Context) SimpleType(name string) (*xsd.SimpleType, bool) {
	t, ok := ctx.simpleTypes[name]
	return t, ok
}

// Element returns the global element with the given local name.
func (ctx *Context) Element(name string) (*xsd.Element, bool) {
	el, ok := ctx.elements[name]
	return el, ok
}

// Attribute returns the global attribute with the given local name.
func (ctx *Context) Attribute(name string) (*xsd.Attribute, bool) {
	attr, ok := ctx.attributes[name]
	return attr, ok
}
