// Package xsd holds the decoded form of XML Schema documents.
//
// The xsd package models the subset of the XML Schema standard that is
// needed to generate data bindings: complex types with their sequence,
// simple content and complex content models, elements, attributes,
// annotations and simple types. Values are decoded directly from schema
// markup with encoding/xml; names are kept exactly as written in the
// schema, including any namespace prefix, and are resolved later against
// the namespace declarations of the document.
//
// The xsd package does not validate schema documents.
package xsd // import "github.com/CognitoIQ/go-xsdbind/xsd"

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Namespace is the XML Schema namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema"

// Unbounded is returned by Element.Occurs for maxOccurs="unbounded".
const Unbounded = -1

// A Schema is the decoded form of an XSD <schema> element.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-schema
type Schema struct {
	XMLName              xml.Name
	TargetNamespace      string        `xml:"targetNamespace,attr"`
	ElementFormDefault   string        `xml:"elementFormDefault,attr"`
	AttributeFormDefault string        `xml:"attributeFormDefault,attr"`
	Imports              []Import      `xml:"import"`
	Includes             []Import      `xml:"include"`
	Annotations          []Annotation  `xml:"annotation"`
	ComplexTypes         []ComplexType `xml:"complexType"`
	SimpleTypes          []SimpleType  `xml:"simpleType"`
	Elements             []Element     `xml:"element"`
	Attributes           []Attribute   `xml:"attribute"`
}

// An Import names a schema document this schema depends on.
type Import struct {
	Namespace      string `xml:"namespace,attr"`
	SchemaLocation string `xml:"schemaLocation,attr"`
}

// Doc returns the schema-level annotations, separated by blank lines.
func (s *Schema) Doc() string {
	var docs []string
	for i := range s.Annotations {
		if doc := s.Annotations[i].Doc(); doc != "" {
			docs = append(docs, doc)
		}
	}
	return strings.Join(docs, "\n\n")
}

// Content is one of the mutually exclusive content models of a complex
// type: *Sequence, *SimpleContent or *ComplexContent.
type Content interface {
	isContent()
}

// A ComplexType describes an XML element that may contain attributes
// and elements in its content. The Name of an anonymous type is empty.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-complexType
type ComplexType struct {
	Name           string          `xml:"name,attr"`
	Abstract       bool            `xml:"abstract,attr"`
	Mixed          bool            `xml:"mixed,attr"`
	Annotation     *Annotation     `xml:"annotation"`
	Sequence       *Sequence       `xml:"sequence"`
	All            *Sequence       `xml:"all"`
	Choice         *Choice         `xml:"choice"`
	SimpleContent  *SimpleContent  `xml:"simpleContent"`
	ComplexContent *ComplexContent `xml:"complexContent"`
	Attributes     []Attribute     `xml:"attribute"`
}

// Contents returns the content models populated in t, in the order
// sequence, simple content, complex content. A well-formed schema
// populates at most one. An <all> group is reported as a sequence, and a
// top-level <choice> as a sequence of optional elements.
func (t *ComplexType) Contents() []Content {
	var result []Content
	if seq := t.Particles(); seq != nil {
		result = append(result, seq)
	}
	if t.SimpleContent != nil {
		result = append(result, t.SimpleContent)
	}
	if t.ComplexContent != nil {
		result = append(result, t.ComplexContent)
	}
	return result
}

// Particles returns the element content declared directly in t, or nil.
func (t *ComplexType) Particles() *Sequence {
	switch {
	case t.Sequence != nil:
		return t.Sequence
	case t.All != nil:
		return t.All
	case t.Choice != nil:
		return t.Choice.Sequence()
	}
	return nil
}

// Anonymous reports whether the type has no name of its own.
func (t *ComplexType) Anonymous() bool {
	return strings.TrimSpace(t.Name) == ""
}

// A Sequence is an ordered list of elements.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-sequence
type Sequence struct {
	Annotation *Annotation `xml:"annotation"`
	Elements   []Element   `xml:"element"`
	// Particles other than <element> are not supported. Their
	// names are kept so that their omission can be reported.
	Unsupported []Particle `xml:",any"`
}

func (*Sequence) isContent() {}

// Copy returns a copy of s whose Elements may be modified without
// affecting s.
func (s *Sequence) Copy() *Sequence {
	if s == nil {
		return nil
	}
	c := *s
	c.Elements = append([]Element(nil), s.Elements...)
	return &c
}

// A Particle is a content particle the xsd package does not model.
type Particle struct {
	XMLName xml.Name
}

// A Choice allows one of its elements to appear. Since only one of them
// is present at a time, each is treated as optional.
type Choice struct {
	MinOccurs string    `xml:"minOccurs,attr"`
	MaxOccurs string    `xml:"maxOccurs,attr"`
	Elements  []Element `xml:"element"`
}

// Sequence converts the choice into a sequence of optional elements. If
// the choice itself may repeat, so may its elements.
func (c *Choice) Sequence() *Sequence {
	probe := Element{MaxOccurs: c.MaxOccurs}
	plural := probe.Plural()
	seq := &Sequence{Elements: make([]Element, 0, len(c.Elements))}
	for _, el := range c.Elements {
		el.MinOccurs = "0"
		if plural {
			el.MaxOccurs = "unbounded"
		}
		seq.Elements = append(seq.Elements, el)
	}
	return seq
}

// An Element describes an XML element that may appear as part of a
// complex type. Exactly one of Kind, SimpleType, ComplexType and Refers
// is set in a well-formed schema; an element with none of them has the
// type xs:anyType.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-element
type Element struct {
	Name        string       `xml:"name,attr"`
	Kind        string       `xml:"type,attr"`
	Refers      string       `xml:"ref,attr"`
	MinOccurs   string       `xml:"minOccurs,attr"`
	MaxOccurs   string       `xml:"maxOccurs,attr"`
	Default     string       `xml:"default,attr"`
	Fixed       string       `xml:"fixed,attr"`
	Nillable    bool         `xml:"nillable,attr"`
	Abstract    bool         `xml:"abstract,attr"`
	Annotation  *Annotation  `xml:"annotation"`
	SimpleType  *SimpleType  `xml:"simpleType"`
	ComplexType *ComplexType `xml:"complexType"`
	// Recursive is set when the element's type is the type that
	// contains it. It is computed, never decoded.
	Recursive bool `xml:"-"`
}

// Occurs returns the element's cardinality bounds. Absent bounds default
// to 1; an unbounded maximum is returned as Unbounded.
func (el *Element) Occurs() (min, max int, err error) {
	min, max = 1, 1
	if s := strings.TrimSpace(el.MinOccurs); s != "" {
		if min, err = strconv.Atoi(s); err != nil || min < 0 {
			return 1, 1, fmt.Errorf("invalid minOccurs %q", el.MinOccurs)
		}
	}
	switch s := strings.TrimSpace(el.MaxOccurs); s {
	case "":
	case "unbounded":
		max = Unbounded
	default:
		if max, err = strconv.Atoi(s); err != nil || max < 0 {
			return min, 1, fmt.Errorf("invalid maxOccurs %q", el.MaxOccurs)
		}
	}
	return min, max, nil
}

// Plural is true if the element may occur more than once.
func (el *Element) Plural() bool {
	_, max, err := el.Occurs()
	return err == nil && (max == Unbounded || max > 1)
}

// Optional is true if the element may be absent and occurs at most
// once.
func (el *Element) Optional() bool {
	min, _, err := el.Occurs()
	return err == nil && min == 0 && !el.Plural()
}

// Inline reports whether the element declares its type in place.
func (el *Element) Inline() bool {
	return el.SimpleType != nil || el.ComplexType != nil
}

// An Attribute describes a key=value pair that may appear within the
// opening tag of an element.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-attribute
type Attribute struct {
	Name       string      `xml:"name,attr"`
	Kind       string      `xml:"type,attr"`
	Refers     string      `xml:"ref,attr"`
	Use        string      `xml:"use,attr"`
	Default    string      `xml:"default,attr"`
	Fixed      string      `xml:"fixed,attr"`
	Annotation *Annotation `xml:"annotation"`
	SimpleType *SimpleType `xml:"simpleType"`
}

// Required is true for attributes declared with use="required".
func (a *Attribute) Required() bool {
	return strings.TrimSpace(a.Use) == "required"
}

// Prohibited is true for attributes declared with use="prohibited".
// Restrictions use it to remove an inherited attribute.
func (a *Attribute) Prohibited() bool {
	return strings.TrimSpace(a.Use) == "prohibited"
}

// A Derivation is the <extension> or <restriction> child of a
// <simpleContent> or <complexContent> element.
type Derivation struct {
	Base       string      `xml:"base,attr"`
	Annotation *Annotation `xml:"annotation"`
	Sequence   *Sequence   `xml:"sequence"`
	All        *Sequence   `xml:"all"`
	Choice     *Choice     `xml:"choice"`
	Attributes []Attribute `xml:"attribute"`
}

// Particles returns the element content declared in the derivation, or
// nil.
func (d *Derivation) Particles() *Sequence {
	switch {
	case d.Sequence != nil:
		return d.Sequence
	case d.All != nil:
		return d.All
	case d.Choice != nil:
		return d.Choice.Sequence()
	}
	return nil
}

// SimpleContent describes a type whose content is character data,
// optionally with attributes.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-simpleContent
type SimpleContent struct {
	Annotation  *Annotation `xml:"annotation"`
	Extension   *Derivation `xml:"extension"`
	Restriction *Derivation `xml:"restriction"`
}

func (*SimpleContent) isContent() {}

// Derivation returns the extension or restriction, whichever is
// present, and reports whether it is an extension.
func (c *SimpleContent) Derivation() (*Derivation, bool) {
	return derivation(c.Extension, c.Restriction)
}

// ComplexContent describes a type whose content model is that of a base
// type, extended or restricted.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-complexContent
type ComplexContent struct {
	Mixed       bool        `xml:"mixed,attr"`
	Annotation  *Annotation `xml:"annotation"`
	Extension   *Derivation `xml:"extension"`
	Restriction *Derivation `xml:"restriction"`
}

func (*ComplexContent) isContent() {}

// Derivation returns the extension or restriction, whichever is
// present, and reports whether it is an extension.
func (c *ComplexContent) Derivation() (*Derivation, bool) {
	return derivation(c.Extension, c.Restriction)
}

func derivation(ext, res *Derivation) (*Derivation, bool) {
	if ext != nil {
		return ext, true
	}
	return res, false
}

// An Annotation carries human-readable documentation.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-annotation
type Annotation struct {
	Documentation []string `xml:"documentation"`
}

// Doc joins the annotation's <documentation> children, separated by
// blank lines. Doc is safe to call on a nil *Annotation.
func (a *Annotation) Doc() string {
	if a == nil {
		return ""
	}
	var docs []string
	for _, d := range a.Documentation {
		if d = strings.TrimSpace(d); d != "" {
			docs = append(docs, d)
		}
	}
	return strings.Join(docs, "\n\n")
}

// A SimpleType describes character data without elements or attributes.
// It is derived by restriction of a base type, or is a list or union of
// other simple types.
//
// http://www.w3.org/TR/2004/REC-xmlschema-2-20041028/datatypes.html#element-simpleType
type SimpleType struct {
	Name        string       `xml:"name,attr"`
	Annotation  *Annotation  `xml:"annotation"`
	Restriction *Restriction `xml:"restriction"`
	List        *List        `xml:"list"`
	Union       *Union       `xml:"union"`
}

// A Restriction constrains the values of a simple type's base.
type Restriction struct {
	Base         string      `xml:"base,attr"`
	SimpleType   *SimpleType `xml:"simpleType"`
	Enumerations []Facet     `xml:"enumeration"`
	Pattern      *Facet      `xml:"pattern"`
}

// A Facet is a single constraining facet such as <enumeration>.
type Facet struct {
	Value      string      `xml:"value,attr"`
	Annotation *Annotation `xml:"annotation"`
}

// A List is a white space separated list of ItemType values.
type List struct {
	ItemType   string      `xml:"itemType,attr"`
	SimpleType *SimpleType `xml:"simpleType"`
}

// A Union holds a value of any of its member types.
type Union struct {
	MemberTypes string       `xml:"memberTypes,attr"`
	SimpleTypes []SimpleType `xml:"simpleType"`
}
