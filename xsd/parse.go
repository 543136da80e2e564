package xsd

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"golang.org/x/net/html/charset"
)

// Parse decodes a single schema document. The root element must be
// <schema>; its namespace is not checked here. Character encodings
// other than UTF-8 are converted according to the document's XML
// declaration.
func Parse(doc []byte) (*Schema, error) {
	var schema Schema
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.CharsetReader = charset.NewReaderLabel
	if err := d.Decode(&schema); err != nil {
		return nil, fmt.Errorf("xsd: %v", err)
	}
	if schema.XMLName.Local != "schema" {
		return nil, fmt.Errorf("xsd: root element is <%s>, not <schema>", schema.XMLName.Local)
	}
	return &schema, nil
}

// ComplexType returns the global complex type with the given local
// name.
func (s *Schema) ComplexType(name string) (*ComplexType, bool) {
	for i := range s.ComplexTypes {
		if s.ComplexTypes[i].Name == name {
			return &s.ComplexTypes[i], true
		}
	}
	return nil, false
}

// SimpleType returns the global simple type with the given local name.
func (s *Schema) SimpleType(name string) (*SimpleType, bool) {
	for i := range s.SimpleTypes {
		if s.SimpleTypes[i].Name == name {
			return &s.SimpleTypes[i], true
		}
	}
	return nil, false
}

// Element returns the global element with the given local name.
func (s *Schema) Element(name string) (*Element, bool) {
	for i := range s.Elements {
		if s.Elements[i].Name == name {
			return &s.Elements[i], true
		}
	}
	return nil, false
}

// Attribute returns the global attribute with the given local name.
func (s *Schema) Attribute(name string) (*Attribute, bool) {
	for i := range s.Attributes {
		if s.Attributes[i].Name == name {
			return &s.Attributes[i], true
		}
	}
	return nil, false
}
