// Package xmlscope reads the namespace declarations of an XML document's
// root element.
//
// Schema documents put QNames in attribute values ("xs:string",
// "tns:Address"). The xmlscope package captures the prefixes declared on
// the <schema> element so that such strings can be resolved to canonical
// xml.Names long after the document has been decoded.
package xmlscope // import "github.com/CognitoIQ/go-xsdbind/internal/xmlscope"

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	// XMLNS is the namespace permanently bound to the "xml" prefix.
	XMLNS = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNS is the namespace permanently bound to the "xmlns" prefix.
	XMLNSNS = "http://www.w3.org/2000/xmlns/"
)

var errNoRoot = errors.New("xmlscope: document has no root element")

// A DeclError describes a namespace declaration that is not allowed by
// the Namespaces in XML recommendation.
type DeclError struct {
	Prefix, URI string
	Reason      string
}

func (err *DeclError) Error() string {
	if err.Prefix == "" {
		return fmt.Sprintf("xmlns=%q: %s", err.URI, err.Reason)
	}
	return fmt.Sprintf("xmlns:%s=%q: %s", err.Prefix, err.URI, err.Reason)
}

// A Scope holds the start tag of a root element and the namespace
// prefixes it declares. In the Bindings list the Space field is the
// canonical namespace and the Local field is the prefix; the empty
// prefix is the default namespace.
type Scope struct {
	xml.StartElement
	Bindings []xml.Name
}

// Parse decodes tokens from doc up to and including the first start
// element, and returns its scope. The document's declared encoding is
// honoured. Parse does not read past the root's start tag, so later
// syntax errors in the document are not reported here.
func Parse(doc []byte) (*Scope, error) {
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil, errNoRoot
			}
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			scope := &Scope{StartElement: start.Copy()}
			if err := scope.push(start); err != nil {
				return nil, err
			}
			return scope, nil
		}
	}
}

func (s *Scope) push(tag xml.StartElement) error {
	seen := make(map[string]bool)
	for _, attr := range tag.Attr {
		var prefix string
		switch {
		case attr.Name.Space == "xmlns":
			prefix = attr.Name.Local
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			prefix = ""
		default:
			continue
		}
		if err := checkDecl(prefix, attr.Value); err != nil {
			return err
		}
		if seen[prefix] {
			return &DeclError{prefix, attr.Value, "prefix declared more than once"}
		}
		seen[prefix] = true
		s.Bindings = append(s.Bindings, xml.Name{Space: attr.Value, Local: prefix})
	}
	return nil
}

func checkDecl(prefix, uri string) error {
	switch {
	case prefix == "xmlns":
		return &DeclError{prefix, uri, "the xmlns prefix must not be declared"}
	case prefix == "xml" && uri != XMLNS:
		return &DeclError{prefix, uri, "the xml prefix is bound to " + XMLNS}
	case prefix != "xml" && uri == XMLNS:
		return &DeclError{prefix, uri, "the xml namespace may only be bound to the xml prefix"}
	case uri == XMLNSNS:
		return &DeclError{prefix, uri, "the xmlns namespace must not be declared"}
	case prefix != "" && strings.TrimSpace(uri) == "":
		return &DeclError{prefix, uri, "a prefix cannot be bound to an empty namespace"}
	case strings.ContainsAny(prefix, " \t\r\n"):
		return &DeclError{prefix, uri, "prefix contains white space"}
	}
	return nil
}

// ResolveNS translates a QName to an xml.Name with a canonical namespace
// in its Space field. Unprefixed names take the default namespace. The
// second return value is false if the prefix is not declared, in which
// case Space holds the unresolved prefix.
func (s *Scope) ResolveNS(qname string) (xml.Name, bool) {
	prefix, local := Split(qname)
	if prefix == "xml" {
		return xml.Name{Space: XMLNS, Local: local}, true
	}
	for i := len(s.Bindings) - 1; i >= 0; i-- {
		if s.Bindings[i].Local == prefix {
			return xml.Name{Space: s.Bindings[i].Space, Local: local}, true
		}
	}
	if prefix == "" {
		return xml.Name{Local: local}, true
	}
	return xml.Name{Space: prefix, Local: local}, false
}

// Prefix returns the prefix bound to the namespace uri, and false if no
// prefix is bound to it.
func (s *Scope) Prefix(uri string) (string, bool) {
	if uri == XMLNS {
		return "xml", true
	}
	for i := len(s.Bindings) - 1; i >= 0; i-- {
		if s.Bindings[i].Space == uri {
			return s.Bindings[i].Local, true
		}
	}
	return "", false
}

// Lookup returns the namespace bound to prefix.
func (s *Scope) Lookup(prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNS, true
	}
	for i := len(s.Bindings) - 1; i >= 0; i-- {
		if s.Bindings[i].Local == prefix {
			return s.Bindings[i].Space, true
		}
	}
	return "", false
}

// Split separates a QName into its prefix and local part.
func Split(qname string) (prefix, local string) {
	qname = strings.TrimSpace(qname)
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}
