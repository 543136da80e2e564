package xmlscope

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const schemaNS = "http://www.w3.org/2001/XMLSchema"

func TestResolve(t *testing.T) {
	scope, err := Parse([]byte(`<?xml version="1.0"?>
		<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
		           xmlns:tns="http://example.org/po"
		           xmlns="http://example.org/default"
		           targetNamespace="http://example.org/po">
		  <xs:element name="ignored"/>
		</xs:schema>`))
	require.NoError(t, err)
	require.Equal(t, xml.Name{Space: schemaNS, Local: "schema"}, scope.Name)

	var tests = []struct {
		qname string
		want  xml.Name
		ok    bool
	}{
		{"xs:string", xml.Name{Space: schemaNS, Local: "string"}, true},
		{"tns:Address", xml.Name{Space: "http://example.org/po", Local: "Address"}, true},
		{"Address", xml.Name{Space: "http://example.org/default", Local: "Address"}, true},
		{"xml:lang", xml.Name{Space: XMLNS, Local: "lang"}, true},
		{"nope:thing", xml.Name{Space: "nope", Local: "thing"}, false},
	}
	for _, tt := range tests {
		got, ok := scope.ResolveNS(tt.qname)
		require.Equal(t, tt.want, got, tt.qname)
		require.Equal(t, tt.ok, ok, tt.qname)
	}

	prefix, ok := scope.Prefix("http://example.org/po")
	require.True(t, ok)
	require.Equal(t, "tns", prefix)

	uri, ok := scope.Lookup("xs")
	require.True(t, ok)
	require.Equal(t, schemaNS, uri)
}

func TestUnprefixedWithoutDefault(t *testing.T) {
	scope, err := Parse([]byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"></xs:schema>`))
	require.NoError(t, err)
	name, ok := scope.ResolveNS("recursive")
	require.True(t, ok)
	require.Equal(t, xml.Name{Local: "recursive"}, name)
}

func TestBadDeclarations(t *testing.T) {
	for _, doc := range []string{
		`<schema xmlns:p=""/>`,
		`<schema xmlns:xml="http://example.org/"/>`,
		`<schema xmlns:foo="http://www.w3.org/XML/1998/namespace"/>`,
		`<schema xmlns:p="http://www.w3.org/2000/xmlns/"/>`,
	} {
		_, err := Parse([]byte(doc))
		var declErr *DeclError
		require.True(t, errors.As(err, &declErr), "%s: got %v", doc, err)
	}
}

func TestNoRoot(t *testing.T) {
	_, err := Parse([]byte("   "))
	require.Error(t, err)
	_, err = Parse([]byte("<?xml version=\"1.0\"?>"))
	require.Error(t, err)
}

func TestSplit(t *testing.T) {
	prefix, local := Split(" tns:Item ")
	require.Equal(t, "tns", prefix)
	require.Equal(t, "Item", local)
	prefix, local = Split("Item")
	require.Equal(t, "", prefix)
	require.Equal(t, "Item", local)
}
