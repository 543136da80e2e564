package xsdgen

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CognitoIQ/go-xsdbind/internal/testutil"
	"github.com/CognitoIQ/go-xsdbind/internal/xmlscope"
	"github.com/CognitoIQ/go-xsdbind/xsd"
)

func TestNewContext(t *testing.T) {
	ctx := mustContext(t, `
<xs:complexType name="A"/>
<xs:complexType name="A"><xs:attribute name="dup" type="xs:string"/></xs:complexType>
<xs:simpleType name="S"><xs:restriction base="xs:string"/></xs:simpleType>
<xs:element name="e" type="tns:A"/>
<xs:attribute name="a" type="xs:string"/>`)

	require.Equal(t, testutil.TargetNS, ctx.TargetNamespace())
	require.True(t, ctx.Qualified())

	a, ok := ctx.ComplexType("A")
	require.True(t, ok)
	require.Empty(t, a.Attributes, "first declaration should win")
	_, ok = ctx.SimpleType("S")
	require.True(t, ok)
	_, ok = ctx.Element("e")
	require.True(t, ok)
	_, ok = ctx.Attribute("a")
	require.True(t, ok)
	_, ok = ctx.ComplexType("S")
	require.False(t, ok)

	uri, ok := ctx.Lookup("tns")
	require.True(t, ok)
	require.Equal(t, testutil.TargetNS, uri)
	prefix, ok := ctx.Prefix(xsd.Namespace)
	require.True(t, ok)
	require.Equal(t, "xs", prefix)
}

func TestContextErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", `not xml`},
		{"empty", ``},
		{"malformed", `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"><xs:complexType></xs:schema>`},
		{"empty prefix binding", `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:bad=""/>`},
		{"xml prefix rebound", `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:xml="urn:other"/>`},
		{"not a schema", `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"/>`},
		{"schema in wrong namespace", `<schema xmlns="urn:not-xsd"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewContext([]byte(tt.doc))
			require.Nil(t, ctx)
			var ctxErr *ContextError
			require.True(t, errors.As(err, &ctxErr), "got %v", err)
		})
	}

	_, err := NewContext([]byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:bad=""/>`))
	var declErr *xmlscope.DeclError
	require.True(t, errors.As(err, &declErr), "got %v", err)
}

func TestResolve(t *testing.T) {
	ctx := mustContext(t, ``)
	tests := []struct {
		qname string
		want  xml.Name
	}{
		{"xs:string", xml.Name{Space: xsd.Namespace, Local: "string"}},
		{"tns:Order", xml.Name{Space: testutil.TargetNS, Local: "Order"}},
		{"Order", xml.Name{Space: testutil.TargetNS, Local: "Order"}},
		{"xml:lang", xml.Name{Space: xmlscope.XMLNS, Local: "lang"}},
	}
	for _, tt := range tests {
		got, err := ctx.Resolve(tt.qname)
		require.NoError(t, err, tt.qname)
		require.Equal(t, tt.want, got, tt.qname)
	}
	_, err := ctx.Resolve("nope:Order")
	require.Error(t, err)

	_, err = ctx.local("xs:string")
	require.Error(t, err)
	local, err := ctx.local("tns:Order")
	require.NoError(t, err)
	require.Equal(t, "Order", local)
}

func TestResolveDefaultNamespace(t *testing.T) {
	ctx, err := NewContext([]byte(`<schema xmlns="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:t"/>`))
	require.NoError(t, err)
	name, err := ctx.Resolve("string")
	require.NoError(t, err)
	require.Equal(t, xml.Name{Space: xsd.Namespace, Local: "string"}, name)
	require.False(t, ctx.Qualified())
}
