package xsdgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CognitoIQ/go-xsdbind/internal/testutil"
)

const mutualTypes = `
<xs:complexType name="A">
  <xs:sequence><xs:element name="b" type="tns:B"/></xs:sequence>
</xs:complexType>
<xs:complexType name="B">
  <xs:sequence><xs:element name="a" type="tns:A"/></xs:sequence>
</xs:complexType>`

func TestGenerateOrder(t *testing.T) {
	ctx := mustContext(t, `
<xs:simpleType name="code">
  <xs:restriction base="xs:string"><xs:enumeration value="x"/></xs:restriction>
</xs:simpleType>
<xs:element name="note">
  <xs:complexType>
    <xs:sequence><xs:element name="body" type="xs:string"/></xs:sequence>
  </xs:complexType>
</xs:element>
<xs:element name="plain" type="xs:string"/>`+orderType)
	out, err := new(Config).Generate(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Order", "OrderItem", "OrderItemOption", "OrderStatus",
		"Note",
		"Code",
	}, declNames(out.Decls))

	note, _ := out.Decl("Note")
	require.Equal(t, "note", note.XMLName)
	body, _ := note.Field("Body")
	require.Equal(t, `xml:"`+testutil.TargetNS+` body"`, body.Tag())

	code, _ := out.Decl("Code")
	require.Equal(t, SimpleDecl, code.Kind)
	require.Equal(t, []string{"x"}, code.Enum)
}

func TestGenerateCycles(t *testing.T) {
	ctx := mustContext(t, mutualTypes)
	out, err := new(Config).Generate(ctx)
	require.NoError(t, err)

	a, _ := out.Decl("A")
	b, _ := out.Decl("B")
	require.Equal(t, map[string]string{"B": "B"}, fieldTypes(a))
	require.Equal(t, map[string]string{"A": "*A"}, fieldTypes(b))

	var reported bool
	for _, d := range out.Diagnostics {
		if d.Level == Info && d.Type == "B" {
			reported = true
		}
	}
	require.True(t, reported, "cycle break was not reported: %v", out.Diagnostics)

	out, err = new(Config).withOptions(DetectCycles(false)).Generate(ctx)
	require.NoError(t, err)
	b, _ = out.Decl("B")
	require.Equal(t, map[string]string{"A": "A"}, fieldTypes(b))
}

func TestImplementCycleThroughHoisted(t *testing.T) {
	frag := implement(t, new(Config), `
<xs:complexType name="Tree">
  <xs:sequence>
    <xs:element name="branch">
      <xs:complexType>
        <xs:sequence><xs:element name="tree" type="tns:Tree"/></xs:sequence>
      </xs:complexType>
    </xs:element>
  </xs:sequence>
</xs:complexType>`, "Tree")
	tree, _ := frag.Decl("Tree")
	branch, _ := frag.Decl("TreeBranch")
	require.Equal(t, "TreeBranch", fieldTypes(tree)["Branch"])
	require.Equal(t, "*Tree", fieldTypes(branch)["Tree"])
}

func TestGeneratePartialFailure(t *testing.T) {
	ctx := mustContext(t, `
<xs:complexType name="Good">
  <xs:sequence><xs:element name="id" type="xs:int"/></xs:sequence>
</xs:complexType>
<xs:complexType name="Broken">
  <xs:sequence>
    <xs:element name="inner">
      <xs:complexType>
        <xs:sequence><xs:element name="x" type="tns:Missing"/></xs:sequence>
      </xs:complexType>
    </xs:element>
  </xs:sequence>
</xs:complexType>
<xs:complexType name="Other">
  <xs:sequence><xs:element name="good" type="tns:Good"/></xs:sequence>
</xs:complexType>
<xs:complexType name="BrokenInner"/>`)
	out, err := new(Config).Generate(ctx)
	require.Error(t, err)
	require.Equal(t, []string{"Good", "Other", "BrokenInner"}, declNames(out.Decls))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	require.Equal(t, "Broken", schemaErr.Type)
	require.Equal(t, `element "x"`, schemaErr.Construct)
}

func TestGenerateDropsDependents(t *testing.T) {
	ctx := mustContext(t, `
<xs:complexType name="Broken">
  <xs:sequence><xs:element name="x" type="tns:Missing"/></xs:sequence>
</xs:complexType>
<xs:complexType name="User">
  <xs:sequence><xs:element name="b" type="tns:Broken"/></xs:sequence>
</xs:complexType>
<xs:complexType name="Group">
  <xs:sequence>
    <xs:element name="member">
      <xs:complexType>
        <xs:sequence><xs:element name="user" type="tns:User" maxOccurs="unbounded"/></xs:sequence>
      </xs:complexType>
    </xs:element>
  </xs:sequence>
</xs:complexType>
<xs:complexType name="Fine">
  <xs:sequence><xs:element name="name" type="xs:string"/></xs:sequence>
</xs:complexType>`)
	out, err := new(Config).Generate(ctx)
	require.Error(t, err)
	require.Equal(t, []string{"Fine"}, declNames(out.Decls))

	list, ok := err.(errorList)
	require.True(t, ok)
	require.Len(t, list, 3)
	var failed []string
	for _, e := range list {
		var schemaErr *SchemaError
		require.True(t, errors.As(e, &schemaErr))
		failed = append(failed, schemaErr.Type)
	}
	require.Equal(t, []string{"Broken", "User", "Group"}, failed)
	require.Contains(t, list[1].Error(), "depends on type Broken")
	require.Contains(t, list[2].Error(), "depends on type Broken")

	src, err := new(Config).GenCode(testutil.Schema(`
<xs:complexType name="Broken">
  <xs:sequence><xs:element name="x" type="tns:Missing"/></xs:sequence>
</xs:complexType>
<xs:complexType name="User">
  <xs:sequence><xs:element name="b" type="tns:Broken"/></xs:sequence>
</xs:complexType>`))
	require.Error(t, err)
	require.NotContains(t, string(src), "Broken")
	require.NotContains(t, string(src), "type User")
}

func TestGenerateDuplicateNames(t *testing.T) {
	ctx := mustContext(t, `
<xs:complexType name="order"/>
<xs:element name="Order">
  <xs:complexType><xs:attribute name="id" type="xs:string"/></xs:complexType>
</xs:element>`)
	out, err := new(Config).Generate(ctx)
	require.Equal(t, []string{"Order"}, declNames(out.Decls))
	require.Equal(t, "order", out.Decls[0].XMLName)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	require.Equal(t, "Order", schemaErr.Type)
}

func TestGenerateHoistedNameClash(t *testing.T) {
	ctx := mustContext(t, `
<xs:complexType name="Order">
  <xs:sequence>
    <xs:element name="item">
      <xs:complexType>
        <xs:sequence><xs:element name="sku" type="xs:string"/></xs:sequence>
      </xs:complexType>
    </xs:element>
  </xs:sequence>
</xs:complexType>
<xs:complexType name="OrderItem">
  <xs:sequence><xs:element name="id" type="xs:int"/></xs:sequence>
</xs:complexType>`)
	out, err := new(Config).Generate(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Order", "OrderItem2", "OrderItem"}, declNames(out.Decls))
	order, _ := out.Decl("Order")
	require.Equal(t, "OrderItem2", fieldTypes(order)["Item"])
}

func TestGenerateFlattenedHoistOnce(t *testing.T) {
	ctx := mustContext(t, `
<xs:complexType name="Base">
  <xs:sequence>
    <xs:element name="meta">
      <xs:complexType>
        <xs:sequence><xs:element name="key" type="xs:string"/></xs:sequence>
      </xs:complexType>
    </xs:element>
  </xs:sequence>
</xs:complexType>
<xs:complexType name="Derived">
  <xs:complexContent>
    <xs:extension base="tns:Base">
      <xs:sequence><xs:element name="extra" type="xs:string"/></xs:sequence>
    </xs:extension>
  </xs:complexContent>
</xs:complexType>`)
	out, err := new(Config).Generate(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Base", "BaseMeta", "Derived"}, declNames(out.Decls))
	derived, _ := out.Decl("Derived")
	require.Equal(t, "BaseMeta", fieldTypes(derived)["Meta"])
}

func TestGenerateOptions(t *testing.T) {
	ctx := mustContext(t, `
<xs:complexType name="Order">
  <xs:sequence>
    <xs:element name="item" type="tns:Item"/>
    <xs:element name="internal" type="xs:string"/>
  </xs:sequence>
  <xs:attribute name="secret" type="xs:string"/>
</xs:complexType>
<xs:complexType name="Item">
  <xs:sequence><xs:element name="sku" type="xs:string"/></xs:sequence>
</xs:complexType>
<xs:complexType name="Unrelated"/>`)

	t.Run("OnlyTypes", func(t *testing.T) {
		out, err := new(Config).withOptions(OnlyTypes("^Order$")).Generate(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"Order", "Item"}, declNames(out.Decls))
	})
	t.Run("IgnoreElements", func(t *testing.T) {
		out, err := new(Config).withOptions(IgnoreElements("internal"), IgnoreAttributes("secret")).Generate(ctx)
		require.NoError(t, err)
		order, _ := out.Decl("Order")
		require.Equal(t, []string{"Item"}, fieldNames(order))
	})
	t.Run("Replace", func(t *testing.T) {
		out, err := new(Config).withOptions(Replace("^Order$", "PurchaseOrder")).Generate(ctx)
		require.NoError(t, err)
		order, ok := out.Decl("PurchaseOrder")
		require.True(t, ok, "%v", declNames(out.Decls))
		require.Equal(t, "Order", order.XMLName)
	})
	t.Run("UseNamespace", func(t *testing.T) {
		out, err := new(Config).withOptions(UseNamespace("tns")).Generate(ctx)
		require.NoError(t, err)
		order, _ := out.Decl("Order")
		require.Equal(t, Namespace{Prefix: "tns", URI: testutil.TargetNS}, order.Namespace)

		_, err = new(Config).withOptions(UseNamespace("nope")).Generate(ctx)
		var ctxErr *ContextError
		require.True(t, errors.As(err, &ctxErr))
	})
}

func TestOptionRevert(t *testing.T) {
	var cfg Config
	prev := cfg.Option(PackageName("first"))
	require.Equal(t, "first", cfg.packageName())
	cfg.Option(prev)
	require.Equal(t, defaultPackage, cfg.packageName())

	cfg.Option(DefaultOptions...)
	undo := cfg.Option(Methods(false))
	require.True(t, cfg.skipMethods)
	cfg.Option(undo)
	require.False(t, cfg.skipMethods)
}

func TestUnqualified(t *testing.T) {
	ctx, err := NewContext([]byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
	xmlns:tns="urn:t" targetNamespace="urn:t">
<xs:complexType name="T">
  <xs:sequence><xs:element name="a" type="xs:string"/></xs:sequence>
</xs:complexType>
</xs:schema>`))
	require.NoError(t, err)
	out, err := new(Config).Generate(ctx)
	require.NoError(t, err)
	a, _ := out.Decls[0].Field("A")
	require.Equal(t, `xml:"a"`, a.Tag())
	require.Equal(t, Namespace{Prefix: "tns", URI: "urn:t"}, out.Decls[0].Namespace)
}
