package gen

import (
	"go/ast"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.Equal(t, `"plain"`, String("plain").Value)
	require.Equal(t, "`xml:\"next\"`", String(`xml:"next"`).Value)
}

func TestFuncDecl(t *testing.T) {
	fn, err := Func("Clone").
		Receiver("x *Item").
		Returns("*Item").
		Comment("Clone returns a deep copy of x.").
		Body(`
			if x == nil {
				return nil
			}
			c := *x
			return &c
		`).Decl()
	require.NoError(t, err)
	require.Equal(t, "Clone", fn.Name.Name)
	require.Len(t, fn.Recv.List, 1)
	require.Len(t, fn.Body.List, 3)
	require.Equal(t, "// Clone returns a deep copy of x.", fn.Doc.List[0].Text)

	_, err = Func("Broken").Body("if {").Decl()
	require.Error(t, err)

	_, err = Func("Empty").Decl()
	require.Error(t, err)
}

func TestBodyTmpl(t *testing.T) {
	fn, err := Func("Names").
		Returns("[]string").
		BodyTmpl(`return []string{ {{range .}}{{quote .}},{{end}} }`, []string{"a", "b"}).
		Decl()
	require.NoError(t, err)
	require.Len(t, fn.Body.List, 1)
}

func TestFormattedSource(t *testing.T) {
	typ, err := Expr("[]*Node")
	require.NoError(t, err)
	file := &ast.File{
		Name: ast.NewIdent("tree"),
		Decls: []ast.Decl{
			TypeDecl(ast.NewIdent("Node"), Struct(
				Field("Name", ast.NewIdent("xml.Name"), "", ""),
				Field("Children", typ, `xml:"child"`, "Child nodes."),
				Field("Color", ast.NewIdent("Color"), `xml:"color,attr"`, "Color of the node.\n\nDefaults to red."),
			), "A Node is a tree node."),
			ConstString("Color", "ColorRed", "red", "ColorBlue", "blue"),
		},
	}
	PackageDoc(file, "Package tree is generated.")
	out, err := FormattedSource(file)
	require.NoError(t, err)
	src := string(out)
	require.True(t, strings.HasPrefix(src, "// Package tree is generated.\npackage tree"), src)
	require.Contains(t, src, `import "encoding/xml"`)
	require.Regexp(t, `(?m)^\tName\s+xml\.Name\n\t// Child nodes\.\n\tChildren\s+\[\]\*Node\s+`+"`"+`xml:"child"`+"`"+`\n`, src)
	require.Regexp(t, `(?m)^\t// Color of the node\.\n\t//\n\t// Defaults to red\.\n\tColor\s+Color\s`, src)
	require.NotContains(t, src, fieldDocMarker)

	fields := file.Decls[0].(*ast.GenDecl).Specs[0].(*ast.TypeSpec).Type.(*ast.StructType).Fields.List
	require.Len(t, fields, 3)
	require.NotNil(t, fields[1].Doc)
	require.Contains(t, src, `ColorRed  Color = "red"`)
}

func TestCommentGroup(t *testing.T) {
	group := CommentGroup("first\n\nsecond")
	require.Len(t, group.List, 3)
	require.Equal(t, "//", group.List[1].Text)
}
