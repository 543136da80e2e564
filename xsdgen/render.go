package xsdgen

import (
	"fmt"
	"go/ast"
	"math"
	"strconv"
	"strings"

	"github.com/CognitoIQ/go-xsdbind/internal/gen"
)

// Render converts declarations into a Go source file of package pkg,
// with Clone, Equal and constructor functions for struct types.
func Render(pkg string, decls []TypeDecl) (*ast.File, error) {
	cfg := Config{pkgname: pkg}
	return cfg.Render(decls)
}

// Render converts declarations into a Go source file in the package
// configured with PackageName. Any doc is added to the package
// comment.
func (cfg *Config) Render(decls []TypeDecl, doc ...string) (*ast.File, error) {
	file := &ast.File{Name: ast.NewIdent(cfg.packageName())}
	comments := []string{"Code generated by xsdgen. DO NOT EDIT."}
	for _, d := range doc {
		if d != "" {
			comments = append(comments, "", d)
		}
	}
	gen.PackageDoc(file, strings.Join(comments, "\n"))
	for i := range decls {
		d := &decls[i]
		var (
			nodes []ast.Decl
			err   error
		)
		switch d.Kind {
		case SimpleDecl:
			nodes, err = renderSimple(d)
		default:
			nodes, err = cfg.renderStruct(d)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %v", d.Name, err)
		}
		file.Decls = append(file.Decls, nodes...)
	}
	return file, nil
}

func renderSimple(d *TypeDecl) ([]ast.Decl, error) {
	base, err := gen.Expr(d.Base.Name)
	if err != nil {
		return nil, err
	}
	decl := gen.TypeDecl(ast.NewIdent(d.Name), base, d.Doc)
	if d.Alias {
		decl.Specs[0].(*ast.TypeSpec).Assign = 1
	}
	result := []ast.Decl{decl}
	if len(d.Enum) > 0 && isStringType(d.Base.Name) && !d.Alias {
		taken := make(map[string]bool)
		var pairs []string
		for _, v := range d.Enum {
			name := uniqueName(d.Name+TypeName(v), func(s string) bool { return taken[s] })
			taken[name] = true
			pairs = append(pairs, name, v)
		}
		result = append(result, gen.ConstString(d.Name, pairs...))
	}
	return result, nil
}

func (cfg *Config) renderStruct(d *TypeDecl) ([]ast.Decl, error) {
	fields := make([]*ast.Field, 0, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		typ, err := gen.Expr(f.Type.String())
		if err != nil {
			return nil, err
		}
		fields = append(fields, gen.Field(f.Name, typ, f.Tag(), f.Doc))
	}
	doc := d.Doc
	switch {
	case doc != "":
	case d.Abstract:
		doc = fmt.Sprintf("%s corresponds to the abstract %s in the schema. "+
			"Documents hold one of the types derived from it.", d.Name, d.XMLName)
	case d.XMLName != "":
		doc = fmt.Sprintf("%s corresponds to %s in the schema.", d.Name, d.XMLName)
	}
	result := []ast.Decl{gen.TypeDecl(ast.NewIdent(d.Name), gen.Struct(fields...), doc)}
	if cfg.skipMethods {
		return result, nil
	}
	for _, fn := range []*gen.Function{newFunc(d), cloneFunc(d), equalFunc(d)} {
		decl, err := fn.Decl()
		if err != nil {
			return nil, err
		}
		result = append(result, decl)
	}
	return result, nil
}

type fieldInit struct {
	Name, Value string
}

func newFunc(d *TypeDecl) *gen.Function {
	var inits []fieldInit
	for _, f := range d.Fields {
		if f.Default == "" {
			continue
		}
		if lit, ok := defaultLiteral(f.Type, f.Default); ok {
			inits = append(inits, fieldInit{f.Name, lit})
		}
	}
	comment := fmt.Sprintf("New%s returns a new %s.", d.Name, d.Name)
	if len(inits) > 0 {
		comment = fmt.Sprintf("New%s returns a new %s with the default values of its fields set.", d.Name, d.Name)
	}
	return gen.Func("New"+d.Name).
		Returns("*"+d.Name).
		Comment(comment).
		BodyTmpl(`
			return &{{.Name}}{
			{{- range .Inits}}
				{{.Name}}: {{.Value}},
			{{- end}}
			}
		`, struct {
			Name  string
			Inits []fieldInit
		}{d.Name, inits})
}

func cloneFunc(d *TypeDecl) *gen.Function {
	var stmts []string
	for _, f := range d.Fields {
		if s := cloneStmt(&f); s != "" {
			stmts = append(stmts, s)
		}
	}
	return gen.Func("Clone").
		Receiver("x *"+d.Name).
		Returns("*"+d.Name).
		Comment("Clone returns a deep copy of x.").
		BodyTmpl(`
			if x == nil {
				return nil
			}
			c := *x
			{{range .}}{{.}}
			{{end}}
			return &c
		`, stmts)
}

func equalFunc(d *TypeDecl) *gen.Function {
	var stmts []string
	for _, f := range d.Fields {
		stmts = append(stmts, equalStmt(&f))
	}
	return gen.Func("Equal").
		Receiver("x *"+d.Name).
		Args("y *"+d.Name).
		Returns("bool").
		Comment("Equal reports whether x and y hold the same values.").
		BodyTmpl(`
			if x == nil || y == nil {
				return x == y
			}
			{{range .}}{{.}}
			{{end}}
			return true
		`, stmts)
}

// cloneStmt returns the statement that deep copies field f of x into c,
// or the empty string if copying the struct is enough.
func cloneStmt(f *Field) string {
	x, c := "x."+f.Name, "c."+f.Name
	t := f.Type
	switch {
	case t.Plural && t.Struct && t.Indirect:
		return fmt.Sprintf(`if %[1]s != nil {
			%[2]s = make(%[3]s, len(%[1]s))
			for i := range %[1]s {
				%[2]s[i] = %[1]s[i].Clone()
			}
		}`, x, c, t)
	case t.Plural && t.Struct:
		return fmt.Sprintf(`if %[1]s != nil {
			%[2]s = make(%[3]s, len(%[1]s))
			for i := range %[1]s {
				%[2]s[i] = *%[1]s[i].Clone()
			}
		}`, x, c, t)
	case t.Plural && t.isBytes():
		return fmt.Sprintf(`if %[1]s != nil {
			%[2]s = make(%[3]s, len(%[1]s))
			for i := range %[1]s {
				%[2]s[i] = append(%[1]s[i][:0:0], %[1]s[i]...)
			}
		}`, x, c, t)
	case t.Plural, t.isBytes():
		return fmt.Sprintf(`if %[1]s != nil {
			%[2]s = append(%[1]s[:0:0], %[1]s...)
		}`, x, c)
	case t.Struct && t.Pointer():
		return fmt.Sprintf("%s = %s.Clone()", c, x)
	case t.Struct:
		return fmt.Sprintf("%s = *%s.Clone()", c, x)
	case t.Pointer():
		return fmt.Sprintf(`if %[1]s != nil {
			v := *%[1]s
			%[2]s = &v
		}`, x, c)
	}
	return ""
}

// equalStmt returns the statement that returns false if field f of x
// and y differ.
func equalStmt(f *Field) string {
	x, y := "x."+f.Name, "y."+f.Name
	t := f.Type
	if t.Plural {
		return fmt.Sprintf(`if len(%[1]s) != len(%[2]s) {
			return false
		}
		for i := range %[1]s {
			if %[3]s {
				return false
			}
		}`, x, y, differ(t, x+"[i]", y+"[i]", t.Indirect))
	}
	if t.Pointer() && !t.Struct {
		return fmt.Sprintf(`if (%[1]s == nil) != (%[2]s == nil) || (%[1]s != nil && %[3]s) {
			return false
		}`, x, y, differ(t, "(*"+x+")", "(*"+y+")", false))
	}
	return fmt.Sprintf(`if %s {
		return false
	}`, differ(t, x, y, t.Pointer()))
}

// differ returns an expression that is true if the single values x and
// y differ. If pointer is set, struct values are held through pointers.
func differ(t TypeExpr, x, y string, pointer bool) string {
	switch {
	case t.Struct && pointer:
		return fmt.Sprintf("!%s.Equal(%s)", x, y)
	case t.Struct:
		return fmt.Sprintf("!%s.Equal(&%s)", x, y)
	case t.isTime():
		return fmt.Sprintf("!%s.Equal(%s)", x, y)
	case t.isBytes():
		return fmt.Sprintf("!bytes.Equal(%s, %s)", x, y)
	}
	return fmt.Sprintf("%s != %s", x, y)
}

// defaultLiteral returns the Go literal of a schema default value for a
// field of type t. The second return value is false if the default
// cannot be expressed as a constant of the field's type.
func defaultLiteral(t TypeExpr, value string) (string, bool) {
	if t.Plural || t.Pointer() || t.Struct {
		return "", false
	}
	v := strings.TrimSpace(value)
	switch base := t.base(); {
	case isStringType(base):
		return strconv.Quote(value), true
	case isBoolType(base):
		switch v {
		case "true", "1":
			return "true", true
		case "false", "0":
			return "false", true
		}
	case isIntType(base):
		if n, err := strconv.ParseInt(v, 10, bitSize(base)); err == nil {
			return strconv.FormatInt(n, 10), true
		}
	case isUintType(base):
		if n, err := strconv.ParseUint(v, 10, bitSize(base)); err == nil {
			return strconv.FormatUint(n, 10), true
		}
	case isFloatType(base):
		if n, err := strconv.ParseFloat(v, bitSize(base)); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
			return strconv.FormatFloat(n, 'g', -1, bitSize(base)), true
		}
	}
	return "", false
}

func bitSize(name string) int {
	for _, n := range []string{"8", "16", "32", "64"} {
		if strings.HasSuffix(name, n) {
			size, _ := strconv.Atoi(n)
			return size
		}
	}
	if name == "int" || name == "uint" {
		return strconv.IntSize
	}
	return 64
}

// Source renders declarations to formatted Go source.
func (cfg *Config) Source(decls []TypeDecl, doc ...string) ([]byte, error) {
	file, err := cfg.Render(decls, doc...)
	if err != nil {
		return nil, err
	}
	return gen.FormattedSource(file)
}
