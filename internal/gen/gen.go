// Package gen provides functions for generating go source code
//
// The gen package provides wrapper functions around the go/ast and
// go/token packages to reduce boilerplate.
package gen // import "github.com/CognitoIQ/go-xsdbind/internal/gen"

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

// TypeDecl generates a type declaration with the given name. If doc is
// not empty it becomes the declaration's comment.
func TypeDecl(name *ast.Ident, typ ast.Expr, doc ...string) *ast.GenDecl {
	decl := &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{
			&ast.TypeSpec{
				Name: name,
				Type: typ,
			},
		},
	}
	if len(doc) > 0 && strings.TrimSpace(strings.Join(doc, "")) != "" {
		decl.Doc = CommentGroup(doc...)
	}
	return decl
}

// Field creates a named struct field. The tag is the raw struct tag
// without backquotes; an empty tag is omitted.
func Field(name string, typ ast.Expr, tag, doc string) *ast.Field {
	field := &ast.Field{
		Names: []*ast.Ident{ast.NewIdent(name)},
		Type:  typ,
	}
	if tag != "" {
		field.Tag = String(tag)
	}
	if strings.TrimSpace(doc) != "" {
		field.Doc = CommentGroup(doc)
	}
	return field
}

// Struct creates a struct{} expression from a list of fields.
func Struct(fields ...*ast.Field) *ast.StructType {
	return &ast.StructType{Fields: &ast.FieldList{List: fields}}
}

// Expr parses a Go type expression such as "[]*Item" or "time.Time".
func Expr(s string) (ast.Expr, error) {
	expr, err := parser.ParseExpr(s)
	if err != nil {
		return nil, fmt.Errorf("could not parse type %q: %v", s, err)
	}
	return expr, nil
}

// String generates a literal string. If the string contains a double
// quote, backticks are used for quoting instead.
func String(s string) *ast.BasicLit {
	if strings.Contains(s, "\"") && !strings.Contains(s, "`") {
		return &ast.BasicLit{Kind: token.STRING, Value: "`" + s + "`"}
	}
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

// ConstString declares a block of typed string constants. The
// arguments after typ are name/value pairs.
func ConstString(typ string, pairs ...string) *ast.GenDecl {
	if len(pairs)%2 != 0 {
		panic("Number of values passed to ConstString must be a multiple of 2, got " + strconv.Itoa(len(pairs)))
	}
	decl := &ast.GenDecl{Tok: token.CONST}
	for i := 0; i < len(pairs); i += 2 {
		spec := &ast.ValueSpec{
			Names:  []*ast.Ident{ast.NewIdent(pairs[i])},
			Values: []ast.Expr{&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(pairs[i+1])}},
		}
		if typ != "" {
			spec.Type = ast.NewIdent(typ)
		}
		decl.Specs = append(decl.Specs, spec)
	}
	if len(decl.Specs) > 1 {
		decl.Lparen = 1
	}
	return decl
}

// PackageDoc inserts package-level comments into a file,
// preceding the "package" statement.
func PackageDoc(file *ast.File, comments ...string) *ast.File {
	if len(comments) == 0 {
		return file
	}
	file.Doc = CommentGroup(comments...)
	return file
}

// CommentGroup creates a comment group from strings.
func CommentGroup(comments ...string) *ast.CommentGroup {
	var group ast.CommentGroup
	for _, v := range comments {
		line := bufio.NewScanner(strings.NewReader(v))
		for line.Scan() {
			text := strings.TrimSpace(line.Text())
			if text == "" {
				group.List = append(group.List, &ast.Comment{Text: "//"})
				continue
			}
			group.List = append(group.List, &ast.Comment{Text: "// " + text})
		}
	}
	return &group
}

type Function struct {
	name, receiver, godoc string
	args, returns         []string
	err                   error
	body                  string
}

// Name returns the name of the function.
func (fn *Function) Name() string {
	return fn.name
}

func Func(name string) *Function {
	return &Function{name: name}
}

// Decl generates Go source for a Func.  an error is returned if the
// body, or parameters cannot be parsed.
func (fn *Function) Decl() (*ast.FuncDecl, error) {
	var err error
	var comments *ast.CommentGroup

	if fn.err != nil {
		return nil, fn.err
	}
	if fn.name == "" {
		return nil, errors.New("function name unset")
	}
	if len(fn.body) == 0 {
		return nil, fmt.Errorf("function body for %s unset", fn.name)
	}

	if fn.godoc != "" {
		comments = CommentGroup(fn.godoc)
	}
	fl := func(args ...string) (list *ast.FieldList) {
		if len(args) == 0 || len(args[0]) == 0 || err != nil {
			return nil
		}
		list, err = fieldList(args...)
		return list
	}
	args := fl(fn.args...)
	returns := fl(fn.returns...)
	receiver := fl(fn.receiver)
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = &ast.FieldList{}
	}
	body, err := parseBlock(fn.body)
	if err != nil {
		return nil, fmt.Errorf("could not parse function body of %s: %v in\n%s", fn.name, err, fn.body)
	}
	return &ast.FuncDecl{
		Doc:  comments,
		Recv: receiver,
		Name: ast.NewIdent(fn.name),
		Type: &ast.FuncType{
			Params:  args,
			Results: returns,
		},
		Body: body,
	}, nil
}

// Body sets the body of a function. The body should not include
// enclosing braces.
func (fn *Function) Body(format string, v ...interface{}) *Function {
	fn.body = fmt.Sprintf(format, v...)
	return fn
}

// BodyTmpl allows use of the text/template package to construct
// the body of a function.
func (fn *Function) BodyTmpl(tmpl string, dot interface{}) *Function {
	var buf bytes.Buffer
	t, err := template.New(fn.Name()).Funcs(template.FuncMap{
		"join":  strings.Join,
		"quote": strconv.Quote,
	}).Parse(tmpl)
	if err != nil {
		fn.err = err
	} else if err := t.Execute(&buf, dot); err != nil {
		fn.err = err
	} else {
		fn.body = buf.String()
	}
	return fn
}

// Returns sets the return values of a function. Each return
// value should be a string matching the Go syntax for a
// single return value.
func (fn *Function) Returns(values ...string) *Function {
	fn.returns = values
	return fn
}

// Comment sets the Godoc comments for the function.
func (fn *Function) Comment(s string) *Function {
	fn.godoc = s
	return fn
}

// Args sets the arguments that a function takes.
func (fn *Function) Args(args ...string) *Function {
	fn.args = args
	return fn
}

// Receiver turns the function into a method operating on
// the specified type.
func (fn *Function) Receiver(receiver string) *Function {
	fn.receiver = receiver
	return fn
}

// fieldList generates a field list from strings in the form "[name]
// expr".
func fieldList(fields ...string) (*ast.FieldList, error) {
	result := &ast.FieldList{List: []*ast.Field{}}
	for _, s := range fields {
		parts := strings.SplitN(s, " ", 2)
		var names []*ast.Ident
		typeExpr, err := parser.ParseExpr(parts[len(parts)-1])
		if err != nil {
			return nil, fmt.Errorf("could not parse type in %q: %v", s, err)
		}
		if len(parts) > 1 {
			names = []*ast.Ident{ast.NewIdent(parts[0])}
		}
		result.List = append(result.List, &ast.Field{
			Names: names,
			Type:  typeExpr,
		})
	}
	return result, nil
}

func parseBlock(s string) (*ast.BlockStmt, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "package tmp\nfunc _block() {\n%s\n}", s)
	file, err := parser.ParseFile(token.NewFileSet(), "", buf.Bytes(), 0)
	if err != nil {
		return nil, err
	}
	for _, decl := range file.Decls {
		if decl, ok := decl.(*ast.FuncDecl); ok {
			return decl.Body, nil
		}
	}
	return nil, fmt.Errorf("parse error: no function found in %q", buf.Bytes())
}

// FormattedSource converts an abstract syntax tree to
// formatted Go source code, adding any standard library
// imports the declarations refer to.
func FormattedSource(file *ast.File) ([]byte, error) {
	var buf bytes.Buffer

	fileset := token.NewFileSet()

	// our *ast.File did not come from a real Go source
	// file. As such, all of its node positions are 0, and
	// the go/printer package will print the package
	// comment between the package statement and
	// the package name. The most straightforward way
	// to work around this is to put the package comment
	// there ourselves.
	if file.Doc != nil {
		for _, v := range file.Doc.List {
			io.WriteString(&buf, v.Text)
			io.WriteString(&buf, "\n")
		}
		file.Doc = nil
	}
	docs, restore := markFieldDocs(file)
	err := format.Node(&buf, fileset, file)
	restore()
	if err != nil {
		return nil, err
	}
	src := expandFieldDocs(buf.Bytes(), docs)
	out, err := imports.Process("", src, nil)
	if err != nil {
		return nil, fmt.Errorf("%v in %s", err, src)
	}
	return out, nil
}

const fieldDocMarker = "genFieldDoc"

// markFieldDocs moves the doc comment of every struct field in file
// into a placeholder field printed just before it. The printer attaches
// unpositioned field comments to the previous line, so the comments are
// put back as text by expandFieldDocs. The returned function undoes the
// change.
func markFieldDocs(file *ast.File) (docs []*ast.CommentGroup, restore func()) {
	var undo []func()
	ast.Inspect(file, func(n ast.Node) bool {
		st, ok := n.(*ast.StructType)
		if !ok || st.Fields == nil {
			return true
		}
		orig := st.Fields.List
		list := make([]*ast.Field, 0, len(orig))
		for _, f := range orig {
			if f.Doc != nil && len(f.Doc.List) > 0 {
				list = append(list, &ast.Field{
					Names: []*ast.Ident{ast.NewIdent("_")},
					Type:  ast.NewIdent(fieldDocMarker + strconv.Itoa(len(docs))),
				})
				field, doc := f, f.Doc
				docs = append(docs, doc)
				field.Doc = nil
				undo = append(undo, func() { field.Doc = doc })
			}
			list = append(list, f)
		}
		st.Fields.List = list
		undo = append(undo, func() { st.Fields.List = orig })
		return true
	})
	return docs, func() {
		for _, fn := range undo {
			fn()
		}
	}
}

// expandFieldDocs replaces the placeholder fields left by markFieldDocs
// with the comments they stand for.
func expandFieldDocs(src []byte, docs []*ast.CommentGroup) []byte {
	if len(docs) == 0 {
		return src
	}
	var buf bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(nil, len(src)+1)
	for scanner.Scan() {
		line := scanner.Text()
		if doc, ok := fieldDoc(line, docs); ok {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			for _, c := range doc.List {
				buf.WriteString(indent + c.Text + "\n")
			}
			continue
		}
		buf.WriteString(line + "\n")
	}
	return buf.Bytes()
}

func fieldDoc(line string, docs []*ast.CommentGroup) (*ast.CommentGroup, bool) {
	words := strings.Fields(line)
	if len(words) != 2 || words[0] != "_" || !strings.HasPrefix(words[1], fieldDocMarker) {
		return nil, false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(words[1], fieldDocMarker))
	if err != nil || i < 0 || i >= len(docs) {
		return nil, false
	}
	return docs[i], true
}
