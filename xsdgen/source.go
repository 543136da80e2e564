package xsdgen

import (
	"fmt"
	"os"
)

// GenSource reads schema documents from files and returns formatted Go
// source declaring the types of all of them. If some types could not
// be generated, the source of the others is returned together with an
// error listing the failures.
func (cfg *Config) GenSource(files ...string) ([]byte, error) {
	docs := make([][]byte, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		cfg.debugf("read %s", name)
		docs = append(docs, data)
	}
	return cfg.GenCode(docs...)
}

// GenCode is like GenSource, but takes the contents of the schema
// documents.
func (cfg *Config) GenCode(docs ...[]byte) ([]byte, error) {
	var (
		decls   []TypeDecl
		pkgDocs []string
		errs    errorList
		seen    = make(map[string]string)
	)
	for i, doc := range docs {
		ctx, err := NewContext(doc)
		if err != nil {
			return nil, fmt.Errorf("schema %d: %w", i+1, err)
		}
		out, err := cfg.Generate(ctx)
		if list, ok := err.(errorList); ok {
			errs = append(errs, list...)
		} else if err != nil {
			return nil, err
		}
		pkgDocs = append(pkgDocs, out.Doc)
		for _, d := range out.Decls {
			if ns, dup := seen[d.Name]; dup {
				errs = append(errs, &SchemaError{
					Type: firstNonEmpty(d.XMLName, d.Name),
					Err:  fmt.Errorf("Go type %s is already declared by the schema for %q", d.Name, ns),
				})
				continue
			}
			seen[d.Name] = ctx.TargetNamespace()
			decls = append(decls, d)
		}
	}
	src, err := cfg.Source(decls, pkgDocs...)
	if err != nil {
		return nil, err
	}
	return src, errs.result()
}
