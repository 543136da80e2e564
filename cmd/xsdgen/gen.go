package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
	"gopkg.in/yaml.v3"

	"github.com/CognitoIQ/go-xsdbind/xsdgen"
)

const defaultOutput = "xsdgen_output.go"

func newGenCmd() *cobra.Command {
	var f genFlags
	cmd := &cobra.Command{
		Use:   "gen [flags] file...",
		Short: "Write Go source declaring the types of schema files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.generate(args)
		},
	}
	addGeneratorFlags(cmd, &f)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default \""+defaultOutput+"\")")
	return cmd
}

func newParseCmd() *cobra.Command {
	var f genFlags
	cmd := &cobra.Command{
		Use:   "parse [flags] file...",
		Short: "Print the types generated from schema files as YAML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.describe(cmd.OutOrStdout(), args)
		},
	}
	addGeneratorFlags(cmd, &f)
	return cmd
}

func (f *genFlags) generator() (*xsdgen.Config, *fileConfig, error) {
	fc, err := loadConfig(f.config)
	if err != nil {
		return nil, nil, err
	}
	opts, err := f.options(fc)
	if err != nil {
		return nil, nil, err
	}
	cfg := new(xsdgen.Config)
	cfg.Option(opts...)
	return cfg, fc, nil
}

// generate writes the source for files to the output file. If some
// types fail, the others are still written and the failures returned.
func (f *genFlags) generate(files []string) error {
	cfg, fc, err := f.generator()
	if err != nil {
		return err
	}
	src, genErr := cfg.GenSource(files...)
	if src == nil {
		return genErr
	}
	out := firstSet(f.output, fc.Output, defaultOutput)
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return err
	}
	logger.Verbose("wrote", out)
	return genErr
}

type docSummary struct {
	File            string        `yaml:"file"`
	TargetNamespace string        `yaml:"targetNamespace,omitempty"`
	Types           []typeSummary `yaml:"types"`
	Diagnostics     []string      `yaml:"diagnostics,omitempty"`
	Errors          []string      `yaml:"errors,omitempty"`
}

type typeSummary struct {
	Name   string   `yaml:"name"`
	Schema string   `yaml:"schema,omitempty"`
	Kind   string   `yaml:"kind"`
	Base   string   `yaml:"base,omitempty"`
	Enum   []string `yaml:"enum,omitempty"`
	Fields []string `yaml:"fields,omitempty"`
}

// describe prints the declarations generated from each file without
// rendering them.
func (f *genFlags) describe(w io.Writer, files []string) error {
	cfg, _, err := f.generator()
	if err != nil {
		return err
	}
	var docs []docSummary
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		ctx, err := xsdgen.NewContext(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out, err := cfg.Generate(ctx)
		if out == nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		docs = append(docs, summarize(name, ctx, out, err))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return err
	}
	return enc.Close()
}

func summarize(name string, ctx *xsdgen.Context, out *xsdgen.Output, err error) docSummary {
	doc := docSummary{File: name, TargetNamespace: ctx.TargetNamespace()}
	for _, d := range out.Decls {
		t := typeSummary{Name: d.Name, Schema: d.XMLName, Kind: d.Kind.String(), Enum: d.Enum}
		if d.Kind == xsdgen.SimpleDecl {
			t.Base = d.Base.Name
		}
		for _, field := range d.Fields {
			t.Fields = append(t.Fields, fmt.Sprintf("%s %s %s", field.Name, field.Type, field.Tag()))
		}
		doc.Types = append(doc.Types, t)
	}
	for _, diag := range out.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, diag.String())
	}
	var list interface{ Unwrap() []error }
	switch {
	case errors.As(err, &list):
		for _, e := range list.Unwrap() {
			doc.Errors = append(doc.Errors, e.Error())
		}
	case err != nil:
		doc.Errors = append(doc.Errors, err.Error())
	}
	return doc
}
