package main

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/CognitoIQ/go-xsdbind/internal/commandline"
	"github.com/CognitoIQ/go-xsdbind/internal/ordered"
	"github.com/CognitoIQ/go-xsdbind/xsdgen"
)

// fileConfig is the format of the file given with --config. Flags on
// the command line take precedence over it.
type fileConfig struct {
	Package   string `yaml:"package"`
	Output    string `yaml:"output"`
	Namespace string `yaml:"namespace"`
	// Rules of the form "regex -> replacement".
	Replace []string `yaml:"replace"`
	// Exact renames of schema names, applied before Replace.
	Rename           map[string]string `yaml:"rename"`
	IgnoreElements   []string          `yaml:"ignoreElements"`
	IgnoreAttributes []string          `yaml:"ignoreAttributes"`
	Only             []string          `yaml:"only"`
	Methods          *bool             `yaml:"methods"`
	DetectCycles     *bool             `yaml:"detectCycles"`
}

type genFlags struct {
	config           string
	output           string
	pkg              string
	ns               string
	replace          commandline.ReplaceRuleList
	ignoreElements   []string
	ignoreAttributes []string
	only             []string
	noMethods        bool
	noCycles         bool
}

func loadConfig(name string) (*fileConfig, error) {
	fc := new(fileConfig)
	if name == "" {
		return fc, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return fc, nil
}

// options merges the config file and the flags into generator options.
func (f *genFlags) options(fc *fileConfig) ([]xsdgen.Option, error) {
	opts := append([]xsdgen.Option(nil), xsdgen.DefaultOptions...)
	opts = append(opts, xsdgen.LogOutput(cliLogger{}), xsdgen.LogLevel(logLevel()))

	if pkg := firstSet(f.pkg, fc.Package); pkg != "" {
		opts = append(opts, xsdgen.PackageName(pkg))
	}
	if ns := firstSet(f.ns, fc.Namespace); ns != "" {
		opts = append(opts, xsdgen.UseNamespace(ns))
	}
	ordered.Range(fc.Rename, func(from, to string) {
		opts = append(opts, xsdgen.Replace("^"+regexp.QuoteMeta(from)+"$", to))
	})
	for _, s := range fc.Replace {
		rule, err := commandline.ParseReplaceRule(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xsdgen.Replace(rule.From.String(), rule.To))
	}
	for _, rule := range f.replace {
		opts = append(opts, xsdgen.Replace(rule.From.String(), rule.To))
	}
	if names := append(fc.IgnoreElements, f.ignoreElements...); len(names) > 0 {
		opts = append(opts, xsdgen.IgnoreElements(names...))
	}
	if names := append(fc.IgnoreAttributes, f.ignoreAttributes...); len(names) > 0 {
		opts = append(opts, xsdgen.IgnoreAttributes(names...))
	}
	if only := append(fc.Only, f.only...); len(only) > 0 {
		opts = append(opts, xsdgen.OnlyTypes(only...))
	}
	if fc.Methods != nil {
		opts = append(opts, xsdgen.Methods(*fc.Methods))
	}
	if fc.DetectCycles != nil {
		opts = append(opts, xsdgen.DetectCycles(*fc.DetectCycles))
	}
	if f.noMethods {
		opts = append(opts, xsdgen.Methods(false))
	}
	if f.noCycles {
		opts = append(opts, xsdgen.DetectCycles(false))
	}
	return opts, nil
}

func firstSet(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
