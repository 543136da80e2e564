package xsdgen

import (
	"regexp"
	"strings"
)

const defaultPackage = "bindings"

// A Config holds user-defined overrides and filters that are used when
// generating Go source code from an xsd document. The zero value is
// ready to use.
type Config struct {
	logger   Logger
	loglevel int
	pkgname  string
	// Prefix whose namespace qualifies generated element fields.
	nsPrefix string
	// Transform for names, applied before they are converted to Go
	// identifiers.
	nameTransform func(string) string
	// Attributes for which this returns true won't be a part
	// of any complex types.
	filterAttributes propertyFilter
	// Elements for which this returns true won't be a part
	// of any complex types.
	filterElements propertyFilter
	// Types for which this returns true won't be declared in
	// the go source unless another type depends on them.
	filterTypes propertyFilter
	skipCycles  bool
	skipMethods bool
}

type propertyFilter func(name string) bool

func (cfg *Config) errorf(format string, v ...interface{}) {
	if cfg.logger != nil {
		cfg.logger.Printf(format, v...)
	}
}
func (cfg *Config) logf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 0 {
		cfg.logger.Printf(format, v...)
	}
}
func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 3 {
		cfg.logger.Printf(format, v...)
	}
}

// log sends a diagnostic to the configured Logger at the verbosity
// matching its level.
func (cfg *Config) log(d Diagnostic) {
	if cfg.logger == nil {
		return
	}
	switch d.Level {
	case Warning:
	case Info:
		if cfg.loglevel < 1 {
			return
		}
	default:
		if cfg.loglevel < 4 {
			return
		}
	}
	if dl, ok := cfg.logger.(DiagnosticLogger); ok {
		dl.Diagnostic(d)
		return
	}
	cfg.logger.Printf("%s", d)
}

func (cfg *Config) packageName() string {
	if cfg.pkgname == "" {
		return defaultPackage
	}
	return cfg.pkgname
}

// An Option is used to customize a Config.
type Option func(*Config) Option

// DefaultOptions are the default options for Go source code generation.
// The xsdgen command starts from these options.
var DefaultOptions = []Option{
	PackageName(defaultPackage),
	DetectCycles(true),
	Methods(true),
}

// The Option method is used to configure an existing configuration.
// The return value of the Option method can be used to revert the
// final option to its previous setting.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// Types implementing the Logger interface can receive
// debug information from the code generation process.
// The Logger interface is implemented by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// A DiagnosticLogger is a Logger that is given diagnostics whole,
// so that it can act on their Level. Other messages still go to
// Printf.
type DiagnosticLogger interface {
	Logger
	Diagnostic(d Diagnostic)
}

// LogOutput specifies an optional Logger for warnings and debug
// information about the code generation process. Every message is also
// recorded as a Diagnostic in the generated Fragment or Output.
func LogOutput(l Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return LogOutput(prev)
	}
}

// LogLevel sets the verbosity of messages sent to the error log
// configured with the LogOutput option. The level parameter should
// be a positive integer between 1 and 5, with 5 providing the greatest
// verbosity. Warnings are always logged.
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}

// PackageName specifies the name of the generated Go
// package.
func PackageName(name string) Option {
	return func(cfg *Config) Option {
		prev := cfg.pkgname
		cfg.pkgname = name
		return PackageName(prev)
	}
}

// UseNamespace qualifies the element fields of every generated type
// with the namespace bound to prefix in the schema document. Without
// it, element fields are qualified with the target namespace when the
// schema sets elementFormDefault="qualified".
func UseNamespace(prefix string) Option {
	return func(cfg *Config) Option {
		prev := cfg.nsPrefix
		cfg.nsPrefix = prefix
		return UseNamespace(prev)
	}
}

// Replace allows for substitution rules for all identifiers to
// be specified. If an invalid regular expression is called, no action
// is taken. The Replace option is additive; subsitutions will be
// applied in the order that each option was applied in.
func Replace(pat, repl string) Option {
	reg, err := regexp.Compile(pat)

	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		return replaceNameTransform(func(name string) string {
			if prev != nil {
				name = prev(name)
			}
			if err != nil {
				cfg.logf("invalid regex %q passed to Replace", pat)
				return name
			}
			r := reg.ReplaceAllString(name, repl)
			if r != name {
				cfg.debugf("changed name %s -> %s", name, r)
			}
			return r
		})(cfg)
	}
}

func replaceNameTransform(fn func(string) string) Option {
	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		cfg.nameTransform = fn
		return replaceNameTransform(prev)
	}
}

func replacePropertyFilter(p *propertyFilter, fn propertyFilter) Option {
	return func(*Config) Option {
		prev := *p
		*p = fn
		return replacePropertyFilter(p, prev)
	}
}

func matchAny(names []string) propertyFilter {
	return func(name string) bool {
		for _, match := range names {
			if name == match {
				return true
			}
		}
		return false
	}
}

// IgnoreAttributes defines a list of attributes that should not be
// declared in the Go type.
func IgnoreAttributes(names ...string) Option {
	return func(cfg *Config) Option {
		return replacePropertyFilter(&cfg.filterAttributes, matchAny(names))(cfg)
	}
}

// IgnoreElements defines a list of elements that should not be declared
// in the Go type.
func IgnoreElements(names ...string) Option {
	return func(cfg *Config) Option {
		return replacePropertyFilter(&cfg.filterElements, matchAny(names))(cfg)
	}
}

// OnlyTypes defines a whitelist of type name patterns to include in the
// generated Go source. Only types in the whitelist, and types that they
// depend on, will be included in the Go source. Patterns are matched
// against the name of the type in the schema.
func OnlyTypes(patterns ...string) Option {
	pat := strings.Join(patterns, "|")
	reg, err := regexp.Compile(pat)

	return func(cfg *Config) Option {
		if len(patterns) == 0 {
			return replacePropertyFilter(&cfg.filterTypes, nil)(cfg)
		}
		return replacePropertyFilter(&cfg.filterTypes, func(name string) bool {
			if err != nil {
				cfg.logf("invalid regex %q passed to OnlyTypes: %v", pat, err)
				return false
			}
			return !reg.MatchString(name)
		})(cfg)
	}
}

// DetectCycles controls the pass that finds struct types containing
// each other by value through other types (A contains B contains A) and
// breaks such cycles with pointers. It is on by default. Direct
// self-reference is always broken.
func DetectCycles(on bool) Option {
	return func(cfg *Config) Option {
		prev := !cfg.skipCycles
		cfg.skipCycles = !on
		return DetectCycles(prev)
	}
}

// Methods controls whether Clone, Equal and constructor functions are
// generated for struct types. They are generated by default.
func Methods(on bool) Option {
	return func(cfg *Config) Option {
		prev := !cfg.skipMethods
		cfg.skipMethods = !on
		return Methods(prev)
	}
}

