package xsdgen

import "fmt"

type testLogger struct {
	lines []string
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

// diagLogger also receives diagnostics with their level.
type diagLogger struct {
	testLogger
	diags []Diagnostic
}

func (l *diagLogger) Diagnostic(d Diagnostic) {
	l.diags = append(l.diags, d)
}

func (cfg *Config) withOptions(opts ...Option) *Config {
	cfg.Option(opts...)
	return cfg
}
