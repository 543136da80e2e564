package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/cobrau"
	"github.com/untillpro/goutils/logger"

	"github.com/CognitoIQ/go-xsdbind/xsdgen"
)

// set with -ldflags "-X main.version=..."
var version = "devel"

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func main() {
	logger.PrintLine = printLogLine
	if err := execRootCmd(os.Args, version); err != nil {
		fmt.Fprintln(os.Stderr, red(err))
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	rootCmd := cobrau.PrepareRootCmd(
		"xsdgen",
		"Generate Go type declarations from XML schema",
		args,
		ver,
		newGenCmd(),
		newParseCmd(),
	)
	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}

func printLogLine(level logger.TLogLevel, line string) {
	switch level {
	case logger.LogLevelError:
		fmt.Fprintln(os.Stderr, red(line))
	case logger.LogLevelWarning:
		fmt.Fprintln(os.Stderr, yellow(line))
	default:
		fmt.Fprintln(os.Stderr, line)
	}
}

// cliLogger passes messages from the code generator to the
// command's logger.
type cliLogger struct{}

func (cliLogger) Printf(format string, v ...interface{}) {
	logger.Info(fmt.Sprintf(format, v...))
}

func (cliLogger) Diagnostic(d xsdgen.Diagnostic) {
	switch d.Level {
	case xsdgen.Warning:
		logger.Warning(d.String())
	case xsdgen.Info:
		logger.Info(d.String())
	default:
		logger.Verbose(d.String())
	}
}

// logLevel maps the command's verbosity to an xsdgen.LogLevel.
func logLevel() int {
	switch {
	case logger.IsTrace():
		return 5
	case logger.IsVerbose():
		return 1
	}
	return 0
}

func addGeneratorFlags(cmd *cobra.Command, f *genFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.config, "config", "c", "", "YAML file with generator settings")
	flags.StringVar(&f.pkg, "pkg", "", "name of the generated package")
	flags.StringVar(&f.ns, "ns", "", "qualify element fields with the namespace bound to this prefix")
	flags.VarP(&f.replace, "replace", "r", "replacement rule \"regex -> replacement\" for identifiers; may be repeated")
	flags.StringSliceVar(&f.ignoreElements, "ignore-elements", nil, "elements to leave out of generated types")
	flags.StringSliceVar(&f.ignoreAttributes, "ignore-attributes", nil, "attributes to leave out of generated types")
	flags.StringSliceVar(&f.only, "only", nil, "generate only types matching these patterns and their dependencies")
	flags.BoolVar(&f.noMethods, "no-methods", false, "do not generate Clone, Equal and New functions")
	flags.BoolVar(&f.noCycles, "no-cycles", false, "do not break cycles between types with pointers")
}
