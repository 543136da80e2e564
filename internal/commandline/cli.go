// Package commandline contains helper types for collecting
// command-line arguments.
package commandline // import "github.com/CognitoIQ/go-xsdbind/internal/commandline"

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// A ReplaceRule maps a pattern to its replacement. On the
// command line, ReplaceRules are provided as strings separated
// by "->".
type ReplaceRule struct {
	From *regexp.Regexp
	To   string
}

// ParseReplaceRule parses a rule of the form "regex -> replacement".
func ParseReplaceRule(s string) (ReplaceRule, error) {
	parts := strings.SplitN(s, "->", 2)
	if len(parts) != 2 {
		return ReplaceRule{}, fmt.Errorf("invalid replace rule %q. must be \"regex -> replacement\"", s)
	}
	parts[0] = strings.TrimSpace(parts[0])
	parts[1] = strings.TrimSpace(parts[1])
	reg, err := regexp.Compile(parts[0])
	if err != nil {
		return ReplaceRule{}, fmt.Errorf("invalid regex %q: %v", parts[0], err)
	}
	return ReplaceRule{reg, parts[1]}, nil
}

// A ReplaceRuleList is used to collect multiple replacement rules
// from the command line. It implements pflag.Value.
type ReplaceRuleList []ReplaceRule

func (r *ReplaceRuleList) String() string {
	var buf bytes.Buffer
	for i, item := range *r {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s -> %s", item.From, item.To)
	}
	return buf.String()
}

// Set adds a replacement rule to the ReplaceRuleList, in the order
// provided on the command line.
func (r *ReplaceRuleList) Set(s string) error {
	rule, err := ParseReplaceRule(s)
	if err != nil {
		return err
	}
	*r = append(*r, rule)
	return nil
}

// Type names the flag value in usage messages.
func (r *ReplaceRuleList) Type() string {
	return "rule"
}
