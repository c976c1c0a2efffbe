package rules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/missive/internal/log"
)

// RuleDump is one rule flattened for display or export.
type RuleDump struct {
	Pattern  string `yaml:"pattern"`
	Kind     string `yaml:"kind"`
	Fg       string `yaml:"fg"`
	Bg       string `yaml:"bg"`
	Attrs    string `yaml:"attrs"`
	Submatch int    `yaml:"submatch,omitempty"`
	Refs     int    `yaml:"refs"`
}

// RegionDump collects one region's rules in precedence order.
type RegionDump struct {
	Region string     `yaml:"region"`
	Rules  []RuleDump `yaml:"rules"`
}

// Dump flattens every populated region in display order.
func (e *Engine) Dump() []RegionDump {
	var out []RegionDump
	for _, region := range patternRegions {
		rs, err := e.registry.ListFor(region)
		if err != nil || rs.Len() == 0 {
			continue
		}

		rd := RegionDump{Region: region.String()}
		for _, sp := range rs.Rules() {
			rd.Rules = append(rd.Rules, dumpRule(sp))
		}
		out = append(out, rd)
	}
	return out
}

func dumpRule(sp *StyledPattern) RuleDump {
	kind := "regex"
	if _, ok := sp.Matcher.(*SearchExpression); ok {
		kind = "expression"
	}
	return RuleDump{
		Pattern:  sp.Pattern,
		Kind:     kind,
		Fg:       sp.Style.Pair.Fg().String(),
		Bg:       sp.Style.Pair.Bg().String(),
		Attrs:    sp.Style.Attrs.String(),
		Submatch: sp.Submatch,
		Refs:     sp.Style.Pair.Refs(),
	}
}

// DumpYAML renders the effective rules as YAML.
func (e *Engine) DumpYAML() (string, error) {
	data, err := yaml.Marshal(e.Dump())
	if err != nil {
		return "", fmt.Errorf("marshal rules: %w", err)
	}
	return string(data), nil
}

// DumpText renders the effective rules as an aligned text table, one
// region block per populated region.
func (e *Engine) DumpText() string {
	dumps := e.Dump()
	if len(dumps) == 0 {
		return "no colour rules defined\n"
	}

	var b strings.Builder
	for _, rd := range dumps {
		fmt.Fprintf(&b, "%s\n", rd.Region)
		for i, rule := range rd.Rules {
			line := fmt.Sprintf("  %2d. %-30q %s on %s", i+1, rule.Pattern, rule.Fg, rule.Bg)
			if rule.Attrs != "none" {
				line += " " + rule.Attrs
			}
			if rule.Submatch > 0 {
				line += fmt.Sprintf(" (match %d)", rule.Submatch)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// LogDump writes the full rule table to the debug log. Wired as the
// engine's dump hook so every successful colour command re-publishes
// the effective state.
func LogDump(e *Engine) func() {
	return func() {
		for _, rd := range e.Dump() {
			for _, rule := range rd.Rules {
				log.Debug(log.CatRules, "dump",
					"region", rd.Region,
					"pattern", rule.Pattern,
					"kind", rule.Kind,
					"fg", rule.Fg,
					"bg", rule.Bg,
					"attrs", rule.Attrs,
					"refs", rule.Refs,
				)
			}
		}
	}
}
