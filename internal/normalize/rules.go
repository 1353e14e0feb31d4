package normalize

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule is one case-insensitive pattern→replacement correction for a known
// OCR misread. Rules live in an explicit ordered table, applied single-pass
// in table order: a rule may re-match text produced by an earlier rule only
// if it comes later in the table. No fixed-point iteration.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

type ruleSpec struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

func compileRule(spec ruleSpec) (Rule, error) {
	re, err := regexp.Compile("(?i)" + spec.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", spec.Pattern, err)
	}
	return Rule{Pattern: re, Replacement: spec.Replacement}, nil
}

// defaultSpecs reproduces the correction table the corpus was built with.
// Order matters and is part of the contract.
var defaultSpecs = []ruleSpec{
	{`Osw[1i]ald`, "Oswald"},
	{`Harve[v|y]`, "Harvey"},
	{`Fidel Casto`, "Fidel Castro"},
	{`J\.F\.K\.?`, "John F. Kennedy"},
	{`K\.G\.B\.?`, "KGB"},
	{`C\.I\.A\.?`, "CIA"},
	{`F\.B\.I\.?`, "FBI"},
	{`U\.S\.S\.R\.?`, "USSR"},
	{`Mexic0`, "Mexico"},
	{`Dall as`, "Dallas"},
	{`Kenned[v|y]`, "Kennedy"},
}

// DefaultRules returns the built-in ordered correction table.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultSpecs))
	for i, spec := range defaultSpecs {
		r, err := compileRule(spec)
		if err != nil {
			// the built-in table is covered by tests; a bad entry is a bug
			panic(err)
		}
		rules[i] = r
	}
	return rules
}

// LoadRules reads an ordered correction table from a YAML file, a list of
// {pattern, replacement} entries. File order is preserved.
func LoadRules(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var specs []ruleSpec
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		r, err := compileRule(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}
