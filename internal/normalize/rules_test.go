package normalize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRulesCompile(t *testing.T) {
	rules := DefaultRules()
	if len(rules) != len(defaultSpecs) {
		t.Fatalf("rules = %d, want %d", len(rules), len(defaultSpecs))
	}
	for i, r := range rules {
		if r.Pattern == nil {
			t.Errorf("rule %d has nil pattern", i)
		}
	}
}

func TestLoadRulesPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `- pattern: "teh"
  replacement: "the"
- pattern: "the end"
  replacement: "the conclusion"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(rules))
	}
	if rules[0].Replacement != "the" || rules[1].Replacement != "the conclusion" {
		t.Errorf("file order not preserved: %q, %q", rules[0].Replacement, rules[1].Replacement)
	}

	n := NewNormalizer(rules, nil)
	if got := n.CleanText("teh end"); got != "the conclusion" {
		t.Errorf("loaded table produced %q, want %q", got, "the conclusion")
	}
}

func TestLoadRulesBadPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `- pattern: "(unclosed"
  replacement: "x"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("invalid regex should fail to load")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file should error")
	}
}
