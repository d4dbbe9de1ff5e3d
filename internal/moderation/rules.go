package moderation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

//go:embed rules.json
var defaultRules []byte

// Category is a named set of blocklist patterns sharing a rejection reason.
// Patterns are matched against both the raw and the normalized (lower-cased,
// diacritics-stripped) text.
type Category struct {
	Name     string   `json:"name"`
	Reason   string   `json:"reason"`
	Patterns []string `json:"patterns"`
}

// RuleSet is the moderation configuration. It is data, not code: deployments
// can point MODERATION_RULES_PATH at an audited file to extend the blocklist
// without touching engine logic.
//
// The permitted intensifiers document a product requirement: profanity used
// for hype is allowed and must never appear in a blocklist pattern. The list
// is asserted against the compiled patterns at load time.
type RuleSet struct {
	FloodThreshold        int        `json:"flood_threshold"`
	LinkMarkers           []string   `json:"link_markers"`
	PermittedIntensifiers []string   `json:"permitted_intensifiers"`
	Categories            []Category `json:"categories"`
}

type compiledCategory struct {
	name     string
	reason   string
	patterns []*regexp.Regexp
}

func (rs *RuleSet) compile() ([]compiledCategory, error) {
	compiled := make([]compiledCategory, 0, len(rs.Categories))
	for _, cat := range rs.Categories {
		cc := compiledCategory{name: cat.Name, reason: cat.Reason}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q in category %q: %w", p, cat.Name, err)
			}
			for _, word := range rs.PermittedIntensifiers {
				if re.MatchString(word) {
					return nil, fmt.Errorf("pattern %q in category %q blocks permitted intensifier %q", p, cat.Name, word)
				}
			}
			cc.patterns = append(cc.patterns, re)
		}
		compiled = append(compiled, cc)
	}
	return compiled, nil
}

// DefaultRuleSet returns the embedded rule set.
func DefaultRuleSet() (*RuleSet, error) {
	return parseRules(defaultRules)
}

// LoadRuleSet reads a rule set from path, falling back to the embedded
// default when path is empty.
func LoadRuleSet(path string) (*RuleSet, error) {
	if path == "" {
		return DefaultRuleSet()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read moderation rules: %w", err)
	}
	return parseRules(data)
}

func parseRules(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse moderation rules: %w", err)
	}
	if rs.FloodThreshold <= 0 {
		return nil, fmt.Errorf("moderation rules: flood_threshold must be positive")
	}
	return &rs, nil
}
