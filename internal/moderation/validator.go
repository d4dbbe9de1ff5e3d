package moderation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Rejection reasons for the structural checks. Blocklist reasons come from
// the rule set categories.
const (
	ReasonFlood = "flood/repeated characters"
	ReasonLinks = "links not allowed"
)

// Verdict is the outcome of validating one message. Validation never fails
// with an error: malformed input is just rejected input.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Category string `json:"category,omitempty"`
}

func accept() Verdict {
	return Verdict{Accepted: true}
}

func reject(reason, category string) Verdict {
	return Verdict{Reason: reason, Category: category}
}

// Validator screens message text before it reaches the engagement engine.
// The pipeline short-circuits on the first failing check: flood, links,
// then the category blocklists.
type Validator struct {
	floodThreshold int
	linkMarkers    []string
	categories     []compiledCategory
}

// NewValidator compiles a rule set into a ready validator.
func NewValidator(rs *RuleSet) (*Validator, error) {
	categories, err := rs.compile()
	if err != nil {
		return nil, err
	}
	return &Validator{
		floodThreshold: rs.FloodThreshold,
		linkMarkers:    rs.LinkMarkers,
		categories:     categories,
	}, nil
}

// MustDefault returns a validator built from the embedded rule set.
func MustDefault() *Validator {
	rs, err := DefaultRuleSet()
	if err != nil {
		panic(err)
	}
	v, err := NewValidator(rs)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate is pure and deterministic: the same text always yields the same
// verdict.
func (v *Validator) Validate(text string) Verdict {
	if repeatedRun(text) >= v.floodThreshold {
		return reject(ReasonFlood, "flood")
	}

	normalized := Normalize(text)
	raw := strings.ToLower(text)

	for _, marker := range v.linkMarkers {
		if strings.Contains(normalized, marker) || strings.Contains(raw, marker) {
			return reject(ReasonLinks, "links")
		}
	}

	for _, cat := range v.categories {
		for _, re := range cat.patterns {
			if re.MatchString(normalized) || re.MatchString(raw) {
				return reject(cat.reason, cat.name)
			}
		}
	}

	return accept()
}

// repeatedRun returns the length of the longest run of one rune.
func repeatedRun(text string) int {
	longest, run := 0, 0
	var prev rune
	for i, r := range text {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = r
	}
	return longest
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases text and strips diacritics so obfuscated spellings
// ("ót@rio", "viádo") collapse onto the blocklist forms. Locale independent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}
