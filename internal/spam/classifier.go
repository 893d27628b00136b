// Package spam decides whether a contact form submission is junk.
//
// The classifier is pure: it holds compiled rules and never touches the
// request, the store or the clock.
package spam

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nanostack/backend/internal/model"
)

// Reason names the rule that flagged a submission.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonHoneypot       Reason = "honeypot"
	ReasonBlockedEmail   Reason = "blocked_email"
	ReasonBlockedScript  Reason = "blocked_script"
	ReasonBlockedPattern Reason = "blocked_pattern"
)

// ScriptRange is an inclusive range of Unicode code points.
type ScriptRange struct {
	Name string
	From rune
	To   rune
}

// Contains reports whether r falls inside the range.
func (s ScriptRange) Contains(r rune) bool {
	return r >= s.From && r <= s.To
}

// Cyrillic is the U+0400–U+04FF block.
var Cyrillic = ScriptRange{Name: "cyrillic", From: 0x0400, To: 0x04FF}

// Rules is the externally supplied classifier configuration.
type Rules struct {
	// HoneypotField is the name of the hidden trap field on the form.
	HoneypotField          string
	BlockedEmailSubstrings []string
	BlockedScriptRanges    []ScriptRange
	BlockedPatterns        []string
}

// DefaultRules returns the built-in rule set used when no rules file is configured.
func DefaultRules() Rules {
	return Rules{
		HoneypotField: "website",
		BlockedEmailSubstrings: []string{
			"@mail.ru",
			"@bk.ru",
			"@list.ru",
			"@inbox.ru",
			"@yandex.",
		},
		BlockedScriptRanges: []ScriptRange{Cyrillic},
		BlockedPatterns: []string{
			`https?://\S+\.ru\b`,
			`заказать`,
			`купить`,
			`\bzakazat\b`,
			`\bkupit\b`,
			`\bseo\s+(promotion|backlinks?)\b`,
			`\bcrypto\s+invest(ment|ing)?\b`,
		},
	}
}

// Classifier applies a compiled Rules set.
type Classifier struct {
	honeypotField string
	emails        []string
	ranges        []ScriptRange
	patterns      []*regexp.Regexp
}

// NewClassifier compiles rules. Patterns are matched case-insensitively.
func NewClassifier(rules Rules) (*Classifier, error) {
	c := &Classifier{
		honeypotField: rules.HoneypotField,
		ranges:        append([]ScriptRange(nil), rules.BlockedScriptRanges...),
	}
	for _, s := range rules.BlockedEmailSubstrings {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			c.emails = append(c.emails, s)
		}
	}
	for _, r := range c.ranges {
		if r.From > r.To {
			return nil, fmt.Errorf("script range %q: from %U is after to %U", r.Name, r.From, r.To)
		}
	}
	for _, p := range rules.BlockedPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		c.patterns = append(c.patterns, re)
	}
	return c, nil
}

// HoneypotField returns the configured trap field name.
func (c *Classifier) HoneypotField() string {
	return c.honeypotField
}

// IsSpam reports whether sub should be silently dropped.
func (c *Classifier) IsSpam(sub model.ContactSubmission) bool {
	return c.Classify(sub) != ReasonNone
}

// Classify returns the first rule that matches sub, or ReasonNone.
// Rules are checked in order: honeypot, email blocklist, script ranges, patterns.
func (c *Classifier) Classify(sub model.ContactSubmission) Reason {
	if sub.Honeypot != "" {
		return ReasonHoneypot
	}

	email := strings.ToLower(sub.Email)
	for _, s := range c.emails {
		if strings.Contains(email, s) {
			return ReasonBlockedEmail
		}
	}

	if c.hasBlockedScript(sub.Message) || c.hasBlockedScript(sub.Subject) {
		return ReasonBlockedScript
	}

	for _, re := range c.patterns {
		if re.MatchString(sub.Message) || re.MatchString(sub.Subject) {
			return ReasonBlockedPattern
		}
	}
	return ReasonNone
}

func (c *Classifier) hasBlockedScript(s string) bool {
	if len(c.ranges) == 0 {
		return false
	}
	for _, r := range s {
		for _, sr := range c.ranges {
			if sr.Contains(r) {
				return true
			}
		}
	}
	return false
}
