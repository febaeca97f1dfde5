// Package text rewrites content fields during transfer: absolute links back
// to the source site, plus whatever literal replacements the run configures.
package text

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Rule defines a single literal replacement applied to transferred content.
type Rule struct {
	// From is the text to replace
	From string

	// To is the replacement text
	To string
}

// Result contains the outcome of rewriting one content field.
type Result struct {
	// Content is the field after all rules ran
	Content string

	// Modified indicates if any replacements were made
	Modified bool

	// Replacements is the number of replacements made
	Replacements int
}

// 🔄 Rewriter applies an ordered rule list to content fields. Rules run in
// the order given, each over the output of the previous one.
type Rewriter struct {
	rules []Rule
}

// 🏭 NewRewriter creates a Rewriter over the given rules.
func NewRewriter(rules ...Rule) *Rewriter {
	return &Rewriter{rules: rules}
}

// Append adds rules to the end of the list.
func (r *Rewriter) Append(rules ...Rule) {
	r.rules = append(r.rules, rules...)
}

// Empty reports whether the rewriter has no rules at all.
func (r *Rewriter) Empty() bool {
	return len(r.rules) == 0
}

// 🔄 Rewrite runs every rule over content and reports what changed.
func (r *Rewriter) Rewrite(content string) Result {
	result := Result{Content: content}

	current := content
	for _, rule := range r.rules {
		// Skip empty rules
		if rule.From == "" {
			continue
		}

		next := strings.ReplaceAll(current, rule.From, rule.To)
		if next != current {
			result.Modified = true
			result.Replacements += strings.Count(current, rule.From)
		}
		current = next
	}

	result.Content = current
	return result
}

// RewriteString is Rewrite for callers that only want the text back.
func (r *Rewriter) RewriteString(content string) string {
	return r.Rewrite(content).Content
}

// ValidateRules checks that all rules are valid.
func ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.From == "" {
			return errors.Errorf("rule %d: from is required", i)
		}
	}
	return nil
}

// 🔗 BaseURLRule builds the implicit rule pointing source-site links at the
// destination. Both sides are normalized to no trailing slash so the rule
// matches the way WordPress emits permalinks.
func BaseURLRule(sourceBase, destBase string) Rule {
	return Rule{
		From: strings.TrimRight(sourceBase, "/"),
		To:   strings.TrimRight(destBase, "/"),
	}
}

// TODO(dr.methodical): 🔗 Rewrite JSON-escaped URLs inside Gutenberg block comments
