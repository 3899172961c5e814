package fields

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/creatorwire/creatorwire/internal/contentfile"
)

// ErrRequiredField is returned when a required field is absent after
// defaulting was attempted.
var ErrRequiredField = errors.New("fields: required field missing")

// ErrUnknownContentType is returned for content types with no registered rules.
var ErrUnknownContentType = errors.New("fields: unknown content type")

// Rule describes how one metadata field is validated and normalized.
type Rule struct {
	// Required fields fail validation when absent and no default applies.
	Required bool
	// Default substitutes for absent or empty values before transforms run.
	Default string
	// Transform cleans the value; nil keeps the raw string.
	Transform Transform
}

// RuleSet maps canonical field names to their rules for one content type.
type RuleSet map[string]Rule

// Result carries the validated field map plus warnings accumulated by the
// lenient transforms. Fields not covered by a rule pass through untouched so
// the format stays forward compatible.
type Result struct {
	Fields   map[string]string
	Warnings []string
}

// Validator applies registered rule sets to raw documents. It is constructed
// once at pipeline startup and threaded through calls; there is no package
// level registry.
type Validator struct {
	rules map[string]RuleSet
}

// NewValidator builds a Validator with the default rule sets for the four
// content types.
func NewValidator() *Validator {
	return &Validator{rules: map[string]RuleSet{
		"articles":   articleRules(),
		"authors":    authorRules(),
		"categories": categoryRules(),
		"trending":   trendingRules(),
	}}
}

// Register replaces the rule set for a content type.
func (v *Validator) Register(contentType string, rules RuleSet) {
	v.rules[contentType] = rules
}

// Validate applies the content type's rules to the document fields. A
// missing required field is a hard failure; everything a transform can fix
// is fixed, with the repair recorded as a warning.
func (v *Validator) Validate(contentType string, doc *contentfile.RawDocument) (*Result, error) {
	rules, ok := v.rules[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContentType, contentType)
	}

	result := &Result{Fields: make(map[string]string, len(doc.Fields))}
	for key, value := range doc.Fields {
		result.Fields[key] = value
	}

	var missing []string
	for name, rule := range rules {
		value, present := result.Fields[name]
		if !present || strings.TrimSpace(value) == "" {
			if rule.Default != "" {
				value = rule.Default
			} else if rule.Required {
				missing = append(missing, name)
				continue
			} else {
				value = ""
			}
		}
		if rule.Transform != nil {
			cleaned, warnings := rule.Transform(value)
			value = cleaned
			for _, w := range warnings {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", name, w))
			}
		}
		result.Fields[name] = value
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrRequiredField, strings.Join(sortedCopy(missing), ", "))
	}
	return result, nil
}

func articleRules() RuleSet {
	return RuleSet{
		"title":             {Required: true},
		"author":            {Required: true},
		"category":          {Required: true},
		"excerpt":           {},
		"publish_date":      {},
		"tags":              {},
		"featured":          {Transform: LenientBool()},
		"trending":          {Transform: LenientBool()},
		"views":             {Transform: NonNegativeInt()},
		"likes":             {Transform: NonNegativeInt()},
		"comments":          {Transform: NonNegativeInt()},
		"read_time_minutes": {Transform: ReadTime()},
		"image":             {Transform: SafeURL()},
		"hero_image":        {Transform: SafeURL()},
		"thumbnail":         {Transform: SafeURL()},
		"seo_title":         {},
		"seo_description":   {},
		"mobile_title":      {},
		"mobile_excerpt":    {},
	}
}

func authorRules() RuleSet {
	return RuleSet{
		"name":      {Required: true},
		"title":     {},
		"bio":       {},
		"expertise": {},
		"location":  {},
		"twitter":   {Transform: SafeURL()},
		"linkedin":  {Transform: SafeURL()},
		"image":     {Transform: SafeURL()},
		"rating":    {Transform: ClampFloat(0, 5)},
		"is_active": {Default: "true", Transform: LenientBool()},
	}
}

func categoryRules() RuleSet {
	return RuleSet{
		"name":        {Required: true},
		"description": {},
		"color":       {Transform: PaletteColor()},
		"icon":        {},
		"sort_order":  {Default: "99", Transform: NonNegativeInt()},
		"parent":      {},
		"featured":    {Transform: LenientBool()},
	}
}

func trendingRules() RuleSet {
	return RuleSet{
		"title":              {Required: true},
		"heat_score":         {Transform: ClampInt(0, 100)},
		"growth_rate":        {Transform: LenientFloat()},
		"momentum":           {Transform: LenientFloat()},
		"hashtag":            {Transform: Hashtag()},
		"status":             {Default: "active"},
		"is_active":          {Default: "true", Transform: LenientBool()},
		"icon":               {},
		"category":           {},
		"peak_date":          {},
		"related_articles":   {},
		"mentions_youtube":   {Transform: NonNegativeInt()},
		"mentions_tiktok":    {Transform: NonNegativeInt()},
		"mentions_instagram": {Transform: NonNegativeInt()},
		"mentions_twitter":   {Transform: NonNegativeInt()},
		"mentions_twitch":    {Transform: NonNegativeInt()},
	}
}

func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
