package feedback

import (
	"regexp"
	"strconv"
	"strings"
)

// Label classifies one answer as a whole.
type Label string

const (
	LabelGood             Label = "GOOD"
	LabelNeedsImprovement Label = "NEEDS_IMPROVEMENT"
)

// NormalizeLabel maps the model's free-form label text onto the fixed enum.
// Matching is case-insensitive and whitespace-normalized. Anything that does
// not clearly say "good" is treated as needing improvement; an empty label
// stays empty so callers can tell a missing field from a parsed one.
func NormalizeLabel(raw string) Label {
	folded := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	switch folded {
	case "":
		return ""
	case "good":
		return LabelGood
	default:
		return LabelNeedsImprovement
	}
}

// Category is one tag from the fixed feedback vocabulary.
type Category string

const (
	CategoryFormality    Category = "Formality of Language"
	CategoryClarity      Category = "Clarity of Content"
	CategoryOrganization Category = "Logical Organization"
	CategoryConciseness  Category = "Conciseness"
	CategoryRelevance    Category = "Relevance to Question"
	CategoryCompleteness Category = "Completeness of Answer"
	CategoryOther        Category = "Other"
)

// Categories lists the vocabulary the prompt offers the model, in the order
// the prompt presents it.
var Categories = []Category{
	CategoryFormality,
	CategoryClarity,
	CategoryOrganization,
	CategoryConciseness,
	CategoryRelevance,
	CategoryCompleteness,
}

var categoriesByKey = func() map[string]Category {
	m := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		m[categoryKey(string(c))] = c
	}
	return m
}()

func categoryKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParseCategories splits a comma-separated category field and validates each
// entry against the vocabulary. Matching is case-insensitive and
// whitespace-normalized; entries outside the vocabulary collapse to
// CategoryOther, deduplicated, so a creative model never widens the tag set.
func ParseCategories(raw string) []Category {
	parts := strings.Split(raw, ",")
	out := make([]Category, 0, len(parts))
	seen := make(map[Category]struct{}, len(parts))
	for _, part := range parts {
		key := categoryKey(part)
		if key == "" {
			continue
		}
		category, ok := categoriesByKey[key]
		if !ok {
			category = CategoryOther
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	return out
}

var scorePattern = regexp.MustCompile(`^\s*(\d{1,2})\s*/\s*10\s*$`)

// ParseScore reads a summary score of the form "N/10" with N in 0..10.
// The raw text is preserved by callers either way; ok reports whether the
// model followed the requested format.
func ParseScore(raw string) (n int, ok bool) {
	m := scorePattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > 10 {
		return 0, false
	}
	return n, true
}
