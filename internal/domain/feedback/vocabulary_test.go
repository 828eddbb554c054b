package feedback

import (
	"reflect"
	"testing"
)

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]Label{
		"Good":               LabelGood,
		"good":               LabelGood,
		"  GOOD  ":           LabelGood,
		"Needs Improvement":  LabelNeedsImprovement,
		"needs  improvement": LabelNeedsImprovement,
		"Bad":                LabelNeedsImprovement,
		"":                   Label(""),
	}
	for raw, want := range cases {
		if got := NormalizeLabel(raw); got != want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseCategoriesVocabulary(t *testing.T) {
	got := ParseCategories("Formality of Language, clarity of content,  LOGICAL   ORGANIZATION ")
	want := []Category{CategoryFormality, CategoryClarity, CategoryOrganization}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseCategoriesUnknownFallsBackToOther(t *testing.T) {
	got := ParseCategories("Conciseness, Eye Contact, Body Language")
	want := []Category{CategoryConciseness, CategoryOther}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseCategoriesEmpty(t *testing.T) {
	if got := ParseCategories(""); len(got) != 0 {
		t.Fatalf("expected no categories, got %v", got)
	}
	if got := ParseCategories(" , ,, "); len(got) != 0 {
		t.Fatalf("expected no categories for blank entries, got %v", got)
	}
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		raw string
		n   int
		ok  bool
	}{
		{"5/10", 5, true},
		{" 10 / 10 ", 10, true},
		{"0/10", 0, true},
		{"11/10", 0, false},
		{"5/5", 0, false},
		{"five out of ten", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		n, ok := ParseScore(tc.raw)
		if n != tc.n || ok != tc.ok {
			t.Errorf("ParseScore(%q) = (%d, %v), want (%d, %v)", tc.raw, n, ok, tc.n, tc.ok)
		}
	}
}
