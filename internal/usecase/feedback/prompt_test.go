package feedback

import (
	"strings"
	"testing"

	domainfeedback "prepmate/internal/domain/feedback"
)

func TestBuildFeedbackPromptListsExchanges(t *testing.T) {
	exchanges := []domainfeedback.Exchange{
		{Question: "Are you ready?", Answer: "Yes."},
		{Question: "Why this role?", Answer: "I enjoy the domain."},
	}

	prompt := BuildFeedbackPrompt(exchanges)

	for _, want := range []string{
		"Question 1: Are you ready?",
		"Answer 1: Yes.",
		"Question 2: Why this role?",
		"Answer 2: I enjoy the domain.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildFeedbackPromptCarriesFormatLabels(t *testing.T) {
	prompt := BuildFeedbackPrompt([]domainfeedback.Exchange{{Question: "Q", Answer: "A"}})

	for _, label := range []string{
		"Label:",
		"Question:",
		"Your Answer:",
		"Feedback:",
		"Category:",
		"Suggestions for improvement:",
		"Relevant Responses:",
		"Clarity and Structure:",
		"Professional Language:",
		"Initial Ideas:",
		"Additional Notable Aspects:",
		"Score:",
	} {
		if !strings.Contains(prompt, label) {
			t.Errorf("prompt missing output label %q", label)
		}
	}

	if strings.Contains(prompt, "*") {
		t.Error("prompt must not contain asterisks")
	}
}

func TestBuildFeedbackPromptDeterministic(t *testing.T) {
	exchanges := []domainfeedback.Exchange{{Question: "Q1", Answer: "A1"}}
	if BuildFeedbackPrompt(exchanges) != BuildFeedbackPrompt(exchanges) {
		t.Fatal("prompt rendering must be deterministic")
	}
}

func TestBuildFeedbackPromptEmptyExchangeList(t *testing.T) {
	prompt := BuildFeedbackPrompt(nil)
	if !strings.HasPrefix(prompt, promptHeader) {
		t.Error("prompt should start with the analysis header")
	}
	if strings.Contains(prompt, "Question 1:") {
		t.Error("empty exchange list must render zero question sections")
	}
	if !strings.Contains(prompt, "IMPORTANT INSTRUCTIONS") {
		t.Error("format instructions should render regardless of exchanges")
	}
}
