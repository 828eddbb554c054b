package feedback

import (
	"regexp"
	"strings"

	domainfeedback "prepmate/internal/domain/feedback"
)

// Item is the parsed evaluation of one exchange. Category keeps the model's
// raw comma-delimited text; Categories is the same field validated against
// the fixed vocabulary, with unrecognized entries collapsed to Other.
type Item struct {
	Label       domainfeedback.Label
	Question    string
	Answer      string
	Feedback    string
	Category    string
	Categories  []domainfeedback.Category
	Suggestions string
}

// Summary is the parsed overall-performance block. Score keeps the model's
// raw text ("N/10" when the model followed instructions); ScoreValue and
// ScoreValid report the validated form.
type Summary struct {
	RelevantResponses        string
	ClarityAndStructure      string
	ProfessionalLanguage     string
	InitialIdeas             string
	AdditionalNotableAspects string
	Score                    string
	ScoreValue               int
	ScoreValid               bool
}

// Result is a full parsed feedback response.
type Result struct {
	Items   []Item
	Summary Summary
}

var blockSeparator = regexp.MustCompile(`\n{2,}`)

// Field labels the parser recognizes, lowercased. Everything else on a line
// is ignored rather than rejected.
const (
	fieldLabel       = "label"
	fieldQuestion    = "question"
	fieldAnswer      = "your answer"
	fieldFeedback    = "feedback"
	fieldCategory    = "category"
	fieldSuggestions = "suggestions for improvement"

	fieldRelevant     = "relevant responses"
	fieldClarity      = "clarity and structure"
	fieldProfessional = "professional language"
	fieldInitialIdeas = "initial ideas"
	fieldNotable      = "additional notable aspects"
	fieldScore        = "score"
)

// ParseResponse converts the model's free-text completion into structured
// feedback. It is total: any input, including the empty string or text with
// no recognizable labels, produces a well-formed Result and never an error.
//
// Blocks are separated by two or more consecutive newlines. A block carrying
// a "Label:" line becomes an Item, in order of appearance; blocks carrying
// summary field names fill the Summary (a later summary block overwrites an
// earlier one field by field). Missing fields stay empty strings.
func ParseResponse(raw string) Result {
	var result Result

	for _, block := range blockSeparator.Split(raw, -1) {
		fields := parseBlock(block)
		if len(fields) == 0 {
			continue
		}

		if _, isItem := fields[fieldLabel]; isItem {
			result.Items = append(result.Items, itemFromFields(fields))
			continue
		}
		if hasSummaryField(fields) {
			mergeSummary(&result.Summary, fields)
		}
	}

	result.Summary.ScoreValue, result.Summary.ScoreValid = domainfeedback.ParseScore(result.Summary.Score)
	return result
}

// parseBlock splits each line on the first colon and maps normalized labels
// to trimmed values. Lines without a colon, or with an unrecognized label,
// are dropped.
func parseBlock(block string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := normalizeFieldName(line[:idx])
		if !knownField(key) {
			continue
		}
		fields[key] = strings.TrimSpace(line[idx+1:])
	}
	return fields
}

func normalizeFieldName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func knownField(key string) bool {
	switch key {
	case fieldLabel, fieldQuestion, fieldAnswer, fieldFeedback, fieldCategory, fieldSuggestions,
		fieldRelevant, fieldClarity, fieldProfessional, fieldInitialIdeas, fieldNotable, fieldScore:
		return true
	}
	return false
}

func itemFromFields(fields map[string]string) Item {
	category := fields[fieldCategory]
	return Item{
		Label:       domainfeedback.NormalizeLabel(fields[fieldLabel]),
		Question:    fields[fieldQuestion],
		Answer:      fields[fieldAnswer],
		Feedback:    fields[fieldFeedback],
		Category:    category,
		Categories:  domainfeedback.ParseCategories(category),
		Suggestions: fields[fieldSuggestions],
	}
}

func hasSummaryField(fields map[string]string) bool {
	for _, key := range []string{fieldRelevant, fieldClarity, fieldProfessional, fieldInitialIdeas, fieldNotable, fieldScore} {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}

func mergeSummary(summary *Summary, fields map[string]string) {
	if v, ok := fields[fieldRelevant]; ok {
		summary.RelevantResponses = v
	}
	if v, ok := fields[fieldClarity]; ok {
		summary.ClarityAndStructure = v
	}
	if v, ok := fields[fieldProfessional]; ok {
		summary.ProfessionalLanguage = v
	}
	if v, ok := fields[fieldInitialIdeas]; ok {
		summary.InitialIdeas = v
	}
	if v, ok := fields[fieldNotable]; ok {
		summary.AdditionalNotableAspects = v
	}
	if v, ok := fields[fieldScore]; ok {
		summary.Score = v
	}
}
