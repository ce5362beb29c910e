package model

import (
	"fmt"
	"sort"
	"strings"
)

// QuestionCategory groups condition questions on the assessment form.
type QuestionCategory string

const (
	CategorySecurity      QuestionCategory = "security"
	CategoryScreen        QuestionCategory = "screen"
	CategoryBody          QuestionCategory = "body"
	CategoryFunctionality QuestionCategory = "functionality"
	CategoryAccessories   QuestionCategory = "accessories"
)

// ParseQuestionCategory validates a category tag.
func ParseQuestionCategory(s string) (QuestionCategory, error) {
	switch c := QuestionCategory(s); c {
	case CategorySecurity, CategoryScreen, CategoryBody, CategoryFunctionality, CategoryAccessories:
		return c, nil
	}
	return "", fmt.Errorf("invalid question category: %q", s)
}

// ConditionOption is one selectable answer. Deduction is in percentage points
// of the base value; IsRejection forces rejection whatever the score.
type ConditionOption struct {
	value       string
	label       string
	deduction   int
	isRejection bool
}

// NewConditionOption validates an option record.
func NewConditionOption(value, label string, deduction int, isRejection bool) (ConditionOption, error) {
	if strings.TrimSpace(value) == "" {
		return ConditionOption{}, fmt.Errorf("option value is required")
	}
	if strings.TrimSpace(label) == "" {
		return ConditionOption{}, fmt.Errorf("option %q: label is required", value)
	}
	if deduction < 0 || deduction > 100 {
		return ConditionOption{}, fmt.Errorf("option %q: deduction must be between 0 and 100, got %d", value, deduction)
	}
	return ConditionOption{value: value, label: label, deduction: deduction, isRejection: isRejection}, nil
}

func (o ConditionOption) Value() string     { return o.value }
func (o ConditionOption) Label() string     { return o.label }
func (o ConditionOption) Deduction() int    { return o.deduction }
func (o ConditionOption) IsRejection() bool { return o.isRejection }

// ConditionQuestion is immutable reference data maintained by an administrator.
type ConditionQuestion struct {
	id        string
	text      string
	category  QuestionCategory
	options   []ConditionOption
	required  bool
	critical  bool
	sortOrder int
}

// NewConditionQuestion validates a question and its options. Option values
// must be unique within the question.
func NewConditionQuestion(
	id, text string,
	category QuestionCategory,
	options []ConditionOption,
	required, critical bool,
	sortOrder int,
) (ConditionQuestion, error) {
	if strings.TrimSpace(id) == "" {
		return ConditionQuestion{}, fmt.Errorf("question id is required")
	}
	if strings.TrimSpace(text) == "" {
		return ConditionQuestion{}, fmt.Errorf("question %q: text is required", id)
	}
	if _, err := ParseQuestionCategory(string(category)); err != nil {
		return ConditionQuestion{}, fmt.Errorf("question %q: %w", id, err)
	}
	if len(options) == 0 {
		return ConditionQuestion{}, fmt.Errorf("question %q: at least one option is required", id)
	}
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if o.value == "" {
			return ConditionQuestion{}, fmt.Errorf("question %q: option has no value", id)
		}
		if _, dup := seen[o.value]; dup {
			return ConditionQuestion{}, fmt.Errorf("question %q: duplicate option value %q", id, o.value)
		}
		seen[o.value] = struct{}{}
	}

	opts := make([]ConditionOption, len(options))
	copy(opts, options)

	return ConditionQuestion{
		id:        id,
		text:      text,
		category:  category,
		options:   opts,
		required:  required,
		critical:  critical,
		sortOrder: sortOrder,
	}, nil
}

func (q ConditionQuestion) ID() string                 { return q.id }
func (q ConditionQuestion) Text() string               { return q.text }
func (q ConditionQuestion) Category() QuestionCategory { return q.category }
func (q ConditionQuestion) Required() bool             { return q.required }
func (q ConditionQuestion) Critical() bool             { return q.critical }
func (q ConditionQuestion) SortOrder() int             { return q.sortOrder }

// Options returns a copy of the ordered options.
func (q ConditionQuestion) Options() []ConditionOption {
	out := make([]ConditionOption, len(q.options))
	copy(out, q.options)
	return out
}

// Option resolves an option by value.
func (q ConditionQuestion) Option(value string) (ConditionOption, bool) {
	for _, o := range q.options {
		if o.value == value {
			return o, true
		}
	}
	return ConditionOption{}, false
}

// SortQuestions orders questions by sort order, then id.
func SortQuestions(questions []ConditionQuestion) {
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].sortOrder != questions[j].sortOrder {
			return questions[i].sortOrder < questions[j].sortOrder
		}
		return questions[i].id < questions[j].id
	})
}

// MissingRequired returns the ids of required questions with no answer.
func MissingRequired(questions []ConditionQuestion, answers map[string]string) []string {
	var missing []string
	for _, q := range questions {
		if !q.required {
			continue
		}
		if v, ok := answers[q.id]; !ok || v == "" {
			missing = append(missing, q.id)
		}
	}
	return missing
}
