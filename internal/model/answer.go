package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Question collection tags carried by submitted answers. Any other tag
// (grammars, listening, spelling, ...) falls back to the text variant.
const (
	CollectionMultipleChoices = "multiple_choices"
	CollectionVocabularies    = "vocabularies"
)

// Vocabulary question modes.
const (
	ModeWordToMeaning = "word_to_meaning"
	ModeMeaningToWord = "meaning_to_word"
)

// OptionLabels is the fixed label alphabet for multiple-choice options.
var OptionLabels = map[string]bool{"A": true, "B": true, "C": true, "D": true, "E": true}

// AnswerOption is one selectable option of a multiple-choice question.
type AnswerOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// LabelSet is a set of option labels. Clients send it either as a plain
// sequence ["A","B"] or as a mapping whose keys are labels {"A": "..."};
// both forms normalize to a sorted label slice.
type LabelSet []string

func (s *LabelSet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err == nil {
		*s = labels
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("correctAnswers must be a sequence or a label map")
	}
	labels = make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	*s = labels
	return nil
}

// MultipleChoiceAnswer is the multiple_choices variant payload.
type MultipleChoiceAnswer struct {
	QuestionText   string         `json:"questionText"`
	Options        []AnswerOption `json:"options"`
	CorrectAnswers LabelSet       `json:"correctAnswers"`
	UserAnswers    []string       `json:"userAnswers"`
}

// VocabularyAnswer is the vocabularies variant payload. CorrectAnswer and
// UserAnswer may be empty strings but must be present as strings.
type VocabularyAnswer struct {
	Word            string  `json:"word"`
	Meaning         string  `json:"meaning"`
	ExampleSentence string  `json:"exampleSentence"`
	QuestionMode    string  `json:"questionMode"`
	CorrectAnswer   *string `json:"correctAnswer"`
	UserAnswer      *string `json:"userAnswer"`
}

// TextAnswer is the default variant for grammar, listening, spelling and any
// other collection tag.
type TextAnswer struct {
	QuestionText  string  `json:"questionText"`
	CorrectAnswer *string `json:"correctAnswer"`
	UserAnswer    *string `json:"userAnswer"`
}

// AnswerRecord is the tagged union over questionCollection. Exactly one
// variant pointer is populated; IsCorrect is caller-asserted on every record
// and never recomputed server-side.
type AnswerRecord struct {
	QuestionCollection string `json:"questionCollection"`
	IsCorrect          *bool  `json:"isCorrect"`

	MultipleChoice *MultipleChoiceAnswer `json:"-"`
	Vocabulary     *VocabularyAnswer     `json:"-"`
	Text           *TextAnswer           `json:"-"`
}

// Correct reports the caller-asserted correctness, false when unset.
func (a *AnswerRecord) Correct() bool {
	return a.IsCorrect != nil && *a.IsCorrect
}

func (a *AnswerRecord) UnmarshalJSON(data []byte) error {
	var head struct {
		QuestionCollection string `json:"questionCollection"`
		IsCorrect          *bool  `json:"isCorrect"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	a.QuestionCollection = head.QuestionCollection
	a.IsCorrect = head.IsCorrect
	a.MultipleChoice = nil
	a.Vocabulary = nil
	a.Text = nil

	switch head.QuestionCollection {
	case CollectionMultipleChoices:
		var v MultipleChoiceAnswer
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		a.MultipleChoice = &v
	case CollectionVocabularies:
		var v VocabularyAnswer
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		a.Vocabulary = &v
	default:
		var v TextAnswer
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		a.Text = &v
	}
	return nil
}

func (a AnswerRecord) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"questionCollection": a.QuestionCollection,
		"isCorrect":          a.IsCorrect,
	}
	merge := func(v interface{}) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return err
		}
		for k, val := range fields {
			out[k] = val
		}
		return nil
	}

	var err error
	switch {
	case a.MultipleChoice != nil:
		err = merge(a.MultipleChoice)
	case a.Vocabulary != nil:
		err = merge(a.Vocabulary)
	case a.Text != nil:
		err = merge(a.Text)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// AnswerList is the answers column, stored as JSON.
type AnswerList []AnswerRecord

func (l AnswerList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *AnswerList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
