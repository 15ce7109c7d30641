package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerRecordUnmarshalMultipleChoice(t *testing.T) {
	payload := `{
		"questionCollection": "multiple_choices",
		"isCorrect": true,
		"questionText": "Pick the vowels",
		"options": [
			{"label": "A", "text": "a"},
			{"label": "B", "text": "b"}
		],
		"correctAnswers": ["A"],
		"userAnswers": ["A"]
	}`

	var a AnswerRecord
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a.MultipleChoice == nil || a.Vocabulary != nil || a.Text != nil {
		t.Fatal("expected only the multiple-choice variant to be populated")
	}
	if !a.Correct() {
		t.Error("Correct() = false, want true")
	}
	if got := a.MultipleChoice.QuestionText; got != "Pick the vowels" {
		t.Errorf("QuestionText = %q", got)
	}
	if want := (LabelSet{"A"}); !reflect.DeepEqual(a.MultipleChoice.CorrectAnswers, want) {
		t.Errorf("CorrectAnswers = %v, want %v", a.MultipleChoice.CorrectAnswers, want)
	}
}

func TestAnswerRecordUnmarshalVocabulary(t *testing.T) {
	payload := `{
		"questionCollection": "vocabularies",
		"isCorrect": false,
		"word": "brittle",
		"meaning": "easily broken",
		"exampleSentence": "The ice was brittle.",
		"questionMode": "meaning_to_word",
		"correctAnswer": "brittle",
		"userAnswer": ""
	}`

	var a AnswerRecord
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a.Vocabulary == nil {
		t.Fatal("expected the vocabulary variant to be populated")
	}
	if a.Vocabulary.UserAnswer == nil || *a.Vocabulary.UserAnswer != "" {
		t.Error("empty userAnswer string should survive as a present empty string")
	}
	if a.Correct() {
		t.Error("Correct() = true, want false")
	}
}

func TestAnswerRecordUnmarshalUnknownCollectionFallsBackToText(t *testing.T) {
	payload := `{
		"questionCollection": "listening",
		"isCorrect": true,
		"questionText": "What did you hear?",
		"correctAnswer": "rain",
		"userAnswer": "rain"
	}`

	var a AnswerRecord
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a.Text == nil {
		t.Fatal("unknown collection should decode as the text variant")
	}
	if a.QuestionCollection != "listening" {
		t.Errorf("QuestionCollection = %q", a.QuestionCollection)
	}
}

func TestAnswerRecordMissingIsCorrectStaysNil(t *testing.T) {
	payload := `{
		"questionCollection": "grammars",
		"questionText": "q",
		"correctAnswer": "x",
		"userAnswer": "y"
	}`

	var a AnswerRecord
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a.IsCorrect != nil {
		t.Error("absent isCorrect should stay nil so validation can reject it")
	}
	if a.Correct() {
		t.Error("Correct() on unset isCorrect must be false")
	}
}

func TestLabelSetAcceptsMapForm(t *testing.T) {
	var s LabelSet
	if err := json.Unmarshal([]byte(`{"B": "bee", "A": "ay"}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if want := (LabelSet{"A", "B"}); !reflect.DeepEqual(s, want) {
		t.Errorf("LabelSet = %v, want sorted %v", s, want)
	}
}

func TestLabelSetRejectsScalar(t *testing.T) {
	var s LabelSet
	if err := json.Unmarshal([]byte(`42`), &s); err == nil {
		t.Fatal("scalar correctAnswers should fail to decode")
	}
}

func TestAnswerRecordMarshalFlattensVariant(t *testing.T) {
	correct := true
	a := AnswerRecord{
		QuestionCollection: CollectionVocabularies,
		IsCorrect:          &correct,
		Vocabulary: &VocabularyAnswer{
			Word:            "terse",
			Meaning:         "brief",
			ExampleSentence: "Keep it terse.",
			QuestionMode:    ModeWordToMeaning,
			CorrectAnswer:   new(string),
			UserAnswer:      new(string),
		},
	}

	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["word"] != "terse" {
		t.Errorf("word = %v, want terse", out["word"])
	}
	if out["questionCollection"] != CollectionVocabularies {
		t.Errorf("questionCollection = %v", out["questionCollection"])
	}
	if out["isCorrect"] != true {
		t.Errorf("isCorrect = %v, want true", out["isCorrect"])
	}
}

func TestAnswerListScanRoundTrip(t *testing.T) {
	correct := false
	list := AnswerList{{
		QuestionCollection: "spelling",
		IsCorrect:          &correct,
		Text: &TextAnswer{
			QuestionText:  "Spell it",
			CorrectAnswer: new(string),
			UserAnswer:    new(string),
		},
	}}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var scanned AnswerList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scanned) != 1 {
		t.Fatalf("len = %d, want 1", len(scanned))
	}
	if scanned[0].Text == nil || scanned[0].Text.QuestionText != "Spell it" {
		t.Errorf("scanned record lost its text variant: %+v", scanned[0])
	}
}

func TestAnswerListNilValue(t *testing.T) {
	var list AnswerList
	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value != "[]" {
		t.Errorf("nil list Value = %v, want empty array", value)
	}
}
