package service

import (
	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/util"
)

// ValidateAnswers checks the shape of a submitted answer set and fails fast
// on the first violation. Correctness is caller-asserted per record; this is
// a pure shape check and runs before any persistence attempt.
func ValidateAnswers(answers model.AnswerList) error {
	if len(answers) == 0 {
		return util.ValidationError("answers must be non-empty")
	}

	for i := range answers {
		if err := validateAnswer(i, &answers[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAnswer(i int, a *model.AnswerRecord) error {
	if a.QuestionCollection == "" {
		return util.ValidationError("answers[%d]: questionCollection is required", i)
	}
	if a.IsCorrect == nil {
		return util.ValidationError("answers[%d]: isCorrect must be a boolean", i)
	}

	switch a.QuestionCollection {
	case model.CollectionMultipleChoices:
		return validateMultipleChoice(i, a.MultipleChoice)
	case model.CollectionVocabularies:
		return validateVocabulary(i, a.Vocabulary)
	default:
		return validateText(i, a.Text)
	}
}

func validateMultipleChoice(i int, v *model.MultipleChoiceAnswer) error {
	if v == nil {
		return util.ValidationError("answers[%d]: malformed multiple_choices record", i)
	}
	if v.QuestionText == "" {
		return util.ValidationError("answers[%d]: questionText is required", i)
	}
	if len(v.Options) < 2 {
		return util.ValidationError("answers[%d]: options must have at least 2 items", i)
	}
	for j, opt := range v.Options {
		if !model.OptionLabels[opt.Label] {
			return util.ValidationError("answers[%d].options[%d]: label must be one of A-E", i, j)
		}
		if opt.Text == "" {
			return util.ValidationError("answers[%d].options[%d]: text is required", i, j)
		}
	}
	if len(v.CorrectAnswers) == 0 {
		return util.ValidationError("answers[%d]: correctAnswers must be non-empty", i)
	}
	for _, label := range v.CorrectAnswers {
		if !model.OptionLabels[label] {
			return util.ValidationError("answers[%d]: correctAnswers label %q must be one of A-E", i, label)
		}
	}
	// No answer is a valid answer; userAnswers may be empty.
	for _, label := range v.UserAnswers {
		if !model.OptionLabels[label] {
			return util.ValidationError("answers[%d]: userAnswers label %q must be one of A-E", i, label)
		}
	}
	return nil
}

func validateVocabulary(i int, v *model.VocabularyAnswer) error {
	if v == nil {
		return util.ValidationError("answers[%d]: malformed vocabularies record", i)
	}
	if v.Word == "" {
		return util.ValidationError("answers[%d]: word is required", i)
	}
	if v.Meaning == "" {
		return util.ValidationError("answers[%d]: meaning is required", i)
	}
	if v.ExampleSentence == "" {
		return util.ValidationError("answers[%d]: exampleSentence is required", i)
	}
	if v.QuestionMode != model.ModeWordToMeaning && v.QuestionMode != model.ModeMeaningToWord {
		return util.ValidationError("answers[%d]: questionMode must be word_to_meaning or meaning_to_word", i)
	}
	// Empty strings are allowed, but the fields must be present as strings.
	if v.CorrectAnswer == nil {
		return util.ValidationError("answers[%d]: correctAnswer must be a string", i)
	}
	if v.UserAnswer == nil {
		return util.ValidationError("answers[%d]: userAnswer must be a string", i)
	}
	return nil
}

func validateText(i int, v *model.TextAnswer) error {
	if v == nil {
		return util.ValidationError("answers[%d]: malformed answer record", i)
	}
	if v.QuestionText == "" {
		return util.ValidationError("answers[%d]: questionText is required", i)
	}
	if v.CorrectAnswer == nil {
		return util.ValidationError("answers[%d]: correctAnswer must be a string", i)
	}
	if v.UserAnswer == nil {
		return util.ValidationError("answers[%d]: userAnswer must be a string", i)
	}
	return nil
}
