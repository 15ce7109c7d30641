package service

import "testing"

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name           string
		correct, wrong int
		wantPercentage int
	}{
		{"all correct", 5, 0, 100},
		{"none correct", 0, 4, 0},
		{"two thirds rounds up", 2, 1, 67},
		{"one third rounds down", 1, 2, 33},
		{"half rounds away from zero", 1, 7, 13},
		{"single question", 1, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := answersWith(tt.correct, tt.wrong)
			stats := ComputeStats(answers)
			if stats.TotalQuestions != tt.correct+tt.wrong {
				t.Errorf("TotalQuestions = %d, want %d", stats.TotalQuestions, tt.correct+tt.wrong)
			}
			if stats.CorrectCount != tt.correct {
				t.Errorf("CorrectCount = %d, want %d", stats.CorrectCount, tt.correct)
			}
			if stats.Percentage != tt.wantPercentage {
				t.Errorf("Percentage = %d, want %d", stats.Percentage, tt.wantPercentage)
			}
		})
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.TotalQuestions != 0 || stats.CorrectCount != 0 || stats.Percentage != 0 {
		t.Errorf("empty answers should yield all zeros, got %+v", stats)
	}
}

func TestComputeStatsUnsetIsCorrect(t *testing.T) {
	answers := answersWith(1, 0)
	answers[0].IsCorrect = nil
	stats := ComputeStats(answers)
	if stats.CorrectCount != 0 {
		t.Errorf("unset isCorrect should count as incorrect, got CorrectCount = %d", stats.CorrectCount)
	}
}
