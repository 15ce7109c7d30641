package service

import (
	"math"

	"lingo_quiz_backend/internal/model"
)

// ScoreStats are the derived statistics stored on a result. They are a pure
// function of the answers array and never independently settable.
type ScoreStats struct {
	TotalQuestions int `json:"totalQuestions"`
	CorrectCount   int `json:"correctCount"`
	Percentage     int `json:"percentage"`
}

// ComputeStats reduces a validated answer set to its aggregate statistics.
// Percentage uses half-away-from-zero rounding. The zero guard is defensive
// only: the validator already rejects empty answer sets.
func ComputeStats(answers model.AnswerList) ScoreStats {
	stats := ScoreStats{TotalQuestions: len(answers)}
	for i := range answers {
		if answers[i].Correct() {
			stats.CorrectCount++
		}
	}
	if stats.TotalQuestions > 0 {
		stats.Percentage = int(math.Round(float64(stats.CorrectCount) / float64(stats.TotalQuestions) * 100))
	}
	return stats
}
