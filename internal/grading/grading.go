// Package grading holds the fixed quiz scoring policy and the letter-grade
// step function. Both are pure; persistence lives elsewhere.
package grading

const (
	// QuizSize is the number of questions in every quiz.
	QuizSize = 5
	// PointsPerQuestion is awarded for each exact correct-option match.
	PointsPerQuestion = 20
	// MaxScore is the ceiling: QuizSize * PointsPerQuestion.
	MaxScore = QuizSize * PointsPerQuestion
)

// Answer is one submitted option letter for a question.
type Answer struct {
	QuestionID int64
	Option     string
}

// Score counts exact, case-sensitive matches between submitted option letters
// and the correct option keyed by question ID. An answer for an unknown
// question scores zero rather than failing; missing data is wrong, not fatal.
func Score(answers []Answer, correct map[int64]string) int {
	score := 0
	for _, a := range answers {
		if key, ok := correct[a.QuestionID]; ok && a.Option == key {
			score += PointsPerQuestion
		}
	}
	return score
}

// Letter maps a numeric score to its letter grade. Bands are inclusive on
// their lower bound: A>=90, B>=70, C>=50, D>=30, else F.
func Letter(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	case score >= 30:
		return "D"
	default:
		return "F"
	}
}
