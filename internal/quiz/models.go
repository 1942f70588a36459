package quiz

type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Question struct {
	ID            int64  `json:"id"`
	SubjectID     int64  `json:"subject_id,omitempty"`
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"` // one of A-D
	Difficulty    string `json:"difficulty"`
}

// QuizQuestion is the student-facing view of a question. The correct option
// is withheld from the client.
type QuizQuestion struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"` // A, B, C, D in order
}

// Answer is the option letter a student chose for one question.
type Answer struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

// ResultRow is one persisted attempt joined with its subject name.
type ResultRow struct {
	Subject     string
	Score       int
	AttemptedAt int64 // unix seconds
}

// GradeRow is one attempt in a subject, for instructor dashboards.
type GradeRow struct {
	StudentName string
	SubjectName string
	Score       int
}

// StudentRef identifies a student who has attempted a quiz in a subject.
type StudentRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
