package quiz

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientQuestions means the subject pool is smaller than QuizSize;
	// no partial quiz is ever returned.
	ErrInsufficientQuestions = errors.New("not enough questions in subject")
	// ErrPersistenceFailed means an attempt write was rolled back.
	ErrPersistenceFailed = errors.New("failed to save quiz attempt")
	// ErrQuestionNotFound means a question write matched no row.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSubjectNotFound means no subject matched the given name.
	ErrSubjectNotFound = errors.New("subject not found")
)

type Store interface {
	ListSubjects(ctx context.Context) ([]Subject, error)
	SubjectIDByName(ctx context.Context, name string) (int64, error)

	// SampleQuiz draws exactly QuizSize distinct questions uniformly at random
	// from the subject's pool, without the correct option.
	SampleQuiz(ctx context.Context, subjectID int64) ([]QuizQuestion, error)

	// CorrectOptions returns the correct option letter for each known question
	// ID. Unknown IDs are simply absent from the map.
	CorrectOptions(ctx context.Context, questionIDs []int64) (map[int64]string, error)

	// RecordAttempt persists the attempt and all its per-question answers in
	// one transaction and returns the new attempt ID. On any failure the whole
	// write is rolled back and ErrPersistenceFailed is reported.
	RecordAttempt(ctx context.Context, studentID, subjectID int64, answers []Answer, score int) (int64, error)

	// ListResults returns a student's attempts, most recent first.
	ListResults(ctx context.Context, studentID int64) ([]ResultRow, error)
	// SubjectGrades returns every attempt in a subject with student names.
	SubjectGrades(ctx context.Context, subjectID int64) ([]GradeRow, error)
	// StudentsWithAttempts returns the distinct students who attempted a subject.
	StudentsWithAttempts(ctx context.Context, subjectID int64) ([]StudentRef, error)

	ListQuestions(ctx context.Context, subjectID int64) ([]Question, error)
	AddQuestion(ctx context.Context, q Question) error
	UpdateQuestion(ctx context.Context, q Question) error
	DeleteQuestion(ctx context.Context, subjectID, questionID int64) error
}
