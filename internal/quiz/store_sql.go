package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quizsystem/quizsystem-backend/internal/grading"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ListSubjects(ctx context.Context) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM subjects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Subject{}
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.ID, &sub.Name); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLStore) SubjectIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM subjects WHERE name=$1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSubjectNotFound
	}
	return id, err
}

func (s *SQLStore) SampleQuiz(ctx context.Context, subjectID int64) ([]QuizQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, option_a, option_b, option_c, option_d
		 FROM questions WHERE subject_id=$1 ORDER BY RANDOM() LIMIT $2`,
		subjectID, grading.QuizSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	qs := []QuizQuestion{}
	for rows.Next() {
		var q QuizQuestion
		var a, b, c, d string
		if err := rows.Scan(&q.ID, &q.Text, &a, &b, &c, &d); err != nil {
			return nil, err
		}
		q.Options = []string{a, b, c, d}
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(qs) < grading.QuizSize {
		return nil, ErrInsufficientQuestions
	}
	return qs, nil
}

func (s *SQLStore) CorrectOptions(ctx context.Context, questionIDs []int64) (map[int64]string, error) {
	keys := make(map[int64]string, len(questionIDs))
	if len(questionIDs) == 0 {
		return keys, nil
	}
	ph := make([]string, len(questionIDs))
	args := make([]any, len(questionIDs))
	for i, id := range questionIDs {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, correct_option FROM questions WHERE id IN (`+strings.Join(ph, ",")+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var opt string
		if err := rows.Scan(&id, &opt); err != nil {
			return nil, err
		}
		keys[id] = opt
	}
	return keys, rows.Err()
}

func (s *SQLStore) RecordAttempt(ctx context.Context, studentID, subjectID int64, answers []Answer, score int) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	var attemptID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO quiz_attempts (student_id, subject_id, score, attempted_at)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		studentID, subjectID, score, time.Now().Unix()).Scan(&attemptID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	for _, a := range answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO question_attempts (attempt_id, question_id, answer) VALUES ($1,$2,$3)`,
			attemptID, a.QuestionID, a.Answer); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return attemptID, nil
}

func (s *SQLStore) ListResults(ctx context.Context, studentID int64) ([]ResultRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sub.name, qa.score, qa.attempted_at
		 FROM quiz_attempts qa
		 JOIN subjects sub ON qa.subject_id = sub.id
		 WHERE qa.student_id=$1
		 ORDER BY qa.attempted_at DESC, qa.id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ResultRow{}
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(&r.Subject, &r.Score, &r.AttemptedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) SubjectGrades(ctx context.Context, subjectID int64) ([]GradeRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT st.name, sub.name, qa.score
		 FROM quiz_attempts qa
		 JOIN students st ON qa.student_id = st.id
		 JOIN subjects sub ON qa.subject_id = sub.id
		 WHERE qa.subject_id=$1
		 ORDER BY qa.id`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []GradeRow{}
	for rows.Next() {
		var g GradeRow
		if err := rows.Scan(&g.StudentName, &g.SubjectName, &g.Score); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLStore) StudentsWithAttempts(ctx context.Context, subjectID int64) ([]StudentRef, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT st.id, st.name
		 FROM students st
		 JOIN quiz_attempts qa ON st.id = qa.student_id
		 WHERE qa.subject_id=$1
		 ORDER BY st.id`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []StudentRef{}
	for rows.Next() {
		var st StudentRef
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListQuestions(ctx context.Context, subjectID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, option_a, option_b, option_c, option_d, correct_option, difficulty
		 FROM questions WHERE subject_id=$1 ORDER BY id`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectOption, &q.Difficulty); err != nil {
			return nil, err
		}
		q.SubjectID = subjectID
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) AddQuestion(ctx context.Context, q Question) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (subject_id, text, option_a, option_b, option_c, option_d, correct_option, difficulty)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		q.SubjectID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption, q.Difficulty)
	return err
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET text=$1, option_a=$2, option_b=$3, option_c=$4, option_d=$5,
		 correct_option=$6, difficulty=$7
		 WHERE id=$8 AND subject_id=$9`,
		q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption, q.Difficulty,
		q.ID, q.SubjectID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, subjectID, questionID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM questions WHERE id=$1 AND subject_id=$2`, questionID, subjectID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}
