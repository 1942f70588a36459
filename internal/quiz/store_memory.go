package quiz

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/quizsystem/quizsystem-backend/internal/grading"
)

// MemoryStore is an in-memory Store for tests and offline demos.
type MemoryStore struct {
	mu        sync.RWMutex
	subjects  map[int64]string
	students  map[int64]string
	questions map[int64]Question
	attempts  []memAttempt
	nextSubID int64
	nextQID   int64
	nextAID   int64
}

type memAttempt struct {
	id          int64
	studentID   int64
	subjectID   int64
	score       int
	attemptedAt int64
	answers     []Answer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subjects:  map[int64]string{},
		students:  map[int64]string{},
		questions: map[int64]Question{},
	}
}

// PutSubject registers a subject and returns its ID.
func (m *MemoryStore) PutSubject(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSubID++
	m.subjects[m.nextSubID] = name
	return m.nextSubID
}

// PutStudent registers a student for name joins in grade listings.
func (m *MemoryStore) PutStudent(id int64, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[id] = name
}

func (m *MemoryStore) ListSubjects(context.Context) ([]Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Subject, 0, len(m.subjects))
	for id, name := range m.subjects {
		out = append(out, Subject{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) SubjectIDByName(_ context.Context, name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, n := range m.subjects {
		if n == name {
			return id, nil
		}
	}
	return 0, ErrSubjectNotFound
}

func (m *MemoryStore) SampleQuiz(_ context.Context, subjectID int64) ([]QuizQuestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pool := make([]Question, 0)
	for _, q := range m.questions {
		if q.SubjectID == subjectID {
			pool = append(pool, q)
		}
	}
	if len(pool) < grading.QuizSize {
		return nil, ErrInsufficientQuestions
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	out := make([]QuizQuestion, grading.QuizSize)
	for i, q := range pool[:grading.QuizSize] {
		out[i] = QuizQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD},
		}
	}
	return out, nil
}

func (m *MemoryStore) CorrectOptions(_ context.Context, questionIDs []int64) (map[int64]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make(map[int64]string, len(questionIDs))
	for _, id := range questionIDs {
		if q, ok := m.questions[id]; ok {
			keys[id] = q.CorrectOption
		}
	}
	return keys, nil
}

func (m *MemoryStore) RecordAttempt(_ context.Context, studentID, subjectID int64, answers []Answer, score int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// mirror the relational FK: an unknown question fails the whole write
	for _, a := range answers {
		if _, ok := m.questions[a.QuestionID]; !ok {
			return 0, ErrPersistenceFailed
		}
	}
	m.nextAID++
	m.attempts = append(m.attempts, memAttempt{
		id:          m.nextAID,
		studentID:   studentID,
		subjectID:   subjectID,
		score:       score,
		attemptedAt: time.Now().Unix(),
		answers:     append([]Answer(nil), answers...),
	})
	return m.nextAID, nil
}

func (m *MemoryStore) ListResults(_ context.Context, studentID int64) ([]ResultRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []ResultRow{}
	for i := len(m.attempts) - 1; i >= 0; i-- {
		a := m.attempts[i]
		if a.studentID != studentID {
			continue
		}
		out = append(out, ResultRow{Subject: m.subjects[a.subjectID], Score: a.score, AttemptedAt: a.attemptedAt})
	}
	return out, nil
}

func (m *MemoryStore) SubjectGrades(_ context.Context, subjectID int64) ([]GradeRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []GradeRow{}
	for _, a := range m.attempts {
		if a.subjectID != subjectID {
			continue
		}
		out = append(out, GradeRow{
			StudentName: m.students[a.studentID],
			SubjectName: m.subjects[a.subjectID],
			Score:       a.score,
		})
	}
	return out, nil
}

func (m *MemoryStore) StudentsWithAttempts(_ context.Context, subjectID int64) ([]StudentRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[int64]bool{}
	out := []StudentRef{}
	for _, a := range m.attempts {
		if a.subjectID != subjectID || seen[a.studentID] {
			continue
		}
		seen[a.studentID] = true
		out = append(out, StudentRef{ID: a.studentID, Name: m.students[a.studentID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListQuestions(_ context.Context, subjectID int64) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Question{}
	for _, q := range m.questions {
		if q.SubjectID == subjectID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) AddQuestion(_ context.Context, q Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextQID++
	q.ID = m.nextQID
	m.questions[q.ID] = q
	return nil
}

func (m *MemoryStore) UpdateQuestion(_ context.Context, q Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.questions[q.ID]
	if !ok || cur.SubjectID != q.SubjectID {
		return ErrQuestionNotFound
	}
	m.questions[q.ID] = q
	return nil
}

func (m *MemoryStore) DeleteQuestion(_ context.Context, subjectID, questionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[questionID]
	if !ok || q.SubjectID != subjectID {
		return ErrQuestionNotFound
	}
	delete(m.questions, questionID)
	return nil
}
