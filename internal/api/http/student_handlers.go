package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizsystem/quizsystem-backend/internal/grading"
	"github.com/quizsystem/quizsystem-backend/internal/quiz"
)

type submitReq struct {
	StudentID int64         `json:"student_id" validate:"required"`
	SubjectID int64         `json:"subject_id" validate:"required"`
	Answers   []quiz.Answer `json:"answers" validate:"required"`
}

type submitResp struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

type resultResp struct {
	Subject string `json:"subject"`
	Score   int    `json:"score"`
	Grade   string `json:"grade"`
	Date    string `json:"date"`
}

// MountStudent mounts the student quiz flow: subject listing, quiz fetch,
// submission, and per-student results.
func MountStudent(r chi.Router, store quiz.Store) {
	r.Get("/subjects", listSubjectsHandler(store))
	r.Get("/quiz/{subjectID}", getQuizHandler(store))
	r.Post("/quiz/submit", submitQuizHandler(store))
	r.Get("/results/{studentID}", getResultsHandler(store))
}

func listSubjectsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := store.ListSubjects(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, subs)
	}
}

func getQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := urlParamInt64(r, "subjectID")
		if !ok {
			http.Error(w, "bad subject id", http.StatusBadRequest)
			return
		}
		qs, err := store.SampleQuiz(r.Context(), subjectID)
		if err != nil {
			if errors.Is(err, quiz.ErrInsufficientQuestions) {
				http.Error(w, "Not enough questions in database", http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

// submitQuizHandler scores the submission against current question data, then
// persists the attempt and its answers as one unit.
func submitQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "bad submission", http.StatusBadRequest)
			return
		}

		ids := make([]int64, len(req.Answers))
		graded := make([]grading.Answer, len(req.Answers))
		for i, a := range req.Answers {
			ids[i] = a.QuestionID
			graded[i] = grading.Answer{QuestionID: a.QuestionID, Option: a.Answer}
		}
		keys, err := store.CorrectOptions(r.Context(), ids)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		score := grading.Score(graded, keys)

		if _, err := store.RecordAttempt(r.Context(), req.StudentID, req.SubjectID, req.Answers, score); err != nil {
			http.Error(w, "Failed to save quiz attempt: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, submitResp{Score: score, Total: grading.MaxScore})
	}
}

func getResultsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID, ok := urlParamInt64(r, "studentID")
		if !ok {
			http.Error(w, "bad student id", http.StatusBadRequest)
			return
		}
		rows, err := store.ListResults(r.Context(), studentID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := make([]resultResp, len(rows))
		for i, row := range rows {
			out[i] = resultResp{
				Subject: row.Subject,
				Score:   row.Score,
				Grade:   grading.Letter(row.Score),
				Date:    time.Unix(row.AttemptedAt, 0).Format("2006-01-02 15:04:05"),
			}
		}
		writeJSON(w, out)
	}
}
