package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizsystem/quizsystem-backend/internal/grading"
	"github.com/quizsystem/quizsystem-backend/internal/quiz"
)

type questionReq struct {
	ID            int64  `json:"id"` // update only
	SubjectID     int64  `json:"subject_id" validate:"required"`
	Text          string `json:"text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
	Difficulty    string `json:"difficulty"`
}

func (q questionReq) model() quiz.Question {
	return quiz.Question{
		ID:            q.ID,
		SubjectID:     q.SubjectID,
		Text:          q.Text,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectOption: q.CorrectOption,
		Difficulty:    q.Difficulty,
	}
}

type gradeResp struct {
	StudentName string `json:"student_name"`
	SubjectName string `json:"subject_name"`
	Score       int    `json:"score"`
	Grade       string `json:"grade"`
}

// MountInstructor mounts question management and grade listings for the
// instructor's subject.
func MountInstructor(r chi.Router, store quiz.Store) {
	r.Get("/students/{subjectID}", subjectStudentsHandler(store))
	r.Get("/questions/{subjectID}", listQuestionsHandler(store))
	r.Post("/question/add", addQuestionHandler(store))
	r.Put("/question/update", updateQuestionHandler(store))
	r.Delete("/question/delete/{subjectID}/{questionID}", deleteQuestionHandler(store))
	r.Get("/grades/{subjectID}", subjectGradesHandler(store))
}

func subjectStudentsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := urlParamInt64(r, "subjectID")
		if !ok {
			http.Error(w, "bad subject id", http.StatusBadRequest)
			return
		}
		students, err := store.StudentsWithAttempts(r.Context(), subjectID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, students)
	}
}

func listQuestionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := urlParamInt64(r, "subjectID")
		if !ok {
			http.Error(w, "bad subject id", http.StatusBadRequest)
			return
		}
		qs, err := store.ListQuestions(r.Context(), subjectID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, qs)
	}
}

func addQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "invalid question payload", http.StatusBadRequest)
			return
		}
		if err := store.AddQuestion(r.Context(), req.model()); err != nil {
			http.Error(w, "Failed to add question: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"message": "Question added successfully"})
	}
}

func updateQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionReq
		if err := decodeValid(r, &req); err != nil || req.ID == 0 {
			http.Error(w, "invalid question payload", http.StatusBadRequest)
			return
		}
		if err := store.UpdateQuestion(r.Context(), req.model()); err != nil {
			if errors.Is(err, quiz.ErrQuestionNotFound) {
				http.Error(w, "Question not found or not in your subject", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to update question: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"message": "Question updated successfully"})
	}
}

func deleteQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok1 := urlParamInt64(r, "subjectID")
		questionID, ok2 := urlParamInt64(r, "questionID")
		if !ok1 || !ok2 {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		if err := store.DeleteQuestion(r.Context(), subjectID, questionID); err != nil {
			if errors.Is(err, quiz.ErrQuestionNotFound) {
				http.Error(w, "Question not found or not in your subject", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to delete question: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"message": "Question deleted successfully"})
	}
}

func subjectGradesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := urlParamInt64(r, "subjectID")
		if !ok {
			http.Error(w, "bad subject id", http.StatusBadRequest)
			return
		}
		rows, err := store.SubjectGrades(r.Context(), subjectID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := make([]gradeResp, len(rows))
		for i, row := range rows {
			out[i] = gradeResp{
				StudentName: row.StudentName,
				SubjectName: row.SubjectName,
				Score:       row.Score,
				Grade:       grading.Letter(row.Score),
			}
		}
		writeJSON(w, out)
	}
}
