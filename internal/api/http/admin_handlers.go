package http

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizsystem/quizsystem-backend/internal/auth"
)

// defaultInstructorPassword seeds instructor accounts created without an
// explicit credential; admins rotate it via the password endpoint.
const defaultInstructorPassword = "Admin@123"

type studentCreateReq struct {
	ID       int64  `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password"`
}

type instructorCreateReq struct {
	ID          int64  `json:"id"` // optional, assigned when zero
	Name        string `json:"name" validate:"required"`
	SubjectName string `json:"subject_name" validate:"required"`
	Password    string `json:"password"`
}

type passwordUpdateReq struct {
	ID          int64  `json:"id" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type studentView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type instructorView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

// MountAdmin mounts account administration. These are single-table reads and
// writes over the pooled handle, in the style of the rest of the API.
func MountAdmin(r chi.Router, db *sql.DB, verifier auth.CredentialVerifier, defaultStudentPassword string) {
	r.Get("/students", listStudentsHandler(db))
	r.Post("/student/add", addStudentHandler(db, verifier, defaultStudentPassword))
	r.Delete("/student/delete/{studentID}", deleteAccountHandler(db, "students", "studentID", "Student expelled successfully", "Student not found"))
	r.Put("/student/password", updatePasswordHandler(db, "students", verifier, "Student not found"))
	r.Get("/instructors", listInstructorsHandler(db))
	r.Post("/instructor/add", addInstructorHandler(db, verifier))
	r.Delete("/instructor/delete/{instructorID}", deleteAccountHandler(db, "instructors", "instructorID", "Instructor removed successfully", "Instructor not found"))
	r.Put("/instructor/password", updatePasswordHandler(db, "instructors", verifier, "Instructor not found"))
}

func listStudentsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(), `SELECT id, name FROM students ORDER BY id`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		out := []studentView{}
		for rows.Next() {
			var s studentView
			if err := rows.Scan(&s.ID, &s.Name); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, s)
		}
		writeJSON(w, out)
	}
}

func addStudentHandler(db *sql.DB, verifier auth.CredentialVerifier, defaultPassword string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req studentCreateReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "id and name required", http.StatusBadRequest)
			return
		}
		if req.Password == "" {
			req.Password = defaultPassword
		}
		stored, err := verifier.Hash(req.Password)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := db.ExecContext(r.Context(),
			`INSERT INTO students (id, name, password) VALUES ($1,$2,$3)`,
			req.ID, req.Name, stored); err != nil {
			http.Error(w, "Failed to add student: "+err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]string{"message": "Student added successfully"})
	}
}

func listInstructorsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(),
			`SELECT i.id, i.name, s.name
			 FROM instructors i
			 JOIN subjects s ON i.subject_id = s.id
			 ORDER BY i.id`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		out := []instructorView{}
		for rows.Next() {
			var v instructorView
			if err := rows.Scan(&v.ID, &v.Name, &v.Subject); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, v)
		}
		writeJSON(w, out)
	}
}

func addInstructorHandler(db *sql.DB, verifier auth.CredentialVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req instructorCreateReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "name and subject_name required", http.StatusBadRequest)
			return
		}
		var subjectID int64
		err := db.QueryRowContext(r.Context(),
			`SELECT id FROM subjects WHERE name=$1`, req.SubjectName).Scan(&subjectID)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Invalid course", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if req.Password == "" {
			req.Password = defaultInstructorPassword
		}
		stored, err := verifier.Hash(req.Password)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if req.ID != 0 {
			_, err = db.ExecContext(r.Context(),
				`INSERT INTO instructors (id, name, subject_id, password) VALUES ($1,$2,$3,$4)`,
				req.ID, req.Name, subjectID, stored)
		} else {
			_, err = db.ExecContext(r.Context(),
				`INSERT INTO instructors (name, subject_id, password) VALUES ($1,$2,$3)`,
				req.Name, subjectID, stored)
		}
		if err != nil {
			http.Error(w, "Failed to add instructor: "+err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]string{"message": "Instructor added successfully"})
	}
}

func deleteAccountHandler(db *sql.DB, table, param, okMsg, missingMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlParamInt64(r, param)
		if !ok {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		res, err := db.ExecContext(r.Context(), `DELETE FROM `+table+` WHERE id=$1`, id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			http.Error(w, missingMsg, http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"message": okMsg})
	}
}

func updatePasswordHandler(db *sql.DB, table string, verifier auth.CredentialVerifier, missingMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordUpdateReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "id and new_password required", http.StatusBadRequest)
			return
		}
		stored, err := verifier.Hash(req.NewPassword)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		res, err := db.ExecContext(r.Context(),
			`UPDATE `+table+` SET password=$1 WHERE id=$2`, stored, req.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			http.Error(w, missingMsg, http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"message": "Password updated successfully"})
	}
}
