package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/quizsystem/quizsystem-backend/internal/api/http"
	"github.com/quizsystem/quizsystem-backend/internal/auth"
	"github.com/quizsystem/quizsystem-backend/internal/db"
	"github.com/quizsystem/quizsystem-backend/internal/quiz"
)

const defaultPassword = "Student@123"

func newTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })

	verifier := auth.PlainVerifier{}
	gate := auth.NewGate(auth.NewSQLStore(dbh), verifier, defaultPassword)
	store := quiz.NewSQLStore(dbh)

	r := chi.NewRouter()
	r.Route("/api", func(ar chi.Router) {
		ar.Route("/auth", func(rr chi.Router) { api.MountAuth(rr, gate) })
		ar.Route("/student", func(rr chi.Router) { api.MountStudent(rr, store) })
		ar.Route("/instructor", func(rr chi.Router) { api.MountInstructor(rr, store) })
		ar.Route("/admin", func(rr chi.Router) { api.MountAdmin(rr, dbh, verifier, defaultPassword) })
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, dbh
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func seedSubjectWithQuestions(t *testing.T, dbh *sql.DB, subject string, n int) (int64, []int64) {
	t.Helper()
	var subjectID int64
	if err := dbh.QueryRow(`INSERT INTO subjects (name) VALUES ($1) RETURNING id`, subject).Scan(&subjectID); err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		if err := dbh.QueryRow(
			`INSERT INTO questions (subject_id, text, option_a, option_b, option_c, option_d, correct_option, difficulty)
			 VALUES ($1,$2,'1','2','3','4','A','easy') RETURNING id`,
			subjectID, fmt.Sprintf("question %d", i)).Scan(&ids[i]); err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}
	return subjectID, ids
}

func TestStudentLoginLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	loginURL := srv.URL + "/api/auth/login/student"

	// absent id, non-default password: not eligible to self-register
	resp := postJSON(t, loginURL, map[string]any{"id": 1000, "password": "wrong", "name": "Bob"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("ineligible login status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	// first login with the default password registers the account
	resp = postJSON(t, loginURL, map[string]any{"id": 999, "password": defaultPassword, "name": "Ada"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("registration login status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}
	decodeBody(t, resp, &body)
	if body.ID != 999 || body.Name != "Ada" || body.Role != "student" {
		t.Fatalf("unexpected login body: %+v", body)
	}

	// now the id exists: a different password must be rejected
	resp = postJSON(t, loginURL, map[string]any{"id": 999, "password": "different"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	// and the original credential still works
	resp = postJSON(t, loginURL, map[string]any{"id": 999, "password": defaultPassword})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("repeat login status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestQuizFlow(t *testing.T) {
	srv, dbh := newTestServer(t)
	subjectID, qids := seedSubjectWithQuestions(t, dbh, "Math", 6)
	if _, err := dbh.Exec(`INSERT INTO students (id, name, password) VALUES (1,'Ada',$1)`, defaultPassword); err != nil {
		t.Fatal(err)
	}

	// fetch a quiz: exactly 5 questions, no correct option leaked
	resp, err := http.Get(fmt.Sprintf("%s/api/student/quiz/%d", srv.URL, subjectID))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quiz status = %d", resp.StatusCode)
	}
	var raw []map[string]any
	decodeBody(t, resp, &raw)
	if len(raw) != 5 {
		t.Fatalf("quiz size = %d, want 5", len(raw))
	}
	for _, q := range raw {
		if _, leaked := q["correct_option"]; leaked {
			t.Fatal("correct option leaked to the client")
		}
		if opts, ok := q["options"].([]any); !ok || len(opts) != 4 {
			t.Fatalf("bad options payload: %v", q["options"])
		}
	}

	// submit 3 correct, 2 wrong: 60 points
	answers := []map[string]any{
		{"question_id": qids[0], "answer": "A"},
		{"question_id": qids[1], "answer": "A"},
		{"question_id": qids[2], "answer": "A"},
		{"question_id": qids[3], "answer": "B"},
		{"question_id": qids[4], "answer": "C"},
	}
	resp = postJSON(t, srv.URL+"/api/student/quiz/submit", map[string]any{
		"student_id": 1, "subject_id": subjectID, "answers": answers,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d", resp.StatusCode)
	}
	var result struct {
		Score int `json:"score"`
		Total int `json:"total"`
	}
	decodeBody(t, resp, &result)
	if result.Score != 60 || result.Total != 100 {
		t.Fatalf("result = %+v, want score 60 total 100", result)
	}

	// results listing carries the derived letter grade
	resp, err = http.Get(srv.URL + "/api/student/results/1")
	if err != nil {
		t.Fatal(err)
	}
	var results []struct {
		Subject string `json:"subject"`
		Score   int    `json:"score"`
		Grade   string `json:"grade"`
		Date    string `json:"date"`
	}
	decodeBody(t, resp, &results)
	if len(results) != 1 {
		t.Fatalf("results rows = %d, want 1", len(results))
	}
	if results[0].Score != 60 || results[0].Grade != "C" || results[0].Subject != "Math" {
		t.Fatalf("unexpected result row: %+v", results[0])
	}
	if results[0].Date == "" {
		t.Fatal("result date missing")
	}

	// instructor grade view over the same attempt
	resp, err = http.Get(fmt.Sprintf("%s/api/instructor/grades/%d", srv.URL, subjectID))
	if err != nil {
		t.Fatal(err)
	}
	var grades []struct {
		StudentName string `json:"student_name"`
		SubjectName string `json:"subject_name"`
		Score       int    `json:"score"`
		Grade       string `json:"grade"`
	}
	decodeBody(t, resp, &grades)
	if len(grades) != 1 || grades[0].StudentName != "Ada" || grades[0].Grade != "C" {
		t.Fatalf("unexpected grades: %+v", grades)
	}
}

func TestQuizInsufficientQuestions(t *testing.T) {
	srv, dbh := newTestServer(t)
	subjectID, _ := seedSubjectWithQuestions(t, dbh, "History", 4)

	resp, err := http.Get(fmt.Sprintf("%s/api/student/quiz/%d", srv.URL, subjectID))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestInstructorQuestionValidation(t *testing.T) {
	srv, dbh := newTestServer(t)
	subjectID, _ := seedSubjectWithQuestions(t, dbh, "Physics", 0)

	payload := map[string]any{
		"subject_id": subjectID, "text": "what?",
		"option_a": "1", "option_b": "2", "option_c": "3", "option_d": "4",
		"correct_option": "E", // outside A-D
	}
	resp := postJSON(t, srv.URL+"/api/instructor/question/add", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid correct_option status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	payload["correct_option"] = "B"
	resp = postJSON(t, srv.URL+"/api/instructor/question/add", payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid question status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	var n int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM questions WHERE subject_id=$1`, subjectID).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("question count = %d, want 1", n)
	}
}

func TestAdminAccountManagement(t *testing.T) {
	srv, dbh := newTestServer(t)
	if _, err := dbh.Exec(`INSERT INTO subjects (name) VALUES ('Math')`); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, srv.URL+"/api/admin/student/add", map[string]any{"id": 7, "name": "Eve"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add student status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	// duplicate identifier fails the insert rather than overwriting
	resp = postJSON(t, srv.URL+"/api/admin/student/add", map[string]any{"id": 7, "name": "Eve2"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate add status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/admin/instructor/add", map[string]any{"name": "Turing", "subject_name": "Math"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add instructor status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/admin/instructor/add", map[string]any{"name": "Noether", "subject_name": "Missing"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown subject status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	// instructor logs in with the seeded default credential
	resp = postJSON(t, srv.URL+"/api/auth/login/instructor", map[string]any{"id": 1, "password": "Admin@123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("instructor login status = %d", resp.StatusCode)
	}
	var login struct {
		Role      string `json:"role"`
		SubjectID int64  `json:"subject_id"`
	}
	decodeBody(t, resp, &login)
	if login.Role != "instructor" || login.SubjectID == 0 {
		t.Fatalf("unexpected instructor login: %+v", login)
	}

	// rotate the student credential and log in with it
	putReq, err := http.NewRequest(http.MethodPut, srv.URL+"/api/admin/student/password",
		bytes.NewReader([]byte(`{"id":7,"new_password":"Rotated@1"}`)))
	if err != nil {
		t.Fatal(err)
	}
	putReq.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(putReq)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("password update status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/auth/login/student", map[string]any{"id": 7, "password": "Rotated@1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login after rotation status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/admin/student/delete/7", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete student status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.DefaultClient.Do(req.Clone(req.Context()))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}
