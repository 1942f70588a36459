package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizsystem/quizsystem-backend/internal/auth"
)

type loginReq struct {
	ID       int64  `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"` // students only, for first-login registration
}

type loginResp struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      auth.Role `json:"role"`
	SubjectID int64     `json:"subject_id,omitempty"`
}

// MountAuth mounts POST /login/{student,instructor,admin}.
func MountAuth(r chi.Router, gate *auth.Gate) {
	r.Post("/login/student", loginHandler(gate, auth.RoleStudent))
	r.Post("/login/instructor", loginHandler(gate, auth.RoleInstructor))
	r.Post("/login/admin", loginHandler(gate, auth.RoleAdmin))
}

func loginHandler(gate *auth.Gate, role auth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "id and password required", http.StatusBadRequest)
			return
		}
		out, err := gate.Login(r.Context(), role, req.ID, req.Password, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			case errors.Is(err, auth.ErrAccountNotFound):
				http.Error(w, fmt.Sprintf(
					"Student not found. Use default password %q and provide name to register.",
					gate.DefaultStudentPassword()), http.StatusNotFound)
			case errors.Is(err, auth.ErrRegistrationFailed):
				http.Error(w, "Registration failed: "+err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, loginResp{
			ID:        out.Account.ID,
			Name:      out.Account.Name,
			Role:      out.Account.Role,
			SubjectID: out.Account.SubjectID,
		})
	}
}
