package auth

import (
	"context"
	"errors"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

type Account struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	SubjectID int64  `json:"subject_id,omitempty"` // instructors only
}

// Credential is an account row as the store sees it: display name, the stored
// credential token, and for instructors the owned subject.
type Credential struct {
	Name      string
	Password  string
	SubjectID int64
}

var (
	// ErrNoAccount is the store-level miss; the gate decides what it means.
	ErrNoAccount = errors.New("no such account")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrRegistrationFailed = errors.New("registration failed")
)

// Store is the row-level account lookup the gate runs on. Creation happens
// only on the student self-registration path.
type Store interface {
	FindStudent(ctx context.Context, id int64) (Credential, error)
	FindInstructor(ctx context.Context, id int64) (Credential, error)
	FindAdmin(ctx context.Context, id int64) (Credential, error)
	CreateStudent(ctx context.Context, id int64, name, password string) error
}
