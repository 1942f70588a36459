package auth

import (
	"context"
	"errors"
	"fmt"
)

type Status string

const (
	// StatusAuthenticated: an existing account matched the supplied credential.
	StatusAuthenticated Status = "authenticated"
	// StatusRegistered: a first-time student login created the account.
	StatusRegistered Status = "registered"
)

// Outcome is the tagged result of a login: which account, and whether the
// call authenticated an existing row or registered a new one.
type Outcome struct {
	Account Account
	Status  Status
}

// Gate decides login success, failure, or implicit student registration.
// Instructors and admins never self-register.
type Gate struct {
	store    Store
	verifier CredentialVerifier
	// the fixed credential that signals a first-time student registration
	defaultStudentPassword string
}

func NewGate(store Store, verifier CredentialVerifier, defaultStudentPassword string) *Gate {
	return &Gate{store: store, verifier: verifier, defaultStudentPassword: defaultStudentPassword}
}

// DefaultStudentPassword exposes the configured self-registration credential
// for user-facing guidance messages.
func (g *Gate) DefaultStudentPassword() string { return g.defaultStudentPassword }

// Login authenticates one request. name is only consulted on the student
// self-registration branch. Branches 1 and 3 of the student machine are
// read-only; branch 2 performs exactly one insert, and a failed insert (for
// example a duplicate-identifier race losing to the students primary key)
// surfaces as ErrRegistrationFailed, never as silent success.
func (g *Gate) Login(ctx context.Context, role Role, id int64, password, name string) (Outcome, error) {
	switch role {
	case RoleStudent:
		return g.loginStudent(ctx, id, password, name)
	case RoleInstructor:
		cred, err := g.store.FindInstructor(ctx, id)
		if err != nil {
			return Outcome{}, rejectLookup(err)
		}
		if !g.verifier.Verify(cred.Password, password) {
			return Outcome{}, ErrInvalidCredentials
		}
		return Outcome{
			Account: Account{ID: id, Name: cred.Name, Role: RoleInstructor, SubjectID: cred.SubjectID},
			Status:  StatusAuthenticated,
		}, nil
	case RoleAdmin:
		cred, err := g.store.FindAdmin(ctx, id)
		if err != nil {
			return Outcome{}, rejectLookup(err)
		}
		if !g.verifier.Verify(cred.Password, password) {
			return Outcome{}, ErrInvalidCredentials
		}
		return Outcome{
			Account: Account{ID: id, Name: cred.Name, Role: RoleAdmin},
			Status:  StatusAuthenticated,
		}, nil
	default:
		return Outcome{}, fmt.Errorf("unknown role: %s", role)
	}
}

func (g *Gate) loginStudent(ctx context.Context, id int64, password, name string) (Outcome, error) {
	cred, err := g.store.FindStudent(ctx, id)
	switch {
	case err == nil:
		if !g.verifier.Verify(cred.Password, password) {
			return Outcome{}, ErrInvalidCredentials
		}
		return Outcome{
			Account: Account{ID: id, Name: cred.Name, Role: RoleStudent},
			Status:  StatusAuthenticated,
		}, nil
	case errors.Is(err, ErrNoAccount):
		if password != g.defaultStudentPassword || name == "" {
			return Outcome{}, ErrAccountNotFound
		}
		stored, err := g.verifier.Hash(password)
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
		}
		if err := g.store.CreateStudent(ctx, id, name, stored); err != nil {
			return Outcome{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
		}
		return Outcome{
			Account: Account{ID: id, Name: name, Role: RoleStudent},
			Status:  StatusRegistered,
		}, nil
	default:
		return Outcome{}, err
	}
}

// rejectLookup collapses a store miss into invalid credentials for the roles
// that never self-register; other errors pass through.
func rejectLookup(err error) error {
	if errors.Is(err, ErrNoAccount) {
		return ErrInvalidCredentials
	}
	return err
}
