package auth

import (
	"context"
	"database/sql"
	"errors"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FindStudent(ctx context.Context, id int64) (Credential, error) {
	var c Credential
	err := s.db.QueryRowContext(ctx,
		`SELECT name, password FROM students WHERE id=$1`, id).Scan(&c.Name, &c.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return Credential{}, ErrNoAccount
	}
	return c, err
}

func (s *SQLStore) FindInstructor(ctx context.Context, id int64) (Credential, error) {
	var c Credential
	err := s.db.QueryRowContext(ctx,
		`SELECT name, subject_id, password FROM instructors WHERE id=$1`, id).
		Scan(&c.Name, &c.SubjectID, &c.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return Credential{}, ErrNoAccount
	}
	return c, err
}

func (s *SQLStore) FindAdmin(ctx context.Context, id int64) (Credential, error) {
	var c Credential
	err := s.db.QueryRowContext(ctx,
		`SELECT name, password FROM admins WHERE id=$1`, id).Scan(&c.Name, &c.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return Credential{}, ErrNoAccount
	}
	return c, err
}

// CreateStudent inserts the row for a first-time login. The primary key on
// students.id turns a concurrent duplicate registration into an error here,
// which the gate reports as ErrRegistrationFailed.
func (s *SQLStore) CreateStudent(ctx context.Context, id int64, name, password string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (id, name, password) VALUES ($1,$2,$3)`, id, name, password)
	return err
}
