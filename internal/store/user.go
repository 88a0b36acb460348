package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dstanek/focusflow/internal/model"
)

// ErrDuplicateUsername is returned by Register when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// dummyHash is compared against when the username is unknown so Verify
// costs a bcrypt comparison on both the unknown-user and wrong-password paths.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("focusflow-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// UserStore owns user rows exclusively; password data never leaves it
// in plaintext or reaches callers other than through Verify.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, username, password_hash, created_at`

// Register creates a user with a bcrypt hash of the password. Usernames are
// unique with a case-sensitive exact match; duplicates fail with
// ErrDuplicateUsername whether caught by the pre-check or the UNIQUE constraint.
func (s *UserStore) Register(username, password string) (*model.User, error) {
	existing, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, string(hash),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// Verify returns the user only if the username exists and the password matches
// its stored hash. Both failure modes return (nil, nil) and both cost a bcrypt
// comparison, so callers cannot tell them apart.
func (s *UserStore) Verify(username, password string) (*model.User, error) {
	u, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return u, nil
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}
