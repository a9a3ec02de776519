package domain

import (
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Username != "alice" {
		t.Errorf("Expected username %q, got %q", "alice", user.Username)
	}

	if user.Password != "correct-horse-battery" {
		t.Error("Expected plaintext password to be carried for hashing")
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test empty username
	if _, err := NewUser("", "correct-horse-battery"); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	// Test empty password
	if _, err := NewUser("alice", ""); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	// A stored user has only a hashed password; that is valid.
	stored := User{Username: "bob", HashedPassword: "$2a$10$abcdefghijklmnopqrstuv"}
	if err := stored.Validate(); err != nil {
		t.Errorf("Expected no error for stored user, got %v", err)
	}

	// Username beyond 64 characters is rejected.
	long := User{Username: strings.Repeat("a", 65), Password: "pw-long-enough"}
	if err := long.Validate(); err != ErrUsernameTooLong {
		t.Errorf("Expected error %v, got %v", ErrUsernameTooLong, err)
	}

	// Passwords beyond bcrypt's 72-byte limit are rejected.
	tooLong := User{Username: "bob", Password: strings.Repeat("x", 73)}
	if err := tooLong.Validate(); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}
