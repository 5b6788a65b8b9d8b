package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Test@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}

	if user.Password != "secret1" {
		t.Errorf("Expected plaintext password to be kept for hashing, got %q", user.Password)
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	_, err = NewUser("", "secret1")
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	_, err = NewUser("invalidemail", "secret1")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	_, err = NewUser("test@example.com", "")
	if err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{
			name:    "stored user with hash",
			user:    User{ID: uuid.New(), Email: "a@b.co", HashedPassword: "$2a$10$hash"},
			wantErr: nil,
		},
		{
			name:    "missing id",
			user:    User{Email: "a@b.co", HashedPassword: "x"},
			wantErr: ErrEmptyUserID,
		},
		{
			name:    "no domain dot",
			user:    User{ID: uuid.New(), Email: "a@localhost", HashedPassword: "x"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "display name form rejected",
			user:    User{ID: uuid.New(), Email: "Bob <bob@example.com>", HashedPassword: "x"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "short password",
			user:    User{ID: uuid.New(), Email: "a@b.co", Password: "12345"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "long password",
			user:    User{ID: uuid.New(), Email: "a@b.co", Password: strings.Repeat("p", MaxPasswordLength+1)},
			wantErr: ErrPasswordTooLong,
		},
		{
			name:    "neither password nor hash",
			user:    User{ID: uuid.New(), Email: "a@b.co"},
			wantErr: ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("expected %v to wrap ErrValidation", err)
			}
		})
	}
}
