package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// Each case checks that errors.Is() identifies the sentinel behind an AppError,
// including when the AppError is wrapped again with fmt.Errorf("...: %w").

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("venue", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Storage wraps ErrStorage",
			err:       Storage("creating venue", errors.New("disk I/O error")),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "wrapped Storage still matches",
			err:       fmt.Errorf("creating venue: %w", Storage("creating venue", errors.New("boom"))),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("login required"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("venue", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Storage does NOT match ErrNotFound",
			err:       Storage("updating artist", errors.New("boom")),
			target:    ErrNotFound,
			wantMatch: false,
		},
		{
			name:      "ValidationFailed does NOT match ErrStorage",
			err:       ValidationFailed("venue_id", "venue does not exist"),
			target:    ErrStorage,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("artist", "abc123"),
			wantMessage: "artist not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("name", "name is required"),
			wantMessage: "name is required",
		},
		{
			name:        "Storage message hides the cause",
			err:         Storage("creating show", errors.New("FOREIGN KEY constraint failed")),
			wantMessage: "storage failure while creating show",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("venue", "abc123")
	unwrapped := err.Unwrap()

	if unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Storage("updating venue", cause)

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("start_time", "start_time is not a valid timestamp")

	if err.Field != "start_time" {
		t.Errorf("Field = %q, want %q", err.Field, "start_time")
	}
}
