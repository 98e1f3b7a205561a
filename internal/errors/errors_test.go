package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapKeepsAppErrorCode(t *testing.T) {
	cause := ConfigInvalid("DATABASE_URL is required")
	wrapped := Wrap(cause, "configuration validation failed")

	if got := GetCode(wrapped); got != CodeConfigInvalid {
		t.Errorf("GetCode = %q, want %q", got, CodeConfigInvalid)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("disk full"), "failed to save")

	if got := GetCode(wrapped); got != CodeInternalError {
		t.Errorf("GetCode = %q, want %q", got, CodeInternalError)
	}
	want := "failed to save: disk full"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	tests := []struct {
		name     string
		err      *AppError
		wantCode string
		wantMsg  string
	}{
		{"database", DatabaseError("failed to query experiments", cause), CodeDatabaseError, "failed to query experiments: connection refused"},
		{"file", FileError("failed to open CSV file", cause), CodeFileError, "failed to open CSV file: connection refused"},
		{"config", ConfigInvalid("EXPECTED_VOLUME must be positive"), CodeConfigInvalid, "EXPECTED_VOLUME must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if got := GetCode(fmt.Errorf("plain")); got != "UNKNOWN" {
		t.Errorf("GetCode = %q, want UNKNOWN", got)
	}
}
