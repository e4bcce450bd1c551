package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeMissingID, "id must be set on %s before export", "soils"),
			want: "MISSING_ID: id must be set on soils before export",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidDocument, fmt.Errorf("unexpected end of input"), "decode document"),
			want: "INVALID_DOCUMENT: decode document: unexpected end of input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDuplicateID, "id 3 already registered")
	if !Is(err, ErrCodeDuplicateID) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeMissingID) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeDuplicateID) {
		t.Error("Is() = true for plain error")
	}

	// Code survives wrapping by fmt.Errorf.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeDuplicateID) {
		t.Error("Is() = false for fmt-wrapped error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ErrCodeInternal, cause, "context")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() cannot reach the cause through Unwrap")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnresolvedReference, "missing")); got != ErrCodeUnresolvedReference {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeUnresolvedReference)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode() = %q for plain error, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidDepth, "layer already exists at depth 3.0000")
	got := UserMessage(err)
	if strings.Contains(got, string(ErrCodeInvalidDepth)) {
		t.Errorf("UserMessage() = %q, should not contain the code", got)
	}
	if got != "layer already exists at depth 3.0000" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
