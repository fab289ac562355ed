package errors

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain",
			err:  New(ErrCodeInvalidConfig, "galaxy_arms[%d].color is required", 1),
			want: "INVALID_CONFIG: galaxy_arms[1].color is required",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeFileNotFound, os.ErrNotExist, "config file %s not found", "config.yml"),
			want: "FILE_NOT_FOUND: config file config.yml not found: file does not exist",
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

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, os.ErrNotExist, "config file missing")
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is should find the cause")
	}
	if errors.Unwrap(err) != os.ErrNotExist {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
}

func TestCodeThroughChain(t *testing.T) {
	sentinel := New(ErrCodeRateLimited, "rate limited")

	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"direct", New(ErrCodeInvalidColor, "bad"), ErrCodeInvalidColor},
		{"fmt wrapped", fmt.Errorf("fetch: %w", New(ErrCodeUnsupported, "no fetcher")), ErrCodeUnsupported},
		{"sentinel with detail", fmt.Errorf("%w: still limited after waiting 1m0s", sentinel), ErrCodeRateLimited},
		{"outermost wins", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeNetwork},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
		})
	}
	if Is(nil, "") {
		t.Error("Is(nil) should be false")
	}
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", Wrap(ErrCodeFileNotFound, os.ErrNotExist, "no config at config.yml"))
	if got := UserMessage(wrapped); got != "no config at config.yml" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestInternal(t *testing.T) {
	err := Internal("arm index %d out of range", 7)
	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}
	if Is(err, ErrCodeInvalidConfig) {
		t.Error("internal errors must not look like validation errors")
	}
	if want := "internal consistency: arm index 7 out of range"; err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidColor, "x"), http.StatusBadRequest},
		{fmt.Errorf("render: %w", New(ErrCodeNotFound, "x")), http.StatusNotFound},
		{New(ErrCodeRateLimited, "x"), http.StatusServiceUnavailable},
		{New(ErrCodeUnauthorized, "x"), http.StatusBadGateway},
		{New(ErrCodeNetwork, "x"), http.StatusBadGateway},
		{New(ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{Internal("x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
