package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *DiffpressError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrConfig, "missing token_env", nil),
			want: "[CONFIG] missing token_env",
		},
		{
			name: "with cause",
			err:  New(ErrPlatform, "fetch failed", fmt.Errorf("status 502")),
			want: "[PLATFORM] fetch failed: status 502",
		},
		{
			name: "validation",
			err:  ValidationError("not a GitHub PR URL", nil),
			want: "[VALIDATION] not a GitHub PR URL",
		},
		{
			name: "diff too large",
			err:  DiffTooLargeError("diff exceeds 60000 chars", nil),
			want: "[DIFF_TOO_LARGE] diff exceeds 60000 chars",
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

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := PlatformError("wrapper", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the underlying cause")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestIsType(t *testing.T) {
	err := ConfigError("bad config", nil)

	if !IsType(err, ErrConfig) {
		t.Error("IsType(err, ErrConfig) = false, want true")
	}
	if IsType(err, ErrPlatform) {
		t.Error("IsType(err, ErrPlatform) = true, want false")
	}
	if IsType(nil, ErrConfig) {
		t.Error("IsType(nil, ErrConfig) = true, want false")
	}
	if IsType(errors.New("plain"), ErrConfig) {
		t.Error("IsType(plain error, ErrConfig) = true, want false")
	}
}

func TestIsTypeWrapped(t *testing.T) {
	inner := TimeoutError("fetch timed out", nil)
	wrapped := fmt.Errorf("fetch pr: %w", inner)

	if !IsType(wrapped, ErrTimeout) {
		t.Error("IsType should see through fmt.Errorf wrapping")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"platform error", PlatformError("503", nil), true},
		{"timeout error", TimeoutError("deadline", nil), true},
		{"config error", ConfigError("bad yaml", nil), false},
		{"validation error", ValidationError("bad url", nil), false},
		{"too large", DiffTooLargeError("too big", nil), false},
		{"plain error", errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"config", ConfigError("bad", nil), 2},
		{"validation", ValidationError("bad", nil), 2},
		{"too large", DiffTooLargeError("big", nil), 3},
		{"platform", PlatformError("502", nil), 1},
		{"plain", errors.New("plain"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	err := PlatformError("fetch failed", nil).
		WithContext("url", "https://github.com/o/r/pull/1").
		WithContext("status", 404)

	if err.Context["url"] != "https://github.com/o/r/pull/1" {
		t.Errorf("Context[url] = %v", err.Context["url"])
	}
	if err.Context["status"] != 404 {
		t.Errorf("Context[status] = %v", err.Context["status"])
	}
	if !strings.Contains(err.Error(), "fetch failed") {
		t.Errorf("Error() should keep the message, got %q", err.Error())
	}
}
