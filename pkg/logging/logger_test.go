// pkg/logging/logger_test.go
package logging

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestWithCorrelationID(t *testing.T) {
	t.Run("explicit_id_roundtrips", func(t *testing.T) {
		ctx := WithCorrelationID(context.Background(), "abc123")
		if got := GetCorrelationID(ctx); got != "abc123" {
			t.Errorf("GetCorrelationID() = %q, expected %q", got, "abc123")
		}
	})

	t.Run("empty_id_generates_one", func(t *testing.T) {
		ctx := WithCorrelationID(context.Background(), "")
		if got := GetCorrelationID(ctx); got == "" {
			t.Error("Expected a generated correlation ID, got empty string")
		}
	})

	t.Run("missing_id_is_empty", func(t *testing.T) {
		if got := GetCorrelationID(context.Background()); got != "" {
			t.Errorf("GetCorrelationID() on bare context = %q, expected empty", got)
		}
	})
}

func TestGenerateCorrelationID(t *testing.T) {
	a := GenerateCorrelationID()
	b := GenerateCorrelationID()
	if len(a) != 16 {
		t.Errorf("Correlation ID length = %d, expected 16 hex chars", len(a))
	}
	if a == b {
		t.Error("Two generated correlation IDs are identical")
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	original := os.Getenv("QUADTREE_LOG_LEVEL")
	defer os.Setenv("QUADTREE_LOG_LEVEL", original)

	tests := []struct {
		value    string
		expected string
	}{
		{value: "DEBUG", expected: "DEBUG"},
		{value: "warn", expected: "WARN"},
		{value: "WARNING", expected: "WARN"},
		{value: "ERROR", expected: "ERROR"},
		{value: "bogus", expected: "INFO"},
		{value: "", expected: "INFO"},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.value, func(t *testing.T) {
			os.Setenv("QUADTREE_LOG_LEVEL", tt.value)
			if got := getLogLevelFromEnv().String(); got != tt.expected {
				t.Errorf("getLogLevelFromEnv() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Run("nil_error_stays_nil", func(t *testing.T) {
		if err := WrapError(nil, "context"); err != nil {
			t.Errorf("WrapError(nil) = %v, expected nil", err)
		}
	})

	t.Run("wraps_with_context", func(t *testing.T) {
		base := errors.New("boom")
		err := WrapError(base, "loading config %q", "demo.json")
		if err == nil {
			t.Fatal("Expected wrapped error, got nil")
		}
		if !errors.Is(err, base) {
			t.Error("Wrapped error does not unwrap to the original")
		}
		expected := `loading config "demo.json": boom`
		if err.Error() != expected {
			t.Errorf("WrapError() = %q, expected %q", err.Error(), expected)
		}
	})
}
