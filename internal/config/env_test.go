package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{" TRUE ", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"0", false},
		{"No", false},
		{"off", false},
		{"maybe", true},
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %q, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefaultHonorsMinimum(t *testing.T) {
	t.Setenv("INT_TEST", "0")
	if got := intEnvOrDefault("INT_TEST", 5, 0); got != 0 {
		t.Fatalf("expected zero accepted with min 0, got %d", got)
	}
	if got := intEnvOrDefault("INT_TEST", 5, 1); got != 5 {
		t.Fatalf("expected default when below min, got %d", got)
	}
	t.Setenv("INT_TEST", "seven")
	if got := intEnvOrDefault("INT_TEST", 5, 0); got != 5 {
		t.Fatalf("expected default on parse failure, got %d", got)
	}
}

func TestDurationEnvOrDefaultTrimsWhitespace(t *testing.T) {
	t.Setenv("DUR_TEST", " 90s\n")
	if got := durationEnvOrDefault("DUR_TEST", time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
}

func TestSecretEnvPrefersValueThenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	t.Setenv("SECRET_TEST", "")
	t.Setenv("SECRET_TEST_FILE", path)
	if got := secretEnv("SECRET_TEST"); got != "from-file" {
		t.Fatalf("expected file contents, got %q", got)
	}

	t.Setenv("SECRET_TEST", "direct")
	if got := secretEnv("SECRET_TEST"); got != "direct" {
		t.Fatalf("expected direct value to win, got %q", got)
	}

	t.Setenv("SECRET_TEST", "")
	t.Setenv("SECRET_TEST_FILE", filepath.Join(t.TempDir(), "missing"))
	if got := secretEnv("SECRET_TEST"); got != "" {
		t.Fatalf("expected empty secret for missing file, got %q", got)
	}
}
